// pool_test.go: Test cases for scratch buffer pooling.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetBuffer_Sizes(t *testing.T) {
	for _, size := range []int{0, 1, smallBufferSize, smallBufferSize + 1, largeBufferSize, largeBufferSize + 1} {
		buf := getBuffer(size)
		assert.Len(t, *buf, size)
		putBuffer(buf)
	}
}

func TestPutBuffer_Clears(t *testing.T) {
	buf := getBuffer(16)
	for i := range *buf {
		(*buf)[i] = 0xAA
	}
	data := *buf
	putBuffer(buf)
	for i, b := range data {
		assert.Equal(t, byte(0), b, "byte %d not cleared", i)
	}
}

func TestPutBuffer_Nil(t *testing.T) {
	assert.NotPanics(t, func() { putBuffer(nil) })
}

// BenchmarkBufferPoolOperations measures the performance of pool operations
func BenchmarkBufferPoolOperations(b *testing.B) {
	b.Run("SmallBuffer", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			buf := getBuffer(32)
			putBuffer(buf)
		}
	})

	b.Run("LargeBuffer", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			buf := getBuffer(largeBufferSize)
			putBuffer(buf)
		}
	})

	b.Run("Oversized", func(b *testing.B) {
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			buf := getBuffer(largeBufferSize + 1)
			putBuffer(buf)
		}
	})
}
