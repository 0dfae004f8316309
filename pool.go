// pool.go: Scratch buffer pooling for transform and hex encoding work.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma

import (
	"sync"
)

const (
	smallBufferSize = 256
	largeBufferSize = 4 * 1024
)

var (
	// Payload-sized scratch buffers, cleared before reuse since they hold plaintext
	smallBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, smallBufferSize)
			return &buf
		},
	}

	largeBufferPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, largeBufferSize)
			return &buf
		},
	}
)

// getBuffer returns a buffer of exactly size bytes, pooled when size fits a pool class.
func getBuffer(size int) *[]byte {
	switch {
	case size <= smallBufferSize:
		buf := smallBufferPool.Get().(*[]byte)
		*buf = (*buf)[:size]
		return buf
	case size <= largeBufferSize:
		buf := largeBufferPool.Get().(*[]byte)
		*buf = (*buf)[:size]
		return buf
	default:
		buf := make([]byte, size)
		return &buf
	}
}

// clearBuffer zeroes buf in place.
func clearBuffer(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

// putBuffer clears buf and hands it back to its pool. Oversized buffers are dropped.
func putBuffer(buf *[]byte) {
	if buf == nil {
		return
	}
	if len(*buf) > 0 {
		clearBuffer(*buf)
	}

	switch cap(*buf) {
	case smallBufferSize:
		smallBufferPool.Put(buf)
	case largeBufferSize:
		largeBufferPool.Put(buf)
	}
}
