// trapdoor.go: Second-stage XOR transform driven by a TrapdoorVector.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma

import (
	"crypto/cipher"
	"math"
)

// trapdoorStream implements cipher.Stream for the vector rotation.
type trapdoorStream struct {
	base uint64 // floor(a+b+c+d)
	pos  uint64 // 1-based position of the last byte processed
}

// NewTrapdoorStream returns a cipher.Stream that XORs byte i with the
// rotation floor(a+b+c+d) * (i+1) mod 256.
func NewTrapdoorStream(v TrapdoorVector) cipher.Stream {
	return &trapdoorStream{base: rotationBase(v.Sum())}
}

// rotationBase floors the component sum. For a generated vector every component
// lies in [0, modulus), so the sum is below 47; NaN from a non-finite bias maps to zero.
func rotationBase(sum float64) uint64 {
	if !(sum > 0) {
		return 0
	}
	return uint64(math.Floor(sum))
}

// XORKeyStream implements cipher.Stream.
func (t *trapdoorStream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("quma: output smaller than input")
	}
	for i, c := range src {
		t.pos++
		dst[i] = c ^ rotation(t.base, t.pos)
	}
}

// rotation keeps the low byte of base scaled by position; the product wraps.
func rotation(base, position uint64) byte {
	return byte((base * position) % 256)
}

// TrapdoorEncrypt XORs plain with the rotation sequence of v and returns lowercase hex.
func TrapdoorEncrypt(plain []byte, v TrapdoorVector) string {
	buf := getBuffer(len(plain))
	defer putBuffer(buf)

	NewTrapdoorStream(v).XORKeyStream(*buf, plain)
	return HexEncode(*buf)
}

// TrapdoorDecrypt decodes hexText and reverses TrapdoorEncrypt.
//
// XOR is self-inverse, so decryption is the same transform applied to the
// decoded bytes.
func TrapdoorDecrypt(hexText string, v TrapdoorVector) ([]byte, error) {
	data, err := HexDecode(hexText)
	if err != nil {
		return nil, err
	}
	NewTrapdoorStream(v).XORKeyStream(data, data)
	return data, nil
}
