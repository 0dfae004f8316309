// keystream.go: Position-dependent keystream cipher driven by a Seed.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma

import (
	"crypto/cipher"
)

// Linear congruential step applied to the keystream state after every byte.
const (
	lcgMultiplier uint64 = 0x5DEECE66D
	lcgIncrement  uint64 = 0xB
)

// keystream implements cipher.Stream over the seed-driven state.
type keystream struct {
	state uint64
	pos   uint64
}

// NewKeystream returns a cipher.Stream that XORs data with the keystream of seed.
//
// The state starts at seed.Hi ^ seed.Lo. Byte i is XORed with byte (i mod 8)
// of the current state, then the state advances one LCG step. Position and
// state carry across calls, so splitting the input does not change the output.
func NewKeystream(seed Seed) cipher.Stream {
	return &keystream{state: seed.Hi ^ seed.Lo}
}

// XORKeyStream implements cipher.Stream.
func (k *keystream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("quma: output smaller than input")
	}
	for i, c := range src {
		shift := (k.pos % 8) * 8
		dst[i] = c ^ byte(k.state>>shift)
		k.state = k.state*lcgMultiplier + lcgIncrement
		k.pos++
	}
}

// KeystreamEncrypt XORs plain with the keystream of seed and returns lowercase hex.
//
// Example:
//
//	seed := quma.GenerateSeed([]byte("key"))
//	hexText := quma.KeystreamEncrypt([]byte("data"), seed)
func KeystreamEncrypt(plain []byte, seed Seed) string {
	buf := getBuffer(len(plain))
	defer putBuffer(buf)

	NewKeystream(seed).XORKeyStream(*buf, plain)
	return HexEncode(*buf)
}

// KeystreamDecrypt decodes hexText and reverses KeystreamEncrypt.
//
// Odd-length or non-hex input fails with ErrInvalidEncoding; nothing is truncated.
func KeystreamDecrypt(hexText string, seed Seed) ([]byte, error) {
	data, err := HexDecode(hexText)
	if err != nil {
		return nil, err
	}
	NewKeystream(seed).XORKeyStream(data, data)
	return data, nil
}
