// seed.go: 128-bit mixed-state seed generation and entropy sampling.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma

import (
	"fmt"
	"math/bits"
)

// GoldenGamma is the 64-bit golden ratio increment used to spread entropy offsets.
const GoldenGamma uint64 = 0x9E3779B97F4A7C15

const (
	seedHiMultiplier = 131
	seedLoMultiplier = 137

	entropyMask = 1<<48 - 1
)

// Seed is the 128-bit mixed state derived from a key.
//
// A Seed is a plain value: copying it is cheap and it is never mutated
// after GenerateSeed returns it.
type Seed struct {
	Hi uint64
	Lo uint64
}

// GenerateSeed folds key into a Seed.
//
// Bytes at even indices fold into Hi, bytes at odd indices fold into Lo,
// then the two halves are cross-mixed with 64-bit rotations. All arithmetic
// wraps. An empty key yields the zero Seed.
//
// Example:
//
//	seed := quma.GenerateSeed([]byte("TGDK"))
//	fmt.Println(seed) // hi/lo in hex
func GenerateSeed(key []byte) Seed {
	var hi, lo uint64
	for i, c := range key {
		if i%2 == 0 {
			hi = (hi * seedHiMultiplier) ^ (uint64(c) + (hi >> 3))
		} else {
			lo = (lo * seedLoMultiplier) ^ (uint64(c) + (lo >> 5))
		}
	}
	hi ^= bits.RotateLeft64(lo, 13)
	lo ^= bits.RotateLeft64(hi, 7)
	return Seed{Hi: hi, Lo: lo}
}

// IsZero reports whether s is the zero Seed.
func (s Seed) IsZero() bool {
	return s.Hi == 0 && s.Lo == 0
}

// String renders the seed as two 16-digit hex halves.
func (s Seed) String() string {
	return fmt.Sprintf("%016x:%016x", s.Hi, s.Lo)
}

// EntropySample returns the 48-bit mixed sample of s at offset.
func EntropySample(s Seed, offset uint32) uint64 {
	mix := s.Hi ^ (s.Lo + uint64(offset)*GoldenGamma)
	return mix & entropyMask
}

// EntropyRatio normalizes the entropy sample at offset into [0, 1].
//
// The value is used for diagnostics and digests; the ciphers never read it.
func EntropyRatio(s Seed, offset uint32) float64 {
	return float64(EntropySample(s, offset)) / float64(entropyMask)
}
