// vector.go: Trapdoor vector generation and signatures.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma

import (
	"fmt"
	"math"
)

// DefaultBias is the index bias applied to the first vector component.
const DefaultBias = 1.0

// Component moduli. Every folded component lies in [0, modulus).
const (
	ModulusA = 5.0
	ModulusB = 8.0
	ModulusC = 13.0
	ModulusD = 21.0
)

// TrapdoorVector holds four bounded real components derived from a key.
type TrapdoorVector struct {
	A float64
	B float64
	C float64
	D float64
}

// GenerateVector folds key into a TrapdoorVector.
//
// C and D read the running values of B and A inside the same iteration,
// so the fold is order dependent. After the fold each component is reduced
// to fmod(|x|, modulus) with moduli 5, 8, 13 and 21.
func GenerateVector(key []byte, bias float64) TrapdoorVector {
	var v TrapdoorVector
	for i, c := range key {
		k := float64(c)
		idx := float64(i)
		v.A += math.Sin(k + idx*bias)
		v.B += math.Cos(k*0.5 + idx)
		v.C += math.Sin(k*0.33 + v.B)
		v.D += math.Cos(k*0.25 + v.A)
	}
	v.A = math.Mod(math.Abs(v.A), ModulusA)
	v.B = math.Mod(math.Abs(v.B), ModulusB)
	v.C = math.Mod(math.Abs(v.C), ModulusC)
	v.D = math.Mod(math.Abs(v.D), ModulusD)
	return v
}

// Sum returns a+b+c+d.
func (v TrapdoorVector) Sum() float64 {
	return v.A + v.B + v.C + v.D
}

// Signature returns a 4-digit lowercase hex fingerprint of v.
//
// Distinct vectors may share a signature; this is not a digest.
func (v TrapdoorVector) Signature() string {
	weighted := math.Floor(v.A*17 + v.B*19 + v.C*23 + v.D*29)
	return fmt.Sprintf("%04x", int64(weighted)&0xFFFF)
}

// String renders the components for diagnostics.
func (v TrapdoorVector) String() string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f, %.6f)", v.A, v.B, v.C, v.D)
}

// Signature is the free-function form of TrapdoorVector.Signature.
func Signature(v TrapdoorVector) string {
	return v.Signature()
}
