// vector_test.go: Test cases for trapdoor vector generation and signatures.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agilira/quma"
)

func assertVectorBounds(t *testing.T, v quma.TrapdoorVector) {
	t.Helper()
	components := []struct {
		name    string
		value   float64
		modulus float64
	}{
		{"a", v.A, quma.ModulusA},
		{"b", v.B, quma.ModulusB},
		{"c", v.C, quma.ModulusC},
		{"d", v.D, quma.ModulusD},
	}
	for _, c := range components {
		assert.GreaterOrEqual(t, c.value, 0.0, "component %s", c.name)
		assert.Less(t, c.value, c.modulus, "component %s", c.name)
	}
}

func TestGenerateVector_Bounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	biases := []float64{quma.DefaultBias, 0, -3.5, 0.001, 17, 1e6}
	for i := 0; i < 200; i++ {
		key := make([]byte, rng.IntN(96))
		for j := range key {
			key[j] = byte(rng.UintN(256))
		}
		for _, bias := range biases {
			assertVectorBounds(t, quma.GenerateVector(key, bias))
		}
	}
}

func TestGenerateVector_EmptyKey(t *testing.T) {
	v := quma.GenerateVector(nil, quma.DefaultBias)
	assert.Equal(t, quma.TrapdoorVector{}, v)
	assert.Equal(t, "0000", v.Signature())
	assert.Equal(t, 0.0, v.Sum())
}

func TestGenerateVector_KnownVector(t *testing.T) {
	v := quma.GenerateVector([]byte("TGDK"), quma.DefaultBias)
	assert.InDelta(t, 2.2748828203807525, v.A, 1e-9)
	assert.InDelta(t, 1.1072830872505768, v.B, 1e-9)
	assert.InDelta(t, 1.446897705864814, v.C, 1e-9)
	assert.InDelta(t, 0.4544580627370465, v.D, 1e-9)
	assert.Equal(t, "006a", v.Signature())
	assert.Equal(t, "006a", quma.Signature(v))
}

func TestGenerateVector_RunningCoupling(t *testing.T) {
	// The fold is position dependent and c, d read the running b, a.
	v1 := quma.GenerateVector([]byte{10, 200}, quma.DefaultBias)
	v2 := quma.GenerateVector([]byte{200, 10}, quma.DefaultBias)
	assert.NotEqual(t, v1.C, v2.C)
	assert.NotEqual(t, v1.D, v2.D)
}

func TestGenerateVector_BiasOnlyTouchesA(t *testing.T) {
	key := []byte("bias-check")
	v1 := quma.GenerateVector(key, 1.0)
	v2 := quma.GenerateVector(key, 2.0)
	assert.NotEqual(t, v1.A, v2.A)
	assert.Equal(t, v1.B, v2.B)
	assert.Equal(t, v1.C, v2.C)
}

func TestSignature_StableAndSpread(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 64; i++ {
		key := []byte{byte(i), byte(i * 7), byte(i * 13), 'k'}
		v := quma.GenerateVector(key, quma.DefaultBias)
		sig := v.Signature()
		assert.Len(t, sig, 4)
		assert.Equal(t, sig, v.Signature())
		seen[sig] = struct{}{}
	}
	// Collisions are allowed, but a handful of signatures for 64 keys would be a regression.
	assert.Greater(t, len(seen), 16)
}
