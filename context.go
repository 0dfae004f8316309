// context.go: Context derivation and the composed encrypt/decrypt/digest contract.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma

import (
	"crypto/cipher"
	"fmt"
)

// Context bundles the Seed and TrapdoorVector derived from one key.
//
// A Context is immutable after creation and safe for concurrent use by any
// number of goroutines. Encrypting and decrypting with different contexts
// does not fail; it silently yields unrelated bytes.
type Context struct {
	seed   Seed
	vector TrapdoorVector
	key    []byte
}

// GenerateContext derives a Context from key using DefaultBias.
//
// Example:
//
//	ctx := quma.GenerateContext([]byte("TGDK"))
//	hexText := ctx.Encrypt([]byte("AI"))
//	plain, err := ctx.Decrypt(hexText)
func GenerateContext(key []byte) *Context {
	return GenerateContextWithBias(key, DefaultBias)
}

// GenerateContextWithBias derives a Context from key with a custom vector bias.
func GenerateContextWithBias(key []byte, bias float64) *Context {
	keyCopy := make([]byte, len(key))
	copy(keyCopy, key)

	return &Context{
		seed:   GenerateSeed(key),
		vector: GenerateVector(key, bias),
		key:    keyCopy,
	}
}

// Seed returns the context seed.
func (c *Context) Seed() Seed {
	return c.seed
}

// Vector returns the context trapdoor vector.
func (c *Context) Vector() TrapdoorVector {
	return c.vector
}

// Key returns a copy of the originating key.
func (c *Context) Key() []byte {
	key := make([]byte, len(c.key))
	copy(key, c.key)
	return key
}

// NewStream returns a cipher.Stream applying the keystream stage then the
// trapdoor stage. Each call starts a fresh stream at position zero.
func (c *Context) NewStream() cipher.Stream {
	return &composedStream{
		keystream: NewKeystream(c.seed),
		trapdoor:  NewTrapdoorStream(c.vector),
	}
}

// composedStream layers the two stages over one buffer.
type composedStream struct {
	keystream cipher.Stream
	trapdoor  cipher.Stream
}

// XORKeyStream implements cipher.Stream.
func (s *composedStream) XORKeyStream(dst, src []byte) {
	s.keystream.XORKeyStream(dst, src)
	s.trapdoor.XORKeyStream(dst[:len(src)], dst[:len(src)])
}

// Encrypt runs the keystream stage then the trapdoor stage over plain and
// returns lowercase hex. Empty input yields "".
func (c *Context) Encrypt(plain []byte) string {
	buf := getBuffer(len(plain))
	defer putBuffer(buf)

	NewKeystream(c.seed).XORKeyStream(*buf, plain)
	NewTrapdoorStream(c.vector).XORKeyStream(*buf, *buf)
	return HexEncode(*buf)
}

// Decrypt reverses Encrypt: trapdoor stage first, then keystream stage.
//
// Malformed hex fails with ErrInvalidEncoding.
func (c *Context) Decrypt(hexText string) ([]byte, error) {
	data, err := HexDecode(hexText)
	if err != nil {
		return nil, err
	}
	NewTrapdoorStream(c.vector).XORKeyStream(data, data)
	NewKeystream(c.seed).XORKeyStream(data, data)
	return data, nil
}

// Digest returns a 16-character fingerprint of the context and the input length:
// the 48-bit entropy sample at offset len(input) as 12 hex digits, followed by
// the 4-digit vector signature.
//
// The digest is not a hash of the input content and offers no tamper detection.
func (c *Context) Digest(input []byte) string {
	offset := uint32(len(input)) // #nosec G115 -- wraparound is part of the fingerprint
	return fmt.Sprintf("%012x%s", EntropySample(c.seed, offset), c.vector.Signature())
}

// Encrypt obfuscates a string with ctx and returns lowercase hex.
func Encrypt(plaintext string, ctx *Context) string {
	return ctx.Encrypt([]byte(plaintext))
}

// EncryptBytes obfuscates a byte slice with ctx and returns lowercase hex.
func EncryptBytes(plaintext []byte, ctx *Context) string {
	return ctx.Encrypt(plaintext)
}

// Decrypt reverses Encrypt and returns the plaintext as a string.
func Decrypt(hexText string, ctx *Context) (string, error) {
	plain, err := ctx.Decrypt(hexText)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

// DecryptBytes reverses EncryptBytes.
func DecryptBytes(hexText string, ctx *Context) ([]byte, error) {
	return ctx.Decrypt(hexText)
}

// Digest is the free-function form of Context.Digest.
func Digest(input []byte, ctx *Context) string {
	return ctx.Digest(input)
}
