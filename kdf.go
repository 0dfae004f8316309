// kdf.go: Passphrase stretching and tag key derivation for contexts.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma

import (
	"crypto/sha256"
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

// Default Argon2id parameters for passphrase contexts.
const (
	// DefaultTime is the default number of Argon2id iterations.
	DefaultTime = 3

	// DefaultMemory is the default Argon2id memory usage in MB.
	DefaultMemory = 64

	// DefaultThreads is the default Argon2id parallelism.
	DefaultThreads = 4

	// PassphraseKeySize is the length of the key material stretched from a passphrase.
	PassphraseKeySize = 32
)

// tagKeyInfo separates the digest tag key from any other use of the context key.
const tagKeyInfo = "quma-digest-tag-v1"

// KDFParams defines custom parameters for Argon2id passphrase stretching.
//
// If a field is zero, the library default is used.
type KDFParams struct {
	// Time is the number of Argon2id iterations. If zero, DefaultTime is used.
	Time uint32 `json:"time,omitempty"`

	// Memory is the memory usage in MB. If zero, DefaultMemory is used.
	Memory uint32 `json:"memory,omitempty"`

	// Threads is the Argon2id parallelism. If zero, DefaultThreads is used.
	Threads uint8 `json:"threads,omitempty"`
}

// FastKDFParams returns cheap Argon2id parameters for tests and tooling.
//
// Parameters: Time=1, Memory=8MB, Threads=1
func FastKDFParams() *KDFParams {
	return &KDFParams{
		Time:    1,
		Memory:  8,
		Threads: 1,
	}
}

// resolve fills zero fields with defaults and returns Argon2 arguments (memory in KiB).
func (p *KDFParams) resolve() (time, memoryKiB uint32, threads uint8) {
	time = DefaultTime
	memoryKiB = DefaultMemory * 1024
	threads = DefaultThreads
	if p == nil {
		return time, memoryKiB, threads
	}
	if p.Time > 0 {
		time = p.Time
	}
	if p.Memory > 0 {
		memoryKiB = p.Memory * 1024
	}
	if p.Threads > 0 {
		threads = p.Threads
	}
	return time, memoryKiB, threads
}

// GenerateContextFromPassphrase stretches passphrase with Argon2id and derives
// a Context from the resulting PassphraseKeySize bytes.
//
// The same passphrase, salt and params always produce the same Context.
//
// Example:
//
//	ctx, err := quma.GenerateContextFromPassphrase([]byte("open sesame"), []byte("app-salt"), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
func GenerateContextFromPassphrase(passphrase, salt []byte, params *KDFParams) (*Context, error) {
	if len(passphrase) == 0 {
		richErr := goerrors.New(ErrCodeEmptyPassphrase, "passphrase cannot be empty")
		return nil, fmt.Errorf("%w: %w", ErrInvalidKDFParams, richErr)
	}
	if len(salt) == 0 {
		richErr := goerrors.New(ErrCodeEmptySalt, "salt cannot be empty")
		return nil, fmt.Errorf("%w: %w", ErrInvalidKDFParams, richErr)
	}

	time, memory, threads := params.resolve()
	key := argon2.IDKey(passphrase, salt, time, memory, threads, PassphraseKeySize)
	ctx := GenerateContext(key)
	clearBuffer(key)
	return ctx, nil
}

// deriveTagKey derives the HMAC key used for digest tags from the context key.
func deriveTagKey(key []byte) []byte {
	tagKey := make([]byte, sha256.Size)
	r := hkdf.New(sha256.New, key, nil, []byte(tagKeyInfo))
	if _, err := io.ReadFull(r, tagKey); err != nil {
		// HKDF-SHA256 can emit 255*32 bytes; one block never fails.
		panic("quma: hkdf expansion failed: " + err.Error())
	}
	return tagKey
}
