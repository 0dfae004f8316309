// Package quma derives a reusable transformation context from a key and uses it
// for reversible, position-dependent byte obfuscation and short fingerprints.
//
// The package offers:
//   - A 128-bit mixed-state seed folded from the key (GenerateSeed, EntropyRatio)
//   - A bounded four-component trapdoor vector folded with trigonometric mixing (GenerateVector)
//   - A keystream XOR stage driven by the seed and a trapdoor XOR stage driven by the vector
//   - A Context that layers both stages behind Encrypt, Decrypt and Digest
//   - Streaming forms over io.Writer and io.Reader for large payloads
//   - Passphrase contexts via Argon2id, keyed digest tags via HKDF and HMAC-SHA256
//   - A Keyring with versioned contexts and rotation
//
// # Not a cryptographic primitive
//
// quma is an obfuscation and fingerprinting utility. The transforms are XOR
// streams derived from a linear congruential generator and a handful of real
// numbers; anyone with modest compute can recover the plaintext without the key.
// Do not use it to keep secrets from an adversary, and do not rely on Digest for
// tamper detection. Use an AEAD such as AES-GCM for confidentiality.
//
// # Quick Start
//
//	ctx := quma.GenerateContext([]byte("TGDK"))
//
//	hexText := ctx.Encrypt([]byte("AI")) // "441d"
//
//	plain, err := ctx.Decrypt(hexText)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(string(plain))           // AI
//	fmt.Println(ctx.Digest(plain))       // f3755d7c1e6e006a
//
// A Context is immutable and every operation is a pure function of its
// inputs, so one Context may be shared by any number of goroutines.
//
// # Encoding
//
// Ciphertext is lowercase hex, two characters per byte, with no prefix or
// separators. Decrypt accepts either case and rejects odd-length or non-hex
// input with ErrInvalidEncoding instead of truncating it.
//
// # Error Handling
//
// Errors can be matched with errors.Is against the exported sentinels. Each
// one also carries a coded error from github.com/agilira/go-errors:
//
//	plain, err := ctx.Decrypt(input)
//	if errors.Is(err, quma.ErrInvalidEncoding) {
//		// reject input
//	}
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package quma
