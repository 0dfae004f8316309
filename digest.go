// digest.go: Keyed integrity tags over context digests.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma

import (
	"strings"
)

// tagSeparator joins a digest and its tag.
const tagSeparator = "."

// SignDigest returns Digest(input) followed by "." and an HMAC-SHA256 tag over
// the digest and input, keyed by a key derived from the context key.
//
// The tag binds the input content, which the bare digest does not. It is still
// an integrity aid for cooperating parties, not a defence against an adversary
// that holds the key.
func SignDigest(input []byte, ctx *Context) string {
	digest := ctx.Digest(input)
	return digest + tagSeparator + signDigest(digest, input, ctx)
}

// VerifyDigest reports whether tagged was produced by SignDigest for input and ctx.
func VerifyDigest(input []byte, ctx *Context, tagged string) bool {
	digest, tag, ok := strings.Cut(tagged, tagSeparator)
	if !ok || digest != ctx.Digest(input) {
		return false
	}
	tagKey := deriveTagKey(ctx.key)
	defer clearBuffer(tagKey)
	return VerifyHMAC(tagMessage(digest, input), tagKey, tag)
}

func signDigest(digest string, input []byte, ctx *Context) string {
	tagKey := deriveTagKey(ctx.key)
	defer clearBuffer(tagKey)
	return HMACSign(tagMessage(digest, input), tagKey)
}

func tagMessage(digest string, input []byte) []byte {
	msg := make([]byte, 0, len(digest)+len(input))
	msg = append(msg, digest...)
	return append(msg, input...)
}
