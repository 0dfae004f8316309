// encoding.go: Hex and base64 transport encoding plus HMAC signing helpers.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// HexEncode encodes data as lowercase hex, two characters per byte.
func HexEncode(data []byte) string {
	return hex.EncodeToString(data)
}

// HexDecode decodes a hex string produced by HexEncode.
//
// Both cases are accepted. An odd length or any non-hex character fails with
// ErrInvalidEncoding; no partial result is returned.
//
// Example:
//
//	data, err := quma.HexDecode("abc")
//	if errors.Is(err, quma.ErrInvalidEncoding) {
//		// odd length: trailing nibble is never silently dropped
//	}
func HexDecode(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, invalidHex(nil, fmt.Sprintf("odd hex length %d", len(s)))
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, invalidHex(err, "failed to decode hex payload")
	}
	return data, nil
}

// Base64Encode encodes data with the standard padded base64 alphabet.
func Base64Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// Base64Decode decodes a standard padded base64 string.
func Base64Decode(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeInvalidBase64, "failed to decode base64 payload")
		return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, richErr)
	}
	return data, nil
}

// HMACSign returns the lowercase hex HMAC-SHA256 of data under key.
//
// Example:
//
//	tag := quma.HMACSign([]byte("payload"), []byte("shared-key"))
//	ok := quma.VerifyHMAC([]byte("payload"), []byte("shared-key"), tag)
func HMACSign(data, key []byte) string {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMAC reports whether signature is the HMAC-SHA256 of data under key.
// The comparison runs in constant time over the decoded tag.
func VerifyHMAC(data, key []byte, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return hmac.Equal(mac.Sum(nil), got)
}
