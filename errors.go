// errors.go: Public sentinel errors and rich error codes.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma

import (
	"errors"
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// Public standard errors for drop-in compatibility.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrInvalidEncoding is returned when a hex or base64 payload is malformed:
	// odd hex length, a non-hex character, or an invalid base64 quantum.
	ErrInvalidEncoding = errors.New("quma: invalid encoding")

	// ErrStreamClosed is returned when writing to or reading from a closed stream.
	ErrStreamClosed = errors.New("quma: stream closed")

	// ErrInvalidKDFParams is returned when passphrase derivation input is unusable.
	ErrInvalidKDFParams = errors.New("quma: invalid key derivation parameters")

	// ErrEntryNotFound is returned when a keyring entry ID is unknown.
	ErrEntryNotFound = errors.New("quma: keyring entry not found")

	// ErrEntryRevoked is returned when a revoked keyring entry is used.
	ErrEntryRevoked = errors.New("quma: keyring entry revoked")

	// ErrNoActiveEntry is returned when the keyring has no active entry.
	ErrNoActiveEntry = errors.New("quma: no active keyring entry")
)

// Error codes for rich error handling
const (
	ErrCodeInvalidHex      = "QUMA_INVALID_HEX"
	ErrCodeInvalidBase64   = "QUMA_INVALID_BASE64"
	ErrCodeStreamClosed    = "QUMA_STREAM_CLOSED"
	ErrCodeStreamIO        = "QUMA_STREAM_IO"
	ErrCodeEmptyPassphrase = "QUMA_EMPTY_PASSPHRASE"
	ErrCodeEmptySalt       = "QUMA_EMPTY_SALT"
	ErrCodeEntryNotFound   = "QUMA_ENTRY_NOT_FOUND"
	ErrCodeEntryRevoked    = "QUMA_ENTRY_REVOKED"
	ErrCodeNoActiveEntry   = "QUMA_NO_ACTIVE_ENTRY"
	ErrCodeKeyringRotation = "QUMA_KEYRING_ROTATION"
)

// invalidHex builds the error returned for malformed hex input.
func invalidHex(cause error, msg string) error {
	var richErr error
	if cause != nil {
		richErr = goerrors.Wrap(cause, ErrCodeInvalidHex, msg)
	} else {
		richErr = goerrors.New(ErrCodeInvalidHex, msg)
	}
	return fmt.Errorf("%w: %w", ErrInvalidEncoding, richErr)
}
