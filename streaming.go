// streaming.go: Streaming obfuscation for large payloads.
//
// The streaming forms produce exactly the bytes of Context.Encrypt and
// Context.Decrypt without holding the whole payload in memory: keystream
// state and trapdoor position carry across Write and Read calls.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma

import (
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"
)

// streamChunkSize is the plaintext chunk size; its hex form fills one large pooled buffer.
const streamChunkSize = largeBufferSize / 2

// StreamingEncryptor obfuscates plaintext written to it and writes lowercase hex
// to the underlying writer.
//
// Example usage:
//
//	ctx := quma.GenerateContext(key)
//	enc := quma.NewStreamingEncryptor(outputWriter, ctx)
//	defer enc.Close()
//
//	io.Copy(enc, inputReader)
type StreamingEncryptor interface {
	// Write obfuscates data and writes its hex form to the underlying writer.
	Write(data []byte) (int, error)

	// Close marks the encryptor closed. It does not close the underlying writer.
	Close() error
}

// StreamingDecryptor reads hex ciphertext from the underlying reader and
// returns the recovered plaintext.
//
// Example usage:
//
//	dec := quma.NewStreamingDecryptor(inputReader, ctx)
//	defer dec.Close()
//
//	io.Copy(outputWriter, dec)
type StreamingDecryptor interface {
	// Read decodes and de-obfuscates data from the underlying reader.
	// Malformed hex fails with ErrInvalidEncoding.
	Read(data []byte) (int, error)

	// Close marks the decryptor closed. It does not close the underlying reader.
	Close() error
}

type streamingEncryptor struct {
	writer io.Writer
	stream cipher.Stream
	closed bool
}

type streamingDecryptor struct {
	decoder io.Reader
	stream  cipher.Stream
	closed  bool
}

// NewStreamingEncryptor returns a StreamingEncryptor writing to writer with ctx.
func NewStreamingEncryptor(writer io.Writer, ctx *Context) StreamingEncryptor {
	return &streamingEncryptor{
		writer: writer,
		stream: ctx.NewStream(),
	}
}

// NewStreamingDecryptor returns a StreamingDecryptor reading hex from reader with ctx.
func NewStreamingDecryptor(reader io.Reader, ctx *Context) StreamingDecryptor {
	return &streamingDecryptor{
		decoder: hex.NewDecoder(reader),
		stream:  ctx.NewStream(),
	}
}

// Write implements the Write method of StreamingEncryptor.
func (e *streamingEncryptor) Write(data []byte) (int, error) {
	if e.closed {
		richErr := goerrors.New(ErrCodeStreamClosed, "cannot write to closed encryptor")
		return 0, fmt.Errorf("%w: %w", ErrStreamClosed, richErr)
	}

	totalWritten := 0
	for len(data) > 0 {
		n := len(data)
		if n > streamChunkSize {
			n = streamChunkSize
		}
		if err := e.writeChunk(data[:n]); err != nil {
			return totalWritten, err
		}
		data = data[n:]
		totalWritten += n
	}
	return totalWritten, nil
}

// writeChunk transforms one chunk into pooled buffers and writes its hex form.
func (e *streamingEncryptor) writeChunk(chunk []byte) error {
	plain := getBuffer(len(chunk))
	defer putBuffer(plain)
	encoded := getBuffer(hex.EncodedLen(len(chunk)))
	defer putBuffer(encoded)

	e.stream.XORKeyStream(*plain, chunk)
	hex.Encode(*encoded, *plain)

	if _, err := e.writer.Write(*encoded); err != nil {
		return goerrors.Wrap(err, ErrCodeStreamIO, "failed to write obfuscated chunk")
	}
	return nil
}

// Close implements the Close method of StreamingEncryptor.
func (e *streamingEncryptor) Close() error {
	e.closed = true
	return nil
}

// Read implements the Read method of StreamingDecryptor.
func (d *streamingDecryptor) Read(data []byte) (int, error) {
	if d.closed {
		richErr := goerrors.New(ErrCodeStreamClosed, "cannot read from closed decryptor")
		return 0, fmt.Errorf("%w: %w", ErrStreamClosed, richErr)
	}

	n, err := d.decoder.Read(data)
	d.stream.XORKeyStream(data[:n], data[:n])
	if err == nil || err == io.EOF {
		return n, err
	}

	var byteErr hex.InvalidByteError
	if errors.As(err, &byteErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return n, invalidHex(err, "malformed hex in stream")
	}
	return n, goerrors.Wrap(err, ErrCodeStreamIO, "failed to read obfuscated stream")
}

// Close implements the Close method of StreamingDecryptor.
func (d *streamingDecryptor) Close() error {
	d.closed = true
	return nil
}
