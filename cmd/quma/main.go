// Command quma obfuscates and fingerprints data with a key-derived context.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agilira/quma"
)

// Build-time variables (set via -ldflags)
var (
	version   = "dev"     // Set via -ldflags "-X main.version=x.y.z"
	gitCommit = "unknown" // Set via -ldflags "-X main.gitCommit=..."
)

// keyEnv is read when -key is not given.
const keyEnv = "QUMA_KEY"

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "quma: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches one subcommand. It is split from main for testing.
func run(command string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	switch command {
	case "encrypt", "decrypt", "digest", "sign", "inspect":
		return transformCommand(command, args, stdin, stdout, stderr)
	case "version":
		fmt.Fprintf(stdout, "quma version %s (%s)\n", version, gitCommit)
		return nil
	case "help", "--help", "-h":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `quma - reversible key-derived obfuscation and fingerprinting

USAGE:
    quma <command> [options]

COMMANDS:
    encrypt   Obfuscate input, print lowercase hex
    decrypt   Recover input from hex
    digest    Print the 16-character context/length fingerprint
    sign      Print the digest with a keyed HMAC tag
    inspect   Print the derived seed, vector and signature
    version   Print version information
    help      Show this help message

OPTIONS (all transform commands):
    -key    Key material (falls back to $QUMA_KEY)
    -bias   Trapdoor vector bias (default 1.0)
    -in     Input text (default: read stdin)

NOTE:
    quma is an obfuscation tool. It is not encryption in the cryptographic
    sense and must not protect secrets from an adversary.`)
}

func transformCommand(command string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	key := fs.String("key", "", "Key material (falls back to $"+keyEnv+")")
	bias := fs.Float64("bias", quma.DefaultBias, "Trapdoor vector bias")
	in := fs.String("in", "", "Input text (default: read stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	keyMaterial := *key
	if keyMaterial == "" {
		keyMaterial = os.Getenv(keyEnv)
	}
	ctx := quma.GenerateContextWithBias([]byte(keyMaterial), *bias)

	if command == "inspect" {
		seed := ctx.Seed()
		fmt.Fprintf(stdout, "seed.hi    %016x\n", seed.Hi)
		fmt.Fprintf(stdout, "seed.lo    %016x\n", seed.Lo)
		fmt.Fprintf(stdout, "vector     %s\n", ctx.Vector())
		fmt.Fprintf(stdout, "signature  %s\n", ctx.Vector().Signature())
		fmt.Fprintf(stdout, "entropy    %.12f\n", quma.EntropyRatio(seed, 0))
		return nil
	}

	input, err := readInput(*in, stdin)
	if err != nil {
		return err
	}

	switch command {
	case "encrypt":
		fmt.Fprintln(stdout, ctx.Encrypt(input))
	case "decrypt":
		plain, err := ctx.Decrypt(strings.TrimSpace(string(input)))
		if err != nil {
			if errors.Is(err, quma.ErrInvalidEncoding) {
				return fmt.Errorf("input is not valid hex: %w", err)
			}
			return err
		}
		if _, err := stdout.Write(plain); err != nil {
			return err
		}
	case "digest":
		fmt.Fprintln(stdout, ctx.Digest(input))
	case "sign":
		fmt.Fprintln(stdout, quma.SignDigest(input, ctx))
	}
	return nil
}

func readInput(in string, stdin io.Reader) ([]byte, error) {
	if in != "" {
		return []byte(in), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
