// keyring.go: Versioned contexts with rotation for long-lived deployments.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma

import (
	"fmt"
	"sort"
	"sync"
	"time"

	goerrors "github.com/agilira/go-errors"
	"github.com/agilira/go-timecache"
)

// Entry status constants
const (
	StatusPending    = "pending"    // Added but not yet used for encryption
	StatusActive     = "active"     // Used for new encryptions
	StatusDeprecated = "deprecated" // Decrypt only
	StatusRevoked    = "revoked"    // Not usable
)

// DefaultMaxEntries is the number of entries a Keyring retains by default.
const DefaultMaxEntries = 10

// KeyEntry is one versioned context held by a Keyring.
type KeyEntry struct {
	ID          string    `json:"id"`          // "<fingerprint>-v<version>"
	Label       string    `json:"label"`       // Caller supplied label
	Version     int       `json:"version"`     // Incremental version number
	Fingerprint string    `json:"fingerprint"` // Digest of the empty input
	CreatedAt   time.Time `json:"created_at"`  // Creation timestamp
	Status      string    `json:"status"`      // One of the Status* constants

	ctx *Context
}

// Context returns the entry's context.
func (e *KeyEntry) Context() *Context {
	return e.ctx
}

// snapshot returns a copy safe to hand out while the keyring keeps mutating status.
func (e *KeyEntry) snapshot() *KeyEntry {
	c := *e
	return &c
}

// Keyring holds versioned contexts and tracks which one encrypts new data.
// Previously active entries stay available for decryption until revoked or
// evicted. A Keyring is safe for concurrent use.
type Keyring struct {
	mu          sync.RWMutex
	active      *KeyEntry
	entries     map[string]*KeyEntry
	lastVersion int
	maxEntries  int
}

// NewKeyring creates an empty keyring retaining DefaultMaxEntries entries.
func NewKeyring() *Keyring {
	return NewKeyringWithOptions(DefaultMaxEntries)
}

// NewKeyringWithOptions creates an empty keyring retaining at most maxEntries
// entries. Values below 1 fall back to DefaultMaxEntries.
func NewKeyringWithOptions(maxEntries int) *Keyring {
	if maxEntries < 1 {
		maxEntries = DefaultMaxEntries
	}
	return &Keyring{
		entries:    make(map[string]*KeyEntry),
		maxEntries: maxEntries,
	}
}

// Add derives a context from key and stores it as a pending entry.
func (kr *Keyring) Add(label string, key []byte) *KeyEntry {
	kr.mu.Lock()
	defer kr.mu.Unlock()

	return kr.addLocked(label, key).snapshot()
}

// addLocked assumes the mutex is held.
func (kr *Keyring) addLocked(label string, key []byte) *KeyEntry {
	ctx := GenerateContext(key)
	kr.lastVersion++
	fingerprint := ctx.Digest(nil)

	entry := &KeyEntry{
		ID:          fmt.Sprintf("%s-v%d", fingerprint, kr.lastVersion),
		Label:       label,
		Version:     kr.lastVersion,
		Fingerprint: fingerprint,
		CreatedAt:   timecache.CachedTime().UTC(),
		Status:      StatusPending,
		ctx:         ctx,
	}
	kr.entries[entry.ID] = entry
	return entry
}

// Activate makes the entry with id the one used for new encryptions.
// The previously active entry becomes deprecated.
func (kr *Keyring) Activate(id string) error {
	kr.mu.Lock()
	defer kr.mu.Unlock()

	return kr.activateLocked(id)
}

func (kr *Keyring) activateLocked(id string) error {
	entry, exists := kr.entries[id]
	if !exists {
		return entryNotFound(id)
	}
	if entry.Status == StatusRevoked {
		richErr := goerrors.New(ErrCodeEntryRevoked, fmt.Sprintf("cannot activate revoked entry %s", id))
		return fmt.Errorf("%w: %w", ErrEntryRevoked, richErr)
	}
	if kr.active == entry {
		return nil
	}

	if kr.active != nil {
		kr.active.Status = StatusDeprecated
	}
	entry.Status = StatusActive
	kr.active = entry

	kr.evictLocked()
	return nil
}

// Rotate adds a context for key and activates it in one step.
func (kr *Keyring) Rotate(label string, key []byte) (*KeyEntry, error) {
	kr.mu.Lock()
	defer kr.mu.Unlock()

	entry := kr.addLocked(label, key)
	if err := kr.activateLocked(entry.ID); err != nil {
		richErr := goerrors.Wrap(err, ErrCodeKeyringRotation, "failed to activate rotated entry")
		return nil, fmt.Errorf("rotation failed: %w", richErr)
	}
	return entry.snapshot(), nil
}

// Revoke marks an entry unusable. The active entry cannot be revoked; rotate first.
func (kr *Keyring) Revoke(id string) error {
	kr.mu.Lock()
	defer kr.mu.Unlock()

	entry, exists := kr.entries[id]
	if !exists {
		return entryNotFound(id)
	}
	if kr.active == entry {
		richErr := goerrors.New(ErrCodeKeyringRotation, "cannot revoke active entry - rotate first")
		return fmt.Errorf("revoke refused: %w", richErr)
	}
	entry.Status = StatusRevoked
	return nil
}

// Current returns the active entry.
func (kr *Keyring) Current() (*KeyEntry, error) {
	kr.mu.RLock()
	defer kr.mu.RUnlock()

	if kr.active == nil {
		richErr := goerrors.New(ErrCodeNoActiveEntry, "no active entry in keyring")
		return nil, fmt.Errorf("%w: %w", ErrNoActiveEntry, richErr)
	}
	return kr.active.snapshot(), nil
}

// Get returns a usable entry by id. Revoked entries are rejected.
func (kr *Keyring) Get(id string) (*KeyEntry, error) {
	kr.mu.RLock()
	defer kr.mu.RUnlock()

	return kr.usableLocked(id)
}

func (kr *Keyring) usableLocked(id string) (*KeyEntry, error) {
	entry, exists := kr.entries[id]
	if !exists {
		return nil, entryNotFound(id)
	}
	if entry.Status == StatusRevoked {
		richErr := goerrors.New(ErrCodeEntryRevoked, fmt.Sprintf("entry %s is revoked", id))
		return nil, fmt.Errorf("%w: %w", ErrEntryRevoked, richErr)
	}
	return entry.snapshot(), nil
}

// List returns snapshots of all entries ordered by version.
func (kr *Keyring) List() []*KeyEntry {
	kr.mu.RLock()
	defer kr.mu.RUnlock()

	list := make([]*KeyEntry, 0, len(kr.entries))
	for _, entry := range kr.entries {
		list = append(list, entry.snapshot())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Version < list[j].Version })
	return list
}

// Encrypt obfuscates plain with the active entry and returns the entry id
// alongside the hex ciphertext.
func (kr *Keyring) Encrypt(plain []byte) (string, string, error) {
	entry, err := kr.Current()
	if err != nil {
		return "", "", err
	}
	return entry.ID, entry.ctx.Encrypt(plain), nil
}

// Decrypt reverses Encrypt using the entry named by id.
func (kr *Keyring) Decrypt(id, hexText string) ([]byte, error) {
	entry, err := kr.Get(id)
	if err != nil {
		return nil, err
	}
	return entry.ctx.Decrypt(hexText)
}

// evictLocked drops entries beyond maxEntries: revoked first, then deprecated,
// then pending, oldest version first within each status. The active entry stays.
func (kr *Keyring) evictLocked() {
	if len(kr.entries) <= kr.maxEntries {
		return
	}

	candidates := make([]*KeyEntry, 0, len(kr.entries))
	for _, entry := range kr.entries {
		if entry != kr.active {
			candidates = append(candidates, entry)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		ri, rj := evictionRank(candidates[i].Status), evictionRank(candidates[j].Status)
		if ri != rj {
			return ri < rj
		}
		return candidates[i].Version < candidates[j].Version
	})

	for _, entry := range candidates {
		if len(kr.entries) <= kr.maxEntries {
			break
		}
		delete(kr.entries, entry.ID)
	}
}

func evictionRank(status string) int {
	switch status {
	case StatusRevoked:
		return 0
	case StatusDeprecated:
		return 1
	default:
		return 2
	}
}

func entryNotFound(id string) error {
	richErr := goerrors.New(ErrCodeEntryNotFound, fmt.Sprintf("entry %s not found", id))
	return fmt.Errorf("%w: %w", ErrEntryNotFound, richErr)
}
