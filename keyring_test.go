// keyring_test.go: Test cases for versioned contexts and rotation.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package quma_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilira/quma"
)

func TestKeyring_AddAndActivate(t *testing.T) {
	kr := quma.NewKeyring()

	_, err := kr.Current()
	assert.ErrorIs(t, err, quma.ErrNoActiveEntry)

	entry := kr.Add("primary", []byte("TGDK"))
	assert.Equal(t, quma.StatusPending, entry.Status)
	assert.Equal(t, 1, entry.Version)
	assert.Equal(t, "00025f831600006a", entry.Fingerprint)
	assert.Equal(t, "00025f831600006a-v1", entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	require.NoError(t, kr.Activate(entry.ID))
	current, err := kr.Current()
	require.NoError(t, err)
	assert.Equal(t, entry.ID, current.ID)
	assert.Equal(t, quma.StatusActive, current.Status)
}

func TestKeyring_EncryptDecrypt(t *testing.T) {
	kr := quma.NewKeyring()
	_, _, err := kr.Encrypt([]byte("x"))
	assert.ErrorIs(t, err, quma.ErrNoActiveEntry)

	first, err := kr.Rotate("v1", []byte("first key"))
	require.NoError(t, err)

	id, hexText, err := kr.Encrypt([]byte("AI"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, id)
	assert.Equal(t, quma.GenerateContext([]byte("first key")).Encrypt([]byte("AI")), hexText)

	second, err := kr.Rotate("v2", []byte("second key"))
	require.NoError(t, err)

	// Data written under the first entry still decrypts after rotation.
	plain, err := kr.Decrypt(id, hexText)
	require.NoError(t, err)
	assert.Equal(t, "AI", string(plain))

	old, err := kr.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, quma.StatusDeprecated, old.Status)

	newID, _, err := kr.Encrypt([]byte("AI"))
	require.NoError(t, err)
	assert.Equal(t, second.ID, newID)

	_, err = kr.Decrypt(id, "abc")
	assert.ErrorIs(t, err, quma.ErrInvalidEncoding)
}

func TestKeyring_Revoke(t *testing.T) {
	kr := quma.NewKeyring()
	first, err := kr.Rotate("v1", []byte("first"))
	require.NoError(t, err)

	// The active entry cannot be revoked.
	assert.Error(t, kr.Revoke(first.ID))

	_, err = kr.Rotate("v2", []byte("second"))
	require.NoError(t, err)
	require.NoError(t, kr.Revoke(first.ID))

	_, err = kr.Get(first.ID)
	assert.ErrorIs(t, err, quma.ErrEntryRevoked)
	_, err = kr.Decrypt(first.ID, "00")
	assert.ErrorIs(t, err, quma.ErrEntryRevoked)
	assert.ErrorIs(t, kr.Activate(first.ID), quma.ErrEntryRevoked)

	assert.ErrorIs(t, kr.Revoke("missing"), quma.ErrEntryNotFound)
	assert.ErrorIs(t, kr.Activate("missing"), quma.ErrEntryNotFound)
	_, err = kr.Get("missing")
	assert.ErrorIs(t, err, quma.ErrEntryNotFound)
}

func TestKeyring_Eviction(t *testing.T) {
	kr := quma.NewKeyringWithOptions(3)
	var ids []string
	for i := 0; i < 5; i++ {
		entry, err := kr.Rotate("gen", []byte{byte(i), 'k'})
		require.NoError(t, err)
		ids = append(ids, entry.ID)
	}

	list := kr.List()
	require.Len(t, list, 3)
	assert.Equal(t, 3, list[0].Version)
	assert.Equal(t, 5, list[2].Version)
	assert.Equal(t, quma.StatusActive, list[2].Status)

	_, err := kr.Get(ids[0])
	assert.ErrorIs(t, err, quma.ErrEntryNotFound)
}

func TestKeyring_EvictionKeepsPendingOverDeprecated(t *testing.T) {
	kr := quma.NewKeyringWithOptions(3)

	// Staged early and never activated.
	staged := kr.Add("staged", []byte("staged key"))

	var deprecated []string
	for i := 0; i < 3; i++ {
		entry, err := kr.Rotate("gen", []byte{byte(i), 'r'})
		require.NoError(t, err)
		deprecated = append(deprecated, entry.ID)
	}

	// v1 pending, v2 and v3 deprecated, v4 active: the oldest deprecated entry goes.
	_, err := kr.Get(staged.ID)
	require.NoError(t, err)
	_, err = kr.Get(deprecated[0])
	assert.ErrorIs(t, err, quma.ErrEntryNotFound)
	require.Len(t, kr.List(), 3)

	// Further rotations keep consuming deprecated entries.
	_, err = kr.Rotate("gen", []byte("next"))
	require.NoError(t, err)
	_, err = kr.Get(deprecated[1])
	assert.ErrorIs(t, err, quma.ErrEntryNotFound)
	_, err = kr.Get(staged.ID)
	require.NoError(t, err)
}

func TestKeyring_EvictionFallsBackToOldestPending(t *testing.T) {
	kr := quma.NewKeyringWithOptions(2)
	first := kr.Add("a", []byte("a"))
	second := kr.Add("b", []byte("b"))
	third := kr.Add("c", []byte("c"))

	// Three pending entries are kept until an activation enforces the limit.
	require.Len(t, kr.List(), 3)
	require.NoError(t, kr.Activate(third.ID))

	_, err := kr.Get(first.ID)
	assert.ErrorIs(t, err, quma.ErrEntryNotFound)
	kept, err := kr.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, quma.StatusPending, kept.Status)
}

func TestKeyring_EvictionPrefersRevoked(t *testing.T) {
	kr := quma.NewKeyringWithOptions(3)
	var ids []string
	for i := 0; i < 3; i++ {
		entry, err := kr.Rotate("gen", []byte{byte(i), 'v'})
		require.NoError(t, err)
		ids = append(ids, entry.ID)
	}
	require.NoError(t, kr.Revoke(ids[1]))

	_, err := kr.Rotate("gen", []byte("fourth"))
	require.NoError(t, err)

	_, err = kr.Get(ids[1])
	assert.ErrorIs(t, err, quma.ErrEntryNotFound)
	old, err := kr.Get(ids[0])
	require.NoError(t, err)
	assert.Equal(t, quma.StatusDeprecated, old.Status)
}

func TestKeyring_SnapshotsAreDetached(t *testing.T) {
	kr := quma.NewKeyring()
	entry, err := kr.Rotate("v1", []byte("k1"))
	require.NoError(t, err)

	_, err = kr.Rotate("v2", []byte("k2"))
	require.NoError(t, err)

	// The snapshot taken before rotation keeps its old status.
	assert.Equal(t, quma.StatusActive, entry.Status)
}

func TestKeyring_Concurrent(t *testing.T) {
	kr := quma.NewKeyring()
	_, err := kr.Rotate("base", []byte("base"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if id%4 == 0 {
				if _, err := kr.Rotate("gen", []byte{byte(id)}); err != nil {
					t.Errorf("rotate %d: %v", id, err)
				}
				return
			}
			entryID, hexText, err := kr.Encrypt([]byte("concurrent"))
			if err != nil {
				t.Errorf("encrypt %d: %v", id, err)
				return
			}
			plain, err := kr.Decrypt(entryID, hexText)
			if err != nil {
				t.Errorf("decrypt %d: %v", id, err)
				return
			}
			if string(plain) != "concurrent" {
				t.Errorf("round trip %d mismatch", id)
			}
		}(i)
	}
	wg.Wait()
}
