// Copyright (c) 2025 EventsOps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerSetGetRemove(t *testing.T) {
	m := NewManagerWithKeyring(keyring.NewArrayKeyring(nil))

	_, err := m.Get(KeyAccessToken)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(KeyAccessToken, "abc"))
	got, err := m.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)

	require.NoError(t, m.Remove(KeyAccessToken))
	_, err = m.Get(KeyAccessToken)
	assert.ErrorIs(t, err, ErrNotFound)

	// Removing twice is fine.
	assert.NoError(t, m.Remove(KeyAccessToken))
}

func TestManagerEmptyValueIsNotFound(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{{Key: KeyUser, Data: nil}})
	m := NewManagerWithKeyring(ring)

	_, err := m.Get(KeyUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerClearAuth(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{
		{Key: KeyAccessToken, Data: []byte("abc")},
		{Key: KeyUser, Data: []byte(`{"id":"1"}`)},
		{Key: "unrelated", Data: []byte("keep")},
	})
	m := NewManagerWithKeyring(ring)

	require.NoError(t, m.ClearAuth())

	_, err := m.Get(KeyAccessToken)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(KeyUser)
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := m.Get("unrelated")
	require.NoError(t, err)
	assert.Equal(t, "keep", v)
}
