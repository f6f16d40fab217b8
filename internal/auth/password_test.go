// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("changeme")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"), hash)

	other, err := HashPassword("changeme")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "salt must differ between hashes")
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("guilda-ngl")
	require.NoError(t, err)

	ok, err := CheckPassword("guilda-ngl", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	for _, h := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x$c2FsdA$a2V5",
		"$argon2id$v=19$m=1,t=1,p=1$!!!$a2V5",
	} {
		_, err := CheckPassword("x", h)
		assert.ErrorIs(t, err, ErrInvalidHash, "hash %q", h)
	}
}

func TestNeedsRehash(t *testing.T) {
	hash, err := HashPassword("x")
	require.NoError(t, err)
	assert.False(t, NeedsRehash(hash))

	assert.True(t, NeedsRehash("$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$a2V5"))
	assert.True(t, NeedsRehash("garbage"))
}
