// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_EmptyPathDisables(t *testing.T) {
	g, err := Open("")
	require.NoError(t, err)
	assert.False(t, g.Enabled())
	assert.NoError(t, g.Reload())
	assert.NoError(t, g.Close())
}

func TestOpen_MissingFile(t *testing.T) {
	g, err := Open(filepath.Join(t.TempDir(), "missing.mmdb"))
	assert.Error(t, err)
	require.NotNil(t, g)
	assert.False(t, g.Enabled())
}

func TestCountry_WithoutDatabase(t *testing.T) {
	g, err := Open("")
	require.NoError(t, err)

	tests := []struct {
		ip   string
		want string
	}{
		{"127.0.0.1", Local},
		{"::1", Local},
		{"10.1.2.3", Local},
		{"172.20.0.5", Local},
		{"192.168.1.10", Local},
		{"fd00::1", Local},
		{"8.8.8.8", ""},
		{"not-an-ip", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.Country(tt.ip), tt.ip)
	}
}

func TestZeroValueLookup(t *testing.T) {
	var g Lookup
	assert.Equal(t, Local, g.Country("127.0.0.1"))
	assert.Equal(t, "", g.Country("1.1.1.1"))
}
