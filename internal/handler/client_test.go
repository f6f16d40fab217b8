// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/ngl-guild/internal/geoip"
)

const firefoxLinux = "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0"

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:5123"
	assert.Equal(t, "203.0.113.7", clientIP(r))

	r.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", clientIP(r))
}

func TestClientDetails(t *testing.T) {
	geo, err := geoip.Open("")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.0.20:40000"
	r.Header.Set("User-Agent", firefoxLinux)

	d := clientDetails(r, geo)
	assert.Equal(t, "192.168.0.20", d["ip"])
	assert.Equal(t, geoip.Local, d["country"])
	assert.Equal(t, "Firefox", d["browser"])
	assert.Equal(t, "Linux", d["os"])
	assert.Equal(t, "desktop", d["device"])
}

func TestClientDetails_NoGeoNoAgent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "8.8.8.8:1"
	r.Header.Del("User-Agent")

	assert.Equal(t, map[string]string{"ip": "8.8.8.8"}, clientDetails(r, nil))
}
