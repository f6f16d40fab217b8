// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net/url"
	"strings"
)

// MaxURLLength is the longest URL accepted from forms.
const MaxURLLength = 2048

// IsHTTPURL reports whether s is an absolute http or https URL with a host.
func IsHTTPURL(s string) bool {
	if s == "" || len(s) > MaxURLLength {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// YouTubeEmbedURL turns a YouTube watch or short link into its embed URL.
// Other URLs are returned unchanged; an empty string stays empty.
func YouTubeEmbedURL(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	u, err := url.Parse(s)
	if err != nil {
		return s
	}

	host := strings.TrimPrefix(u.Host, "www.")
	host = strings.TrimPrefix(host, "m.")
	switch host {
	case "youtube.com":
		if u.Path == "/watch" {
			if id := u.Query().Get("v"); id != "" {
				return "https://www.youtube.com/embed/" + url.PathEscape(id)
			}
		}
	case "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			return "https://www.youtube.com/embed/" + url.PathEscape(id)
		}
	}
	return s
}

// Origin returns scheme://host of an http(s) URL, or "".
func Origin(s string) string {
	if !IsHTTPURL(s) {
		return ""
	}
	u, _ := url.Parse(s)
	return u.Scheme + "://" + u.Host
}
