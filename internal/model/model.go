// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the guild portal's domain types: players, blog
// posts, admin identity and audit entries, plus the fixed vocabularies the
// registration form and the blog use.
package model

import "encoding/json"

// Option is a selectable value with its display label.
type Option struct {
	Value string
	Label string
}

// Values returns the option values in order.
func Values(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// ValidOption reports whether v is the empty value or one of opts.
func ValidOption(opts []Option, v string) bool {
	if v == "" {
		return true
	}
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// ParseStringList decodes a JSON array of strings. Invalid input gives an
// empty list.
func ParseStringList(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// StringListToJSON encodes a list of strings as a JSON array.
func StringListToJSON(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(b)
}
