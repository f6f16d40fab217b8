// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// wireBlock is the persisted layout of a single block.
type wireBlock struct {
	Type     Kind   `json:"type"`
	Content  string `json:"content"`
	FontSize string `json:"fontSize,omitempty"`
	Color    string `json:"color,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Encode serializes a document into its persisted JSON array form.
// A nil document encodes as JSON null.
func Encode(doc Document) ([]byte, error) {
	if doc == nil {
		return []byte("null"), nil
	}

	wire := make([]wireBlock, 0, len(doc))
	for _, b := range doc {
		switch v := b.(type) {
		case TextBlock:
			wire = append(wire, wireBlock{Type: KindText, Content: v.Text, FontSize: v.FontSize, Color: v.Color})
		case HeadingBlock:
			wire = append(wire, wireBlock{Type: KindHeading, Content: v.Text, Color: v.Color})
		case ImageBlock:
			wire = append(wire, wireBlock{Type: KindImage, Content: v.Alt, URL: v.URL})
		default:
			return nil, fmt.Errorf("encoding block of type %T: %w", b, ErrUnknownKind)
		}
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

// Decode parses a persisted document.
//
// Empty input and JSON null yield a nil (absent) document. Input that is
// not a JSON array returns ErrMalformedDocument. Individual blocks never
// fail: the discriminator may be "type" or "kind", the text "content" or
// "text", the image URL "url" or "imageUrl". A missing or unrecognized
// kind decodes as a TextBlock, and non-string field values are treated
// as empty.
func Decode(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	doc := make(Document, 0, len(items))
	for _, raw := range items {
		doc = append(doc, decodeBlock(raw))
	}
	return doc, nil
}

func decodeBlock(raw json.RawMessage) Block {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return TextBlock{}
	}

	kind := Kind(strings.ToLower(strings.TrimSpace(stringField(fields, "type", "kind"))))
	text := stringField(fields, "content", "text")

	switch kind {
	case KindHeading:
		return HeadingBlock{Text: text, Color: stringField(fields, "color")}
	case KindImage:
		return ImageBlock{URL: stringField(fields, "url", "imageUrl"), Alt: text}
	default:
		// Unknown and missing kinds degrade to text.
		return TextBlock{
			Text:     text,
			FontSize: stringField(fields, "fontSize"),
			Color:    stringField(fields, "color"),
		}
	}
}

// stringField returns the first key holding a JSON string.
func stringField(fields map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return ""
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	return Encode(d)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := Decode(data)
	if err != nil {
		return err
	}
	*d = doc
	return nil
}

// NullString encodes a document for a nullable text column.
func NullString(doc Document) (sql.NullString, error) {
	if doc == nil {
		return sql.NullString{}, nil
	}
	data, err := Encode(doc)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// FromNullString decodes a document read from a nullable text column.
func FromNullString(ns sql.NullString) (Document, error) {
	if !ns.Valid {
		return nil, nil
	}
	return Decode([]byte(ns.String))
}
