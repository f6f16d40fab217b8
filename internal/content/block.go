// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content implements the block-based rich content format used by
// blog posts: the document model, its persisted JSON shape, the HTML
// renderer and the structural editor operations.
package content

import "fmt"

// Kind identifies the type of a content block.
type Kind string

// Block kinds.
const (
	KindText    Kind = "text"
	KindHeading Kind = "heading"
	KindImage   Kind = "image"
)

// Default style values.
const (
	// DefaultFontSize is assigned to new text blocks by the editor.
	DefaultFontSize = "16px"
	// RenderFontSize is used by the renderer when a text block has no font size.
	RenderFontSize = "1rem"
	// DefaultColor is used for text and heading blocks without a color.
	DefaultColor = "#fef3c7"
)

// Kinds lists every supported block kind in editor menu order.
var Kinds = []Kind{KindText, KindHeading, KindImage}

// ParseKind converts a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindText, KindHeading, KindImage:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Label returns the editor label for the kind.
func (k Kind) Label() string {
	switch k {
	case KindHeading:
		return "Título"
	case KindImage:
		return "Imagem"
	default:
		return "Texto"
	}
}

// Block is one unit of rich content. The set of implementations is closed:
// TextBlock, HeadingBlock and ImageBlock.
type Block interface {
	Kind() Kind
	// BlockText returns the block's text payload (alt text for images).
	BlockText() string
	sealed()
}

// TextBlock is a styled paragraph.
type TextBlock struct {
	Text     string
	FontSize string // empty means RenderFontSize
	Color    string // empty means DefaultColor
}

// HeadingBlock is a section heading.
type HeadingBlock struct {
	Text  string
	Color string // empty means DefaultColor
}

// ImageBlock is an image referenced by URL.
type ImageBlock struct {
	URL string
	Alt string
}

func (TextBlock) Kind() Kind    { return KindText }
func (HeadingBlock) Kind() Kind { return KindHeading }
func (ImageBlock) Kind() Kind   { return KindImage }

func (b TextBlock) BlockText() string    { return b.Text }
func (b HeadingBlock) BlockText() string { return b.Text }
func (b ImageBlock) BlockText() string   { return b.Alt }

func (TextBlock) sealed()    {}
func (HeadingBlock) sealed() {}
func (ImageBlock) sealed()   {}

// NewBlock returns a block of the given kind populated with editor defaults.
func NewBlock(kind Kind) (Block, error) {
	switch kind {
	case KindText:
		return TextBlock{FontSize: DefaultFontSize, Color: DefaultColor}, nil
	case KindHeading:
		return HeadingBlock{Color: DefaultColor}, nil
	case KindImage:
		return ImageBlock{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Document is an ordered sequence of blocks. Order is rendering order.
// A nil Document means the post has no rich content at all.
type Document []Block

// IsAbsent reports whether the document is nil.
func (d Document) IsAbsent() bool {
	return d == nil
}

// IsEmpty reports whether there is nothing to render.
func (d Document) IsEmpty() bool {
	return len(d) == 0
}

// Clone returns a shallow copy. Blocks are values, so the copy is independent.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	copy(out, d)
	return out
}
