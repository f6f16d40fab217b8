// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "fmt"

// Direction is the direction of a block move.
type Direction string

// Move directions.
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection converts a string into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Up, Down:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Patch names the fields to replace on a block. Nil fields are left unchanged.
type Patch struct {
	Text     *string `json:"text,omitempty"`
	FontSize *string `json:"fontSize,omitempty"`
	Color    *string `json:"color,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// IsZero reports whether the patch names no fields.
func (p Patch) IsZero() bool {
	return p.Text == nil && p.FontSize == nil && p.Color == nil && p.ImageURL == nil
}

// AddBlock appends a new block of the given kind with editor defaults and
// returns the new document along with the index of the added block.
func AddBlock(doc Document, kind Kind) (Document, int, error) {
	b, err := NewBlock(kind)
	if err != nil {
		return doc, -1, err
	}
	out := make(Document, len(doc), len(doc)+1)
	copy(out, doc)
	out = append(out, b)
	return out, len(out) - 1, nil
}

// UpdateBlock replaces the patched fields of the block at index.
// Text applies to every kind (alt text for images); FontSize only to text
// blocks; Color to text and heading blocks; ImageURL only to image blocks.
func UpdateBlock(doc Document, index int, p Patch) (Document, error) {
	if !inRange(doc, index) {
		return doc, outOfRange(index, len(doc))
	}

	updated, err := applyPatch(doc[index], p)
	if err != nil {
		return doc, fmt.Errorf("updating block %d: %w", index, err)
	}

	out := doc.Clone()
	out[index] = updated
	return out, nil
}

func applyPatch(b Block, p Patch) (Block, error) {
	switch v := b.(type) {
	case TextBlock:
		if p.ImageURL != nil {
			return nil, fieldErr("imageUrl", KindText)
		}
		setIf(&v.Text, p.Text)
		setIf(&v.FontSize, p.FontSize)
		setIf(&v.Color, p.Color)
		return v, nil
	case HeadingBlock:
		if p.FontSize != nil {
			return nil, fieldErr("fontSize", KindHeading)
		}
		if p.ImageURL != nil {
			return nil, fieldErr("imageUrl", KindHeading)
		}
		setIf(&v.Text, p.Text)
		setIf(&v.Color, p.Color)
		return v, nil
	case ImageBlock:
		if p.FontSize != nil {
			return nil, fieldErr("fontSize", KindImage)
		}
		if p.Color != nil {
			return nil, fieldErr("color", KindImage)
		}
		setIf(&v.Alt, p.Text)
		setIf(&v.URL, p.ImageURL)
		return v, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnknownKind, b)
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func fieldErr(field string, kind Kind) error {
	return fmt.Errorf("%w: %s on %s block", ErrFieldNotApplicable, field, kind)
}

// RemoveBlock removes the block at index; following blocks shift down.
// Removing the only block yields an empty document, never an absent one,
// so a document that went through the editor encodes as [] rather than null.
func RemoveBlock(doc Document, index int) (Document, error) {
	if !inRange(doc, index) {
		return doc, outOfRange(index, len(doc))
	}
	out := make(Document, 0, len(doc)-1)
	out = append(out, doc[:index]...)
	out = append(out, doc[index+1:]...)
	return out, nil
}

// MoveBlock swaps the block at index with its neighbour in the given
// direction. Moving the first block up or the last block down returns the
// document unchanged with moved set to false.
func MoveBlock(doc Document, index int, dir Direction) (Document, bool, error) {
	if !inRange(doc, index) {
		return doc, false, outOfRange(index, len(doc))
	}

	var target int
	switch dir {
	case Up:
		target = index - 1
	case Down:
		target = index + 1
	default:
		return doc, false, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}

	if !inRange(doc, target) {
		return doc, false, nil
	}

	out := doc.Clone()
	out[index], out[target] = out[target], out[index]
	return out, true, nil
}

func inRange(doc Document, index int) bool {
	return index >= 0 && index < len(doc)
}

func outOfRange(index, length int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, length)
}
