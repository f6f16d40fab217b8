// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "fmt"

// OpName names an editor operation.
type OpName string

// Editor operations.
const (
	OpAdd    OpName = "add"
	OpUpdate OpName = "update"
	OpRemove OpName = "remove"
	OpMove   OpName = "move"
)

// Op is a serialized editor operation as sent by the admin editor.
type Op struct {
	Name      OpName    `json:"op"`
	Kind      Kind      `json:"kind,omitempty"`
	Index     int       `json:"index"`
	Direction Direction `json:"direction,omitempty"`
	Patch     Patch     `json:"patch"`
}

// Result is the outcome of Apply.
type Result struct {
	Document Document `json:"document"`
	// Active is the index of the block the editor should focus, or -1.
	Active int `json:"active"`
	// Changed is false when the operation was a boundary no-op.
	Changed bool `json:"changed"`
}

// Apply runs op against doc. On error the returned result holds doc unchanged.
func Apply(doc Document, op Op) (Result, error) {
	unchanged := Result{Document: doc, Active: -1}

	switch op.Name {
	case OpAdd:
		out, idx, err := AddBlock(doc, op.Kind)
		if err != nil {
			return unchanged, err
		}
		return Result{Document: out, Active: idx, Changed: true}, nil

	case OpUpdate:
		out, err := UpdateBlock(doc, op.Index, op.Patch)
		if err != nil {
			return unchanged, err
		}
		return Result{Document: out, Active: op.Index, Changed: !op.Patch.IsZero()}, nil

	case OpRemove:
		out, err := RemoveBlock(doc, op.Index)
		if err != nil {
			return unchanged, err
		}
		return Result{Document: out, Active: -1, Changed: true}, nil

	case OpMove:
		dir, err := ParseDirection(string(op.Direction))
		if err != nil {
			return unchanged, err
		}
		out, moved, err := MoveBlock(doc, op.Index, dir)
		if err != nil {
			return unchanged, err
		}
		active := op.Index
		if moved {
			if dir == Up {
				active--
			} else {
				active++
			}
		}
		return Result{Document: out, Active: active, Changed: moved}, nil
	}

	return unchanged, fmt.Errorf("%w: %q", ErrUnknownOp, op.Name)
}
