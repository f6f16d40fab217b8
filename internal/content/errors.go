// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "errors"

var (
	// ErrUnknownKind is returned when creating a block of an unsupported kind.
	ErrUnknownKind = errors.New("unknown block kind")

	// ErrIndexOutOfRange is returned by editor operations addressing a missing block.
	ErrIndexOutOfRange = errors.New("block index out of range")

	// ErrFieldNotApplicable is returned when a patch sets a field the block kind does not have.
	ErrFieldNotApplicable = errors.New("field not applicable to block kind")

	// ErrInvalidDirection is returned for a move direction other than up or down.
	ErrInvalidDirection = errors.New("invalid move direction")

	// ErrUnknownOp is returned by Apply for an unsupported operation name.
	ErrUnknownOp = errors.New("unknown editor operation")

	// ErrMalformedDocument is returned when persisted content is not a JSON array.
	ErrMalformedDocument = errors.New("malformed content document")
)
