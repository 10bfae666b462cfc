package decode

import "errors"

// Fatal error classes. Every one of these means either a decoder/provider
// version mismatch or a malformed foreign module; conversion aborts with no
// partial output. Catalog misses on individual attributes are NOT errors —
// they degrade to the Unknown variants.
var (
	// ErrCatalogBuild reports that the foreign library did not recognize a
	// symbolic attribute name at catalog-construction time.
	ErrCatalogBuild = errors.New("attribute catalog build failed")

	// ErrUnresolvedName reports a block or value handle missing from the
	// naming pass's map during the detailed pass.
	ErrUnresolvedName = errors.New("name not registered by naming pass")

	// ErrOperandCount reports an operand count outside the bounds a decode
	// rule expects.
	ErrOperandCount = errors.New("unexpected operand count")

	// ErrUnknownOpcode reports an opcode with no decode rule.
	ErrUnknownOpcode = errors.New("no decode rule for opcode")

	// ErrMalformed reports any other structural inconsistency in the
	// foreign module.
	ErrMalformed = errors.New("malformed foreign module")
)
