// Package common defines sentinel errors and small helpers shared by every
// GreenKeeper layer. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Persistence errors. ErrDecode means persisted bytes exist but do not
	// conform to the profile schema.
	ErrDecode = errors.New("decode error")
	ErrEncode = errors.New("encode error")
	ErrRead   = errors.New("read error")
	ErrWrite  = errors.New("write error")

	// Caller supplied an unrecognized enum member or a malformed identifier.
	ErrInvalidValue = errors.New("invalid value")
)
