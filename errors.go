package xj

import (
	"errors"

	xjerrors "github.com/soldang/go-xj/errors"
)

// SyntaxError is the structured parse error returned when input does not
// match the restricted grammar. It is an alias for the type in the
// go-xj/errors package so callers can match it with errors.As against
// either import path.
type SyntaxError = xjerrors.SyntaxError

// ErrEmptyInput is returned when the input is empty or whitespace only.
// No conversion is attempted.
var ErrEmptyInput = errors.New("xj: empty input")

// ErrUnknownFormat is returned when the input's leading character matches
// neither supported format marker.
var ErrUnknownFormat = errors.New("xj: cannot detect input format")
