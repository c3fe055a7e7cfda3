package keymap

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyItem is returned when parsing an empty item string.
	ErrEmptyItem = errors.New("keymap: empty item")

	// ErrInvalidItem is returned for a malformed item string.
	ErrInvalidItem = errors.New("keymap: invalid item")

	// ErrUnknownKeymap is returned when a key-map name is not registered.
	ErrUnknownKeymap = errors.New("keymap: unknown key-map")

	// ErrUnknownFormat is returned when a file extension has no codec.
	ErrUnknownFormat = errors.New("keymap: unknown file format")
)

// ParseError describes a failure to parse an item string or key-map file.
type ParseError struct {
	// Source is the item string or file path.
	Source string
	// Token is the offending token, if known.
	Token   string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("parse error in %q at %q: %s", e.Source, e.Token, e.Message)
	}
	return fmt.Sprintf("parse error in %q: %s", e.Source, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
