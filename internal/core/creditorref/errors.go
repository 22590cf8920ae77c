package creditorref

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Kind is a stable category for programmatic error handling.
// Callers should branch on Kind (or the Err* sentinels), never on Error() text.
type Kind string

const (
	KindInvalidCharacter   Kind = "InvalidCharacter"
	KindInvalidLength      Kind = "InvalidLength"
	KindMissingPrefix      Kind = "MissingPrefix"
	KindInvalidCheckDigits Kind = "InvalidCheckDigits"
	KindChecksumMismatch   Kind = "ChecksumMismatch"
	KindInternal           Kind = "Internal"
)

// Sentinels for errors.Is. Every *Error matches the sentinel of its Kind.
var (
	ErrInvalidCharacter   = errors.New("invalid character")
	ErrInvalidLength      = errors.New("invalid length")
	ErrMissingPrefix      = errors.New("missing RF prefix")
	ErrInvalidCheckDigits = errors.New("invalid check digits")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrInternal           = errors.New("internal error")
)

var sentinels = map[Kind]error{
	KindInvalidCharacter:   ErrInvalidCharacter,
	KindInvalidLength:      ErrInvalidLength,
	KindMissingPrefix:      ErrMissingPrefix,
	KindInvalidCheckDigits: ErrInvalidCheckDigits,
	KindChecksumMismatch:   ErrChecksumMismatch,
	KindInternal:           ErrInternal,
}

// Error is the package's structured error.
//
// Position is the zero-based index into the caller's original input of the
// offending character, or -1 when the error is not tied to one character.
type Error struct {
	Kind     Kind
	Position int
	Input    string
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := string(e.Kind)
	if s, ok := sentinels[e.Kind]; ok {
		msg = s.Error()
	}
	if e.Position >= 0 && e.Position < len(e.Input) {
		r, _ := utf8.DecodeRuneInString(e.Input[e.Position:])
		return fmt.Sprintf("%s %q at position %d in %q", msg, r, e.Position, e.Input)
	}
	return fmt.Sprintf("%s in %q", msg, e.Input)
}

// Is matches the sentinel for the error's Kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	return sentinels[e.Kind] == target
}

func newError(kind Kind, input string) error {
	return &Error{Kind: kind, Position: -1, Input: input}
}

func newCharError(input string, pos int) error {
	return &Error{Kind: KindInvalidCharacter, Position: pos, Input: input}
}

// IsKind reports whether err is (or wraps) an *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// KindOf returns the Kind of a structured error, or "" if err is not one.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}

// IsMalformed reports whether err describes structurally malformed input,
// as opposed to a well-formed reference whose checksum does not hold.
func IsMalformed(err error) bool {
	switch KindOf(err) {
	case KindInvalidCharacter, KindInvalidLength, KindMissingPrefix, KindInvalidCheckDigits:
		return true
	}
	return false
}
