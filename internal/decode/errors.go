package decode

import (
	"fmt"

	"github.com/mmcdole/marquee/internal/domain"
)

// Kind distinguishes why a payload could not be resolved
type Kind int

const (
	// KindMalformed means the discriminator (or the payload itself) is missing or unreadable
	KindMalformed Kind = iota

	// KindUnknownVariant means the discriminator value has no registered decoder
	KindUnknownVariant
)

// String returns a human-readable representation of the kind
func (k Kind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindUnknownVariant:
		return "unknown variant"
	default:
		return "unknown"
	}
}

// ParseError describes a failed variant resolution.
// It matches domain.ErrParseFailure and, depending on Kind,
// domain.ErrMalformedResponse or domain.ErrUnknownVariant.
type ParseError struct {
	Kind  Kind
	Key   string // discriminator key, e.g. "media_type"
	Value string // discriminator value when one was read
	Index int    // position within a slice, -1 when not applicable
	Err   error  // underlying cause, may be nil
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("resolve %q: %s", e.Key, e.Kind)
	if e.Value != "" {
		msg += fmt.Sprintf(" (value %q)", e.Value)
	}
	if e.Index >= 0 {
		msg += fmt.Sprintf(" at index %d", e.Index)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause to errors.Is/As
func (e *ParseError) Unwrap() []error {
	sentinel := domain.ErrMalformedResponse
	if e.Kind == KindUnknownVariant {
		sentinel = domain.ErrUnknownVariant
	}
	if e.Err == nil {
		return []error{sentinel}
	}
	return []error{sentinel, e.Err}
}

func malformed(key, value string, err error) *ParseError {
	return &ParseError{Kind: KindMalformed, Key: key, Value: value, Index: -1, Err: err}
}

func unknownVariant(key, value string) *ParseError {
	return &ParseError{Kind: KindUnknownVariant, Key: key, Value: value, Index: -1}
}
