// Package decode resolves polymorphic TMDB payloads into closed tagged unions.
//
// A Resolver is configured once with the discriminator key (usually
// "media_type") and a table mapping each tag to a decode function. Tags are
// matched case-insensitively, so "Movie" and "movie" select the same variant.
package decode

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DecodeFunc decodes the complete raw object into one concrete variant
type DecodeFunc[T any] func(raw json.RawMessage) (T, error)

// Resolver picks a DecodeFunc by reading a discriminator key
type Resolver[T any] struct {
	key   string
	table map[string]DecodeFunc[T]
}

// NewResolver builds a resolver for key. Table tags are normalized to lower case.
func NewResolver[T any](key string, table map[string]DecodeFunc[T]) *Resolver[T] {
	r := &Resolver[T]{
		key:   key,
		table: make(map[string]DecodeFunc[T], len(table)),
	}
	for tag, fn := range table {
		r.table[normalizeTag(tag)] = fn
	}
	return r
}

// Alias registers alias as another name for an existing tag.
// Aliasing an unregistered tag is a programming error and panics.
func (r *Resolver[T]) Alias(alias, tag string) *Resolver[T] {
	fn, ok := r.table[normalizeTag(tag)]
	if !ok {
		panic(fmt.Sprintf("decode: alias %q targets unregistered tag %q", alias, tag))
	}
	r.table[normalizeTag(alias)] = fn
	return r
}

// Resolve reads the discriminator from raw and decodes the matching variant.
// It never returns a partially populated value: on any failure the zero T
// is returned together with a *ParseError.
func (r *Resolver[T]) Resolve(raw json.RawMessage) (T, error) {
	var zero T

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return zero, malformed(r.key, "", fmt.Errorf("not a JSON object: %w", err))
	}

	tagRaw, ok := fields[r.key]
	if !ok || string(tagRaw) == "null" {
		return zero, malformed(r.key, "", errors.New("discriminator missing"))
	}

	var tag string
	if err := json.Unmarshal(tagRaw, &tag); err != nil {
		return zero, malformed(r.key, string(tagRaw), fmt.Errorf("discriminator is not a string: %w", err))
	}

	return r.Decode(tag, raw)
}

// Decode decodes raw as the variant registered for tag, skipping the
// discriminator lookup. Used where the endpoint already fixes the variant.
func (r *Resolver[T]) Decode(tag string, raw json.RawMessage) (T, error) {
	var zero T

	fn, ok := r.table[normalizeTag(tag)]
	if !ok {
		return zero, unknownVariant(r.key, tag)
	}

	v, err := fn(raw)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return zero, err
		}
		return zero, malformed(r.key, tag, err)
	}
	return v, nil
}

// ResolveAll resolves every element and fails on the first bad one.
// The returned *ParseError carries the failing index.
func (r *Resolver[T]) ResolveAll(raws []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		v, err := r.Resolve(raw)
		if err != nil {
			return nil, withIndex(err, i)
		}
		out = append(out, v)
	}
	return out, nil
}

// ResolveEach resolves every element, dropping the ones that fail.
// onError, when non-nil, is called once per dropped element.
func (r *Resolver[T]) ResolveEach(raws []json.RawMessage, onError func(index int, err error)) []T {
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		v, err := r.Resolve(raw)
		if err != nil {
			if onError != nil {
				onError(i, withIndex(err, i))
			}
			continue
		}
		out = append(out, v)
	}
	return out
}

// Into adapts a wire struct W and a conversion into a DecodeFunc
func Into[W any, T any](convert func(W) T) DecodeFunc[T] {
	return func(raw json.RawMessage) (T, error) {
		var w W
		if err := json.Unmarshal(raw, &w); err != nil {
			var zero T
			return zero, err
		}
		return convert(w), nil
	}
}

// IntoE is Into for conversions that can fail
func IntoE[W any, T any](convert func(W) (T, error)) DecodeFunc[T] {
	return func(raw json.RawMessage) (T, error) {
		var w W
		if err := json.Unmarshal(raw, &w); err != nil {
			var zero T
			return zero, err
		}
		return convert(w)
	}
}

func withIndex(err error, index int) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		cp := *pe
		cp.Index = index
		return &cp
	}
	return fmt.Errorf("element %d: %w", index, err)
}

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}
