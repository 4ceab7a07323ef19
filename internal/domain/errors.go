package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrParseFailure is the broad category for responses that cannot be resolved
	ErrParseFailure = errors.New("failed to parse response")

	// ErrMalformedResponse indicates a required field such as the discriminator is missing
	ErrMalformedResponse = fmt.Errorf("malformed response: %w", ErrParseFailure)

	// ErrUnknownVariant indicates a discriminator value with no registered variant
	ErrUnknownVariant = fmt.Errorf("unknown variant: %w", ErrParseFailure)

	// ErrTransport indicates the request failed on the network or with a non-2xx status
	ErrTransport = errors.New("tmdb request failed")

	// ErrAuthFailed indicates the API key, token or session was rejected
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotFound indicates the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrSessionNotReady indicates session state was read before initialization finished
	ErrSessionNotReady = errors.New("session is not initialized")

	// ErrInvalidRating indicates a rating value TMDB would reject
	ErrInvalidRating = errors.New("invalid rating")

	// ErrUnknownSortOrder indicates a sort order name that is not registered
	ErrUnknownSortOrder = errors.New("unknown sort order")
)
