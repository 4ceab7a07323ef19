package domain

// Preferences is the key-value store for session identifiers and display settings.
// Getters report false when the key has never been written.
type Preferences interface {
	// === Session identifiers ===
	GuestSessionID() (string, bool)
	SetGuestSessionID(id string) error

	AuthorizedSessionID() (string, bool)
	SetAuthorizedSessionID(id string) error

	// ClearSessions removes both session identifiers
	ClearSessions() error

	// === Display settings ===
	DefaultSortOrder() SortOrder
	SetDefaultSortOrder(order SortOrder) error

	IncludeAdult() bool
	SetIncludeAdult(include bool) error

	Close() error
}
