package domain

import "context"

// SessionAPI is the part of the TMDB client the session store depends on
type SessionAPI interface {
	// CreateGuestSession requests a new guest session and returns its id
	CreateGuestSession(ctx context.Context) (string, error)

	// RatedMovies returns every movie rated in the guest session
	RatedMovies(ctx context.Context, guestSessionID string) ([]RatedMedia, error)

	// RatedTVShows returns every series rated in the guest session
	RatedTVShows(ctx context.Context, guestSessionID string) ([]RatedMedia, error)

	// RatedTVEpisodes returns every episode rated in the guest session
	RatedTVEpisodes(ctx context.Context, guestSessionID string) ([]RatedMedia, error)
}

// SearchAPI provides multi search and trending feeds
type SearchAPI interface {
	SearchMulti(ctx context.Context, query string, page int) (SearchPage, error)
	Trending(ctx context.Context, window string) ([]SearchResult, error)
}

// ListAPI provides access to curated lists
type ListAPI interface {
	List(ctx context.Context, listID string) (*MediaList, error)
}

// CreditsAPI provides cast and crew lookups
type CreditsAPI interface {
	MovieCredits(ctx context.Context, movieID int) (*Credits, error)
	TVCredits(ctx context.Context, tvID int) (*Credits, error)
	PersonCredits(ctx context.Context, personID int) (*PersonCredits, error)
}

// AccountAPI provides per-session account states and rating actions
type AccountAPI interface {
	MovieAccountStates(ctx context.Context, movieID int, sessionID string) (*AccountStates, error)
	TVAccountStates(ctx context.Context, tvID int, sessionID string) (*AccountStates, error)
	SeasonAccountStates(ctx context.Context, tvID, season int, sessionID string) (*SeasonAccountStates, error)

	Rate(ctx context.Context, target RatingTarget, sessionID string, value float64) error
	DeleteRating(ctx context.Context, target RatingTarget, sessionID string) error
}

// MediaAPI combines every read and write operation the media service uses
type MediaAPI interface {
	SearchAPI
	ListAPI
	CreditsAPI
	AccountAPI
}
