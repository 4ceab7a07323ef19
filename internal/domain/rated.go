package domain

import (
	"fmt"
	"math"
)

// NoRating is the rating reported for items the user has not rated
const NoRating = -1.0

// Rating bounds accepted by TMDB
const (
	MinRating  = 0.5
	MaxRating  = 10.0
	RatingStep = 0.5
)

// ValidateRating checks that value is within 0.5..10 and a multiple of 0.5
func ValidateRating(value float64) error {
	if math.IsNaN(value) || value < MinRating || value > MaxRating {
		return fmt.Errorf("%w: %.1f is outside %.1f-%.1f", ErrInvalidRating, value, MinRating, MaxRating)
	}
	if math.Mod(value, RatingStep) != 0 {
		return fmt.Errorf("%w: %.2f is not a multiple of %.1f", ErrInvalidRating, value, RatingStep)
	}
	return nil
}

// RatedCommon holds the fields shared by every rated title or episode
type RatedCommon struct {
	ID           int
	Name         string // title for movies, name for series and episodes
	Overview     string
	VoteAverage  float64
	VoteCount    int
	Rating       float64 // the user's own rating
	ReleaseDate  string  // release_date, first_air_date or air_date
	PosterPath   string
	BackdropPath string // still_path for episodes
	GenreIDs     []int
}

// MovieExtra is the movie-only payload of a RatedMedia
type MovieExtra struct {
	OriginalTitle string
	Adult         bool
	Video         bool
}

// SeriesExtra is the series-only payload of a RatedMedia
type SeriesExtra struct {
	OriginalName  string
	OriginCountry []string
}

// EpisodeExtra is the episode-only payload of a RatedMedia
type EpisodeExtra struct {
	ShowID        int
	SeasonNumber  int
	EpisodeNumber int
}

// RatedMedia is one rated movie, series or episode.
// Exactly the payload matching Kind is non-nil.
type RatedMedia struct {
	Kind MediaType // movie, tv or episode
	RatedCommon
	Movie   *MovieExtra
	Series  *SeriesExtra
	Episode *EpisodeExtra
}

// NewRatedMovie builds a movie RatedMedia
func NewRatedMovie(common RatedCommon, extra MovieExtra) RatedMedia {
	return RatedMedia{Kind: MediaTypeMovie, RatedCommon: common, Movie: &extra}
}

// NewRatedSeries builds a series RatedMedia
func NewRatedSeries(common RatedCommon, extra SeriesExtra) RatedMedia {
	return RatedMedia{Kind: MediaTypeTV, RatedCommon: common, Series: &extra}
}

// NewRatedEpisode builds an episode RatedMedia
func NewRatedEpisode(common RatedCommon, extra EpisodeExtra) RatedMedia {
	return RatedMedia{Kind: MediaTypeEpisode, RatedCommon: common, Episode: &extra}
}

// EpisodeCode returns the formatted episode code (e.g., "S01E05")
func (r RatedMedia) EpisodeCode() string {
	if r.Episode == nil {
		return ""
	}
	return fmt.Sprintf("S%02dE%02d", r.Episode.SeasonNumber, r.Episode.EpisodeNumber)
}

func (r RatedMedia) SortTitle() string   { return r.Name }
func (r RatedMedia) SortRating() float64 { return r.VoteAverage }
func (r RatedMedia) SortDate() string    { return r.ReleaseDate }

// RatedStatus is the decoded form of TMDB's "rated" field, which is either
// false or an object carrying the rating value
type RatedStatus struct {
	IsRated bool
	Rating  float64
}

// NotRated is the status of an item without a user rating
var NotRated = RatedStatus{IsRated: false, Rating: NoRating}

// AccountStates is the user's relationship with a single movie or series
type AccountStates struct {
	ID        int
	Favorite  bool
	Watchlist bool
	Rated     RatedStatus
}

// EpisodeAccountState is the rated state of one episode within a season
type EpisodeAccountState struct {
	ID            int
	EpisodeNumber int
	Rated         RatedStatus
}

// SeasonAccountStates holds the rated state of every episode in a season
type SeasonAccountStates struct {
	ID      int
	Results []EpisodeAccountState
}

// RatingTarget identifies something that can be rated
type RatingTarget struct {
	Kind          MediaType // movie, tv or episode
	ID            int       // movie or series id
	SeasonNumber  int       // episode only
	EpisodeNumber int       // episode only
}

// Validate checks that the target names a rateable kind
func (t RatingTarget) Validate() error {
	switch t.Kind {
	case MediaTypeMovie, MediaTypeTV:
	case MediaTypeEpisode:
		if t.SeasonNumber < 0 || t.EpisodeNumber <= 0 {
			return fmt.Errorf("invalid episode target S%02dE%02d", t.SeasonNumber, t.EpisodeNumber)
		}
	default:
		return fmt.Errorf("%w: cannot rate %q", ErrUnknownVariant, t.Kind)
	}
	if t.ID <= 0 {
		return fmt.Errorf("invalid target id %d", t.ID)
	}
	return nil
}
