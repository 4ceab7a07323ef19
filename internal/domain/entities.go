package domain

import (
	"fmt"
	"strings"
)

// MediaType is the discriminator TMDB uses in "media_type" fields
type MediaType string

const (
	MediaTypeMovie   MediaType = "movie"
	MediaTypeTV      MediaType = "tv"
	MediaTypePerson  MediaType = "person"
	MediaTypeEpisode MediaType = "episode"
	MediaTypeList    MediaType = "list"
)

// ParseMediaType matches a discriminator value case-insensitively ("Movie" == "movie")
func ParseMediaType(s string) (MediaType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie":
		return MediaTypeMovie, nil
	case "tv":
		return MediaTypeTV, nil
	case "person":
		return MediaTypePerson, nil
	case "episode":
		return MediaTypeEpisode, nil
	case "list":
		return MediaTypeList, nil
	default:
		return "", fmt.Errorf("%w: media type %q", ErrUnknownVariant, s)
	}
}

// String returns the display name of the media type
func (t MediaType) String() string {
	switch t {
	case MediaTypeMovie:
		return "Movie"
	case MediaTypeTV:
		return "TV"
	case MediaTypePerson:
		return "Person"
	case MediaTypeEpisode:
		return "Episode"
	case MediaTypeList:
		return "List"
	default:
		return "Unknown"
	}
}

// MediaCommon holds the fields every movie/tv shaped payload carries
type MediaCommon struct {
	ID               int
	Overview         string
	PosterPath       string
	BackdropPath     string
	VoteAverage      float64
	VoteCount        int
	Popularity       float64
	GenreIDs         []int
	OriginalLanguage string
}

// MovieFields are only present on movie variants
type MovieFields struct {
	Title         string
	OriginalTitle string
	ReleaseDate   string // YYYY-MM-DD
	Adult         bool
	Video         bool
}

// TVFields are only present on tv variants
type TVFields struct {
	Name          string
	OriginalName  string
	FirstAirDate  string // YYYY-MM-DD
	OriginCountry []string
}

// ListItem is a movie or tv entry inside a list, search page or credit.
// Kind decides which of Movie/TV is set; the other is always nil.
type ListItem struct {
	Kind MediaType
	MediaCommon
	Movie *MovieFields
	TV    *TVFields
}

// NewMovieItem builds a movie-shaped ListItem
func NewMovieItem(common MediaCommon, movie MovieFields) ListItem {
	return ListItem{Kind: MediaTypeMovie, MediaCommon: common, Movie: &movie}
}

// NewTVItem builds a tv-shaped ListItem
func NewTVItem(common MediaCommon, tv TVFields) ListItem {
	return ListItem{Kind: MediaTypeTV, MediaCommon: common, TV: &tv}
}

// Title returns the movie title or the series name
func (i ListItem) Title() string {
	switch {
	case i.Movie != nil:
		return i.Movie.Title
	case i.TV != nil:
		return i.TV.Name
	default:
		return ""
	}
}

// ReleaseDate returns the release date for movies and the first air date for tv
func (i ListItem) ReleaseDate() string {
	switch {
	case i.Movie != nil:
		return i.Movie.ReleaseDate
	case i.TV != nil:
		return i.TV.FirstAirDate
	default:
		return ""
	}
}

// Year returns the leading year of ReleaseDate, or "" when unknown
func (i ListItem) Year() string {
	d := i.ReleaseDate()
	if len(d) < 4 {
		return ""
	}
	return d[:4]
}

func (i ListItem) SortTitle() string   { return i.Title() }
func (i ListItem) SortRating() float64 { return i.VoteAverage }
func (i ListItem) SortDate() string    { return i.ReleaseDate() }

// Validate checks that the variant payload matches Kind
func (i ListItem) Validate() error {
	switch i.Kind {
	case MediaTypeMovie:
		if i.Movie == nil || i.TV != nil {
			return fmt.Errorf("%w: movie item %d has mismatched payload", ErrMalformedResponse, i.ID)
		}
	case MediaTypeTV:
		if i.TV == nil || i.Movie != nil {
			return fmt.Errorf("%w: tv item %d has mismatched payload", ErrMalformedResponse, i.ID)
		}
	default:
		return fmt.Errorf("%w: list item kind %q", ErrUnknownVariant, i.Kind)
	}
	return nil
}

// Person is a person-shaped search result
type Person struct {
	ID                 int
	Name               string
	ProfilePath        string
	KnownForDepartment string
	Popularity         float64
	Adult              bool
	KnownFor           []ListItem
}

// SearchResult is one entry of a multi search: a movie, a series or a person
type SearchResult struct {
	Kind   MediaType
	Media  *ListItem // movie or tv
	Person *Person
}

// Title returns the display title regardless of variant
func (r SearchResult) Title() string {
	if r.Person != nil {
		return r.Person.Name
	}
	if r.Media != nil {
		return r.Media.Title()
	}
	return ""
}

// ID returns the TMDB id of the underlying entity
func (r SearchResult) ID() int {
	if r.Person != nil {
		return r.Person.ID
	}
	if r.Media != nil {
		return r.Media.ID
	}
	return 0
}

// Popularity returns the popularity score of the underlying entity
func (r SearchResult) Popularity() float64 {
	if r.Person != nil {
		return r.Person.Popularity
	}
	if r.Media != nil {
		return r.Media.Popularity
	}
	return 0
}

// SearchPage is one page of search results
type SearchPage struct {
	Page         int
	TotalPages   int
	TotalResults int
	Results      []SearchResult
}

// CastCredit is a person's acting credit on a movie or series
type CastCredit struct {
	CreditID     string
	Character    string
	Order        int
	EpisodeCount int // tv only
	Media        ListItem
}

// CrewCredit is a person's crew credit on a movie or series
type CrewCredit struct {
	CreditID     string
	Department   string
	Job          string
	EpisodeCount int // tv only
	Media        ListItem
}

// PersonCredits is the combined cast and crew history of a person
type PersonCredits struct {
	ID   int
	Cast []CastCredit
	Crew []CrewCredit
}

// CastMember is a cast entry on a movie or series credits page
type CastMember struct {
	ID          int
	CreditID    string
	Name        string
	Character   string
	Order       int
	ProfilePath string
}

// CrewMember is a crew entry on a movie or series credits page
type CrewMember struct {
	ID          int
	CreditID    string
	Name        string
	Department  string
	Job         string
	ProfilePath string
}

// Credits is the cast and crew of a single movie or series
type Credits struct {
	ID   int
	Cast []CastMember
	Crew []CrewMember
}

// Director returns the first crew member credited as Director, if any
func (c Credits) Director() (CrewMember, bool) {
	for _, m := range c.Crew {
		if m.Job == "Director" {
			return m, true
		}
	}
	return CrewMember{}, false
}
