package tmdb

import (
	"encoding/json"
	"strconv"

	"github.com/mmcdole/marquee/internal/decode"
)

// statusResponse is TMDB's envelope for write results and errors
type statusResponse struct {
	Success       *bool  `json:"success,omitempty"`
	StatusCode    int    `json:"status_code,omitempty"`
	StatusMessage string `json:"status_message,omitempty"`
}

// pagedResponse is the envelope of every paginated endpoint.
// Results stay raw so each element can be resolved on its own.
type pagedResponse struct {
	Page         int               `json:"page"`
	TotalPages   int               `json:"total_pages"`
	TotalResults int               `json:"total_results"`
	Results      []json.RawMessage `json:"results"`
}

// guestSessionResponse is returned by /authentication/guest_session/new
type guestSessionResponse struct {
	Success        bool   `json:"success"`
	GuestSessionID string `json:"guest_session_id"`
	ExpiresAt      string `json:"expires_at"`
}

// movieDTO is a movie as it appears in lists, searches and rated pages
type movieDTO struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int   `json:"genre_ids"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	Adult            bool    `json:"adult"`
	Video            bool    `json:"video"`
	Rating           float64 `json:"rating,omitempty"` // rated pages only
}

// tvDTO is a series as it appears in lists, searches and rated pages
type tvDTO struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	OriginalName     string   `json:"original_name"`
	Overview         string   `json:"overview"`
	FirstAirDate     string   `json:"first_air_date"`
	PosterPath       string   `json:"poster_path"`
	BackdropPath     string   `json:"backdrop_path"`
	OriginalLanguage string   `json:"original_language"`
	OriginCountry    []string `json:"origin_country"`
	GenreIDs         []int    `json:"genre_ids"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	Popularity       float64  `json:"popularity"`
	Rating           float64  `json:"rating,omitempty"` // rated pages only
}

// episodeDTO is an entry of /guest_session/{id}/rated/tv/episodes
type episodeDTO struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	AirDate       string  `json:"air_date"`
	ShowID        int     `json:"show_id"`
	SeasonNumber  int     `json:"season_number"`
	EpisodeNumber int     `json:"episode_number"`
	StillPath     string  `json:"still_path"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Rating        float64 `json:"rating"`
}

// personDTO is a person-shaped search result
type personDTO struct {
	ID                 int               `json:"id"`
	Name               string            `json:"name"`
	ProfilePath        string            `json:"profile_path"`
	KnownForDepartment string            `json:"known_for_department"`
	Popularity         float64           `json:"popularity"`
	Adult              bool              `json:"adult"`
	KnownFor           []json.RawMessage `json:"known_for"`
}

// movieCastDTO and tvCastDTO are entries of /person/{id}/combined_credits cast
type movieCastDTO struct {
	movieDTO
	CreditID  string `json:"credit_id"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

type tvCastDTO struct {
	tvDTO
	CreditID     string `json:"credit_id"`
	Character    string `json:"character"`
	EpisodeCount int    `json:"episode_count"`
}

// movieCrewDTO and tvCrewDTO are entries of /person/{id}/combined_credits crew
type movieCrewDTO struct {
	movieDTO
	CreditID   string `json:"credit_id"`
	Department string `json:"department"`
	Job        string `json:"job"`
}

type tvCrewDTO struct {
	tvDTO
	CreditID     string `json:"credit_id"`
	Department   string `json:"department"`
	Job          string `json:"job"`
	EpisodeCount int    `json:"episode_count"`
}

// personCreditsDTO is /person/{id}/combined_credits
type personCreditsDTO struct {
	ID   int               `json:"id"`
	Cast []json.RawMessage `json:"cast"`
	Crew []json.RawMessage `json:"crew"`
}

// creditsDTO is /movie/{id}/credits and /tv/{id}/credits
type creditsDTO struct {
	ID   int `json:"id"`
	Cast []struct {
		ID          int    `json:"id"`
		CreditID    string `json:"credit_id"`
		Name        string `json:"name"`
		Character   string `json:"character"`
		Order       int    `json:"order"`
		ProfilePath string `json:"profile_path"`
	} `json:"cast"`
	Crew []struct {
		ID          int    `json:"id"`
		CreditID    string `json:"credit_id"`
		Name        string `json:"name"`
		Department  string `json:"department"`
		Job         string `json:"job"`
		ProfilePath string `json:"profile_path"`
	} `json:"crew"`
}

// accountStatesDTO is /movie/{id}/account_states and /tv/{id}/account_states
type accountStatesDTO struct {
	ID        int               `json:"id"`
	Favorite  bool              `json:"favorite"`
	Watchlist bool              `json:"watchlist"`
	Rated     decode.RatedField `json:"rated"`
}

// seasonAccountStatesDTO is /tv/{id}/season/{n}/account_states
type seasonAccountStatesDTO struct {
	ID      int `json:"id"`
	Results []struct {
		ID            int               `json:"id"`
		EpisodeNumber int               `json:"episode_number"`
		Rated         decode.RatedField `json:"rated"`
	} `json:"results"`
}

// listDTO is /list/{id}
type listDTO struct {
	ID          flexibleID        `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	CreatedBy   string            `json:"created_by"`
	ItemCount   int               `json:"item_count"`
	PosterPath  string            `json:"poster_path"`
	Public      bool              `json:"public"`
	SortBy      string            `json:"sort_by"`
	Items       []json.RawMessage `json:"items"`
}

// ratingRequest is the body of POST .../rating
type ratingRequest struct {
	Value float64 `json:"value"`
}

// flexibleID accepts list ids sent either as strings or as numbers
type flexibleID string

// UnmarshalJSON implements custom unmarshaling for flexibleID
func (f *flexibleID) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}
