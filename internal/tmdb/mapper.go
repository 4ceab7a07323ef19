package tmdb

import (
	"fmt"

	"github.com/mmcdole/marquee/internal/decode"
	"github.com/mmcdole/marquee/internal/domain"
)

// discriminatorKey is the field TMDB uses to tag polymorphic entries
const discriminatorKey = "media_type"

// Resolvers for every polymorphic shape the client reads. Each is a small,
// closed table from media_type to a decode function.
var (
	listItemResolver   = newMediaResolver()
	knownForResolver   = newMediaResolver()
	castCreditResolver = decode.NewResolver(discriminatorKey, map[string]decode.DecodeFunc[domain.CastCredit]{
		"movie": decode.Into(mapMovieCast),
		"tv":    decode.Into(mapTVCast),
	})
	crewCreditResolver = decode.NewResolver(discriminatorKey, map[string]decode.DecodeFunc[domain.CrewCredit]{
		"movie": decode.Into(mapMovieCrew),
		"tv":    decode.Into(mapTVCrew),
	})
	// Rated pages carry no media_type; the endpoint picks the tag via Decode.
	ratedResolver = decode.NewResolver(discriminatorKey, map[string]decode.DecodeFunc[domain.RatedMedia]{
		"movie":   decode.Into(mapRatedMovie),
		"tv":      decode.Into(mapRatedSeries),
		"episode": decode.Into(mapRatedEpisode),
	}).Alias("series", "tv")
)

func newMediaResolver() *decode.Resolver[domain.ListItem] {
	return decode.NewResolver(discriminatorKey, map[string]decode.DecodeFunc[domain.ListItem]{
		"movie": decode.Into(mapMovieItem),
		"tv":    decode.Into(mapTVItem),
	})
}

// newSearchResolver builds the multi-search resolver. People are decoded
// with mapPerson so known_for follows the client's decoding policy.
func newSearchResolver(mapPerson func(personDTO) (domain.Person, error)) *decode.Resolver[domain.SearchResult] {
	return decode.NewResolver(discriminatorKey, map[string]decode.DecodeFunc[domain.SearchResult]{
		"movie": decode.Into(func(m movieDTO) domain.SearchResult {
			item := mapMovieItem(m)
			return domain.SearchResult{Kind: domain.MediaTypeMovie, Media: &item}
		}),
		"tv": decode.Into(func(t tvDTO) domain.SearchResult {
			item := mapTVItem(t)
			return domain.SearchResult{Kind: domain.MediaTypeTV, Media: &item}
		}),
		"person": decode.IntoE(func(p personDTO) (domain.SearchResult, error) {
			person, err := mapPerson(p)
			if err != nil {
				return domain.SearchResult{}, err
			}
			return domain.SearchResult{Kind: domain.MediaTypePerson, Person: &person}, nil
		}),
	})
}

// === Movie / TV ===

func mapMovieCommon(m movieDTO) domain.MediaCommon {
	return domain.MediaCommon{
		ID:               m.ID,
		Overview:         m.Overview,
		PosterPath:       m.PosterPath,
		BackdropPath:     m.BackdropPath,
		VoteAverage:      m.VoteAverage,
		VoteCount:        m.VoteCount,
		Popularity:       m.Popularity,
		GenreIDs:         m.GenreIDs,
		OriginalLanguage: m.OriginalLanguage,
	}
}

func mapTVCommon(t tvDTO) domain.MediaCommon {
	return domain.MediaCommon{
		ID:               t.ID,
		Overview:         t.Overview,
		PosterPath:       t.PosterPath,
		BackdropPath:     t.BackdropPath,
		VoteAverage:      t.VoteAverage,
		VoteCount:        t.VoteCount,
		Popularity:       t.Popularity,
		GenreIDs:         t.GenreIDs,
		OriginalLanguage: t.OriginalLanguage,
	}
}

func mapMovieItem(m movieDTO) domain.ListItem {
	return domain.NewMovieItem(mapMovieCommon(m), domain.MovieFields{
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		ReleaseDate:   m.ReleaseDate,
		Adult:         m.Adult,
		Video:         m.Video,
	})
}

func mapTVItem(t tvDTO) domain.ListItem {
	return domain.NewTVItem(mapTVCommon(t), domain.TVFields{
		Name:          t.Name,
		OriginalName:  t.OriginalName,
		FirstAirDate:  t.FirstAirDate,
		OriginCountry: t.OriginCountry,
	})
}

// === People ===

func (c *Client) mapPerson(p personDTO) (domain.Person, error) {
	knownFor, err := resolveItems(c, knownForResolver, p.KnownFor, "known_for")
	if err != nil {
		return domain.Person{}, fmt.Errorf("person %d known_for: %w", p.ID, err)
	}
	return domain.Person{
		ID:                 p.ID,
		Name:               p.Name,
		ProfilePath:        p.ProfilePath,
		KnownForDepartment: p.KnownForDepartment,
		Popularity:         p.Popularity,
		Adult:              p.Adult,
		KnownFor:           knownFor,
	}, nil
}

// === Credits ===

func mapMovieCast(c movieCastDTO) domain.CastCredit {
	return domain.CastCredit{
		CreditID:  c.CreditID,
		Character: c.Character,
		Order:     c.Order,
		Media:     mapMovieItem(c.movieDTO),
	}
}

func mapTVCast(c tvCastDTO) domain.CastCredit {
	return domain.CastCredit{
		CreditID:     c.CreditID,
		Character:    c.Character,
		EpisodeCount: c.EpisodeCount,
		Media:        mapTVItem(c.tvDTO),
	}
}

func mapMovieCrew(c movieCrewDTO) domain.CrewCredit {
	return domain.CrewCredit{
		CreditID:   c.CreditID,
		Department: c.Department,
		Job:        c.Job,
		Media:      mapMovieItem(c.movieDTO),
	}
}

func mapTVCrew(c tvCrewDTO) domain.CrewCredit {
	return domain.CrewCredit{
		CreditID:     c.CreditID,
		Department:   c.Department,
		Job:          c.Job,
		EpisodeCount: c.EpisodeCount,
		Media:        mapTVItem(c.tvDTO),
	}
}

func mapCredits(dto creditsDTO) *domain.Credits {
	credits := &domain.Credits{
		ID:   dto.ID,
		Cast: make([]domain.CastMember, 0, len(dto.Cast)),
		Crew: make([]domain.CrewMember, 0, len(dto.Crew)),
	}
	for _, c := range dto.Cast {
		credits.Cast = append(credits.Cast, domain.CastMember{
			ID:          c.ID,
			CreditID:    c.CreditID,
			Name:        c.Name,
			Character:   c.Character,
			Order:       c.Order,
			ProfilePath: c.ProfilePath,
		})
	}
	for _, c := range dto.Crew {
		credits.Crew = append(credits.Crew, domain.CrewMember{
			ID:          c.ID,
			CreditID:    c.CreditID,
			Name:        c.Name,
			Department:  c.Department,
			Job:         c.Job,
			ProfilePath: c.ProfilePath,
		})
	}
	return credits
}

// === Rated media ===

func mapRatedMovie(m movieDTO) domain.RatedMedia {
	return domain.NewRatedMovie(domain.RatedCommon{
		ID:           m.ID,
		Name:         m.Title,
		Overview:     m.Overview,
		VoteAverage:  m.VoteAverage,
		VoteCount:    m.VoteCount,
		Rating:       m.Rating,
		ReleaseDate:  m.ReleaseDate,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
		GenreIDs:     m.GenreIDs,
	}, domain.MovieExtra{
		OriginalTitle: m.OriginalTitle,
		Adult:         m.Adult,
		Video:         m.Video,
	})
}

func mapRatedSeries(t tvDTO) domain.RatedMedia {
	return domain.NewRatedSeries(domain.RatedCommon{
		ID:           t.ID,
		Name:         t.Name,
		Overview:     t.Overview,
		VoteAverage:  t.VoteAverage,
		VoteCount:    t.VoteCount,
		Rating:       t.Rating,
		ReleaseDate:  t.FirstAirDate,
		PosterPath:   t.PosterPath,
		BackdropPath: t.BackdropPath,
		GenreIDs:     t.GenreIDs,
	}, domain.SeriesExtra{
		OriginalName:  t.OriginalName,
		OriginCountry: t.OriginCountry,
	})
}

func mapRatedEpisode(e episodeDTO) domain.RatedMedia {
	return domain.NewRatedEpisode(domain.RatedCommon{
		ID:           e.ID,
		Name:         e.Name,
		Overview:     e.Overview,
		VoteAverage:  e.VoteAverage,
		VoteCount:    e.VoteCount,
		Rating:       e.Rating,
		ReleaseDate:  e.AirDate,
		BackdropPath: e.StillPath,
	}, domain.EpisodeExtra{
		ShowID:        e.ShowID,
		SeasonNumber:  e.SeasonNumber,
		EpisodeNumber: e.EpisodeNumber,
	})
}

// === Account states ===

func mapAccountStates(dto accountStatesDTO) *domain.AccountStates {
	return &domain.AccountStates{
		ID:        dto.ID,
		Favorite:  dto.Favorite,
		Watchlist: dto.Watchlist,
		Rated:     dto.Rated.Status(),
	}
}

func mapSeasonAccountStates(dto seasonAccountStatesDTO) *domain.SeasonAccountStates {
	states := &domain.SeasonAccountStates{
		ID:      dto.ID,
		Results: make([]domain.EpisodeAccountState, 0, len(dto.Results)),
	}
	for _, r := range dto.Results {
		states.Results = append(states.Results, domain.EpisodeAccountState{
			ID:            r.ID,
			EpisodeNumber: r.EpisodeNumber,
			Rated:         r.Rated.Status(),
		})
	}
	return states
}

// === Lists ===

func mapList(dto listDTO, items []domain.ListItem) *domain.MediaList {
	sortBy := domain.DefaultSortOrder
	if dto.SortBy != "" {
		if parsed, err := domain.ParseSortOrder(dto.SortBy); err == nil {
			sortBy = parsed
		}
	}
	count := dto.ItemCount
	if count == 0 {
		count = len(items)
	}
	return &domain.MediaList{
		ID:          string(dto.ID),
		Name:        dto.Name,
		Description: dto.Description,
		CreatedBy:   dto.CreatedBy,
		ItemCount:   count,
		PosterPath:  dto.PosterPath,
		Public:      dto.Public,
		SortBy:      sortBy,
		Items:       items,
	}
}
