// Package render formats marquee's domain values for a terminal.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/domain"
)

const defaultWidth = 100

// Printer writes styled lines to w, truncated to Width columns
type Printer struct {
	w     io.Writer
	Width int
}

// NewPrinter creates a printer for w. When w is a terminal its width is used.
func NewPrinter(w io.Writer) *Printer {
	p := &Printer{w: w, Width: defaultWidth}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 20 {
			p.Width = width
		}
	}
	return p
}

func (p *Printer) line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Header prints a section header
func (p *Printer) Header(title string) {
	p.line("%s", HeaderStyle.Render(title))
}

// Error prints an error line
func (p *Printer) Error(err error) {
	p.line("%s", ErrorStyle.Render("error: "+err.Error()))
}

// Field prints an indented label and value
func (p *Printer) Field(label string, value any) {
	p.line("  %s %v", DimStyle.Render(label+":"), value)
}

// Success prints a confirmation line
func (p *Printer) Success(msg string) {
	p.line("%s", SuccessStyle.Render(msg))
}

func kindBadge(kind domain.MediaType) string {
	switch kind {
	case domain.MediaTypeMovie:
		return MovieBadge.Render("MOVIE")
	case domain.MediaTypeTV:
		return TVBadge.Render("TV")
	case domain.MediaTypeEpisode:
		return TVBadge.Render("EP")
	default:
		return PersonBadge.Render(strings.ToUpper(kind.String()))
	}
}

// titleWidth is the space left for a title after fixed-width columns
func (p *Printer) titleWidth(reserved int) int {
	return max(p.Width-reserved, 10)
}

// Session prints a session summary
func (p *Printer) Session(id string, guest bool, movies, shows, episodes int) {
	kind := "authorized"
	if guest {
		kind = "guest"
	}
	p.line("%s %s %s", TitleStyle.Render("session"), id, DimStyle.Render("("+kind+")"))
	p.line("  rated: %d movies, %d tv shows, %d episodes", movies, shows, episodes)
}

// SearchResults prints ranked search or trending results
func (p *Printer) SearchResults(results []domain.SearchResult) {
	if len(results) == 0 {
		p.line("%s", DimStyle.Render("no results"))
		return
	}
	width := p.titleWidth(30)
	for _, r := range results {
		detail := ""
		switch {
		case r.Media != nil:
			detail = r.Media.Year()
		case r.Person != nil:
			detail = r.Person.KnownForDepartment
		}
		p.line("%s %s %s %s",
			kindBadge(r.Kind),
			DimStyle.Render(fmt.Sprintf("%8d", r.ID())),
			TitleStyle.Render(Truncate(r.Title(), width)),
			SubtitleStyle.Render(detail),
		)
	}
}

// List prints a list header followed by its items
func (p *Printer) List(list *domain.MediaList) {
	p.Header(fmt.Sprintf("%s (%d items, %s)", list.Name, len(list.Items), list.SortBy))
	if list.Description != "" {
		p.line("%s", SubtitleStyle.Render(Truncate(list.Description, p.Width)))
	}
	p.ListItems(list.Items)
}

// ListItems prints movie and tv entries with their vote average
func (p *Printer) ListItems(items []domain.ListItem) {
	if len(items) == 0 {
		p.line("%s", DimStyle.Render("no items"))
		return
	}
	width := p.titleWidth(40)
	for _, item := range items {
		p.line("%s %s %s %s %s",
			kindBadge(item.Kind),
			DimStyle.Render(fmt.Sprintf("%8d", item.ID)),
			RenderRatingBar(item.VoteAverage, 10),
			AccentStyle.Render(fmt.Sprintf("%4.1f", item.VoteAverage)),
			TitleStyle.Render(Truncate(item.Title(), width))+" "+SubtitleStyle.Render(item.Year()),
		)
	}
}

// Credits prints the cast and crew of a movie or series
func (p *Printer) Credits(credits *domain.Credits) {
	if director, ok := credits.Director(); ok {
		p.line("%s %s", DimStyle.Render("Director:"), TitleStyle.Render(director.Name))
	}
	p.Header("Cast")
	for _, c := range credits.Cast {
		p.line("  %s %s", TitleStyle.Render(c.Name), SubtitleStyle.Render("as "+c.Character))
	}
	p.Header("Crew")
	for _, c := range credits.Crew {
		p.line("  %s %s", TitleStyle.Render(c.Name), SubtitleStyle.Render(c.Job))
	}
}

// PersonCredits prints a person's combined credits
func (p *Printer) PersonCredits(credits *domain.PersonCredits) {
	width := p.titleWidth(30)
	p.Header("Cast")
	for _, c := range credits.Cast {
		p.line("  %s %s %s",
			kindBadge(c.Media.Kind),
			TitleStyle.Render(Truncate(c.Media.Title(), width)),
			SubtitleStyle.Render(c.Character),
		)
	}
	p.Header("Crew")
	for _, c := range credits.Crew {
		p.line("  %s %s %s",
			kindBadge(c.Media.Kind),
			TitleStyle.Render(Truncate(c.Media.Title(), width)),
			SubtitleStyle.Render(c.Job),
		)
	}
}

func ratedLabel(status domain.RatedStatus) string {
	if !status.IsRated {
		return DimStyle.Render(UnratedChar + " not rated")
	}
	if status.Rating == domain.NoRating {
		return AccentStyle.Render(RatedChar + " rated")
	}
	return AccentStyle.Render(fmt.Sprintf("%s %.1f", RatedChar, status.Rating))
}

// AccountStates prints the rated, favorite and watchlist flags of an item
func (p *Printer) AccountStates(states *domain.AccountStates) {
	p.line("%s %d", TitleStyle.Render("id"), states.ID)
	p.line("  rated:     %s", ratedLabel(states.Rated))
	p.line("  favorite:  %t", states.Favorite)
	p.line("  watchlist: %t", states.Watchlist)
}

// SeasonAccountStates prints the rated flag of every episode in a season
func (p *Printer) SeasonAccountStates(states *domain.SeasonAccountStates) {
	for _, ep := range states.Results {
		p.line("  E%02d %s", ep.EpisodeNumber, ratedLabel(ep.Rated))
	}
}

// RatedItems prints a rated snapshot with the session's own ratings
func (p *Printer) RatedItems(items []domain.RatedMedia) {
	if len(items) == 0 {
		p.line("%s", DimStyle.Render("nothing rated yet"))
		return
	}
	width := p.titleWidth(30)
	for _, item := range items {
		title := item.Name
		if code := item.EpisodeCode(); code != "" {
			title = code + " " + title
		}
		p.line("%s %s %s %s",
			kindBadge(item.Kind),
			DimStyle.Render(fmt.Sprintf("%8d", item.ID)),
			AccentStyle.Render(fmt.Sprintf("%s %4.1f", RatedChar, item.Rating)),
			TitleStyle.Render(Truncate(title, width)),
		)
	}
}
