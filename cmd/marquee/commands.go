package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/service"
)

var errUsage = errors.New("invalid arguments, run 'marquee -h' for usage")

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (a *app) cmdSession(ctx context.Context, args []string) error {
	fs := newFlagSet("session")
	refresh := fs.Bool("refresh", false, "re-fetch the rated snapshot")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return errUsage
	}

	if err := a.sessions.Initialize(ctx); err != nil {
		return err
	}
	if *refresh {
		if err := a.sessions.RefreshRated(ctx); err != nil {
			return err
		}
	}
	sess, err := a.sessions.Current()
	if err != nil {
		return err
	}
	a.out.Session(sess.ID, sess.IsGuest, len(sess.RatedMovies), len(sess.RatedTVShows), len(sess.RatedTVEpisodes))
	return nil
}

func (a *app) cmdSearch(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return errUsage
	}
	results, err := a.media.Search(ctx, query)
	if err != nil {
		return err
	}
	a.out.SearchResults(results)
	return nil
}

func (a *app) cmdTrending(ctx context.Context, args []string) error {
	window := ""
	if len(args) > 0 {
		window = args[0]
	}
	results, err := a.media.Trending(ctx, window)
	if err != nil {
		return err
	}
	a.out.SearchResults(results)
	return nil
}

func (a *app) cmdList(ctx context.Context, args []string) error {
	fs := newFlagSet("list")
	sortBy := fs.String("sort", "", "sort order, e.g. vote_average.desc")
	filter := fs.String("filter", "", "fuzzy title filter")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}

	order, err := parseSortFlag(*sortBy)
	if err != nil {
		return err
	}

	list, err := a.media.List(ctx, fs.Arg(0), order)
	if err != nil {
		return err
	}
	list.Items = service.FilterItems(list.Items, *filter)
	a.out.List(list)
	return nil
}

func (a *app) cmdCredits(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	kind, err := domain.ParseMediaType(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	if kind == domain.MediaTypePerson {
		credits, err := a.media.PersonCredits(ctx, id)
		if err != nil {
			return err
		}
		a.out.PersonCredits(credits)
		return nil
	}

	credits, err := a.media.Credits(ctx, kind, id)
	if err != nil {
		return err
	}
	a.out.Credits(credits)
	return nil
}

func (a *app) cmdStates(ctx context.Context, args []string) error {
	if len(args) != 2 && !(len(args) == 3 && args[0] == "season") {
		return errUsage
	}
	if err := a.sessions.Initialize(ctx); err != nil {
		return err
	}

	if args[0] == "season" {
		tvID, err := parseID(args[1])
		if err != nil {
			return err
		}
		season, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid season %q", args[2])
		}
		states, err := a.media.SeasonAccountStates(ctx, tvID, season)
		if err != nil {
			return err
		}
		a.out.SeasonAccountStates(states)
		return nil
	}

	kind, err := domain.ParseMediaType(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	states, err := a.media.AccountStates(ctx, kind, id)
	if err != nil {
		return err
	}
	a.out.AccountStates(states)
	return nil
}

func (a *app) cmdRate(ctx context.Context, args []string) error {
	target, rest, err := parseTarget(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return errUsage
	}
	value, err := strconv.ParseFloat(rest[0], 64)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRating, rest[0])
	}

	if err := a.sessions.Initialize(ctx); err != nil {
		return err
	}
	if err := a.media.Rate(ctx, target, value); err != nil {
		return err
	}
	a.out.Success(fmt.Sprintf("rated %s %.1f", describeTarget(target), value))
	return nil
}

func (a *app) cmdUnrate(ctx context.Context, args []string) error {
	target, rest, err := parseTarget(args)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return errUsage
	}

	if err := a.sessions.Initialize(ctx); err != nil {
		return err
	}
	if err := a.media.Unrate(ctx, target); err != nil {
		return err
	}
	a.out.Success("removed rating for " + describeTarget(target))
	return nil
}

func (a *app) cmdRated(ctx context.Context, args []string) error {
	fs := newFlagSet("rated")
	sortBy := fs.String("sort", "", "sort order, e.g. vote_average.desc")
	filter := fs.String("filter", "", "fuzzy title filter")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return errUsage
	}

	order := a.prefs.DefaultSortOrder()
	if *sortBy != "" {
		parsed, err := domain.ParseSortOrder(*sortBy)
		if err != nil {
			return err
		}
		order = parsed
	}

	if err := a.sessions.Initialize(ctx); err != nil {
		return err
	}
	items, err := a.media.Rated(order)
	if err != nil {
		return err
	}
	a.out.Header("Rated (" + order.String() + ")")
	a.out.RatedItems(service.FilterItems(items, *filter))
	return nil
}

func (a *app) cmdPrefs(args []string) error {
	fs := newFlagSet("prefs")
	sortBy := fs.String("sort", "", "default sort order for rated items")
	adult := fs.String("adult", "", "include adult results in searches (true/false)")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return errUsage
	}

	if *sortBy != "" {
		order, err := domain.ParseSortOrder(*sortBy)
		if err != nil {
			return err
		}
		if err := a.prefs.SetDefaultSortOrder(order); err != nil {
			return err
		}
	}
	if *adult != "" {
		include, err := strconv.ParseBool(*adult)
		if err != nil {
			return fmt.Errorf("invalid -adult value %q", *adult)
		}
		if err := a.prefs.SetIncludeAdult(include); err != nil {
			return err
		}
	}

	a.out.Header("Preferences")
	order := a.prefs.DefaultSortOrder()
	a.out.Field("default sort", fmt.Sprintf("%s (%s)", order, order.APIValue()))
	a.out.Field("include adult", a.prefs.IncludeAdult())
	return nil
}

func (a *app) cmdLogout(args []string) error {
	fs := newFlagSet("logout")
	all := fs.Bool("all", false, "also remove credentials from the config file")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return errUsage
	}
	if err := a.account.Logout(*all); err != nil {
		return err
	}
	a.out.Success("session forgotten")
	return nil
}

// parseSortFlag returns nil for an empty flag so the list keeps its own order
func parseSortFlag(value string) (*domain.SortOrder, error) {
	if value == "" {
		return nil, nil
	}
	order, err := domain.ParseSortOrder(value)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// parseTarget reads "movie <id>", "tv <id>" or "episode <tv-id> <season> <episode>"
// and returns the arguments that follow
func parseTarget(args []string) (domain.RatingTarget, []string, error) {
	if len(args) < 2 {
		return domain.RatingTarget{}, nil, errUsage
	}
	kind, err := domain.ParseMediaType(args[0])
	if err != nil {
		return domain.RatingTarget{}, nil, err
	}
	id, err := parseID(args[1])
	if err != nil {
		return domain.RatingTarget{}, nil, err
	}
	target := domain.RatingTarget{Kind: kind, ID: id}

	if kind != domain.MediaTypeEpisode {
		return target, args[2:], target.Validate()
	}

	if len(args) < 4 {
		return domain.RatingTarget{}, nil, errUsage
	}
	if target.SeasonNumber, err = strconv.Atoi(args[2]); err != nil {
		return domain.RatingTarget{}, nil, fmt.Errorf("invalid season %q", args[2])
	}
	if target.EpisodeNumber, err = strconv.Atoi(args[3]); err != nil {
		return domain.RatingTarget{}, nil, fmt.Errorf("invalid episode %q", args[3])
	}
	return target, args[4:], target.Validate()
}

func describeTarget(t domain.RatingTarget) string {
	if t.Kind == domain.MediaTypeEpisode {
		return fmt.Sprintf("tv %d S%02dE%02d", t.ID, t.SeasonNumber, t.EpisodeNumber)
	}
	return fmt.Sprintf("%s %d", t.Kind, t.ID)
}
