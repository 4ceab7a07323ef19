package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/log"
	"github.com/mmcdole/marquee/internal/render"
	"github.com/mmcdole/marquee/internal/service"
	"github.com/mmcdole/marquee/internal/session"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tmdb"
)

// Version is set at build time via -ldflags
var Version = "dev"

const usage = `usage: marquee [-version] <command> [args]

commands:
  session [-refresh]              show the guest session and rated counts
  search <query>                  search movies, series and people
  trending [day|week]             show trending titles
  list [-sort S] [-filter Q] <id> show a curated list
  credits <movie|tv|person> <id>  show cast and crew
  states <movie|tv> <id>          show rated, favorite and watchlist flags
  states season <tv-id> <season>  show rated flags for a season's episodes
  rate <movie|tv> <id> <value>    rate a title (0.5-10 in 0.5 steps)
  rate episode <tv-id> <s> <e> <value>
  unrate <movie|tv> <id>          remove a rating
  unrate episode <tv-id> <s> <e>
  rated [-sort S] [-filter Q]     show everything rated in this session
  prefs [-sort S] [-adult B]      show or change saved preferences
  config                          enter TMDB credentials
  logout [-all]                   forget the session (and credentials with -all)
`

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(flag.Args()); err != nil {
		render.NewPrinter(os.Stderr).Error(err)
		os.Exit(1)
	}
}

// app holds everything a command needs
type app struct {
	logger   *slog.Logger
	prefs    domain.Preferences
	sessions *session.Store
	media    *service.MediaService
	account  *service.SessionService
	out      *render.Printer
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
		closer = io.NopCloser(nil)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version, "command", args[0])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if args[0] == "config" {
		return runSetupFlow(ctx, cfg, logger)
	}

	if !cfg.IsConfigured() {
		return fmt.Errorf("no TMDB credentials configured, run 'marquee config' or set MARQUEE_TMDB_API_KEY")
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.prefs.Close()

	err = a.dispatch(ctx, args[0], args[1:])
	if err != nil {
		logger.Error("command failed", "command", args[0], "error", err)
	}
	return err
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	defaultSort, err := domain.ParseSortOrder(cfg.Preferences.DefaultSort)
	if err != nil {
		logger.Warn("ignoring configured default sort", "error", err)
	}

	prefs, err := store.NewPrefsStore(cfg.Cache.Dir, cfg.TMDB.BaseURL, store.Options{
		DefaultSort:  defaultSort,
		IncludeAdult: cfg.Preferences.IncludeAdult,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open preferences: %w", err)
	}

	client := tmdb.NewClient(clientConfig(cfg, prefs.IncludeAdult()), logger)
	sessions := session.NewStore(client, prefs, logger)

	return &app{
		logger:   logger,
		prefs:    prefs,
		sessions: sessions,
		media:    service.NewMediaService(client, sessions, logger),
		account:  service.NewSessionService(prefs, config.DefaultConfigPath()),
		out:      render.NewPrinter(os.Stdout),
	}, nil
}

func clientConfig(cfg *config.Config, includeAdult bool) tmdb.Config {
	return tmdb.Config{
		BaseURL:        cfg.TMDB.BaseURL,
		APIKey:         cfg.TMDB.APIKey,
		AccessToken:    cfg.TMDB.AccessToken,
		Language:       cfg.TMDB.Language,
		Timeout:        cfg.TMDB.Timeout,
		StrictDecoding: cfg.TMDB.StrictDecoding,
		IncludeAdult:   includeAdult,
	}
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "session":
		return a.cmdSession(ctx, args)
	case "search":
		return a.cmdSearch(ctx, args)
	case "trending":
		return a.cmdTrending(ctx, args)
	case "list":
		return a.cmdList(ctx, args)
	case "credits":
		return a.cmdCredits(ctx, args)
	case "states":
		return a.cmdStates(ctx, args)
	case "rate":
		return a.cmdRate(ctx, args)
	case "unrate":
		return a.cmdUnrate(ctx, args)
	case "rated":
		return a.cmdRated(ctx, args)
	case "prefs":
		return a.cmdPrefs(args)
	case "logout":
		return a.cmdLogout(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}
