package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/render"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/mmcdole/marquee/internal/tmdb"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

// runSetupFlow asks for TMDB credentials, verifies them by opening a guest
// session and saves both
func runSetupFlow(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	var guestID string

	for {
		key, err := readSecret(reader, "Enter your TMDB API key (v3) or read access token (v4): ")
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if key == "" {
			fmt.Println("Key cannot be empty. Please try again.")
			continue
		}

		// v4 tokens are JWTs, v3 keys are 32 hex characters
		if strings.Count(key, ".") == 2 {
			cfg.TMDB.AccessToken, cfg.TMDB.APIKey = key, ""
		} else {
			cfg.TMDB.APIKey, cfg.TMDB.AccessToken = key, ""
		}

		client := tmdb.NewClient(clientConfig(cfg, cfg.Preferences.IncludeAdult), logger)
		guestID, err = verifyWithSpinner(ctx, client)
		if err != nil {
			fmt.Printf("\n%s Could not verify key: %v\n", render.ErrorStyle.Render("✗"), err)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}
		break
	}

	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	// Keep the session the verification opened so the first run reuses it
	prefs, err := store.NewPrefsStore(cfg.Cache.Dir, cfg.TMDB.BaseURL, store.Options{Logger: logger})
	if err != nil {
		logger.Warn("failed to open preferences", "error", err)
	} else {
		if err := prefs.SetGuestSessionID(guestID); err != nil {
			logger.Warn("failed to persist guest session", "error", err)
		}
		prefs.Close()
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Try 'marquee search <title>' next.")

	return nil
}

// readSecret reads a line without echo when stdin is a terminal
func readSecret(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Print(prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// verifyWithSpinner opens a guest session with a visual spinner
func verifyWithSpinner(ctx context.Context, client *tmdb.Client) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	type result struct {
		id  string
		err error
	}
	resultCh := make(chan result, 1)

	go func() {
		id, err := client.CreateGuestSession(ctx)
		resultCh <- result{id, err}
	}()

	frame := 0
	frames := render.SpinnerFrames
	fmt.Printf("\r%s Verifying credentials...", frames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case res := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if res.err != nil {
				return "", res.err
			}
			fmt.Printf("%s Verified, guest session %s\n", render.SuccessStyle.Render("✓"), res.id)
			return res.id, nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Verifying credentials...", frames[frame%len(frames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return "", fmt.Errorf("verification timed out")
		}
	}
}
