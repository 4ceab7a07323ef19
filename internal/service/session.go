package service

import (
	"fmt"

	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/domain"
)

// SessionService manages user session operations
type SessionService struct {
	prefs     domain.Preferences
	configDir string
}

// NewSessionService creates a new SessionService. configDir is where
// config.yaml lives.
func NewSessionService(prefs domain.Preferences, configDir string) *SessionService {
	return &SessionService{prefs: prefs, configDir: configDir}
}

// Logout forgets the persisted session ids. With clearCredentials it also
// removes the API key and token from the config file.
func (s *SessionService) Logout(clearCredentials bool) error {
	if err := s.prefs.ClearSessions(); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}

	if clearCredentials {
		if err := config.ClearCredentials(s.configDir); err != nil {
			return err
		}
	}

	return nil
}
