package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/config"
	"github.com/mmcdole/marquee/internal/store"
)

func TestLogout(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.TMDB.APIKey = "secret"
	cfg.TMDB.Language = "de-DE"
	require.NoError(t, config.SaveConfigTo(dir, cfg))

	prefs, err := store.NewPrefsStore("", "", store.Options{})
	require.NoError(t, err)
	require.NoError(t, prefs.SetGuestSessionID("g123"))

	svc := NewSessionService(prefs, dir)

	require.NoError(t, svc.Logout(false))
	_, ok := prefs.GuestSessionID()
	assert.False(t, ok)

	loaded, err := config.LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "secret", loaded.TMDB.APIKey)

	require.NoError(t, svc.Logout(true))
	loaded, err = config.LoadConfigFrom(dir)
	require.NoError(t, err)
	assert.Empty(t, loaded.TMDB.APIKey)
	assert.Equal(t, "de-DE", loaded.TMDB.Language)
}
