package store

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
)

var _ domain.Preferences = (*PrefsStore)(nil)

func TestPrefsStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	const baseURL = "https://api.themoviedb.org/3"

	s, err := NewPrefsStore(dir, baseURL, Options{})
	require.NoError(t, err)

	_, ok := s.GuestSessionID()
	assert.False(t, ok)

	require.NoError(t, s.SetGuestSessionID("g123"))
	require.NoError(t, s.SetDefaultSortOrder(domain.TitleDesc))
	require.NoError(t, s.SetIncludeAdult(true))
	require.NoError(t, s.Close())

	reopened, err := NewPrefsStore(dir, baseURL+"/", Options{})
	require.NoError(t, err)
	defer reopened.Close()

	id, ok := reopened.GuestSessionID()
	require.True(t, ok)
	assert.Equal(t, "g123", id)
	assert.Equal(t, domain.TitleDesc, reopened.DefaultSortOrder())
	assert.True(t, reopened.IncludeAdult())
}

func TestPrefsStore_SeparatedByBaseURL(t *testing.T) {
	dir := t.TempDir()

	a, err := NewPrefsStore(dir, "https://api.themoviedb.org/3", Options{})
	require.NoError(t, err)
	require.NoError(t, a.SetGuestSessionID("g-prod"))
	require.NoError(t, a.Close())

	b, err := NewPrefsStore(dir, "http://localhost:8080/3", Options{})
	require.NoError(t, err)
	defer b.Close()

	_, ok := b.GuestSessionID()
	assert.False(t, ok)
}

func TestPrefsStore_ClearSessions(t *testing.T) {
	s, err := NewPrefsStore(t.TempDir(), "", Options{})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.SetGuestSessionID("g1"))
	require.NoError(t, s.SetAuthorizedSessionID("a1"))
	require.NoError(t, s.ClearSessions())

	_, ok := s.GuestSessionID()
	assert.False(t, ok)
	_, ok = s.AuthorizedSessionID()
	assert.False(t, ok)
}

func TestPrefsStore_MemoryOnly(t *testing.T) {
	s, err := NewPrefsStore("", "ignored", Options{DefaultSort: domain.RatingDesc, IncludeAdult: true})
	require.NoError(t, err)

	assert.Equal(t, domain.RatingDesc, s.DefaultSortOrder())
	assert.True(t, s.IncludeAdult())

	require.NoError(t, s.SetGuestSessionID("mem"))
	id, ok := s.GuestSessionID()
	assert.True(t, ok)
	assert.Equal(t, "mem", id)

	require.NoError(t, s.SetIncludeAdult(false))
	assert.False(t, s.IncludeAdult())
	assert.NoError(t, s.Close())
}

func TestPrefsStore_DefaultSortFallbacks(t *testing.T) {
	s, err := NewPrefsStore("", "", Options{DefaultSort: domain.SortOrder(99)})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSortOrder, s.DefaultSortOrder())

	assert.ErrorIs(t, s.SetDefaultSortOrder(domain.SortOrder(-1)), domain.ErrUnknownSortOrder)
}

func quietOptions() Options {
	return Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestPrefsStore_ReadFailureIsReported(t *testing.T) {
	s, err := NewPrefsStore(t.TempDir(), "", quietOptions())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	var id string
	found, err := s.load(bucketSessions, keyGuestSession, &id)
	assert.False(t, found)
	assert.ErrorContains(t, err, "read sessions/guest")

	_, ok := s.GuestSessionID()
	assert.False(t, ok)
}

func TestPrefsStore_FailedWriteLeavesCacheUntouched(t *testing.T) {
	s, err := NewPrefsStore(t.TempDir(), "", quietOptions())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorContains(t, s.SetGuestSessionID("g1"), "write sessions/guest")
	assert.Empty(t, s.cache)
}

func TestPrefsStore_CorruptValueFallsBack(t *testing.T) {
	opts := quietOptions()
	opts.IncludeAdult = true
	s, err := NewPrefsStore("", "", opts)
	require.NoError(t, err)

	s.cache[cacheKey(bucketSettings, keyIncludeAdult)] = []byte(`"yes"`)

	var include bool
	found, err := s.load(bucketSettings, keyIncludeAdult, &include)
	assert.False(t, found)
	assert.ErrorContains(t, err, "decode settings/include_adult")
	assert.True(t, s.IncludeAdult())
}
