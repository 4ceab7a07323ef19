package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/tmdb"
)

// fakeAPI counts calls and returns canned rated lists
type fakeAPI struct {
	creates    atomic.Int32
	ratedCalls atomic.Int32

	createID  string
	createErr error
	// createGate, when set, blocks CreateGuestSession until closed
	createGate    chan struct{}
	createStarted chan struct{}

	movies, tv, episodes []domain.RatedMedia
	moviesErr, tvErr     error
}

func (f *fakeAPI) CreateGuestSession(ctx context.Context) (string, error) {
	f.creates.Add(1)
	if f.createStarted != nil {
		close(f.createStarted)
	}
	if f.createGate != nil {
		<-f.createGate
	}
	return f.createID, f.createErr
}

func (f *fakeAPI) RatedMovies(ctx context.Context, id string) ([]domain.RatedMedia, error) {
	f.ratedCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.movies, f.moviesErr
}

func (f *fakeAPI) RatedTVShows(ctx context.Context, id string) ([]domain.RatedMedia, error) {
	f.ratedCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.tv, f.tvErr
}

func (f *fakeAPI) RatedTVEpisodes(ctx context.Context, id string) ([]domain.RatedMedia, error) {
	f.ratedCalls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.episodes, nil
}

// memPrefs is an in-memory domain.Preferences
type memPrefs struct {
	mu      sync.Mutex
	guestID string
	authID  string
	sets    int
	setErr  error
	order   domain.SortOrder
	adult   bool
}

func (p *memPrefs) GuestSessionID() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.guestID, p.guestID != ""
}

func (p *memPrefs) SetGuestSessionID(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sets++
	if p.setErr != nil {
		return p.setErr
	}
	p.guestID = id
	return nil
}

func (p *memPrefs) AuthorizedSessionID() (string, bool) { return p.authID, p.authID != "" }
func (p *memPrefs) SetAuthorizedSessionID(id string) error {
	p.authID = id
	return nil
}
func (p *memPrefs) ClearSessions() error {
	p.guestID, p.authID = "", ""
	return nil
}
func (p *memPrefs) DefaultSortOrder() domain.SortOrder { return p.order }
func (p *memPrefs) SetDefaultSortOrder(o domain.SortOrder) error {
	p.order = o
	return nil
}
func (p *memPrefs) IncludeAdult() bool { return p.adult }
func (p *memPrefs) SetIncludeAdult(b bool) error {
	p.adult = b
	return nil
}
func (p *memPrefs) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ratedMovie(id int, rating float64) domain.RatedMedia {
	return domain.NewRatedMovie(domain.RatedCommon{ID: id, Rating: rating}, domain.MovieExtra{})
}

func TestInitialize_NoPersistedID_CreatesOnce(t *testing.T) {
	api := &fakeAPI{createID: "fresh-1"}
	prefs := &memPrefs{}
	store := NewStore(api, prefs, discardLogger())

	require.NoError(t, store.Initialize(context.Background()))

	assert.Equal(t, int32(1), api.creates.Load())
	assert.Equal(t, int32(0), api.ratedCalls.Load(), "fresh guest sessions skip the rated fetches")
	id, ok := prefs.GuestSessionID()
	require.True(t, ok)
	assert.Equal(t, "fresh-1", id)

	sess, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, "fresh-1", sess.ID)
	assert.True(t, sess.IsGuest)
	assert.Empty(t, sess.RatedMovies)
	assert.NotNil(t, sess.RatedMovies)
}

func TestInitialize_PersistedID_FetchesRated(t *testing.T) {
	api := &fakeAPI{movies: []domain.RatedMedia{ratedMovie(5, 8)}}
	prefs := &memPrefs{guestID: "g123"}
	store := NewStore(api, prefs, discardLogger())

	require.NoError(t, store.Initialize(context.Background()))

	assert.Equal(t, int32(0), api.creates.Load())
	assert.Equal(t, int32(3), api.ratedCalls.Load())
	assert.Equal(t, 0, prefs.sets)

	sess, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, "g123", sess.ID)
	assert.True(t, sess.HasRatedMovie(5))
	assert.False(t, sess.HasRatedTVShow(5))
}

func TestInitialize_ReadyIsNoop(t *testing.T) {
	api := &fakeAPI{createID: "fresh-1"}
	store := NewStore(api, &memPrefs{}, discardLogger())

	require.NoError(t, store.Initialize(context.Background()))
	require.NoError(t, store.Initialize(context.Background()))
	assert.Equal(t, int32(1), api.creates.Load())
	assert.Equal(t, StateReady, store.State())
}

func TestInitialize_PartialFailureOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/guest_session/g123/rated/movies"):
			_, _ = io.WriteString(w, `{"page":1,"total_pages":1,"total_results":1,"results":[{"id":5,"title":"Five","rating":7}]}`)
		case strings.HasPrefix(r.URL.Path, "/authentication/"):
			t.Error("no guest session should be created")
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, `{"status_code":11,"status_message":"Internal error"}`)
		}
	}))
	defer srv.Close()

	client := tmdb.NewClient(tmdb.Config{BaseURL: srv.URL, APIKey: "k", StrictDecoding: true}, discardLogger())
	store := NewStore(client, &memPrefs{guestID: "g123"}, discardLogger())

	require.NoError(t, store.Initialize(context.Background()))

	sess, err := store.Current()
	require.NoError(t, err)
	require.Len(t, sess.RatedMovies, 1)
	assert.Equal(t, 5, sess.RatedMovies[0].ID)
	assert.Empty(t, sess.RatedTVShows)
	assert.Empty(t, sess.RatedTVEpisodes)
}

func TestInitialize_ConcurrentCallersShareOneCreate(t *testing.T) {
	api := &fakeAPI{
		createID:      "fresh-1",
		createGate:    make(chan struct{}),
		createStarted: make(chan struct{}),
	}
	store := NewStore(api, &memPrefs{}, discardLogger())

	const callers = 8
	errs := make(chan error, callers)

	go func() { errs <- store.Initialize(context.Background()) }()
	<-api.createStarted
	assert.Equal(t, StateInitializing, store.State())

	var wg sync.WaitGroup
	for range callers - 1 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Initialize(context.Background())
		}()
	}

	close(api.createGate)
	wg.Wait()
	for range callers {
		assert.NoError(t, <-errs)
	}

	assert.Equal(t, int32(1), api.creates.Load())
	assert.Equal(t, StateReady, store.State())
}

func TestInitialize_WaiterHonorsContext(t *testing.T) {
	api := &fakeAPI{
		createID:      "fresh-1",
		createGate:    make(chan struct{}),
		createStarted: make(chan struct{}),
	}
	store := NewStore(api, &memPrefs{}, discardLogger())

	first := make(chan error, 1)
	go func() { first <- store.Initialize(context.Background()) }()
	<-api.createStarted

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Initialize(ctx), context.Canceled)

	close(api.createGate)
	assert.NoError(t, <-first)
}

func TestInitialize_CancelledRehydrationAllowsRetry(t *testing.T) {
	api := &fakeAPI{movies: []domain.RatedMedia{ratedMovie(5, 8)}}
	store := NewStore(api, &memPrefs{guestID: "g123"}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := store.Initialize(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateFailed, store.State())
	_, err = store.Current()
	assert.ErrorIs(t, err, domain.ErrSessionNotReady)

	require.NoError(t, store.Initialize(context.Background()))
	assert.Equal(t, StateReady, store.State())
	sess, err := store.Current()
	require.NoError(t, err)
	assert.True(t, sess.HasRatedMovie(5))
	assert.Equal(t, int32(6), api.ratedCalls.Load())
}

func TestInitialize_CreateFailureAllowsRetry(t *testing.T) {
	api := &fakeAPI{createErr: domain.ErrAuthFailed}
	prefs := &memPrefs{}
	store := NewStore(api, prefs, discardLogger())

	err := store.Initialize(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthFailed)
	assert.Equal(t, StateFailed, store.State())
	_, err = store.Current()
	assert.ErrorIs(t, err, domain.ErrSessionNotReady)
	assert.Equal(t, 0, prefs.sets)

	api.createErr = nil
	api.createID = "retry-1"
	require.NoError(t, store.Initialize(context.Background()))
	assert.Equal(t, int32(2), api.creates.Load())
	assert.Equal(t, StateReady, store.State())
}

func TestInitialize_PersistFailureKeepsSession(t *testing.T) {
	api := &fakeAPI{createID: "fresh-1"}
	prefs := &memPrefs{setErr: errors.New("disk full")}
	store := NewStore(api, prefs, discardLogger())

	require.NoError(t, store.Initialize(context.Background()))
	sess, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, "fresh-1", sess.ID)
}

func TestCurrent_NotReadyBeforeInitialize(t *testing.T) {
	store := NewStore(&fakeAPI{}, &memPrefs{}, discardLogger())
	assert.Equal(t, StateUninitialized, store.State())

	sess, err := store.Current()
	assert.Nil(t, sess)
	assert.ErrorIs(t, err, domain.ErrSessionNotReady)
}

func TestRefreshRated_SwapsSnapshot(t *testing.T) {
	api := &fakeAPI{createID: "fresh-1"}
	store := NewStore(api, &memPrefs{}, discardLogger())
	require.NoError(t, store.Initialize(context.Background()))

	before, err := store.Current()
	require.NoError(t, err)
	assert.False(t, before.HasRatedMovie(42))

	api.movies = []domain.RatedMedia{ratedMovie(42, 9)}
	require.NoError(t, store.RefreshRated(context.Background()))

	after, err := store.Current()
	require.NoError(t, err)
	assert.True(t, after.HasRatedMovie(42))
	assert.False(t, before.HasRatedMovie(42), "old snapshot is not mutated")
	assert.Equal(t, int32(3), api.ratedCalls.Load())
}

func TestRefreshRated_RequiresReady(t *testing.T) {
	store := NewStore(&fakeAPI{}, &memPrefs{}, discardLogger())
	assert.ErrorIs(t, store.RefreshRated(context.Background()), domain.ErrSessionNotReady)
}
