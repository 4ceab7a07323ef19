// Package store persists session ids and display preferences in BoltDB.
package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/marquee/internal/domain"
)

// Bucket names
var (
	bucketSessions = []byte("sessions")
	bucketSettings = []byte("settings")
)

// Keys
const (
	keyGuestSession      = "guest"
	keyAuthorizedSession = "authorized"
	keyDefaultSort       = "default_sort"
	keyIncludeAdult      = "include_adult"
)

// PrefsStore implements domain.Preferences using BoltDB.
type PrefsStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte

	defaultSort  domain.SortOrder
	includeAdult bool
	logger       *slog.Logger
}

var _ domain.Preferences = (*PrefsStore)(nil)

// Options are the config-provided fallbacks for unset display settings
type Options struct {
	DefaultSort  domain.SortOrder
	IncludeAdult bool
	Logger       *slog.Logger
}

// NewPrefsStore opens the preferences database under baseCacheDir.
// Each API base URL gets its own directory, so guest sessions never leak
// between endpoints. An empty baseCacheDir selects memory-only mode.
func NewPrefsStore(baseCacheDir, baseURL string, opts Options) (*PrefsStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return newPrefsStore(nil, opts), nil
	}

	dir := baseCacheDir
	if baseURL != "" {
		dir = filepath.Join(baseCacheDir, hashBaseURL(baseURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "marquee.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	// Create buckets
	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSessions, bucketSettings} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return newPrefsStore(db, opts), nil
}

func newPrefsStore(db *bolt.DB, opts Options) *PrefsStore {
	if !opts.DefaultSort.Valid() {
		opts.DefaultSort = domain.DefaultSortOrder
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &PrefsStore{
		db:           db,
		cache:        make(map[string][]byte),
		defaultSort:  opts.DefaultSort,
		includeAdult: opts.IncludeAdult,
		logger:       opts.Logger,
	}
}

func hashBaseURL(baseURL string) string {
	normalized := strings.TrimRight(strings.ToLower(baseURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *PrefsStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Sessions ===

func (s *PrefsStore) GuestSessionID() (string, bool) {
	var id string
	if !s.get(bucketSessions, keyGuestSession, &id) || id == "" {
		return "", false
	}
	return id, true
}

func (s *PrefsStore) SetGuestSessionID(id string) error {
	return s.set(bucketSessions, keyGuestSession, id)
}

func (s *PrefsStore) AuthorizedSessionID() (string, bool) {
	var id string
	if !s.get(bucketSessions, keyAuthorizedSession, &id) || id == "" {
		return "", false
	}
	return id, true
}

func (s *PrefsStore) SetAuthorizedSessionID(id string) error {
	return s.set(bucketSessions, keyAuthorizedSession, id)
}

// ClearSessions forgets both session ids
func (s *PrefsStore) ClearSessions() error {
	if err := s.delete(bucketSessions, keyGuestSession); err != nil {
		return err
	}
	return s.delete(bucketSessions, keyAuthorizedSession)
}

// === Display settings ===

// DefaultSortOrder returns the stored sort order, falling back to the configured one
func (s *PrefsStore) DefaultSortOrder() domain.SortOrder {
	var value string
	if !s.get(bucketSettings, keyDefaultSort, &value) {
		return s.defaultSort
	}
	order, err := domain.ParseSortOrder(value)
	if err != nil {
		return s.defaultSort
	}
	return order
}

func (s *PrefsStore) SetDefaultSortOrder(order domain.SortOrder) error {
	if !order.Valid() {
		return fmt.Errorf("%w: %d", domain.ErrUnknownSortOrder, order)
	}
	return s.set(bucketSettings, keyDefaultSort, order.APIValue())
}

func (s *PrefsStore) IncludeAdult() bool {
	var include bool
	if !s.get(bucketSettings, keyIncludeAdult, &include) {
		return s.includeAdult
	}
	return include
}

func (s *PrefsStore) SetIncludeAdult(include bool) error {
	return s.set(bucketSettings, keyIncludeAdult, include)
}

// === Generic helpers ===

func cacheKey(bucket []byte, key string) string {
	return string(bucket) + ":" + key
}

// get decodes the value stored under key into dest. A read or decode
// failure is logged and reported as not found.
func (s *PrefsStore) get(bucket []byte, key string, dest any) bool {
	found, err := s.load(bucket, key, dest)
	if err != nil {
		s.logger.Warn("failed to read preference", "bucket", string(bucket), "key", key, "error", err)
		return false
	}
	return found
}

func (s *PrefsStore) load(bucket []byte, key string, dest any) (bool, error) {
	ck := cacheKey(bucket, key)

	s.mu.RLock()
	data, cached := s.cache[ck]
	s.mu.RUnlock()

	if !cached {
		if s.db == nil {
			return false, nil
		}
		err := s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucket)
			if b == nil {
				return fmt.Errorf("bucket %q missing", bucket)
			}
			if v := b.Get([]byte(key)); v != nil {
				data = bytes.Clone(v)
			}
			return nil
		})
		if err != nil {
			return false, fmt.Errorf("read %s/%s: %w", bucket, key, err)
		}
		if data == nil {
			return false, nil
		}

		s.mu.Lock()
		s.cache[ck] = data
		s.mu.Unlock()
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode %s/%s: %w", bucket, key, err)
	}
	return true, nil
}

// set writes through to BoltDB before touching the cache, so a failed
// write never leaves a value that would vanish on restart
func (s *PrefsStore) set(bucket []byte, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", bucket, key, err)
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucket)
			if b == nil {
				return fmt.Errorf("bucket %q missing", bucket)
			}
			return b.Put([]byte(key), data)
		})
		if err != nil {
			return fmt.Errorf("write %s/%s: %w", bucket, key, err)
		}
	}

	s.mu.Lock()
	s.cache[cacheKey(bucket, key)] = data
	s.mu.Unlock()
	return nil
}

func (s *PrefsStore) delete(bucket []byte, key string) error {
	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			if b := tx.Bucket(bucket); b != nil {
				return b.Delete([]byte(key))
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("delete %s/%s: %w", bucket, key, err)
		}
	}

	s.mu.Lock()
	delete(s.cache, cacheKey(bucket, key))
	s.mu.Unlock()
	return nil
}
