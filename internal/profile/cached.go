package profile

import (
	"context"
	"log/slog"
	"sync"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/internal/language"
)

// CachedStore is a read-through cache in front of a Store.
// Writes go to the store first and then evict the cached entry. When the
// eviction fails the entry is overwritten with a fresh read; when that fails
// too, reads of the user skip the cache until a later Set succeeds.
// Cache failures are logged and the store is used directly.
//
// A Fetch that misses concurrently with a write may repopulate the entry
// with the row read before the write; the entry then lives until its TTL.
type CachedStore struct {
	next  Store
	cache Cache
	stale sync.Map // user id -> struct{}
}

// NewCachedStore decorates next with cache.
func NewCachedStore(next Store, cache Cache) *CachedStore {
	return &CachedStore{next: next, cache: cache}
}

// Fetch serves from the cache when possible. Missing rows are not cached.
func (s *CachedStore) Fetch(ctx context.Context, userID int64) (Profile, error) {
	if _, bad := s.stale.Load(userID); bad {
		logger.Debug(ctx, logger.ComponentCache, "profile.get", slog.String("cache", "bypass"))
		return s.load(ctx, userID)
	}

	p, hit, err := s.cache.Get(ctx, userID)
	switch {
	case err != nil:
		s.bypass(ctx, "get", err)
	case hit:
		logger.Debug(ctx, logger.ComponentCache, "profile.get", slog.String("cache", "hit"))
		return p, nil
	default:
		logger.Debug(ctx, logger.ComponentCache, "profile.get", slog.String("cache", "miss"))
	}

	return s.load(ctx, userID)
}

// load reads the store and refreshes the cache entry.
func (s *CachedStore) load(ctx context.Context, userID int64) (Profile, error) {
	p, err := s.next.Fetch(ctx, userID)
	if err != nil {
		return p, err
	}
	if err := s.cache.Set(ctx, p); err != nil {
		s.bypass(ctx, "set", err)
		return p, nil
	}
	s.stale.Delete(userID)
	return p, nil
}

// SetLanguage writes through and evicts the cached profile.
func (s *CachedStore) SetLanguage(ctx context.Context, userID int64, id language.ID) (language.ID, error) {
	got, err := s.next.SetLanguage(ctx, userID, id)
	if err != nil {
		return got, err
	}
	if got != language.Unset {
		s.evict(ctx, userID)
	}
	return got, nil
}

// SetPhone writes through and evicts the cached profile.
func (s *CachedStore) SetPhone(ctx context.Context, userID int64, raw string) (bool, error) {
	ok, err := s.next.SetPhone(ctx, userID, raw)
	if err != nil {
		return ok, err
	}
	if ok {
		s.evict(ctx, userID)
	}
	return ok, nil
}

func (s *CachedStore) evict(ctx context.Context, userID int64) {
	err := s.cache.Delete(ctx, userID)
	if err == nil {
		s.stale.Delete(userID)
		return
	}
	s.bypass(ctx, "delete", err)

	// The old entry may still be there: replace it or stop trusting it.
	s.stale.Store(userID, struct{}{})
	if _, err := s.load(ctx, userID); err != nil {
		logger.Warn(ctx, logger.ComponentCache, "profile.refresh",
			slog.String("status", "fail"),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}
}

func (s *CachedStore) bypass(ctx context.Context, op string, err error) {
	logger.Warn(ctx, logger.ComponentCache, "profile."+op,
		slog.String("cache", "bypass"),
		slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
	)
}
