package exercises

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

type lister interface {
	List(ctx context.Context, params ListParams) ([]Exercise, error)
}

// CachedRepo caches exercise catalog lookups. The catalog is seeded
// reference data, so a short TTL is plenty to soak the read-heavy
// suggestion traffic.
type CachedRepo struct {
	repo  lister
	cache *freecache.Cache
	ttl   time.Duration
}

func NewCachedRepo(repo lister, cacheSizeBytes int, ttl time.Duration) *CachedRepo {
	return &CachedRepo{
		repo:  repo,
		cache: freecache.NewCache(cacheSizeBytes),
		ttl:   ttl,
	}
}

func (r *CachedRepo) List(ctx context.Context, params ListParams) ([]Exercise, error) {
	cacheKey, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal cache key: %w", err)
	}

	if cachedBytes, err := r.cache.Get(cacheKey); err == nil {
		var cached []Exercise
		if err := json.Unmarshal(cachedBytes, &cached); err != nil {
			log.Errorf("cached exercises unmarshal: %s", err)
		} else {
			return cached, nil
		}
	}

	found, err := r.repo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	foundBytes, err := json.Marshal(found)
	if err != nil {
		log.Errorf("marshal exercises for cache: %s", err)
		return found, nil
	}
	if err := r.cache.Set(cacheKey, foundBytes, int(r.ttl.Seconds())); err != nil {
		log.Tracef("set exercises cache: %s", err)
	}

	return found, nil
}
