package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"quiz-master/internal/cache"
	"quiz-master/internal/domain"
	"quiz-master/internal/logger"
	"quiz-master/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ComputeFunc produces the authoritative value for a cache miss.
type ComputeFunc func(ctx context.Context) (interface{}, error)

// ResponseCache is a read-through cache of serialized responses, grouped
// into namespaces that can be cleared as a unit.
type ResponseCache interface {
	Get(ctx context.Context, key cache.Key) ([]byte, error)
	Set(ctx context.Context, key cache.Key, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, key cache.Key) error
	Clear(ctx context.Context, namespace string) error
	// Fetch decodes the cached payload for key into dest. On a miss, or when
	// the cache cannot be used, it runs compute, stores the result and
	// decodes it into dest. Only compute errors are returned.
	Fetch(ctx context.Context, key cache.Key, ttl time.Duration, dest interface{}, compute ComputeFunc) error
}

type responseCacheImpl struct {
	cache      domain.Cache
	defaultTTL time.Duration
	group      singleflight.Group
}

// NewResponseCache returns a ResponseCache backed by c. A nil cache yields
// an implementation that always computes.
func NewResponseCache(c domain.Cache, defaultTTL time.Duration) ResponseCache {
	if c == nil {
		logger.Get().Warn("ResponseCache initialized with nil cache. Responses will not be cached.")
		return &noopResponseCache{}
	}
	return &responseCacheImpl{cache: c, defaultTTL: defaultTTL}
}

func (s *responseCacheImpl) ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return s.defaultTTL
	}
	return ttl
}

// generation reads the namespace's generation counter. An absent counter
// is generation 0.
func (s *responseCacheImpl) generation(ctx context.Context, namespace string) (int64, error) {
	raw, err := s.cache.Get(ctx, cache.GenerationKey(namespace))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return 0, nil
		}
		return 0, err
	}
	gen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt generation for namespace %s: %w", namespace, err)
	}
	return gen, nil
}

func (s *responseCacheImpl) Get(ctx context.Context, key cache.Key) ([]byte, error) {
	gen, err := s.generation(ctx, key.Namespace)
	if err != nil {
		return nil, err
	}
	raw, err := s.cache.Get(ctx, key.Concrete(gen))
	if err != nil {
		return nil, err
	}
	return []byte(raw), nil
}

func (s *responseCacheImpl) Set(ctx context.Context, key cache.Key, payload []byte, ttl time.Duration) error {
	gen, err := s.generation(ctx, key.Namespace)
	if err != nil {
		return err
	}
	return s.store(ctx, key.Namespace, key.Concrete(gen), payload, s.ttlOrDefault(ttl))
}

// store writes payload and records the concrete key in the namespace member
// set so Clear can delete it.
func (s *responseCacheImpl) store(ctx context.Context, namespace, concrete string, payload []byte, ttl time.Duration) error {
	if err := s.cache.Set(ctx, concrete, string(payload), ttl); err != nil {
		return err
	}
	members := cache.MembersKey(namespace)
	if err := s.cache.SAdd(ctx, members, concrete); err != nil {
		return err
	}
	return s.cache.Expire(ctx, members, ttl+s.defaultTTL)
}

func (s *responseCacheImpl) Delete(ctx context.Context, key cache.Key) error {
	gen, err := s.generation(ctx, key.Namespace)
	if err != nil {
		return err
	}
	return s.cache.Delete(ctx, key.Concrete(gen))
}

// Clear makes every entry of the namespace unreachable by bumping its
// generation, then deletes the tracked keys. A value computed before the
// bump and written afterwards lands under the old generation and is never
// read.
func (s *responseCacheImpl) Clear(ctx context.Context, namespace string) error {
	gen, err := s.cache.Incr(ctx, cache.GenerationKey(namespace))
	if err != nil {
		return fmt.Errorf("failed to advance generation of namespace %s: %w", namespace, err)
	}

	members := cache.MembersKey(namespace)
	keys, err := s.cache.SMembers(ctx, members)
	if err != nil {
		logger.Get().Warn("Failed to list namespace members; entries will expire by TTL",
			zap.String("namespace", namespace), zap.Error(err))
		return nil
	}
	if err := s.cache.Delete(ctx, append(keys, members)...); err != nil {
		logger.Get().Warn("Failed to delete namespace members; entries will expire by TTL",
			zap.String("namespace", namespace), zap.Error(err))
	}
	logger.Get().Debug("Cleared cache namespace",
		zap.String("namespace", namespace), zap.Int64("generation", gen), zap.Int("deleted", len(keys)))
	return nil
}

func (s *responseCacheImpl) Fetch(ctx context.Context, key cache.Key, ttl time.Duration, dest interface{}, compute ComputeFunc) error {
	appLogger := logger.Get()

	gen, err := s.generation(ctx, key.Namespace)
	if err != nil {
		s.degraded(key, "generation lookup", err)
		return computeInto(ctx, dest, compute)
	}
	concrete := key.Concrete(gen)

	raw, err := s.cache.Get(ctx, concrete)
	switch {
	case err == nil:
		jsonErr := json.Unmarshal([]byte(raw), dest)
		if jsonErr == nil {
			metrics.CacheRequests.WithLabelValues(key.Endpoint, "hit").Inc()
			appLogger.Debug("Cache hit", zap.String("key", concrete))
			return nil
		}
		// Corrupt payload: drop it and recompute.
		s.degraded(key, "decode", jsonErr)
		_ = s.cache.Delete(ctx, concrete)
	case errors.Is(err, domain.ErrCacheMiss):
		metrics.CacheRequests.WithLabelValues(key.Endpoint, "miss").Inc()
		appLogger.Debug("Cache miss", zap.String("key", concrete))
	default:
		s.degraded(key, "read", err)
		return computeInto(ctx, dest, compute)
	}

	// Concurrent misses for one concrete key share a single computation.
	v, err, _ := s.group.Do(concrete, func() (interface{}, error) {
		payload, err := computePayload(ctx, compute)
		if err != nil {
			return nil, err
		}
		// The write uses the generation read before computing.
		if err := s.store(ctx, key.Namespace, concrete, payload, s.ttlOrDefault(ttl)); err != nil {
			s.degraded(key, "write", err)
		}
		return payload, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(v.([]byte), dest)
}

func (s *responseCacheImpl) degraded(key cache.Key, op string, err error) {
	metrics.CacheRequests.WithLabelValues(key.Endpoint, "error").Inc()
	logger.Get().Warn("Response cache unavailable, computing directly",
		zap.String("op", op),
		zap.String("namespace", key.Namespace),
		zap.String("endpoint", key.Endpoint),
		zap.Error(err))
}

func computePayload(ctx context.Context, compute ComputeFunc) ([]byte, error) {
	value, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return nil, domain.NewInternalError("failed to marshal response for caching", err)
	}
	return payload, nil
}

// computeInto runs compute and decodes its JSON form into dest, so a
// degraded response has the same shape as a cached one.
func computeInto(ctx context.Context, dest interface{}, compute ComputeFunc) error {
	payload, err := computePayload(ctx, compute)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, dest)
}

// noopResponseCache is used when no cache backend is configured.
type noopResponseCache struct{}

func (noopResponseCache) Get(ctx context.Context, key cache.Key) ([]byte, error) {
	return nil, domain.ErrCacheMiss
}

func (noopResponseCache) Set(ctx context.Context, key cache.Key, payload []byte, ttl time.Duration) error {
	return nil
}

func (noopResponseCache) Delete(ctx context.Context, key cache.Key) error {
	return nil
}

func (noopResponseCache) Clear(ctx context.Context, namespace string) error {
	return nil
}

func (noopResponseCache) Fetch(ctx context.Context, key cache.Key, ttl time.Duration, dest interface{}, compute ComputeFunc) error {
	return computeInto(ctx, dest, compute)
}
