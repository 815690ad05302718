package service

import (
	"context"
	"strings"
	"time"

	"quiz-master/internal/cache"
	"quiz-master/internal/domain"
	"quiz-master/internal/logger"
	"quiz-master/internal/metrics"

	"go.uber.org/zap"
)

const (
	defaultInvalidationAttempts = 3
	defaultInvalidationBackoff  = 50 * time.Millisecond
)

// InvalidationCoordinator clears the cache namespaces affected by a
// committed mutation. It must only be called after the commit.
type InvalidationCoordinator interface {
	Invalidate(ctx context.Context, events ...domain.InvalidationEvent)
}

type invalidationCoordinatorImpl struct {
	cache    ResponseCache
	attempts int
	backoff  time.Duration
}

func NewInvalidationCoordinator(rc ResponseCache) InvalidationCoordinator {
	return &invalidationCoordinatorImpl{
		cache:    rc,
		attempts: defaultInvalidationAttempts,
		backoff:  defaultInvalidationBackoff,
	}
}

// NamespacesFor maps events to the namespaces they affect, deduplicated and
// in first-seen order.
func NamespacesFor(events ...domain.InvalidationEvent) []string {
	seen := make(map[string]struct{})
	var namespaces []string
	add := func(ns string) {
		if _, ok := seen[ns]; ok {
			return
		}
		seen[ns] = struct{}{}
		namespaces = append(namespaces, ns)
	}

	for _, e := range events {
		switch e.Kind {
		case domain.InvalidateSubject, domain.InvalidateChapter:
			add(cache.CatalogNamespace)
			add(cache.SubjectNamespace(e.SubjectID))
		case domain.InvalidateQuiz:
			add(cache.QuizNamespace(e.ID))
			add(cache.CatalogNamespace)
			if e.SubjectID != 0 {
				add(cache.SubjectNamespace(e.SubjectID))
			}
		case domain.InvalidateUser:
			add(cache.UserNamespace(e.ID))
		case domain.InvalidateAdminGlobal:
			add(cache.AdminNamespace)
		}
	}
	return namespaces
}

func (c *invalidationCoordinatorImpl) Invalidate(ctx context.Context, events ...domain.InvalidationEvent) {
	// The mutation has already committed, so a cancelled request must not
	// skip the clear.
	ctx = context.WithoutCancel(ctx)
	for _, ns := range NamespacesFor(events...) {
		c.clear(ctx, ns)
	}
}

func (c *invalidationCoordinatorImpl) clear(ctx context.Context, namespace string) {
	appLogger := logger.Get()
	var err error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if err = c.cache.Clear(ctx, namespace); err == nil {
			metrics.Invalidations.WithLabelValues(namespaceKind(namespace), "cleared").Inc()
			appLogger.Debug("Invalidated cache namespace", zap.String("namespace", namespace), zap.Int("attempt", attempt))
			return
		}
		if attempt < c.attempts {
			time.Sleep(c.backoff * time.Duration(attempt))
		}
	}
	metrics.Invalidations.WithLabelValues(namespaceKind(namespace), "failed").Inc()
	appLogger.Error("Failed to invalidate cache namespace; stale entries expire by TTL",
		zap.String("namespace", namespace),
		zap.Int("attempts", c.attempts),
		zap.Error(err))
}

// namespaceKind strips the id from a namespace for use as a metric label.
func namespaceKind(namespace string) string {
	kind, _, _ := strings.Cut(namespace, ":")
	return kind
}
