package ports

import (
	"context"

	"github.com/jsandoval/campusmap/internal/core/domain"
)

// EventPublisher publishes map-change events to a message broker.
type EventPublisher interface {
	PublishEntityCreated(ctx context.Context, kind, campusID, name string) error
	PublishImportCompleted(ctx context.Context, campusID, kind string, tally *domain.ImportTally) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

// EventSubscriber subscribes to map-change events from a message broker.
type EventSubscriber interface {
	SubscribeEntityCreated(ctx context.Context, handler func(ctx context.Context, kind, campusID, name string) error) error
	SubscribeImportCompleted(ctx context.Context, handler func(ctx context.Context, campusID, kind string, tally *domain.ImportTally) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
