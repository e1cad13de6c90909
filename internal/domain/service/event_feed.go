package service

import (
	"context"

	"eventradar/internal/domain/entity"
)

// EventFeed defines the interface for the geo-indexed event feed
type EventFeed interface {
	// FetchEvents returns up to count upcoming physical events near origin, in the
	// feed's own order (by start time). Events with a venue carry Location and Distance.
	// A non-success response yields *errors.UpstreamFetchError.
	FetchEvents(ctx context.Context, origin entity.Coordinates, count int) ([]entity.Event, error)
}
