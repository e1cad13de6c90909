package usecase

import (
	"context"

	"eventradar/internal/domain/entity"
)

// FindNearbyEventsInput describes one recommendation request
type FindNearbyEventsInput struct {
	Origin entity.Coordinates

	// Count is the number of events to request from the feed.
	// Values <= 0 use the configured default; larger values are clamped to the configured maximum.
	Count int

	// Interests is free text describing what the user enjoys.
	// Empty means no scoring: events come back in feed order.
	Interests string
}

// RecommendationUsecase defines the interface for finding and ranking nearby events
type RecommendationUsecase interface {
	// FindNearbyEvents fetches events around the origin and, when interests are given,
	// scores each one and returns them sorted by descending match score.
	// Ties keep their feed order.
	FindNearbyEvents(ctx context.Context, input *FindNearbyEventsInput) ([]entity.Event, error)
}

// RelevanceScorer rates how well one event matches a user's interests
type RelevanceScorer interface {
	// ScoreEvent returns an integer in [0, 100]. A reply that cannot be
	// parsed scores 0; only provider failures are returned as errors.
	ScoreEvent(ctx context.Context, event entity.Event, interests string) (int, error)
}

// InterestGuard screens interest text before it is embedded in scoring prompts
type InterestGuard interface {
	// Check reports whether the text looks like an attempt to steer the scorer.
	Check(ctx context.Context, interests string) (rejected bool, err error)
}
