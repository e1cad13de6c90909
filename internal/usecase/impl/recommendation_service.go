package impl

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"time"

	"eventradar/config"
	deliverycontext "eventradar/internal/delivery/context"
	"eventradar/internal/domain/entity"
	domainerrors "eventradar/internal/domain/errors"
	"eventradar/internal/domain/geo"
	"eventradar/internal/domain/service"
	"eventradar/internal/infra/metrics"
	"eventradar/internal/infra/tracing"
	"eventradar/internal/usecase"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// RecommendationServiceParams holds dependencies for the recommendation service, injected by Fx.
type RecommendationServiceParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Feed    service.EventFeed
	Scorer  usecase.RelevanceScorer
	Guard   usecase.InterestGuard `optional:"true"`
	Metrics *metrics.Metrics      `optional:"true"`
}

type recommendationService struct {
	logger         *slog.Logger
	feed           service.EventFeed
	scorer         usecase.RelevanceScorer
	guard          usecase.InterestGuard
	metrics        *metrics.Metrics
	defaultCount   int
	maxCount       int
	maxConcurrency int
}

// NewRecommendationService creates a new recommendation service instance
func NewRecommendationService(params RecommendationServiceParams) usecase.RecommendationUsecase {
	svc := &recommendationService{
		logger:  params.Logger,
		feed:    params.Feed,
		scorer:  params.Scorer,
		metrics: params.Metrics,
	}

	if feedCfg := params.Config.Feed; feedCfg != nil {
		svc.defaultCount = feedCfg.DefaultCount
		svc.maxCount = feedCfg.MaxCount
	}
	if svc.defaultCount <= 0 {
		svc.defaultCount = 10
	}

	if scoringCfg := params.Config.Scoring; scoringCfg != nil {
		svc.maxConcurrency = scoringCfg.MaxConcurrency
		if scoringCfg.InjectionGuard {
			svc.guard = params.Guard
		}
	}

	return svc
}

// FindNearbyEvents implements usecase.RecommendationUsecase
func (s *recommendationService) FindNearbyEvents(ctx context.Context, input *usecase.FindNearbyEventsInput) (events []entity.Event, err error) {
	start := time.Now()
	scored := input.Interests != ""

	ctx, endSpan := tracing.StartSpan(ctx, "recommendation.find_nearby_events",
		attribute.Int("request.count", input.Count),
		attribute.Bool("request.scored", scored),
	)
	defer func() { endSpan(err) }()

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	if !geo.IsValid(input.Origin.Point()) {
		return nil, domainerrors.ErrInvalidCoordinates
	}

	if scored && s.guard != nil {
		rejected, err := s.guard.Check(ctx, input.Interests)
		if err != nil {
			return nil, err
		}
		if rejected {
			return nil, domainerrors.ErrInterestsRejected
		}
	}

	events, err = s.feed.FetchEvents(ctx, input.Origin, s.normalizeCount(input.Count))
	if err != nil {
		logger.ErrorContext(ctx, "Failed to fetch events", slog.Any("error", err))

		return nil, err
	}

	if !scored {
		s.metrics.ObserveRanking(false, time.Since(start))

		return events, nil
	}

	ranked, err := s.scoreAll(ctx, events, input.Interests)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to score events", slog.Any("error", err))

		return nil, err
	}

	// Stable so equal scores keep the feed's start-time order.
	slices.SortStableFunc(ranked, func(a, b entity.Event) int {
		return cmp.Compare(*b.MatchScore, *a.MatchScore)
	})

	s.metrics.ObserveRanking(true, time.Since(start))
	logger.InfoContext(ctx, "Ranked nearby events",
		slog.Int("events", len(ranked)),
		slog.Duration("elapsed", time.Since(start)),
	)

	return ranked, nil
}

// scoreAll scores every event concurrently. The first scorer error cancels the
// rest and no partial results are returned.
func (s *recommendationService) scoreAll(ctx context.Context, events []entity.Event, interests string) ([]entity.Event, error) {
	ranked := make([]entity.Event, len(events))

	g, gctx := errgroup.WithContext(ctx)
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}

	for i, event := range events {
		g.Go(func() error {
			score, err := s.scorer.ScoreEvent(gctx, event, interests)
			if err != nil {
				return err
			}
			ranked[i] = event.WithMatchScore(score)

			return nil
		})
	}

	err := g.Wait()

	if ctx.Err() != nil {
		return nil, errors.Wrap(ctx.Err(), "event scoring canceled")
	}
	if err != nil {
		return nil, err
	}

	return ranked, nil
}

func (s *recommendationService) normalizeCount(count int) int {
	if count <= 0 {
		return s.defaultCount
	}
	if s.maxCount > 0 && count > s.maxCount {
		return s.maxCount
	}

	return count
}
