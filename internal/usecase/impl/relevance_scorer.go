package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	deliverycontext "eventradar/internal/delivery/context"
	"eventradar/internal/domain/entity"
	"eventradar/internal/domain/service"
	"eventradar/internal/infra/metrics"
	"eventradar/internal/infra/tracing"
	"eventradar/internal/usecase"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
)

const (
	minMatchScore = 0
	maxMatchScore = 100
)

// RelevanceScorerParams holds dependencies for the relevance scorer, injected by Fx.
type RelevanceScorerParams struct {
	fx.In

	Logger     *slog.Logger
	Completion service.CompletionService
	Metrics    *metrics.Metrics `optional:"true"`
}

type relevanceScorer struct {
	logger     *slog.Logger
	completion service.CompletionService
	metrics    *metrics.Metrics
}

// NewRelevanceScorer creates a RelevanceScorer backed by a completion provider
func NewRelevanceScorer(params RelevanceScorerParams) usecase.RelevanceScorer {
	return &relevanceScorer{
		logger:     params.Logger,
		completion: params.Completion,
		metrics:    params.Metrics,
	}
}

// ScoreEvent implements usecase.RelevanceScorer
func (s *relevanceScorer) ScoreEvent(ctx context.Context, event entity.Event, interests string) (score int, err error) {
	ctx, endSpan := tracing.StartSpan(ctx, "scoring.score_event", attribute.String("event.name", event.Name))
	defer func() { endSpan(err) }()

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	reply, err := s.completion.Complete(ctx, buildMatchPrompt(event, interests))
	if err != nil {
		s.metrics.IncScoring(metrics.OutcomeError)

		return 0, err
	}

	logger.DebugContext(ctx, "Relevance analysis received",
		slog.String("event", event.Name),
		slog.String("analysis", reply),
	)

	score, ok := parseMatchScore(reply)
	if !ok {
		logger.WarnContext(ctx, "Could not read match score from analysis, scoring 0",
			slog.String("event", event.Name),
		)
		s.metrics.IncScoring(metrics.OutcomeFallback)

		return minMatchScore, nil
	}

	s.metrics.IncScoring(metrics.OutcomeScored)

	return score, nil
}

func buildMatchPrompt(event entity.Event, interests string) string {
	distance := "unknown"
	if event.Distance != nil {
		distance = fmt.Sprintf("%.2f km", *event.Distance)
	}

	var b strings.Builder
	b.WriteString("A user described their interests as follows:\n\n")
	b.WriteString(interests)
	b.WriteString("\n\nAnalyze how well the event below matches these interests. ")
	b.WriteString("Extrapolate to related interests the user is likely to share, ")
	b.WriteString("and consider the event's date and distance from the user. ")
	b.WriteString("Finish with a single integer match score from 0 to 100 in curly brackets, for example {74}. ")
	b.WriteString("Do not be afraid to give a 0 or a 100.\n\n")
	fmt.Fprintf(&b, "Event name: %s\n", event.Name)
	fmt.Fprintf(&b, "Event description: %s\n", event.Description)
	fmt.Fprintf(&b, "Event date: %s\n", event.DateTime.Format(time.RFC1123))
	fmt.Fprintf(&b, "Distance from user: %s\n", distance)

	return b.String()
}

// parseMatchScore reads the integer enclosed by the last '{' in reply and the
// first '}' after it. Anything else, including values outside [0, 100], fails.
func parseMatchScore(reply string) (int, bool) {
	open := strings.LastIndex(reply, "{")
	if open < 0 {
		return 0, false
	}

	closing := strings.Index(reply[open+1:], "}")
	if closing < 0 {
		return 0, false
	}

	score, err := strconv.Atoi(strings.TrimSpace(reply[open+1 : open+1+closing]))
	if err != nil || score < minMatchScore || score > maxMatchScore {
		return 0, false
	}

	return score, true
}
