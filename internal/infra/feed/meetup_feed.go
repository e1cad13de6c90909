// Package feed adapts the Meetup GraphQL search endpoint to the EventFeed interface.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventradar/config"
	"eventradar/internal/domain/entity"
	domainerrors "eventradar/internal/domain/errors"
	"eventradar/internal/domain/geo"
	"eventradar/internal/domain/service"
	"eventradar/internal/infra/httpclient"
	"eventradar/internal/infra/metrics"
	"eventradar/internal/infra/tracing"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/fx"
)

// Fixed search filters: physical venues only, soonest first, series collapsed.
const (
	eventTypePhysical       = "PHYSICAL"
	sortFieldDateTime       = "DATETIME"
	numberOfEventsForSeries = 5
)

// dateTimeLayouts lists the timestamp shapes the feed is known to emit.
// Meetup omits seconds, e.g. "2025-01-02T18:00-05:00".
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

// naiveLayouts are timestamps without a zone; they are read in the feed's zone.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type searchRequest struct {
	OperationName string          `json:"operationName"`
	Variables     searchVariables `json:"variables"`
	Extensions    struct {
		PersistedQuery persistedQuery `json:"persistedQuery"`
	} `json:"extensions"`
}

type persistedQuery struct {
	Version    int    `json:"version"`
	Sha256Hash string `json:"sha256Hash"`
}

type searchVariables struct {
	First                   int        `json:"first"`
	Lat                     float64    `json:"lat"`
	Lon                     float64    `json:"lon"`
	StartDateRange          string     `json:"startDateRange"`
	EventType               string     `json:"eventType"`
	NumberOfEventsForSeries int        `json:"numberOfEventsForSeries"`
	SeriesStartDate         string     `json:"seriesStartDate"`
	SortField               string     `json:"sortField"`
	DoConsolidateEvents     bool       `json:"doConsolidateEvents"`
	DoPromotePaypalEvents   bool       `json:"doPromotePaypalEvents"`
	IndexAlias              indexAlias `json:"indexAlias"`
	DataConfiguration       string     `json:"dataConfiguration"`
}

type indexAlias struct {
	FilterOutWrongLanguage string `json:"filterOutWrongLanguage"`
	ModelVersion           string `json:"modelVersion"`
}

type searchResponse struct {
	Data *struct {
		Result struct {
			Edges []struct {
				Node eventNode `json:"node"`
			} `json:"edges"`
		} `json:"result"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type eventNode struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DateTime    string `json:"dateTime"`
	MaxTickets  *int   `json:"maxTickets"`
	EventType   string `json:"eventType"`
	RSVPs       struct {
		TotalCount int `json:"totalCount"`
	} `json:"rsvps"`
	EventURL string `json:"eventUrl"`
	Venue    *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"venue"`
}

// FeedParams holds dependencies for the event feed, injected by Fx.
type FeedParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

type meetupFeed struct {
	endpoint      string
	operationName string
	query         persistedQuery
	location      *time.Location
	httpClient    *http.Client
	logger        *slog.Logger
	metrics       *metrics.Metrics
	now           func() time.Time
}

// NewMeetupFeed creates an EventFeed backed by the Meetup GraphQL endpoint.
func NewMeetupFeed(params FeedParams) (service.EventFeed, error) {
	cfg := params.Config.Feed
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("feed base URL is required")
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		params.Logger.Warn("Unknown feed timezone, falling back to UTC",
			slog.String("timezone", cfg.Timezone),
			slog.Any("error", err),
		)
		location = time.UTC
	}

	return &meetupFeed{
		endpoint:      cfg.BaseURL,
		operationName: cfg.OperationName,
		query: persistedQuery{
			Version:    cfg.PersistedQuery.Version,
			Sha256Hash: cfg.PersistedQuery.Sha256Hash,
		},
		location:   location,
		httpClient: httpclient.New(cfg.Timeout),
		logger:     params.Logger,
		metrics:    params.Metrics,
		now:        time.Now,
	}, nil
}

// FetchEvents implements service.EventFeed
func (f *meetupFeed) FetchEvents(ctx context.Context, origin entity.Coordinates, count int) (events []entity.Event, err error) {
	ctx, endSpan := tracing.StartSpan(ctx, "feed.fetch_events", attribute.Int("feed.count", count))
	defer func() { endSpan(err) }()

	body, err := json.Marshal(f.buildRequest(origin, count))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	payload, err := f.do(req)
	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeError
	}
	f.metrics.ObserveFeedRequest(outcome, time.Since(start))
	if err != nil {
		return nil, err
	}

	events = make([]entity.Event, 0, len(payload.Data.Result.Edges))
	for _, edge := range payload.Data.Result.Edges {
		event, err := f.toEvent(edge.Node, origin)
		if err != nil {
			f.logger.WarnContext(ctx, "Skipping feed event with unreadable start time",
				slog.String("title", edge.Node.Title),
				slog.String("date_time", edge.Node.DateTime),
				slog.Any("error", err),
			)

			continue
		}
		events = append(events, event)
	}

	f.logger.DebugContext(ctx, "Fetched events from feed",
		slog.Int("requested", count),
		slog.Int("returned", len(events)),
	)

	return events, nil
}

// do performs the round trip and maps every failure to UpstreamFetchError.
func (f *meetupFeed) do(req *http.Request) (*searchResponse, error) {
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, domainerrors.NewUpstreamFetchError(0, err.Error(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, domainerrors.NewUpstreamFetchError(resp.StatusCode, resp.Status, nil)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, domainerrors.NewUpstreamFetchError(resp.StatusCode, "malformed response body", err)
	}

	if payload.Data == nil {
		status := "response carried no data"
		if len(payload.Errors) > 0 {
			messages := make([]string, 0, len(payload.Errors))
			for _, e := range payload.Errors {
				messages = append(messages, e.Message)
			}
			status = strings.Join(messages, "; ")
		}

		return nil, domainerrors.NewUpstreamFetchError(resp.StatusCode, status, nil)
	}

	return &payload, nil
}

func (f *meetupFeed) buildRequest(origin entity.Coordinates, count int) searchRequest {
	now := f.now().In(f.location)

	req := searchRequest{
		OperationName: f.operationName,
		Variables: searchVariables{
			First:                   count,
			Lat:                     origin.Latitude,
			Lon:                     origin.Longitude,
			StartDateRange:          now.Format(time.RFC3339),
			EventType:               eventTypePhysical,
			NumberOfEventsForSeries: numberOfEventsForSeries,
			SeriesStartDate:         now.Format(time.DateOnly),
			SortField:               sortFieldDateTime,
			DoConsolidateEvents:     true,
			DoPromotePaypalEvents:   false,
			IndexAlias: indexAlias{
				FilterOutWrongLanguage: "true",
				ModelVersion:           "split_offline_online",
			},
			DataConfiguration: "{}",
		},
	}
	req.Extensions.PersistedQuery = f.query

	return req
}

// toEvent maps one feed node. Location and Distance are derived together here.
func (f *meetupFeed) toEvent(node eventNode, origin entity.Coordinates) (entity.Event, error) {
	startsAt, err := f.parseDateTime(node.DateTime)
	if err != nil {
		return entity.Event{}, err
	}

	event := entity.Event{
		Name:        node.Title,
		Description: node.Description,
		DateTime:    startsAt,
		EventType:   node.EventType,
		RSVPCount:   node.RSVPs.TotalCount,
		EventLink:   node.EventURL,
	}

	// A zero count is reported the same as no limit.
	if node.MaxTickets != nil && *node.MaxTickets > 0 {
		maxTickets := *node.MaxTickets
		event.MaxTickets = &maxTickets
	}

	if node.Venue != nil {
		location := entity.Coordinates{Latitude: node.Venue.Lat, Longitude: node.Venue.Lon}
		distance := geo.Distance(origin.Point(), location.Point())
		event.Location = &location
		event.Distance = &distance
	}

	return event, nil
}

func (f *meetupFeed) parseDateTime(value string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, f.location); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Errorf("unsupported date time %q", value)
}
