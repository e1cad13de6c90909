package feed

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventradar/config"
	"eventradar/internal/domain/entity"
	domainerrors "eventradar/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var atlanta = entity.Coordinates{Latitude: 33.75, Longitude: -84.39}

func newTestFeed(t *testing.T, handler http.HandlerFunc) *meetupFeed {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Feed: &config.FeedConfig{
			BaseURL:       server.URL,
			OperationName: "recommendedEventsWithSeries",
			Timezone:      "UTC",
			Timeout:       5 * time.Second,
		},
	}
	cfg.Feed.PersistedQuery.Version = 1
	cfg.Feed.PersistedQuery.Sha256Hash = "hash123"

	svc, err := NewMeetupFeed(FeedParams{Config: cfg, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	f := svc.(*meetupFeed)
	f.now = func() time.Time { return time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC) }

	return f
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func TestFetchEvents_SendsPersistedQuery(t *testing.T) {
	var captured map[string]any
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		writeJSON(w, `{"data":{"result":{"edges":[]}}}`)
	})

	events, err := f.FetchEvents(context.Background(), atlanta, 7)
	require.NoError(t, err)
	assert.Empty(t, events)

	assert.Equal(t, "recommendedEventsWithSeries", captured["operationName"])

	variables := captured["variables"].(map[string]any)
	assert.Equal(t, 7.0, variables["first"])
	assert.Equal(t, 33.75, variables["lat"])
	assert.Equal(t, -84.39, variables["lon"])
	assert.Equal(t, "2025-03-14T12:30:00Z", variables["startDateRange"])
	assert.Equal(t, "2025-03-14", variables["seriesStartDate"])
	assert.Equal(t, "PHYSICAL", variables["eventType"])
	assert.Equal(t, "DATETIME", variables["sortField"])
	assert.Equal(t, true, variables["doConsolidateEvents"])

	extensions := captured["extensions"].(map[string]any)
	query := extensions["persistedQuery"].(map[string]any)
	assert.Equal(t, 1.0, query["version"])
	assert.Equal(t, "hash123", query["sha256Hash"])
}

func TestFetchEvents_MapsNodes(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"data":{"result":{"edges":[
			{"node":{"title":"Jazz Night","description":"Live **jazz**","dateTime":"2025-03-15T19:00-04:00",
				"maxTickets":40,"eventType":"PHYSICAL","rsvps":{"totalCount":12},
				"eventUrl":"https://example.com/jazz","venue":{"lat":33.76,"lon":-84.40}}},
			{"node":{"title":"Online Meetup","description":"","dateTime":"2025-03-16T10:00:00Z",
				"maxTickets":null,"eventType":"ONLINE","rsvps":{"totalCount":3},
				"eventUrl":"https://example.com/online","venue":null}},
			{"node":{"title":"Sold Out","description":"","dateTime":"2025-03-17T10:00",
				"maxTickets":0,"eventType":"PHYSICAL","rsvps":{"totalCount":0},
				"eventUrl":"https://example.com/sold","venue":{"lat":33.75,"lon":-84.39}}}
		]}}}`)
	})

	events, err := f.FetchEvents(context.Background(), atlanta, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)

	jazz := events[0]
	assert.Equal(t, "Jazz Night", jazz.Name)
	assert.Equal(t, "Live **jazz**", jazz.Description)
	assert.True(t, jazz.DateTime.Equal(time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC)))
	require.NotNil(t, jazz.MaxTickets)
	assert.Equal(t, 40, *jazz.MaxTickets)
	assert.Equal(t, 12, jazz.RSVPCount)
	assert.Equal(t, "https://example.com/jazz", jazz.EventLink)
	require.NotNil(t, jazz.Location)
	require.NotNil(t, jazz.Distance)
	assert.Equal(t, entity.Coordinates{Latitude: 33.76, Longitude: -84.40}, *jazz.Location)
	assert.InDelta(t, 1.446, *jazz.Distance, 0.01)
	assert.Nil(t, jazz.MatchScore)

	online := events[1]
	assert.Nil(t, online.Location)
	assert.Nil(t, online.Distance)
	assert.Nil(t, online.MaxTickets)

	soldOut := events[2]
	assert.Nil(t, soldOut.MaxTickets)
	assert.True(t, soldOut.DateTime.Equal(time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC)))
	require.NotNil(t, soldOut.Distance)
	assert.Equal(t, 0.0, *soldOut.Distance)
}

func TestFetchEvents_LocationAndDistanceSetTogether(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"data":{"result":{"edges":[
			{"node":{"title":"A","dateTime":"2025-03-15T19:00:00Z","venue":{"lat":1,"lon":2}}},
			{"node":{"title":"B","dateTime":"2025-03-15T19:00:00Z","venue":null}},
			{"node":{"title":"C","dateTime":"2025-03-15T19:00:00Z"}}
		]}}}`)
	})

	events, err := f.FetchEvents(context.Background(), atlanta, 3)
	require.NoError(t, err)

	for _, event := range events {
		assert.Equal(t, event.Location != nil, event.Distance != nil, event.Name)
	}
}

func TestFetchEvents_SkipsUnreadableDateTime(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"data":{"result":{"edges":[
			{"node":{"title":"Bad","dateTime":"next tuesday"}},
			{"node":{"title":"Good","dateTime":"2025-03-15T19:00:00Z"}}
		]}}}`)
	})

	events, err := f.FetchEvents(context.Background(), atlanta, 2)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Good", events[0].Name)
}

func TestFetchEvents_NonSuccessStatus(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	events, err := f.FetchEvents(context.Background(), atlanta, 10)
	require.Error(t, err)
	assert.Nil(t, events)

	var fetchErr *domainerrors.UpstreamFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusInternalServerError, fetchErr.StatusCode())
	assert.Equal(t, "500 Internal Server Error", fetchErr.Status())
	assert.Equal(t, http.StatusBadGateway, fetchErr.HTTPCode())
	assert.Contains(t, fetchErr.Message(), "500 Internal Server Error")
}

func TestFetchEvents_GraphQLErrors(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"errors":[{"message":"PersistedQueryNotFound"}]}`)
	})

	_, err := f.FetchEvents(context.Background(), atlanta, 10)

	var fetchErr *domainerrors.UpstreamFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "PersistedQueryNotFound", fetchErr.Status())
}

func TestFetchEvents_MalformedBody(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `<html>`)
	})

	_, err := f.FetchEvents(context.Background(), atlanta, 10)

	var fetchErr *domainerrors.UpstreamFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "malformed response body", fetchErr.Status())
}

func TestFetchEvents_TransportFailure(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {})
	f.endpoint = "http://127.0.0.1:1"

	_, err := f.FetchEvents(context.Background(), atlanta, 10)

	var fetchErr *domainerrors.UpstreamFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, 0, fetchErr.StatusCode())
	assert.NotEmpty(t, fetchErr.Status())
}

func TestNewMeetupFeed_UnknownTimezoneFallsBackToUTC(t *testing.T) {
	cfg := &config.Config{Feed: &config.FeedConfig{BaseURL: "http://feed.invalid", Timezone: "Mars/Olympus"}}

	svc, err := NewMeetupFeed(FeedParams{Config: cfg, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, svc.(*meetupFeed).location)
}

func TestNewMeetupFeed_RequiresBaseURL(t *testing.T) {
	_, err := NewMeetupFeed(FeedParams{Config: &config.Config{Feed: &config.FeedConfig{}}, Logger: slog.Default()})
	assert.Error(t, err)
}
