package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventradar/internal/delivery/api/response"
	"eventradar/internal/delivery/api/validator"
	"eventradar/internal/domain/entity"
	domainerrors "eventradar/internal/domain/errors"
	"eventradar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const defaultNumEvents = 10

// RecommendationHandlerParams holds dependencies for RecommendationHandler, injected by Fx.
type RecommendationHandlerParams struct {
	fx.In

	RecommendationUC usecase.RecommendationUsecase
	Logger           *slog.Logger
}

// RecommendationHandler serves ranked event recommendations
type RecommendationHandler struct {
	recommendationUC usecase.RecommendationUsecase
	logger           *slog.Logger
	now              func() time.Time
}

// NewRecommendationHandler is the constructor for RecommendationHandler
func NewRecommendationHandler(params RecommendationHandlerParams) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationUC: params.RecommendationUC,
		logger:           params.Logger,
		now:              time.Now,
	}
}

// RecommendationRequest represents the request body for finding events
type RecommendationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Interests string   `json:"interests" validate:"max=2000"`
	NumEvents *int     `json:"num_events" validate:"omitempty,min=1,max=100"`
}

// RecommendationsResponse is the payload of a successful recommendation request
type RecommendationsResponse struct {
	Metadata RecommendationMetadata `json:"metadata"`
	Events   []RankedEvent          `json:"events"`
}

// RecommendationMetadata echoes the query alongside when it was answered
type RecommendationMetadata struct {
	Timestamp time.Time          `json:"timestamp"`
	Location  entity.Coordinates `json:"location"`
	Query     QuerySummary       `json:"query"`
}

// QuerySummary describes what was asked for and how much came back
type QuerySummary struct {
	Interests          *string `json:"interests"`
	NumEventsRequested int     `json:"num_events_requested"`
	NumEventsFound     int     `json:"num_events_found"`
}

// RankedEvent is an event with its position in the returned list
type RankedEvent struct {
	ID int `json:"id"`
	entity.Event
}

// FindRecommendations handles POST /api/recommendations
func (h *RecommendationHandler) FindRecommendations(c echo.Context) error {
	var req RecommendationRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequestWithDetails(c, "INVALID_INPUT", "Invalid recommendation request body", nil)
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequestWithDetails(c,
			domainerrors.ErrValidationFailed.ErrorCode(),
			domainerrors.ErrValidationFailed.Message(),
			validator.FieldErrors(err),
		)
	}

	numEvents := defaultNumEvents
	if req.NumEvents != nil {
		numEvents = *req.NumEvents
	}

	origin := entity.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	interests := strings.TrimSpace(req.Interests)

	events, err := h.recommendationUC.FindNearbyEvents(c.Request().Context(), &usecase.FindNearbyEventsInput{
		Origin:    origin,
		Count:     numEvents,
		Interests: interests,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	ranked := make([]RankedEvent, len(events))
	for i, event := range events {
		ranked[i] = RankedEvent{ID: i, Event: event}
	}

	summary := QuerySummary{
		NumEventsRequested: numEvents,
		NumEventsFound:     len(events),
	}
	if interests != "" {
		summary.Interests = &interests
	}

	return response.Success(c, http.StatusOK, RecommendationsResponse{
		Metadata: RecommendationMetadata{
			Timestamp: h.now().UTC(),
			Location:  origin,
			Query:     summary,
		},
		Events: ranked,
	})
}
