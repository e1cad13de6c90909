package entity

import (
	"time"

	"github.com/paulmach/orb"
)

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Point returns the coordinates as an orb.Point, which is ordered [lon, lat].
func (c Coordinates) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// Event is one discoverable happening returned by the event feed.
//
// Location and Distance are always set together. MatchScore is set only when
// the query carried interests.
type Event struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	DateTime    time.Time    `json:"datetime"`
	MaxTickets  *int         `json:"maxTickets"`
	EventType   string       `json:"eventType"`
	RSVPCount   int          `json:"rsvpCount"`
	EventLink   string       `json:"eventLink"`
	Location    *Coordinates `json:"location,omitempty"`
	Distance    *float64     `json:"distance,omitempty"` // kilometers from the origin
	MatchScore  *int         `json:"matchScore,omitempty"`
}

// HasLocation reports whether the feed supplied a venue for the event.
func (e *Event) HasLocation() bool {
	return e.Location != nil
}

// WithMatchScore returns a copy of the event carrying the given score.
func (e Event) WithMatchScore(score int) Event {
	e.MatchScore = &score

	return e
}
