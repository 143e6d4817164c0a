package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Search failure modes. Steps that hit these abort the search; everything
// else degrades into a normal outcome.
var (
	// ErrEmptyQuery rejects empty or whitespace-only queries before any
	// provider is contacted.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrPermissionDenied means no origin position source was granted:
	// neither a caller-supplied origin nor a configured location provider.
	ErrPermissionDenied = errors.New("location access not granted")

	// ErrLocationUnavailable means the location provider failed to produce
	// a position.
	ErrLocationUnavailable = errors.New("current location unavailable")
)

// PlaceResult is a geocoded place. The zero value means the geocoder
// returned no candidates; Found distinguishes that from a place at (0, 0).
type PlaceResult struct {
	Coordinate  Coordinate `json:"coordinate"`
	DisplayName string     `json:"display_name,omitempty"`
	Found       bool       `json:"found"`
}

// SummaryInfo is a best-effort encyclopedia summary. All fields are
// optional; the zero value means "no summary available" and is never an
// error condition.
type SummaryInfo struct {
	Title        string `json:"title,omitempty"`
	Extract      string `json:"extract,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// Empty reports whether the summary carries no usable content.
func (s SummaryInfo) Empty() bool {
	return s.Title == "" && s.Extract == "" && s.ThumbnailURL == ""
}

// SearchStatus classifies a completed search.
type SearchStatus string

const (
	// StatusOK means the place was resolved and a distance computed.
	StatusOK SearchStatus = "ok"
	// StatusNotFound means the geocoder returned zero candidates. This is
	// informational, not an error.
	StatusNotFound SearchStatus = "not_found"
)

// SearchOutcome is the result of one search invocation. It exists only for
// display and auditing; nothing outlives the search that produced it.
type SearchOutcome struct {
	Query      string       `json:"query"`
	Status     SearchStatus `json:"status"`
	Origin     Coordinate   `json:"origin"`
	Place      PlaceResult  `json:"place,omitempty"`
	DistanceKm float64      `json:"distance_km"`
	RouteURL   string       `json:"route_url,omitempty"`
	Summary    SummaryInfo  `json:"summary,omitempty"`
	SearchedAt time.Time    `json:"searched_at"`
}

// RenderText composes the user-visible result string: both coordinates with
// six decimal places, the distance in km, the route URL, and the summary
// when present.
func (o SearchOutcome) RenderText() string {
	if o.Status == StatusNotFound {
		return fmt.Sprintf("No results found for %q.", o.Query)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your location: %s\n", o.Origin)
	if o.Place.DisplayName != "" {
		fmt.Fprintf(&b, "Place: %s (%s)\n", o.Place.DisplayName, o.Place.Coordinate)
	} else {
		fmt.Fprintf(&b, "Place: %s\n", o.Place.Coordinate)
	}
	fmt.Fprintf(&b, "Distance: %.2f km\n", o.DistanceKm)
	fmt.Fprintf(&b, "Route: %s", o.RouteURL)

	if !o.Summary.Empty() {
		b.WriteString("\n\n")
		if o.Summary.Title != "" {
			fmt.Fprintf(&b, "%s: ", o.Summary.Title)
		}
		b.WriteString(o.Summary.Extract)
	}
	return b.String()
}

// RenderError produces the user-visible text for a failed search. Fatal
// failures carry the "Erro:" prefix; the empty-query rejection is a prompt,
// not a result.
func RenderError(err error) string {
	if errors.Is(err, ErrEmptyQuery) {
		return "Type a place name to search."
	}
	return "Erro: " + err.Error()
}
