package domain

import "context"

// Geocoder resolves a free-text place name to at most one candidate.
// A zero PlaceResult with a nil error means "no match", which callers must
// treat as a normal outcome.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (PlaceResult, error)
}

// LocationProvider produces the current origin position, the service-side
// analogue of a device GPS fix.
type LocationProvider interface {
	CurrentLocation(ctx context.Context) (Coordinate, error)
}

// SummaryProvider fetches an encyclopedia summary for a page title guess.
// A zero SummaryInfo with a nil error means no page exists for the title.
type SummaryProvider interface {
	Summarize(ctx context.Context, title string) (SummaryInfo, error)
}
