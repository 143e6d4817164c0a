// Package domain models place searches: coordinates, great-circle
// distances, geocoding results, and encyclopedia summaries.
//
// # Coordinates
//
// All coordinates are WGS-84 decimal degrees. Latitude is positive north,
// longitude positive east. No range validation is performed anywhere in the
// package: out-of-range degree values produce mathematically defined but
// meaningless distances, never an error. Rendered text and route URLs print
// coordinates with six decimal places, matching the precision geocoding
// providers return.
//
// # Distance
//
// [DistanceKm] uses the Haversine formula with a mean Earth radius of
// 6371 km and rounds to two decimal places. The rounding is part of the
// contract: DistanceKm(a, a) is exactly 0 and displayed values never carry
// float noise.
//
// # Search outcomes
//
// A search either fails before producing an outcome (see [ErrEmptyQuery],
// [ErrPermissionDenied], [ErrLocationUnavailable]) or produces a
// [SearchOutcome]. "Place not found" is an outcome, not an error: the
// geocoder returning zero candidates is a normal result of a valid search.
// A missing encyclopedia summary is also never an error; the zero
// [SummaryInfo] simply renders nothing.
//
// # Route URLs
//
// [RouteURL] builds an externally openable directions link of the form
// <base>/maps/dir/<lat1>,<lon1>/<lat2>,<lon2>. The embedded coordinates are
// exactly the ones the distance was computed from, so the displayed number
// and the link can never disagree.
package domain
