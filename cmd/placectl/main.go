// Command placectl runs a single place search from the terminal: it resolves
// the query, reports the great-circle distance from the origin, prints a
// route URL on the external map service, and appends an encyclopedia summary
// when one exists.
//
// Usage:
//
//	placectl [-lat -23.55 -lon -46.63] "Rio de Janeiro"
//
// Without -lat/-lon the origin comes from the configured LOCATION_PROVIDER.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lodestar-geo/place-search-service/internal/adapter/location"
	"github.com/lodestar-geo/place-search-service/internal/adapter/nominatim"
	"github.com/lodestar-geo/place-search-service/internal/adapter/wikipedia"
	"github.com/lodestar-geo/place-search-service/internal/config"
	"github.com/lodestar-geo/place-search-service/internal/domain"
	"github.com/lodestar-geo/place-search-service/internal/observability"
	"github.com/lodestar-geo/place-search-service/internal/search"
)

func main() {
	os.Exit(run())
}

func run() int {
	lat := flag.Float64("lat", 0, "origin latitude, overrides the configured provider")
	lon := flag.Float64("lon", 0, "origin longitude, overrides the configured provider")
	flag.Parse()

	query := strings.Join(flag.Args(), " ")

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erro:", err)
		return 1
	}

	logger := observability.NewLogger("error", "text")
	metrics := observability.NewMetrics()

	var locations domain.LocationProvider
	switch cfg.LocationProvider {
	case config.LocationStatic:
		locations = location.NewStaticProvider(domain.Coordinate{Lat: cfg.OriginLat, Lon: cfg.OriginLon})
	case config.LocationIPAPI:
		locations = location.NewIPAPIProvider(cfg.IPAPIBaseURL, cfg.LocationTimeout)
	}

	geocoder := nominatim.NewClient(cfg.NominatimBaseURL, cfg.UserAgent, cfg.NominatimTimeout, metrics, logger)
	summaries := wikipedia.NewClient(cfg.WikipediaBaseURL, cfg.UserAgent, cfg.WikipediaTimeout, metrics, logger)

	svc := search.New(locations, geocoder, summaries, nil, cfg.MapsBaseURL, logger, metrics)

	var origin *domain.Coordinate
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "lat" || f.Name == "lon" {
			origin = &domain.Coordinate{Lat: *lat, Lon: *lon}
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome, err := svc.Search(ctx, query, origin)
	if err != nil {
		fmt.Println(domain.RenderError(err))
		return 1
	}

	fmt.Println(outcome.RenderText())
	return 0
}
