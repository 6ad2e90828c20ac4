// Package usecase contains the quoting and booking submission logic of the charter service.
package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/charter-booking/charter-booking-service/internal/domain"
	"github.com/charter-booking/charter-booking-service/internal/infrastructure/metrics"
)

// QuoteUseCase defines the interface for route quoting and catalog browsing.
type QuoteUseCase interface {
	// Quote resolves the airports, computes the great-circle distance and ranks the catalog.
	Quote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error)

	// ListAircraft returns the catalog, optionally restricted to one vehicle class.
	ListAircraft(class *domain.VehicleClass) []domain.AircraftCategory

	// Airport looks up an airport by IATA code.
	Airport(code string) (domain.Airport, error)
}

// QuoteConfig contains configuration options for the quote use case.
type QuoteConfig struct {
	// Currency overrides the currency reported with prices. Empty means DefaultCurrency.
	Currency string
}

// quoteUseCase implements QuoteUseCase on top of a static catalog.
type quoteUseCase struct {
	catalog  domain.AircraftCatalog
	airports domain.AirportDirectory
	currency string
	logger   zerolog.Logger
}

// NewQuoteUseCase creates a new QuoteUseCase.
func NewQuoteUseCase(catalog domain.AircraftCatalog, airports domain.AirportDirectory, config *QuoteConfig, logger zerolog.Logger) QuoteUseCase {
	currency := domain.DefaultCurrency
	if config != nil && strings.TrimSpace(config.Currency) != "" {
		currency = strings.ToUpper(strings.TrimSpace(config.Currency))
	}

	return &quoteUseCase{
		catalog:  catalog,
		airports: airports,
		currency: currency,
		logger:   logger,
	}
}

// Quote implements QuoteUseCase.Quote.
func (uc *quoteUseCase) Quote(ctx context.Context, req domain.QuoteRequest) (*domain.Quote, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		metrics.QuotesServed.WithLabelValues(metrics.QuoteResultFailed).Inc()
		return nil, err
	}

	origin, err := uc.Airport(req.Origin)
	if err != nil {
		metrics.QuotesServed.WithLabelValues(metrics.QuoteResultFailed).Inc()
		return nil, err
	}
	destination, err := uc.Airport(req.Destination)
	if err != nil {
		metrics.QuotesServed.WithLabelValues(metrics.QuoteResultFailed).Inc()
		return nil, err
	}

	distance := roundKm(domain.HaversineKM(origin.Location, destination.Location))
	route := domain.RouteRequest{
		DistanceKm:   distance,
		Passengers:   req.Passengers,
		VehicleClass: req.VehicleClass,
	}

	candidates := RankCandidates(uc.catalog.ByClass(route.VehicleClass), route)

	quote := &domain.Quote{
		Origin:      origin,
		Destination: destination,
		DistanceKm:  distance,
		Route:       route,
		Candidates:  candidates,
		Currency:    uc.currency,
	}

	if !domain.HasSelectable(candidates) {
		quote.SuggestedClass = uc.suggestClass(route)
		metrics.QuotesServed.WithLabelValues(metrics.QuoteResultEmpty).Inc()
	} else {
		metrics.QuotesServed.WithLabelValues(metrics.QuoteResultOK).Inc()
	}

	uc.logger.Debug().
		Str("origin", origin.Code).
		Str("destination", destination.Code).
		Float64("distance_km", distance).
		Int("candidates", len(candidates)).
		Msg("Quote computed")

	return quote, nil
}

// suggestClass returns the other vehicle class when it can serve the route directly.
func (uc *quoteUseCase) suggestClass(route domain.RouteRequest) *domain.VehicleClass {
	other := route.VehicleClass.Other()
	alt := route
	alt.VehicleClass = other

	if domain.HasSelectable(RankCandidates(uc.catalog.ByClass(other), alt)) {
		return &other
	}
	return nil
}

// ListAircraft implements QuoteUseCase.ListAircraft.
func (uc *quoteUseCase) ListAircraft(class *domain.VehicleClass) []domain.AircraftCategory {
	if class == nil {
		return uc.catalog.All()
	}
	return uc.catalog.ByClass(*class)
}

// Airport implements QuoteUseCase.Airport.
func (uc *quoteUseCase) Airport(code string) (domain.Airport, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	airport, ok := uc.airports.Lookup(normalized)
	if !ok {
		return domain.Airport{}, fmt.Errorf("%w: %s", domain.ErrAirportNotFound, normalized)
	}
	return airport, nil
}

// roundKm rounds a distance to one decimal place.
func roundKm(km float64) float64 {
	return math.Round(km*10) / 10
}

// Ensure quoteUseCase implements QuoteUseCase at compile time.
var _ QuoteUseCase = (*quoteUseCase)(nil)
