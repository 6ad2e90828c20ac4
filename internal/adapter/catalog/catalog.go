// Package catalog provides the static aircraft catalog and airport directory.
// Entries are loaded from JSON (embedded by default, or a file on disk) and
// normalized into domain entities.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/charter-booking/charter-booking-service/internal/domain"
)

//go:embed data/*.json
var embedded embed.FS

const (
	aircraftFile = "data/aircraft.json"
	airportsFile = "data/airports.json"
)

// Catalog implements domain.AircraftCatalog and domain.AirportDirectory.
type Catalog struct {
	currency string
	aircraft []domain.AircraftCategory
	byID     map[string]domain.AircraftCategory
	airports map[string]domain.Airport
}

// Ensure interfaces are implemented.
var (
	_ domain.AircraftCatalog  = (*Catalog)(nil)
	_ domain.AirportDirectory = (*Catalog)(nil)
)

// Default loads the embedded catalog and airport directory.
func Default(log zerolog.Logger) (*Catalog, error) {
	aircraftData, err := embedded.ReadFile(aircraftFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded aircraft catalog: %w", err)
	}
	airportData, err := embedded.ReadFile(airportsFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded airports: %w", err)
	}
	return Parse(aircraftData, airportData, log)
}

// Load reads the aircraft catalog from aircraftPath and uses the embedded airport directory.
// An empty path falls back to the embedded catalog.
func Load(aircraftPath string, log zerolog.Logger) (*Catalog, error) {
	if aircraftPath == "" {
		return Default(log)
	}

	aircraftData, err := os.ReadFile(aircraftPath)
	if err != nil {
		return nil, fmt.Errorf("read aircraft catalog %s: %w", aircraftPath, err)
	}
	airportData, err := embedded.ReadFile(airportsFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded airports: %w", err)
	}
	return Parse(aircraftData, airportData, log)
}

// Parse builds a Catalog from raw JSON documents.
// Entries that fail normalization are skipped and logged; an empty aircraft list is an error.
func Parse(aircraftData, airportData []byte, log zerolog.Logger) (*Catalog, error) {
	var rawCatalog aircraftCatalogJSON
	if err := json.Unmarshal(aircraftData, &rawCatalog); err != nil {
		return nil, fmt.Errorf("%w: decode aircraft: %v", domain.ErrInvalidCatalog, err)
	}

	var rawAirports []airportJSON
	if err := json.Unmarshal(airportData, &rawAirports); err != nil {
		return nil, fmt.Errorf("%w: decode airports: %v", domain.ErrInvalidCatalog, err)
	}

	c := &Catalog{
		currency: normalizeCurrency(rawCatalog.Currency),
		byID:     make(map[string]domain.AircraftCategory, len(rawCatalog.Aircraft)),
		airports: make(map[string]domain.Airport, len(rawAirports)),
	}

	for _, raw := range rawCatalog.Aircraft {
		a, err := normalizeAircraft(raw)
		if err != nil {
			log.Warn().Err(err).Str("aircraft_id", raw.ID).Msg("Skipping invalid aircraft catalog entry")
			continue
		}
		if _, dup := c.byID[a.ID]; dup {
			log.Warn().Str("aircraft_id", a.ID).Msg("Skipping duplicate aircraft catalog entry")
			continue
		}
		c.aircraft = append(c.aircraft, a)
		c.byID[a.ID] = a
	}

	if len(c.aircraft) == 0 {
		return nil, fmt.Errorf("%w: no valid aircraft categories", domain.ErrInvalidCatalog)
	}

	for _, raw := range rawAirports {
		ap, err := normalizeAirport(raw)
		if err != nil {
			log.Warn().Err(err).Str("airport_code", raw.Code).Msg("Skipping invalid airport entry")
			continue
		}
		c.airports[ap.Code] = ap
	}

	return c, nil
}

// Currency returns the currency the catalog prices are expressed in.
func (c *Catalog) Currency() string {
	return c.currency
}

// All implements domain.AircraftCatalog.
func (c *Catalog) All() []domain.AircraftCategory {
	out := make([]domain.AircraftCategory, len(c.aircraft))
	copy(out, c.aircraft)
	return out
}

// ByClass implements domain.AircraftCatalog.
func (c *Catalog) ByClass(class domain.VehicleClass) []domain.AircraftCategory {
	out := make([]domain.AircraftCategory, 0, len(c.aircraft))
	for _, a := range c.aircraft {
		if a.Class == class {
			out = append(out, a)
		}
	}
	return out
}

// Get implements domain.AircraftCatalog.
func (c *Catalog) Get(id string) (domain.AircraftCategory, bool) {
	a, ok := c.byID[strings.TrimSpace(id)]
	return a, ok
}

// Lookup implements domain.AirportDirectory.
func (c *Catalog) Lookup(code string) (domain.Airport, bool) {
	ap, ok := c.airports[strings.ToUpper(strings.TrimSpace(code))]
	return ap, ok
}

// AirportCount returns the number of airports in the directory.
func (c *Catalog) AirportCount() int {
	return len(c.airports)
}
