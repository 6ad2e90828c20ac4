// Package domain contains the core business entities and rules for the charter booking service.
// These entities are storage- and transport-agnostic and form the foundation upon which all other
// components are built.
package domain

import (
	"fmt"
	"strings"
)

// VehicleClass distinguishes jet categories from helicopter categories.
// Each class is governed by different eligibility ceilings.
type VehicleClass string

// Available vehicle classes.
const (
	// VehicleClassFixedWing covers jets. Limited by single-leg range.
	VehicleClassFixedWing VehicleClass = "fixed-wing"

	// VehicleClassRotary covers helicopters. Limited by max distance and max flight time.
	VehicleClassRotary VehicleClass = "rotary"
)

// IsValid checks if the vehicle class is a known value.
func (v VehicleClass) IsValid() bool {
	switch v {
	case VehicleClassFixedWing, VehicleClassRotary:
		return true
	default:
		return false
	}
}

// Other returns the opposite vehicle class.
// Used to suggest a class switch when a route has no eligible aircraft.
func (v VehicleClass) Other() VehicleClass {
	if v == VehicleClassRotary {
		return VehicleClassFixedWing
	}
	return VehicleClassRotary
}

// ParseVehicleClass converts a string to a VehicleClass.
// Accepts a few common aliases ("jet", "helicopter") used by the booking wizard.
func ParseVehicleClass(s string) (VehicleClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed-wing", "fixed_wing", "jet", "jets":
		return VehicleClassFixedWing, nil
	case "rotary", "helicopter", "helicopters":
		return VehicleClassRotary, nil
	default:
		return "", fmt.Errorf("%w: vehicle class must be one of: fixed-wing, rotary; got %q", ErrInvalidRequest, s)
	}
}

// AircraftCategory is a static catalog entry describing a class of aircraft that can be chartered.
// Catalog entries are immutable once loaded.
type AircraftCategory struct {
	// ID is the unique identifier of the category (e.g., "midsize-jet")
	ID string `json:"id"`

	// Name is the display name (e.g., "Midsize Jet")
	Name string `json:"name"`

	// Class is the vehicle class this category belongs to
	Class VehicleClass `json:"class"`

	// Capacity is the maximum number of passengers
	Capacity int `json:"capacity"`

	// RangeKm is the maximum single-leg range in kilometers (fixed-wing only)
	RangeKm int `json:"rangeKm"`

	// SpeedKmh is the cruise speed in kilometers per hour
	SpeedKmh int `json:"speedKmh"`

	// PricePerHour is the hourly charter rate
	PricePerHour float64 `json:"pricePerHour"`

	// CO2PerHour is the emitted CO2 in tonnes per flight hour
	CO2PerHour float64 `json:"co2PerHour"`

	// CO2OffsetPerHour is the offset certificate cost per flight hour
	CO2OffsetPerHour float64 `json:"co2OffsetPerHour"`

	// MaxFlightTimeMinutes is the operational flight time ceiling (rotary only, 0 = none)
	MaxFlightTimeMinutes int `json:"maxFlightTimeMinutes,omitempty"`

	// MaxDistanceKm is the operational distance ceiling (rotary only, 0 = none)
	MaxDistanceKm int `json:"maxDistanceKm,omitempty"`
}

// Validate checks the catalog invariants of an aircraft category.
func (a AircraftCategory) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: aircraft category id is required", ErrInvalidCatalog)
	}
	if !a.Class.IsValid() {
		return fmt.Errorf("%w: aircraft %q has unknown class %q", ErrInvalidCatalog, a.ID, a.Class)
	}
	if a.Capacity < 1 {
		return fmt.Errorf("%w: aircraft %q capacity must be at least 1", ErrInvalidCatalog, a.ID)
	}
	if a.SpeedKmh <= 0 {
		return fmt.Errorf("%w: aircraft %q speed must be positive", ErrInvalidCatalog, a.ID)
	}
	if a.PricePerHour < 0 {
		return fmt.Errorf("%w: aircraft %q price per hour cannot be negative", ErrInvalidCatalog, a.ID)
	}
	return nil
}

// RouteRequest is the input of a single ranking run. It is rebuilt on every search.
type RouteRequest struct {
	// DistanceKm is the great-circle distance between origin and destination
	DistanceKm float64 `json:"distanceKm"`

	// Passengers is the number of travelling passengers
	Passengers int `json:"passengers"`

	// VehicleClass selects which part of the catalog is considered
	VehicleClass VehicleClass `json:"vehicleClass"`
}

// Validate checks if the route request is usable for ranking.
func (r RouteRequest) Validate() error {
	if r.DistanceKm < 0 {
		return fmt.Errorf("%w: distance cannot be negative", ErrInvalidRequest)
	}
	if r.Passengers < 1 {
		return fmt.Errorf("%w: passengers must be at least 1", ErrInvalidRequest)
	}
	if !r.VehicleClass.IsValid() {
		return fmt.Errorf("%w: vehicle class must be one of: fixed-wing, rotary; got %q", ErrInvalidRequest, r.VehicleClass)
	}
	return nil
}

// AircraftCatalog provides lookup over the set of charterable aircraft categories.
type AircraftCatalog interface {
	// All returns every category in catalog order.
	All() []AircraftCategory

	// ByClass returns the categories of one vehicle class in catalog order.
	ByClass(class VehicleClass) []AircraftCategory

	// Get returns the category with the given id.
	Get(id string) (AircraftCategory, bool)
}
