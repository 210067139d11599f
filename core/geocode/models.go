package geocode

import (
	"context"
	"math"
	"strconv"

	"github.com/trezcool/letscatchup/core"
)

// Address is the structured address breakdown of a geocode result.
type Address struct {
	City         string `json:"city,omitempty"`
	Town         string `json:"town,omitempty"`
	Village      string `json:"village,omitempty"`
	Municipality string `json:"municipality,omitempty"`
	County       string `json:"county,omitempty"`
	State        string `json:"state,omitempty"`
	Country      string `json:"country,omitempty"`
	Postcode     string `json:"postcode,omitempty"`
}

// Locality returns the address's city-level component, if any.
func (a Address) Locality() string {
	switch {
	case a.City != "":
		return a.City
	case a.Town != "":
		return a.Town
	case a.Village != "":
		return a.Village
	}
	return ""
}

// Place is one raw candidate from the geocoding service. Coordinates come
// over the wire as strings and stay that way until parsed.
type Place struct {
	PlaceID     int64   `json:"place_id"`
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Category    string  `json:"type"`
	Class       string  `json:"class"`
	Address     Address `json:"address"`
}

// Point parses the place's coordinates. Malformed values yield NaN, which
// downstream distance math propagates.
func (p Place) Point() core.Point {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		lat = math.NaN()
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		lon = math.NaN()
	}
	return core.Point{Lat: lat, Lon: lon}
}

// Suggestion is a ranked, display-ready geocode candidate.
type Suggestion struct {
	Place
	Label string `json:"label"`
	Score int    `json:"-"`
}

// Client is any service that can talk to the geocoding API.
type Client interface {
	// Search performs a forward free-text lookup.
	Search(ctx context.Context, query string, limit int) ([]Place, error)
	// Reverse resolves coordinates into an address, e.g. to turn a bare
	// postal code into a human-readable city label.
	Reverse(ctx context.Context, pt core.Point) (Place, error)
}
