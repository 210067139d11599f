// Package geosvc talks to a Nominatim-compatible geocoding API over HTTP.
//
// Per the public service's usage policy, every request carries the operator's
// contact email and results are requested in English.
package geosvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"

	"github.com/trezcool/letscatchup/core"
	"github.com/trezcool/letscatchup/core/geocode"
)

const defaultLimit = 10

type NominatimClient struct {
	baseURL      string
	contactEmail string
	client       *http.Client
}

var _ geocode.Client = (*NominatimClient)(nil)

func NewNominatimClient(conf *core.Config) *NominatimClient {
	return &NominatimClient{
		baseURL:      conf.Geocoder.BaseURL,
		contactEmail: conf.Geocoder.ContactEmail,
		client:       &http.Client{Timeout: conf.Geocoder.Timeout},
	}
}

func (c *NominatimClient) commonParams() url.Values {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("accept-language", "en")
	params.Set("addressdetails", "1")
	params.Set("email", c.contactEmail)
	return params
}

func (c *NominatimClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return errors.Wrap(err, "geosvc.NewRequest")
	}
	res, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "geosvc.Do")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("geosvc: unexpected status %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrap(err, "geosvc.Decode")
	}
	return nil
}

func (c *NominatimClient) Search(ctx context.Context, query string, limit int) ([]geocode.Place, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	params := c.commonParams()
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	var places []geocode.Place
	if err := c.get(ctx, "/search", params, &places); err != nil {
		return nil, err
	}
	return places, nil
}

func (c *NominatimClient) Reverse(ctx context.Context, pt core.Point) (geocode.Place, error) {
	params := c.commonParams()
	params.Set("lat", fmt.Sprintf("%f", pt.Lat))
	params.Set("lon", fmt.Sprintf("%f", pt.Lon))

	var place geocode.Place
	if err := c.get(ctx, "/reverse", params, &place); err != nil {
		return geocode.Place{}, err
	}
	return place, nil
}

// ResolveCity finds map coordinates for a city name, optionally narrowed by
// postal code. A structured lookup is tried first; when the postal code does
// not match anything, the city name alone is retried free-form.
func (c *NominatimClient) ResolveCity(city, postalCode string) (core.Point, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.client.Timeout)
	defer cancel()

	if postalCode != "" {
		params := c.commonParams()
		params.Set("city", city)
		params.Set("postalcode", postalCode)
		params.Set("limit", "1")

		var places []geocode.Place
		if err := c.get(ctx, "/search", params, &places); err != nil {
			return core.Point{}, err
		}
		if len(places) > 0 {
			return places[0].Point(), nil
		}
	}

	places, err := c.Search(ctx, city, 1)
	if err != nil {
		return core.Point{}, err
	}
	if len(places) == 0 {
		return core.Point{}, errors.Errorf("geosvc: no match for %q", city)
	}
	return places[0].Point(), nil
}
