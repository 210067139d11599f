package geosvc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/letscatchup/core"
)

const searchPayload = `[
	{
		"place_id": 1,
		"display_name": "Mumbai, Maharashtra, India",
		"lat": "19.0760",
		"lon": "72.8777",
		"class": "place",
		"type": "city",
		"address": {"city": "Mumbai", "state": "Maharashtra", "country": "India"}
	}
]`

func testClient(url string) *NominatimClient {
	return NewNominatimClient(&core.Config{
		Geocoder: core.GeocoderConfig{
			BaseURL:      url,
			ContactEmail: "ops@example.com",
			Timeout:      2 * time.Second,
		},
	})
}

func TestNominatimSearch(t *testing.T) {
	var gotPath string
	var gotParams url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotParams = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchPayload))
	}))
	defer srv.Close()

	places, err := testClient(srv.URL).Search(context.Background(), "mumbai", 5)
	require.NoError(t, err)

	assert.Equal(t, "/search", gotPath)
	assert.Equal(t, "json", gotParams.Get("format"))
	assert.Equal(t, "en", gotParams.Get("accept-language"))
	assert.Equal(t, "1", gotParams.Get("addressdetails"))
	assert.Equal(t, "ops@example.com", gotParams.Get("email"))
	assert.Equal(t, "mumbai", gotParams.Get("q"))
	assert.Equal(t, "5", gotParams.Get("limit"))

	require.Len(t, places, 1)
	assert.Equal(t, "Mumbai", places[0].Address.City)
	assert.InDelta(t, 19.076, places[0].Point().Lat, 1e-6)
}

func TestNominatimReverse(t *testing.T) {
	var gotParams url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reverse", r.URL.Path)
		gotParams = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"place_id": 2,
			"display_name": "Pune, Maharashtra, India",
			"lat": "18.5204",
			"lon": "73.8567",
			"address": {"city": "Pune", "state": "Maharashtra", "country": "India"}
		}`))
	}))
	defer srv.Close()

	place, err := testClient(srv.URL).Reverse(context.Background(), core.Point{Lat: 18.5204, Lon: 73.8567})
	require.NoError(t, err)

	assert.NotEmpty(t, gotParams.Get("lat"))
	assert.NotEmpty(t, gotParams.Get("lon"))
	assert.Equal(t, "ops@example.com", gotParams.Get("email"))
	assert.Equal(t, "Pune", place.Address.City)
}

func TestNominatimResolveCity(t *testing.T) {
	t.Run("structured lookup wins", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "Mumbai", q.Get("city"))
			assert.Equal(t, "400001", q.Get("postalcode"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(searchPayload))
		}))
		defer srv.Close()

		pt, err := testClient(srv.URL).ResolveCity("Mumbai", "400001")
		require.NoError(t, err)
		assert.InDelta(t, 19.076, pt.Lat, 1e-6)
		assert.InDelta(t, 72.8777, pt.Lon, 1e-6)
	})

	t.Run("falls back to free-form when postal code misses", func(t *testing.T) {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Header().Set("Content-Type", "application/json")
			if r.URL.Query().Get("postalcode") != "" {
				_, _ = w.Write([]byte(`[]`))
				return
			}
			assert.Equal(t, "Mumbai", r.URL.Query().Get("q"))
			_, _ = w.Write([]byte(searchPayload))
		}))
		defer srv.Close()

		pt, err := testClient(srv.URL).ResolveCity("Mumbai", "999999")
		require.NoError(t, err)
		assert.Equal(t, 2, calls)
		assert.InDelta(t, 19.076, pt.Lat, 1e-6)
	})

	t.Run("no match", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).ResolveCity("Atlantis", "")
		assert.Error(t, err)
	})
}

func TestNominatimErrorStatuses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bandwidth limit exceeded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Search(context.Background(), "mumbai", 5)
	assert.Error(t, err)
}
