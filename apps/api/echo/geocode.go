package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/letscatchup/core"
	"github.com/trezcool/letscatchup/core/geocode"
)

const searchFetchLimit = 10

type geocodeApi struct {
	client geocode.Client
	logger core.Logger
}

func registerGeocodeAPI(g *echo.Group, client geocode.Client, logger core.Logger) {
	api := geocodeApi{client: client, logger: logger}

	gg := g.Group("/geocode")
	gg.GET("", api.search)
	gg.GET("/reverse", api.reverse)
}

// search ranks raw geocoding candidates into display-ready suggestions.
// An upstream failure degrades to an empty list: location search is a
// convenience, never a blocker.
func (api *geocodeApi) search(ctx echo.Context) error {
	query := core.CleanString(ctx.QueryParam("q"))
	if query == "" {
		return ctx.JSON(http.StatusOK, []geocode.Suggestion{})
	}

	includeCountries, _ := strconv.ParseBool(ctx.QueryParam("include_countries"))

	places, err := api.client.Search(ctx.Request().Context(), query, searchFetchLimit)
	if err != nil {
		api.logger.Warn("geocode search failed", err)
		return ctx.JSON(http.StatusOK, []geocode.Suggestion{})
	}

	ranker := geocode.Ranker{IncludeCountries: includeCountries}
	return ctx.JSON(http.StatusOK, ranker.Rank(query, places))
}

func (api *geocodeApi) reverse(ctx echo.Context) error {
	lat, latErr := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	lon, lonErr := strconv.ParseFloat(ctx.QueryParam("lon"), 64)
	if latErr != nil || lonErr != nil {
		return core.NewValidationError(errors.New("invalid coordinates"),
			core.FieldError{Field: "lat", Error: "valid lat and lon are required"})
	}

	place, err := api.client.Reverse(ctx.Request().Context(), core.Point{Lat: lat, Lon: lon})
	if err != nil {
		return errors.Wrap(err, "reverse geocoding")
	}
	return ctx.JSON(http.StatusOK, place)
}
