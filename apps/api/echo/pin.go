package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/letscatchup/core/pin"
)

const editSecretHeader = "X-Edit-Secret"

type pinApi struct {
	svc *pin.Service
}

func registerPinAPI(g *echo.Group, svc *pin.Service) {
	api := pinApi{svc: svc}

	pg := g.Group("/pins")
	pg.GET("", api.query)
	pg.GET("/search", api.search)
	pg.POST("", api.create)
	pg.GET("/roles", api.queryRoles)
	pg.GET("/:id", api.retrieve)
	pg.PUT("/:id", api.update)
}

// createResponse carries the freshly generated edit secret alongside the
// new pin. This is the only time the secret ever leaves the server.
type createResponse struct {
	Pin        pin.Pin `json:"pin"`
	EditSecret string  `json:"edit_secret"`
}

type searchResponse struct {
	Pins  []pin.Pin `json:"pins"`
	Count int       `json:"count"`
}

func (api *pinApi) query(ctx echo.Context) error {
	pins, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying pins")
	}
	return ctx.JSON(http.StatusOK, pins)
}

func (api *pinApi) search(ctx echo.Context) error {
	var qf pin.QueryFilter
	if err := ctx.Bind(&qf); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	pins, err := api.svc.Filter(qf)
	if err != nil {
		return errors.Wrap(err, "filtering pins")
	}
	return ctx.JSON(http.StatusOK, searchResponse{Pins: pins, Count: len(pins)})
}

func (api *pinApi) create(ctx echo.Context) error {
	var data pin.NewPin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPin")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	p, secret, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating pin")
	}
	return ctx.JSON(http.StatusCreated, createResponse{Pin: p, EditSecret: secret})
}

func (api *pinApi) queryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, pin.Roles)
}

func (api *pinApi) retrieve(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	p, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "getting pin")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *pinApi) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	secret := ctx.Request().Header.Get(editSecretHeader)
	if secret == "" {
		return errEditForbidden
	}

	var data pin.UpdatePin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePin")
	}

	origPin, err := api.svc.GetByID(id)
	if err != nil {
		// an edit attempt on a pin that does not exist is an authorization
		// failure, indistinguishable from a wrong secret
		if errors.Cause(err) == pin.ErrNotFound {
			return errEditForbidden
		}
		return errors.Wrap(err, "getting pin")
	}
	if err := data.Validate(origPin); err != nil {
		return err
	}

	p, err := api.svc.Update(id, secret, data)
	if err != nil {
		return errors.Wrap(err, "updating pin")
	}
	return ctx.JSON(http.StatusOK, p)
}
