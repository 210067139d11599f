package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/letscatchup/core/school"
)

type schoolApi struct {
	svc *school.Service
}

func registerSchoolAPI(g *echo.Group, svc *school.Service) {
	api := schoolApi{svc: svc}

	sg := g.Group("/schools")
	sg.GET("", api.query)
	sg.GET("/search", api.search)
	sg.GET("/:slug", api.retrieve)
	sg.POST("", api.create, accessGateMiddleware())
}

func (api *schoolApi) query(ctx echo.Context) error {
	names, err := api.svc.Names()
	if err != nil {
		return errors.Wrap(err, "querying schools")
	}
	return ctx.JSON(http.StatusOK, names)
}

func (api *schoolApi) search(ctx echo.Context) error {
	matches, err := api.svc.Search(ctx.QueryParam("q"))
	if err != nil {
		return errors.Wrap(err, "searching schools")
	}
	return ctx.JSON(http.StatusOK, matches)
}

func (api *schoolApi) retrieve(ctx echo.Context) error {
	s, err := api.svc.GetBySlug(ctx.Param("slug"))
	if err != nil {
		return errors.Wrap(err, "getting school")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *schoolApi) create(ctx echo.Context) error {
	var data school.NewSchool
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchool")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	s, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating school")
	}
	return ctx.JSON(http.StatusCreated, s)
}
