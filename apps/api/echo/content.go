package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core/content"
	"github.com/trezcool/lms/core/policy"
)

type contentApi struct {
	svc *content.Service
}

func registerContentAPI(g *echo.Group, svc *content.Service) {
	api := contentApi{svc: svc}

	lg := g.Group("/lessons")
	lg.GET("", api.queryLessons)
	lg.POST("", api.createLesson, policyMiddleware(policy.CreateLesson))

	mg := g.Group("/materials")
	mg.GET("", api.queryMaterials)
	mg.POST("", api.createMaterial, policyMiddleware(policy.CreateMaterial))
}

func (api *contentApi) filter(ctx echo.Context) (content.QueryFilter, error) {
	courseID, err := queryID(ctx, "course_id")
	return content.QueryFilter{CourseID: courseID}, err
}

// Handlers

func (api *contentApi) queryLessons(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	filter, err := api.filter(ctx)
	if err != nil {
		return err
	}

	lessons, err := api.svc.QueryLessons(ctx.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, lessons)
}

func (api *contentApi) createLesson(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	var data content.NewLesson
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLesson")
	}

	lesson, err := api.svc.CreateLesson(ctx.Request().Context(), actor, data)
	if err != nil {
		return errors.Wrap(err, "creating lesson")
	}
	return ctx.JSON(http.StatusCreated, lesson)
}

func (api *contentApi) queryMaterials(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	filter, err := api.filter(ctx)
	if err != nil {
		return err
	}

	materials, err := api.svc.QueryMaterials(ctx.Request().Context(), actor, filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, materials)
}

func (api *contentApi) createMaterial(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	var data content.NewMaterial
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMaterial")
	}

	material, err := api.svc.CreateMaterial(ctx.Request().Context(), actor, data)
	if err != nil {
		return errors.Wrap(err, "creating material")
	}
	return ctx.JSON(http.StatusCreated, material)
}
