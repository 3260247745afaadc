package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core/category"
	"github.com/trezcool/lms/core/policy"
)

type categoryApi struct {
	svc *category.Service
}

func registerCategoryAPI(g *echo.Group, svc *category.Service) {
	api := categoryApi{svc: svc}

	cg := g.Group("/categories")
	cg.GET("", api.query)
	cg.POST("", api.create, policyMiddleware(policy.CreateCategory))
	cg.PUT("", api.update, policyMiddleware(policy.UpdateCategory))
	cg.DELETE("", api.destroy, policyMiddleware(policy.DeleteCategory))
}

// Handlers

func (api *categoryApi) query(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	cats, err := api.svc.Query(ctx.Request().Context(), actor)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cats)
}

func (api *categoryApi) create(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	var data category.NewCategory
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCategory")
	}

	cat, err := api.svc.Create(ctx.Request().Context(), actor, data)
	if err != nil {
		return errors.Wrap(err, "creating category")
	}
	return ctx.JSON(http.StatusCreated, cat)
}

func (api *categoryApi) update(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	var data category.UpdateCategory
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCategory")
	}

	cat, err := api.svc.Update(ctx.Request().Context(), actor, data)
	if err != nil {
		return errors.Wrap(err, "updating category")
	}
	return ctx.JSON(http.StatusOK, cat)
}

func (api *categoryApi) destroy(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	var data category.DeleteCategory
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DeleteCategory")
	}

	if err := api.svc.Delete(ctx.Request().Context(), actor, data); err != nil {
		return errors.Wrap(err, "deleting category")
	}
	return ctx.NoContent(http.StatusNoContent)
}
