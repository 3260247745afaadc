package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/lms/core/policy"
	"github.com/trezcool/lms/core/stats"
	"github.com/trezcool/lms/core/user"
)

type adminApi struct {
	usrSvc   *user.Service
	statsSvc *stats.Service
}

func registerAdminAPI(g *echo.Group, usrSvc *user.Service, statsSvc *stats.Service) {
	api := adminApi{usrSvc: usrSvc, statsSvc: statsSvc}

	adminOnly := policyMiddleware(policy.AdminOnly)
	g.GET("/instructors", api.instructors, adminOnly)
	g.GET("/admin/stats", api.stats, adminOnly)
}

// Handlers

func (api *adminApi) instructors(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	instructors, err := api.usrSvc.QueryInstructors(ctx.Request().Context(), actor)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, instructors)
}

func (api *adminApi) stats(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	st, err := api.statsSvc.Get(ctx.Request().Context(), actor)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}
