package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core/qa"
)

type questionApi struct {
	svc *qa.Service
}

func registerQuestionAPI(g *echo.Group, svc *qa.Service) {
	api := questionApi{svc: svc}

	qg := g.Group("/questions")
	qg.GET("", api.query)
	qg.POST("", api.create) // enrollment is checked once the lesson is known
}

// Handlers

func (api *questionApi) query(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	lessonID, err := queryID(ctx, "lesson_id")
	if err != nil {
		return err
	}

	questions, err := api.svc.Query(ctx.Request().Context(), actor, qa.QueryFilter{LessonID: lessonID})
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, questions)
}

func (api *questionApi) create(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return err
	}
	var data qa.NewQuestion
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewQuestion")
	}

	q, err := api.svc.Create(ctx.Request().Context(), actor, data)
	if err != nil {
		return errors.Wrap(err, "posting question")
	}
	return ctx.JSON(http.StatusCreated, q)
}
