package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/lms/core"
)

var errInvalidID = errors.New("a valid positive integer is required")

func invalidIDError(field string) error {
	return core.NewValidationError(errInvalidID, core.FieldError{Field: field, Error: errInvalidID.Error()})
}

func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	return id, err == nil && id > 0
}

// queryID reads an optional id filter from the query string. An absent filter is 0.
func queryID(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	id, ok := parseID(raw)
	if !ok {
		return 0, invalidIDError(name)
	}
	return id, nil
}

// pathID reads the :id path parameter. A malformed id cannot resolve to any object.
func pathID(ctx echo.Context, notFound error) (int, error) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		return 0, notFound
	}
	return id, nil
}
