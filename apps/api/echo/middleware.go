package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/lms/core"
)

// policyMiddleware runs a role-only policy check before the request payload is read,
// so that a caller with the wrong role never gets payload validation errors.
func policyMiddleware(check func(core.Actor) error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor, err := getContextActor(ctx)
			if err != nil {
				return err
			}
			if err := check(actor); err != nil {
				return err
			}
			return next(ctx)
		}
	}
}
