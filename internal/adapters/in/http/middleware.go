package http

import (
	"net/http"

	"fieldservice/internal/core/domain/model/actor"
	"fieldservice/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	// HeaderUserID and HeaderUserRole carry the authenticated identity
	// resolved by the upstream gateway. This service trusts them; it performs
	// authorization, not authentication.
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"

	actorContextKey = "fieldservice.actor"
)

// ActorMiddleware resolves the acting user from the gateway headers and
// stores it on the request context. Requests without a valid identity are
// rejected with 401 before any handler runs.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderUserID))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing or invalid " + HeaderUserID + " header",
				})
			}

			role, err := actor.RoleFromString(ctx.Request().Header.Get(HeaderUserRole))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing or invalid " + HeaderUserRole + " header",
				})
			}

			a, err := actor.NewActor(id, role)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Invalid identity",
				})
			}

			ctx.Set(actorContextKey, a)
			return next(ctx)
		}
	}
}

// actorFromContext returns the actor stored by ActorMiddleware.
func actorFromContext(ctx echo.Context) (actor.Actor, bool) {
	a, ok := ctx.Get(actorContextKey).(actor.Actor)
	return a, ok
}
