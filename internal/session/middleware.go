package session

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "jobtracker/internal/errors"
)

const contextKey = "session"

// Middleware gates routes behind a valid session. It reads the signed cookie,
// verifies its signature, loads the session record, and injects it into the
// request context. Any failure short-circuits with 401.
func Middleware(store Store, codec *CookieCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil {
				return unauthorized()
			}
			id, err := codec.Decode(cookie.Value)
			if err != nil {
				return unauthorized()
			}
			sess, err := store.Get(c.Request().Context(), id)
			if err != nil {
				return unauthorized()
			}
			c.Set(contextKey, sess)
			return next(c)
		}
	}
}

// FromContext returns the session injected by Middleware.
func FromContext(c echo.Context) (*Session, bool) {
	sess, ok := c.Get(contextKey).(*Session)
	return sess, ok
}

func unauthorized() error {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
		Message: "Unauthorized",
	})
}
