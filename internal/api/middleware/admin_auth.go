package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// AdminAuth guards the admin group with a static bearer token. Session-based
// auth is delegated to the deployment's identity layer; this keeps the API
// unusable without the operator secret.
func AdminAuth(token string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token == "" {
				return c.JSON(http.StatusForbidden, map[string]string{
					"error": "admin API disabled: no admin token configured",
				})
			}

			header := c.Request().Header.Get(echo.HeaderAuthorization)
			presented := strings.TrimPrefix(header, "Bearer ")
			if subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "invalid admin token",
				})
			}

			return next(c)
		}
	}
}
