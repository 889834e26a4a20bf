package echoapi

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// tokenAuthMiddleware accepts requests bearing `Authorization: Bearer <token>`.
// Anything else is rejected with 401 before reaching the handler.
func tokenAuthMiddleware(token string) echo.MiddlewareFunc {
	expected := []byte(token)
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(key string, _ echo.Context) (bool, error) {
			if len(expected) == 0 {
				return false, nil
			}
			return subtle.ConstantTimeCompare([]byte(key), expected) == 1, nil
		},
		ErrorHandler: func(_ error, ctx echo.Context) error {
			ctx.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return errUnauthorized
		},
	})
}
