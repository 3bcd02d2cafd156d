package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"dsfrGateway/internal/shared/session"
)

// HeaderSessionID lets an HTTP caller route session messages to one of its open pages.
const HeaderSessionID = "X-Session-ID"

// Authenticate resolves the token, validates it and stores the caller identity on the request
// context. Tokens are read from the Authorization header, then the token query parameter.
func Authenticate(r *http.Request, validator TokenValidator) (session.Identity, error) {
	token := ExtractToken(r, "token")
	if token == "" {
		return session.Identity{}, ErrMissingToken
	}
	claims, err := validator.Validate(token)
	if err != nil {
		return session.Identity{}, err
	}
	identity := session.Identity{
		SessionID: claims.SessionID,
		UserID:    claims.RegisteredClaims.Subject,
		Token:     token,
	}
	if override := strings.TrimSpace(r.Header.Get(HeaderSessionID)); override != "" {
		identity.SessionID = override
	}
	return identity, nil
}

// Middleware rejects unauthenticated requests with 401.
func Middleware(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := Authenticate(c.Request(), validator)
			if err != nil {
				message := "invalid token"
				if errors.Is(err, ErrMissingToken) {
					message = "missing token"
				}
				slog.Warn("auth rejected request", slog.String("path", c.Path()), slog.String("ip", c.RealIP()), slog.Any("error", err))
				return echo.NewHTTPError(http.StatusUnauthorized, message)
			}
			req := c.Request()
			c.SetRequest(req.WithContext(session.WithIdentity(req.Context(), identity)))
			return next(c)
		}
	}
}
