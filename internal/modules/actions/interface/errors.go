package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/application/usecase"
	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/shared/auth"
	"dsfrGateway/internal/shared/httputil"
)

var errorMapper = httputil.NewErrorMapper().
	WithMapping(usecase.ErrOperationInFlight, http.StatusConflict, "operation already in flight").
	WithMapping(usecase.ErrComponentDisabled, http.StatusConflict, "component disabled").
	WithMapping(usecase.ErrFormNotLoaded, http.StatusConflict, "form record unavailable").
	WithMapping(usecase.ErrFormReadOnly, http.StatusForbidden, "form is read-only").
	WithMapping(domain.ErrUnknownComponent, http.StatusNotFound, "unknown component").
	WithMapping(domain.ErrInvalidConfiguration, http.StatusUnprocessableEntity, "invalid configuration").
	WithMapping(domain.ErrUnsupportedActionType, http.StatusUnprocessableEntity, "unsupported action type").
	WithMapping(auth.ErrMissingToken, http.StatusUnauthorized, "missing token").
	WithMapping(auth.ErrInvalidToken, http.StatusUnauthorized, "invalid token").
	WithMapping(port.ErrRecordForbidden, http.StatusForbidden, "forbidden").
	WithMapping(port.ErrRecordNotFound, http.StatusNotFound, "record not found").
	WithMapping(port.ErrMissingRecordID, http.StatusBadRequest, "missing record id").
	WithDefault(http.StatusBadGateway, "platform call failed")

// httpError maps err through the shared mapper. Client errors carry the cause as detail.
func httpError(c echo.Context, err error) *echo.HTTPError {
	info := errorMapper.Map(err)
	attrs := []any{slog.String("path", c.Path()), slog.Int("status", info.Status), slog.Any("error", err)}
	if !info.ClientError() {
		slog.Error("http request failed", attrs...)
		return echo.NewHTTPError(info.Status, info.Message)
	}
	slog.Warn("http request rejected", attrs...)
	return echo.NewHTTPError(info.Status, map[string]string{"message": info.Message, "detail": err.Error()})
}
