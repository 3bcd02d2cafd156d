package transport

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dsfrGateway/internal/shared/normalization"
)

// NewRecordVersionsHandler exposes GET /api/records/versions?ids=a,b.
func NewRecordVersionsHandler(deps Dependencies) echo.HandlerFunc {
	return func(c echo.Context) error {
		ids := normalization.SplitList(c.QueryParam("ids"))
		if len(ids) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "ids query parameter is required")
		}
		versions, err := deps.Versions.Versions(c.Request().Context(), ids)
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]any{"versions": versions})
	}
}
