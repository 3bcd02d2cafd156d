package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"dsfrGateway/internal/modules/actions/application/usecase"
	"dsfrGateway/internal/modules/actions/domain"
)

func openForm(c echo.Context, deps Dependencies, recordID string) (*usecase.RecordForm, error) {
	def, err := deps.Catalog.Form(c.Param("form"))
	if err != nil {
		return nil, err
	}
	form, err := deps.Forms.Open(def, recordID)
	if err != nil {
		return nil, err
	}
	ctx := c.Request().Context()
	if err := form.Mount(ctx); err != nil {
		slog.Warn("http form mount failed", slog.String("form", def.Name), slog.String("recordId", recordID), slog.Any("error", err))
		return form, nil
	}
	if err := form.LoadObjectInfo(ctx); err != nil {
		slog.Warn("http form field infos unavailable", slog.String("form", def.Name), slog.Any("error", err))
	}
	return form, nil
}

// NewFormMountHandler exposes GET /api/forms/:form?recordId=.
func NewFormMountHandler(deps Dependencies) echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := openForm(c, deps, c.QueryParam("recordId"))
		if err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, form.View())
	}
}

// NewFormSaveHandler exposes POST /api/forms/:form/save.
func NewFormSaveHandler(deps Dependencies) echo.HandlerFunc {
	return func(c echo.Context) error {
		var cmd domain.FormSaveCommand
		if err := c.Bind(&cmd); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		form, err := openForm(c, deps, cmd.RecordID)
		if err != nil {
			return httpError(c, err)
		}
		form.Edit()
		if err := form.Save(c.Request().Context(), cmd.Values); err != nil {
			return httpError(c, err)
		}
		return c.JSON(http.StatusOK, form.View())
	}
}
