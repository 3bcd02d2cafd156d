package transport

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"dsfrGateway/internal/modules/actions/application/usecase"
)

// NewUploadHandler exposes POST /api/uploads/:component (multipart: file, recordId, fileId).
func NewUploadHandler(deps Dependencies) echo.HandlerFunc {
	return func(c echo.Context) error {
		def, err := deps.Catalog.Upload(c.Param("component"))
		if err != nil {
			return httpError(c, err)
		}

		req := usecase.UploadRequest{
			RecordID: c.FormValue("recordId"),
			FileID:   c.FormValue("fileId"),
		}
		header, err := c.FormFile("file")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart body")
		default:
			if header.Size > deps.maxUploadBytes() {
				return echo.NewHTTPError(http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d bytes", deps.maxUploadBytes()))
			}
			file, err := header.Open()
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
			}
			content, err := io.ReadAll(io.LimitReader(file, deps.maxUploadBytes()+1))
			_ = file.Close()
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
			}
			req.FileName = header.Filename
			req.Content = content
		}

		result, err := deps.Uploads.Upload(c.Request().Context(), def, req)
		if err != nil {
			return httpError(c, err)
		}
		slog.Info("http upload done", slog.String("component", def.Name), slog.Bool("skipped", result.Skipped), slog.Bool("isError", result.IsError))
		return c.JSON(http.StatusOK, result)
	}
}
