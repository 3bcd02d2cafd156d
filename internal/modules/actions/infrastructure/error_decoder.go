package infrastructure

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"dsfrGateway/internal/modules/actions/domain"
)

const maxErrorBody = 64 << 10

// decodeOperationError reads the platform error document. Bodies that are not JSON keep only
// the status information.
func decodeOperationError(res *http.Response) *domain.OperationError {
	opErr := &domain.OperationError{
		StatusCode: res.StatusCode,
		StatusText: http.StatusText(res.StatusCode),
	}
	raw, err := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	if err != nil {
		slog.Warn("platform error body read failed", slog.Int("status", res.StatusCode), slog.Any("error", err))
		return opErr
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return opErr
	}
	var body domain.ErrorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		slog.Debug("platform error body is not json", slog.Int("status", res.StatusCode), slog.String("body", string(raw)))
		return opErr
	}
	opErr.Body = body
	return opErr
}
