package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/shared/session"
)

// RESTClient wraps http.Client with base URL handling to avoid duplicating boilerplate in adapters.
type RESTClient struct {
	baseURL string
	client  *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration, client *http.Client) *RESTClient {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = "http://localhost:8081"
	}
	trimmed = strings.TrimRight(trimmed, "/")
	if client == nil {
		client = &http.Client{Timeout: timeoutOrDefault(timeout)}
	} else if timeout > 0 {
		client.Timeout = timeout
	}
	return &RESTClient{baseURL: trimmed, client: client}
}

func (c *RESTClient) NewRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	return http.NewRequestWithContext(ctx, method, url, body)
}

func (c *RESTClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

// DoJSON sends payload as a JSON body with the session bearer token and decodes a successful
// response into out. Non-2xx responses become *domain.OperationError values, wrapped with the
// port sentinel matching the status when there is one.
func (c *RESTClient) DoJSON(ctx context.Context, method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, endpoint, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.NewRequest(ctx, method, endpoint, body)
	if err != nil {
		slog.Error("platform request build failed", slog.String("method", method), slog.String("path", endpoint), slog.Any("error", err))
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(session.Token(ctx)); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	slog.Debug("platform request", slog.String("method", method), slog.String("url", req.URL.String()))

	res, err := c.Do(req)
	if err != nil {
		slog.Error("platform request error", slog.String("method", method), slog.String("path", endpoint), slog.Any("error", err))
		return fmt.Errorf("platform request %s %s failed: %w", method, endpoint, err)
	}
	defer res.Body.Close()

	slog.Debug("platform response", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		opErr := decodeOperationError(res)
		switch res.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %w", port.ErrRecordForbidden, opErr)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %w", port.ErrRecordNotFound, opErr)
		default:
			return opErr
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, endpoint, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, endpoint, err)
	}
	return nil
}

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 10 * time.Second
	}
	return value
}
