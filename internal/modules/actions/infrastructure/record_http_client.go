package infrastructure

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/shared/normalization"
)

const (
	recordsPath     = "/ui-api/records"
	objectInfosPath = "/ui-api/object-info"
)

// RecordHTTPClient implements the record ports against the platform UI API.
type RecordHTTPClient struct {
	rest *RESTClient
}

func NewRecordHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *RecordHTTPClient {
	return &RecordHTTPClient{rest: NewRESTClient(baseURL, timeout, client)}
}

type mutationResponse struct {
	ID string `json:"id"`
}

func (c *RecordHTTPClient) Create(ctx context.Context, params map[string]any) (port.MutationResult, error) {
	return c.mutate(ctx, http.MethodPost, params)
}

func (c *RecordHTTPClient) Update(ctx context.Context, params map[string]any) (port.MutationResult, error) {
	return c.mutate(ctx, http.MethodPatch, params)
}

func (c *RecordHTTPClient) Delete(ctx context.Context, params map[string]any) (port.MutationResult, error) {
	return c.mutate(ctx, http.MethodDelete, params)
}

func (c *RecordHTTPClient) mutate(ctx context.Context, method string, params map[string]any) (port.MutationResult, error) {
	if params == nil {
		params = map[string]any{}
	}
	var response mutationResponse
	if err := c.rest.DoJSON(ctx, method, recordsPath, params, &response); err != nil {
		return port.MutationResult{}, err
	}
	return port.MutationResult{RecordID: strings.TrimSpace(response.ID)}, nil
}

type recordFieldsResponse struct {
	Fields map[string]struct {
		Value any `json:"value"`
	} `json:"fields"`
}

// FieldValue reads one Object.Field path of a record.
func (c *RecordHTTPClient) FieldValue(ctx context.Context, recordID, field string) (string, error) {
	recordID = strings.TrimSpace(recordID)
	if recordID == "" {
		return "", port.ErrMissingRecordID
	}
	field = strings.TrimSpace(field)
	if field == "" {
		return "", fmt.Errorf("record field path is empty")
	}

	endpoint := recordsPath + "/" + url.PathEscape(recordID) + "?" + url.Values{"fields": []string{field}}.Encode()
	var response recordFieldsResponse
	if err := c.rest.DoJSON(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return "", err
	}
	name := field
	if idx := strings.LastIndex(field, "."); idx >= 0 {
		name = field[idx+1:]
	}
	value, ok := response.Fields[name]
	if !ok {
		return "", nil
	}
	return normalization.AsString(value.Value), nil
}

type objectInfoResponse struct {
	Fields map[string]domain.FieldInfo `json:"fields"`
}

// FieldInfos returns the field metadata of an object.
func (c *RecordHTTPClient) FieldInfos(ctx context.Context, objectName string) (map[string]domain.FieldInfo, error) {
	objectName = strings.TrimSpace(objectName)
	if objectName == "" {
		return nil, fmt.Errorf("object name is empty")
	}
	var response objectInfoResponse
	if err := c.rest.DoJSON(ctx, http.MethodGet, objectInfosPath+"/"+url.PathEscape(objectName), nil, &response); err != nil {
		return nil, err
	}
	if response.Fields == nil {
		return map[string]domain.FieldInfo{}, nil
	}
	return response.Fields, nil
}

var (
	_ port.RecordStore       = (*RecordHTTPClient)(nil)
	_ port.RecordReader      = (*RecordHTTPClient)(nil)
	_ port.FieldInfoProvider = (*RecordHTTPClient)(nil)
)
