package infrastructure

import (
	"context"
	"net/http"
	"time"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
)

const (
	filesPath    = "/files"
	versionsPath = "/files/versions"
)

// UploadHTTPClient implements port.Uploader with the platform file service.
type UploadHTTPClient struct {
	rest *RESTClient
}

func NewUploadHTTPClient(baseURL string, timeout time.Duration, client *http.Client) *UploadHTTPClient {
	return &UploadHTTPClient{rest: NewRESTClient(baseURL, timeout, client)}
}

func (c *UploadHTTPClient) UploadNewFile(ctx context.Context, upload domain.NewFileUpload) (domain.UploadReceipt, error) {
	if upload.RecordIDs == nil {
		upload.RecordIDs = []string{}
	}
	var receipt domain.UploadReceipt
	err := c.rest.DoJSON(ctx, http.MethodPost, filesPath, upload, &receipt)
	return receipt, err
}

func (c *UploadHTTPClient) UploadNewVersion(ctx context.Context, upload domain.NewVersionUpload) (domain.UploadReceipt, error) {
	var receipt domain.UploadReceipt
	err := c.rest.DoJSON(ctx, http.MethodPost, versionsPath, upload, &receipt)
	return receipt, err
}

var _ port.Uploader = (*UploadHTTPClient)(nil)
