package port

import (
	"context"

	"dsfrGateway/internal/modules/actions/domain"
)

// Navigator performs a view transition. Fire and forget.
type Navigator interface {
	Navigate(ctx context.Context, request domain.NavigationRequest)
}

// RecordRefresher marks cached record data as stale.
type RecordRefresher interface {
	Refresh(ctx context.Context, refs []domain.RecordRef) error
}

// AlertPresenter renders a payload and returns once the user dismissed it or ctx ended.
type AlertPresenter interface {
	Present(ctx context.Context, payload domain.NotificationPayload) error
}

// NotificationPublisher publishes a channel notification to every page listening on it.
type NotificationPublisher interface {
	Publish(ctx context.Context, notification domain.ChannelNotification) error
}

// Uploader stores files on the platform.
type Uploader interface {
	UploadNewFile(ctx context.Context, upload domain.NewFileUpload) (domain.UploadReceipt, error)
	UploadNewVersion(ctx context.Context, upload domain.NewVersionUpload) (domain.UploadReceipt, error)
}

// ControlNotifier reflects the in-flight state of a component on its visual control.
type ControlNotifier interface {
	ControlState(ctx context.Context, component string, busy bool)
}

// RecordVersionReader exposes the refresh counters of records.
type RecordVersionReader interface {
	Versions(ctx context.Context, recordIDs []string) (map[string]int64, error)
}
