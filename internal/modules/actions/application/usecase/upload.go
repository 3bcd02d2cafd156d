package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/platform/metrics"
	"dsfrGateway/internal/shared/session"
)

// ErrComponentDisabled is returned when a disabled control is triggered.
var ErrComponentDisabled = errors.New("component disabled")

// UploadRequest is one file selected on an upload control.
type UploadRequest struct {
	FileName string
	Content  []byte
	RecordID string
	FileID   string
}

// Empty reports whether no file was selected.
func (r UploadRequest) Empty() bool {
	return strings.TrimSpace(r.FileName) == "" && len(r.Content) == 0
}

// UploadResult is rendered under the upload control.
type UploadResult struct {
	Skipped      bool                        `json:"skipped,omitempty"`
	Message      string                      `json:"message,omitempty"`
	IsError      bool                        `json:"isError"`
	DocumentID   string                      `json:"documentId,omitempty"`
	Notification *domain.NotificationPayload `json:"notification,omitempty"`
}

type UploadUseCase struct {
	uploader  port.Uploader
	refresher port.RecordRefresher
	publisher port.NotificationPublisher
	guard     *InFlightGuard
}

func NewUploadUseCase(uploader port.Uploader, refresher port.RecordRefresher, publisher port.NotificationPublisher, guard *InFlightGuard) *UploadUseCase {
	return &UploadUseCase{uploader: uploader, refresher: refresher, publisher: publisher, guard: guard}
}

// Upload stores the selected file as a new document or as a new version of FileID.
func (uc *UploadUseCase) Upload(ctx context.Context, def domain.UploadDefinition, req UploadRequest) (UploadResult, error) {
	if req.Empty() {
		return UploadResult{Skipped: true}, nil
	}
	if def.Disabled {
		return UploadResult{}, ErrComponentDisabled
	}
	def = def.WithDefaults()

	release, err := uc.guard.Acquire(ctx, InstanceFromContext(ctx, def.Name))
	if err != nil {
		return UploadResult{}, err
	}
	defer release()

	name := strings.TrimSpace(req.FileName)
	if name == "" || !domain.AcceptsFile(def.Accept, name) {
		slog.Warn("upload rejected file", slog.String("component", def.Name), slog.String("fileName", req.FileName))
		metrics.UploadTotal.WithLabelValues("invalid", "error").Inc()
		return UploadResult{Message: domain.GenericTechnicalError, IsError: true}, nil
	}
	content := base64.StdEncoding.EncodeToString(req.Content)

	if fileID := strings.TrimSpace(req.FileID); fileID != "" {
		return uc.uploadVersion(ctx, def, name, content, fileID), nil
	}
	return uc.registerFile(ctx, def, name, content, req.RecordID), nil
}

// UploadRecordIDs assembles the records a new file is linked to: the main record then the
// configured extra ids, blanks dropped.
func UploadRecordIDs(mainRecordID string, extra []string) []string {
	ids := make([]string, 0, len(extra)+1)
	if id := strings.TrimSpace(mainRecordID); id != "" {
		ids = append(ids, id)
	}
	for _, id := range extra {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// RefreshTargets returns the refs to reload after a new file was linked to recordIDs.
// The current user is appended only when refreshUser is set and at least one record is linked.
func RefreshTargets(recordIDs []string, refreshUser bool, userID string) []domain.RecordRef {
	if len(recordIDs) == 0 {
		return nil
	}
	refs := make([]domain.RecordRef, 0, len(recordIDs)+1)
	for _, id := range recordIDs {
		refs = append(refs, domain.RecordRef{RecordID: id})
	}
	if refreshUser && strings.TrimSpace(userID) != "" {
		refs = append(refs, domain.RecordRef{RecordID: strings.TrimSpace(userID)})
	}
	return refs
}

func (uc *UploadUseCase) registerFile(ctx context.Context, def domain.UploadDefinition, name, content, mainRecordID string) UploadResult {
	recordIDs := UploadRecordIDs(mainRecordID, def.RecordIDs)
	upload := domain.NewFileUpload{
		Name:      name,
		Content:   content,
		RecordIDs: recordIDs,
		Sharing:   def.ShareMode,
	}
	if len(def.ContentMeta) > 0 {
		upload.Meta = def.ContentMeta
	}

	receipt, err := uc.uploader.UploadNewFile(ctx, upload)
	if err != nil {
		slog.Warn("upload new file failed", slog.String("component", def.Name), slog.String("fileName", name), slog.Any("error", err))
		metrics.UploadTotal.WithLabelValues("file", "error").Inc()
		return UploadResult{Message: domain.FailureMessage(err), IsError: true}
	}
	metrics.UploadTotal.WithLabelValues("file", "success").Inc()
	slog.Info("upload new file registered", slog.String("component", def.Name), slog.String("documentId", receipt.ID), slog.Int("records", len(recordIDs)))

	if refs := RefreshTargets(recordIDs, def.RefreshUser, session.UserID(ctx)); len(refs) > 0 && uc.refresher != nil {
		if err := uc.refresher.Refresh(ctx, refs); err != nil {
			slog.Warn("upload record reload failed", slog.Any("recordIds", domain.RecordIDs(refs)), slog.Any("error", err))
		}
	}
	uc.publishRefresh(ctx, def)

	return UploadResult{Message: domain.UploadSuccessMessage(name), DocumentID: receipt.ID}
}

func (uc *UploadUseCase) uploadVersion(ctx context.Context, def domain.UploadDefinition, name, content, fileID string) UploadResult {
	receipt, err := uc.uploader.UploadNewVersion(ctx, domain.NewVersionUpload{Name: name, Content: content, DocumentID: fileID})
	if err != nil {
		slog.Warn("upload new version failed", slog.String("component", def.Name), slog.String("documentId", fileID), slog.Any("error", err))
		metrics.UploadTotal.WithLabelValues("version", "error").Inc()
		if def.DoNotify {
			payload := domain.FailureNotification(err)
			return UploadResult{IsError: true, Notification: &payload}
		}
		return UploadResult{Message: domain.FailureMessage(err), IsError: true}
	}
	metrics.UploadTotal.WithLabelValues("version", "success").Inc()
	slog.Info("upload new version registered", slog.String("component", def.Name), slog.String("documentId", fileID), slog.String("versionId", receipt.ID))

	uc.publishRefresh(ctx, def)

	result := UploadResult{Message: domain.UploadSuccessMessage(name), DocumentID: fileID}
	if def.DoNotify {
		payload := domain.SuccessNotification(domain.OperationDoneTitle, result.Message)
		result.Notification = &payload
	}
	return result
}

func (uc *UploadUseCase) publishRefresh(ctx context.Context, def domain.UploadDefinition) {
	if !def.DoRefresh || uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, domain.PageRefreshNotification()); err != nil {
		slog.Warn("upload page refresh notification failed", slog.String("component", def.Name), slog.Any("error", err))
	}
}
