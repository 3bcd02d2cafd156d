package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"reflect"
	"testing"

	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/shared/session"
)

type uploadFixture struct {
	uploader  *fakeUploader
	refresher *fakeRefresher
	publisher *fakePublisher
	uc        *UploadUseCase
	ctx       context.Context
}

func newUploadFixture() *uploadFixture {
	f := &uploadFixture{
		uploader:  &fakeUploader{receipt: domain.UploadReceipt{ID: "doc-1"}},
		refresher: &fakeRefresher{},
		publisher: &fakePublisher{},
	}
	f.uc = NewUploadUseCase(f.uploader, f.refresher, f.publisher, NewInFlightGuard(nil))
	f.ctx = session.WithIdentity(context.Background(), session.Identity{SessionID: "s1", UserID: "005user"})
	return f
}

func TestUploadRecordIDs(t *testing.T) {
	t.Parallel()

	got := UploadRecordIDs(" a01 ", []string{"", "a02", " a03"})
	want := []string{"a01", "a02", "a03"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := UploadRecordIDs("", nil); len(got) != 0 {
		t.Fatalf("expected no ids, got %v", got)
	}
}

func TestRefreshTargets(t *testing.T) {
	t.Parallel()

	refs := RefreshTargets([]string{"a01"}, true, "005user")
	if ids := domain.RecordIDs(refs); !reflect.DeepEqual(ids, []string{"a01", "005user"}) {
		t.Fatalf("unexpected refresh ids: %v", ids)
	}
	if refs := RefreshTargets(nil, true, "005user"); refs != nil {
		t.Fatalf("user must not be refreshed without linked records: %v", refs)
	}
	if ids := domain.RecordIDs(RefreshTargets([]string{"a01"}, false, "005user")); len(ids) != 1 {
		t.Fatalf("unexpected refresh ids: %v", ids)
	}
}

func TestUploadUseCase_EmptySelectionIsSkipped(t *testing.T) {
	t.Parallel()

	f := newUploadFixture()
	result, err := f.uc.Upload(f.ctx, domain.UploadDefinition{Name: "u", Disabled: true}, UploadRequest{})
	if err != nil || !result.Skipped {
		t.Fatalf("unexpected result: %#v %v", result, err)
	}
	if len(f.uploader.files) != 0 {
		t.Fatalf("no upload expected")
	}
}

func TestUploadUseCase_DisabledControl(t *testing.T) {
	t.Parallel()

	f := newUploadFixture()
	_, err := f.uc.Upload(f.ctx, domain.UploadDefinition{Name: "u", Disabled: true}, UploadRequest{FileName: "a.pdf", Content: []byte("x")})
	if !errors.Is(err, ErrComponentDisabled) {
		t.Fatalf("expected disabled error, got %v", err)
	}
}

func TestUploadUseCase_RejectsUnacceptedExtension(t *testing.T) {
	t.Parallel()

	f := newUploadFixture()
	result, err := f.uc.Upload(f.ctx, domain.UploadDefinition{Name: "u", Accept: ".pdf"}, UploadRequest{FileName: "a.exe", Content: []byte("x")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError || result.Message != domain.GenericTechnicalError {
		t.Fatalf("unexpected result: %#v", result)
	}
	if len(f.uploader.files) != 0 {
		t.Fatalf("no upload expected")
	}
}

func TestUploadUseCase_NewFileLinksRecordsAndRefreshes(t *testing.T) {
	t.Parallel()

	f := newUploadFixture()
	def := domain.UploadDefinition{
		Name:        "request-attachment",
		RecordIDs:   []string{"a02"},
		ContentMeta: map[string]any{"Category__c": "Proof"},
		RefreshUser: true,
		DoRefresh:   true,
	}
	result, err := f.uc.Upload(f.ctx, def, UploadRequest{FileName: "proof.pdf", Content: []byte("%PDF"), RecordID: "a01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError || result.DocumentID != "doc-1" || result.Message != domain.UploadSuccessMessage("proof.pdf") {
		t.Fatalf("unexpected result: %#v", result)
	}

	if len(f.uploader.files) != 1 {
		t.Fatalf("expected one upload, got %d", len(f.uploader.files))
	}
	upload := f.uploader.files[0]
	if upload.Content != base64.StdEncoding.EncodeToString([]byte("%PDF")) {
		t.Fatalf("content must be base64 encoded: %q", upload.Content)
	}
	if !reflect.DeepEqual(upload.RecordIDs, []string{"a01", "a02"}) {
		t.Fatalf("unexpected record ids: %v", upload.RecordIDs)
	}
	if upload.Sharing != domain.DefaultShareMode || upload.Meta["Category__c"] != "Proof" {
		t.Fatalf("unexpected upload: %#v", upload)
	}

	if len(f.refresher.calls) != 1 {
		t.Fatalf("expected one refresh, got %d", len(f.refresher.calls))
	}
	if ids := domain.RecordIDs(f.refresher.calls[0]); !reflect.DeepEqual(ids, []string{"a01", "a02", "005user"}) {
		t.Fatalf("unexpected refresh ids: %v", ids)
	}
	if len(f.publisher.notifications) != 1 || f.publisher.notifications[0].Channel != domain.RefreshChannel {
		t.Fatalf("expected a page refresh notification, got %#v", f.publisher.notifications)
	}
}

func TestUploadUseCase_NewFileFailure(t *testing.T) {
	t.Parallel()

	f := newUploadFixture()
	f.uploader.err = &domain.OperationError{StatusCode: 413, StatusText: "Request Entity Too Large"}
	result, err := f.uc.Upload(f.ctx, domain.UploadDefinition{Name: "u", DoRefresh: true}, UploadRequest{FileName: "a.pdf", Content: []byte("x"), RecordID: "a01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError || result.Message != "Request Entity Too Large" {
		t.Fatalf("unexpected result: %#v", result)
	}
	if len(f.refresher.calls) != 0 || len(f.publisher.notifications) != 0 {
		t.Fatalf("failure must not refresh")
	}
}

func TestUploadUseCase_NewVersionNotifies(t *testing.T) {
	t.Parallel()

	f := newUploadFixture()
	f.uploader.receipt = domain.UploadReceipt{ID: "ver-2"}
	result, err := f.uc.Upload(f.ctx, domain.UploadDefinition{Name: "v", DoNotify: true}, UploadRequest{FileName: "b.docx", Content: []byte("x"), FileID: "doc-9"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.uploader.versions) != 1 || f.uploader.versions[0].DocumentID != "doc-9" {
		t.Fatalf("unexpected version upload: %#v", f.uploader.versions)
	}
	if result.DocumentID != "doc-9" || result.Notification == nil {
		t.Fatalf("unexpected result: %#v", result)
	}
	alert := result.Notification.Alerts[0]
	if alert.Severity != domain.SeveritySuccess || alert.Title != domain.OperationDoneTitle {
		t.Fatalf("unexpected alert: %#v", alert)
	}
	if len(f.refresher.calls) != 0 || len(f.publisher.notifications) != 0 {
		t.Fatalf("version upload without doRefresh must not refresh")
	}
}

func TestUploadUseCase_NewVersionFailure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		doNotify bool
	}{
		{name: "notify", doNotify: true},
		{name: "inline", doNotify: false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newUploadFixture()
			f.uploader.err = fieldErrorsFailure()
			result, err := f.uc.Upload(f.ctx, domain.UploadDefinition{Name: "v", DoNotify: tc.doNotify}, UploadRequest{FileName: "b.pdf", Content: []byte("x"), FileID: "doc-9"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.IsError {
				t.Fatalf("expected error result")
			}
			if tc.doNotify {
				if result.Notification == nil || len(result.Notification.Alerts) != 2 {
					t.Fatalf("unexpected notification: %#v", result.Notification)
				}
				return
			}
			if result.Notification != nil || result.Message != "Validation failed" {
				t.Fatalf("unexpected result: %#v", result)
			}
		})
	}
}
