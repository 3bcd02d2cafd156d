package usecase

import (
	"context"
	"sync"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
)

type storeCall struct {
	op     domain.ActionType
	params map[string]any
}

type fakeStore struct {
	mu     sync.Mutex
	calls  []storeCall
	result port.MutationResult
	err    error
	block  chan struct{}
}

func (s *fakeStore) record(ctx context.Context, op domain.ActionType, params map[string]any) (port.MutationResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, storeCall{op: op, params: params})
	block := s.block
	s.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return port.MutationResult{}, ctx.Err()
		}
	}
	return s.result, s.err
}

func (s *fakeStore) Create(ctx context.Context, params map[string]any) (port.MutationResult, error) {
	return s.record(ctx, domain.ActionCreate, params)
}

func (s *fakeStore) Update(ctx context.Context, params map[string]any) (port.MutationResult, error) {
	return s.record(ctx, domain.ActionUpdate, params)
}

func (s *fakeStore) Delete(ctx context.Context, params map[string]any) (port.MutationResult, error) {
	return s.record(ctx, domain.ActionDelete, params)
}

func (s *fakeStore) Calls() []storeCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]storeCall(nil), s.calls...)
}

type fakeNavigator struct {
	mu       sync.Mutex
	requests []domain.NavigationRequest
}

func (n *fakeNavigator) Navigate(_ context.Context, request domain.NavigationRequest) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requests = append(n.requests, request)
}

type fakeRefresher struct {
	mu    sync.Mutex
	calls [][]domain.RecordRef
	err   error
}

func (r *fakeRefresher) Refresh(_ context.Context, refs []domain.RecordRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, refs)
	return r.err
}

type fakePresenter struct {
	mu       sync.Mutex
	payloads []domain.NotificationPayload
	err      error
}

func (p *fakePresenter) Present(_ context.Context, payload domain.NotificationPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return p.err
}

type fakePublisher struct {
	mu            sync.Mutex
	notifications []domain.ChannelNotification
	err           error
}

func (p *fakePublisher) Publish(_ context.Context, notification domain.ChannelNotification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, notification)
	return p.err
}

type fakeUploader struct {
	files    []domain.NewFileUpload
	versions []domain.NewVersionUpload
	receipt  domain.UploadReceipt
	err      error
}

func (u *fakeUploader) UploadNewFile(_ context.Context, upload domain.NewFileUpload) (domain.UploadReceipt, error) {
	u.files = append(u.files, upload)
	return u.receipt, u.err
}

func (u *fakeUploader) UploadNewVersion(_ context.Context, upload domain.NewVersionUpload) (domain.UploadReceipt, error) {
	u.versions = append(u.versions, upload)
	return u.receipt, u.err
}

type controlEvent struct {
	component string
	busy      bool
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []controlEvent
}

func (n *fakeNotifier) ControlState(_ context.Context, component string, busy bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, controlEvent{component: component, busy: busy})
}

func (n *fakeNotifier) Events() []controlEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]controlEvent(nil), n.events...)
}

type fakeReader struct {
	value string
	err   error
	calls []string
}

func (r *fakeReader) FieldValue(_ context.Context, recordID, field string) (string, error) {
	r.calls = append(r.calls, recordID+"|"+field)
	return r.value, r.err
}

type fakeInfos struct {
	infos map[string]domain.FieldInfo
	err   error
	calls int
}

func (f *fakeInfos) FieldInfos(_ context.Context, _ string) (map[string]domain.FieldInfo, error) {
	f.calls++
	return f.infos, f.err
}

func fieldErrorsFailure() error {
	return &domain.OperationError{
		StatusCode: 400,
		StatusText: "Bad Request",
		Body: domain.ErrorBody{
			Message: "Validation failed",
			Output: &domain.ErrorOutput{Errors: []domain.FieldError{
				{Message: "Name is required", Field: "Name"},
				{Message: "Status is invalid", Field: "Status"},
			}},
		},
	}
}
