package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/platform/metrics"
)

var (
	// ErrFormReadOnly is returned when saving a read-only form.
	ErrFormReadOnly = errors.New("record form is read-only")
	// ErrFormNotLoaded is returned when saving a form whose target record is unknown.
	ErrFormNotLoaded = errors.New("record form not loaded")
)

// RecordFormUseCase builds record forms bound to the platform collaborators.
type RecordFormUseCase struct {
	store  port.RecordStore
	reader port.RecordReader
	infos  port.FieldInfoProvider
	guard  *InFlightGuard
}

func NewRecordFormUseCase(store port.RecordStore, reader port.RecordReader, infos port.FieldInfoProvider, guard *InFlightGuard) *RecordFormUseCase {
	return &RecordFormUseCase{store: store, reader: reader, infos: infos, guard: guard}
}

// Open returns a pending form for the current record.
func (uc *RecordFormUseCase) Open(def domain.FormDefinition, recordID string) (*RecordForm, error) {
	form, err := NewRecordForm(def, recordID)
	if err != nil {
		return nil, err
	}
	form.store = uc.store
	form.reader = uc.reader
	form.infos = uc.infos
	form.guard = uc.guard
	return form, nil
}

// RecordForm is one mounted instance of a form definition.
type RecordForm struct {
	mu sync.Mutex

	def      domain.FormDefinition
	recordID string
	fields   []domain.FieldConfig

	state        domain.FormState
	targetID     string
	editing      bool
	labelsLoaded bool
	message      *domain.FormMessage
	notification *domain.NotificationPayload

	mountOnce sync.Once
	mountErr  error

	store  port.RecordStore
	reader port.RecordReader
	infos  port.FieldInfoProvider
	guard  *InFlightGuard
}

// RecordFormView is the serializable state of a form.
type RecordFormView struct {
	Name         string                      `json:"name"`
	Title        string                      `json:"title,omitempty"`
	ObjectName   string                      `json:"objectName"`
	RecordID     string                      `json:"recordId,omitempty"`
	State        domain.FormState            `json:"state"`
	ReadOnly     bool                        `json:"readOnly"`
	EditMode     bool                        `json:"editMode"`
	Fields       []domain.FieldConfig        `json:"fields"`
	Message      *domain.FormMessage         `json:"message,omitempty"`
	Notification *domain.NotificationPayload `json:"notification,omitempty"`
}

// NewRecordForm validates the definition and builds the field list with default sizes.
func NewRecordForm(def domain.FormDefinition, recordID string) (*RecordForm, error) {
	if strings.TrimSpace(def.ObjectName) == "" {
		return nil, domain.NewConfigurationError("form.objectName", domain.ErrEmptyConfiguration)
	}
	if def.UsesRelatedRecord() && strings.TrimSpace(def.RelatedObjectName) == "" {
		return nil, domain.NewConfigurationError("form.relatedObjectName", domain.ErrEmptyConfiguration)
	}
	fields, err := domain.ApplyFieldDefaults(def.Fields, def.DefaultSize)
	if err != nil {
		return nil, err
	}
	return &RecordForm{
		def:      def,
		recordID: strings.TrimSpace(recordID),
		fields:   fields,
		state:    domain.FormPending,
	}, nil
}

// Mount resolves the edited record once. Later calls return the first result.
func (f *RecordForm) Mount(ctx context.Context) error {
	f.mountOnce.Do(func() {
		f.mountErr = f.mount(ctx)
	})
	return f.mountErr
}

func (f *RecordForm) mount(ctx context.Context) error {
	if !f.def.UsesRelatedRecord() {
		f.mu.Lock()
		f.targetID = f.recordID
		f.state = domain.FormLoaded
		f.mu.Unlock()
		return nil
	}

	if f.reader == nil {
		f.setState(domain.FormFailed, "")
		return fmt.Errorf("mount form %s: no record reader", f.def.Name)
	}
	related, err := f.reader.FieldValue(ctx, f.recordID, f.def.RelatedFieldPath())
	if err != nil {
		slog.Warn("record form related record fetch failed", slog.String("form", f.def.Name), slog.String("recordId", f.recordID), slog.Any("error", err))
		f.setState(domain.FormFailed, "")
		return fmt.Errorf("mount form %s: %w", f.def.Name, err)
	}
	related = strings.TrimSpace(related)
	if related == "" {
		// creation mode is not supported for related records
		slog.Warn("record form related record id empty", slog.String("form", f.def.Name), slog.String("field", f.def.RelatedFieldPath()))
		f.setState(domain.FormFailed, "")
		return fmt.Errorf("mount form %s: %w", f.def.Name, port.ErrMissingRecordID)
	}
	f.setState(domain.FormLoaded, related)
	return nil
}

func (f *RecordForm) setState(state domain.FormState, targetID string) {
	f.mu.Lock()
	f.state = state
	f.targetID = targetID
	f.mu.Unlock()
}

// LoadObjectInfo fetches field metadata once and applies it.
func (f *RecordForm) LoadObjectInfo(ctx context.Context) error {
	f.mu.Lock()
	loaded := f.labelsLoaded
	f.mu.Unlock()
	if loaded || f.infos == nil {
		return nil
	}
	infos, err := f.infos.FieldInfos(ctx, f.def.FormObjectName())
	if err != nil {
		return fmt.Errorf("load field infos for %s: %w", f.def.FormObjectName(), err)
	}
	f.ApplyObjectInfo(infos)
	return nil
}

// ApplyObjectInfo fills missing labels and help texts from platform metadata.
func (f *RecordForm) ApplyObjectInfo(infos map[string]domain.FieldInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = domain.ApplyFieldInfo(f.fields, infos)
	f.labelsLoaded = true
}

// Edit enters edit mode.
func (f *RecordForm) Edit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = nil
	f.notification = nil
	f.editing = true
}

// Cancel leaves edit mode without saving.
func (f *RecordForm) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.message = nil
	f.notification = nil
	f.editing = false
}

// Save updates the edited record with values. A remote failure is reported through the form
// message and notification, not the returned error.
func (f *RecordForm) Save(ctx context.Context, values map[string]any) error {
	if f.def.ReadOnly {
		return ErrFormReadOnly
	}
	f.mu.Lock()
	state, targetID := f.state, f.targetID
	f.message = nil
	f.notification = nil
	f.mu.Unlock()
	if state != domain.FormLoaded || targetID == "" {
		return ErrFormNotLoaded
	}

	release, err := f.guard.Acquire(ctx, InstanceFromContext(ctx, f.def.Name))
	if err != nil {
		return err
	}
	defer release()

	params := map[string]any{
		"id":         targetID,
		"objectName": f.def.FormObjectName(),
		"fields":     f.filterValues(values),
	}
	if _, err := f.store.Update(ctx, params); err != nil {
		slog.Warn("record form save failed", slog.String("form", f.def.Name), slog.String("recordId", targetID), slog.Any("error", err))
		metrics.FormSaveTotal.WithLabelValues("error").Inc()
		payload := domain.FailureNotification(err)
		message := domain.FormSaveFailedMessage
		f.mu.Lock()
		f.message = &message
		f.notification = &payload
		f.mu.Unlock()
		return nil
	}

	metrics.FormSaveTotal.WithLabelValues("success").Inc()
	slog.Info("record form saved", slog.String("form", f.def.Name), slog.String("recordId", targetID))
	message := domain.FormSavedMessage
	f.mu.Lock()
	f.message = &message
	f.editing = false
	f.mu.Unlock()
	return nil
}

// filterValues keeps the configured, writable fields only.
func (f *RecordForm) filterValues(values map[string]any) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	filtered := make(map[string]any, len(values))
	for _, field := range f.fields {
		if field.ReadOnly {
			continue
		}
		if value, ok := values[field.Name]; ok {
			filtered[field.Name] = value
		}
	}
	return filtered
}

// State returns the mount state.
func (f *RecordForm) State() domain.FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// View snapshots the form for rendering.
func (f *RecordForm) View() RecordFormView {
	f.mu.Lock()
	defer f.mu.Unlock()
	fields := make([]domain.FieldConfig, len(f.fields))
	copy(fields, f.fields)
	return RecordFormView{
		Name:         f.def.Name,
		Title:        f.def.Title,
		ObjectName:   f.def.FormObjectName(),
		RecordID:     f.targetID,
		State:        f.state,
		ReadOnly:     f.def.ReadOnly,
		EditMode:     f.editing,
		Fields:       fields,
		Message:      f.message,
		Notification: f.notification,
	}
}
