package port

import (
	"context"
	"errors"

	"dsfrGateway/internal/modules/actions/domain"
)

var (
	// ErrRecordForbidden indicates the platform rejected the call for authorization reasons.
	ErrRecordForbidden = errors.New("record operation forbidden")
	// ErrRecordNotFound indicates the targeted record does not exist.
	ErrRecordNotFound = errors.New("record not found")
	// ErrMissingRecordID is returned before any call when an operation needs a record id.
	ErrMissingRecordID = errors.New("missing record id")
)

// MutationResult is the outcome of a successful store mutation.
type MutationResult struct {
	RecordID string
}

// RecordStore performs record mutations on the platform. Params are forwarded verbatim.
type RecordStore interface {
	Create(ctx context.Context, params map[string]any) (MutationResult, error)
	Update(ctx context.Context, params map[string]any) (MutationResult, error)
	Delete(ctx context.Context, params map[string]any) (MutationResult, error)
}

// RecordReader reads field values of a record.
type RecordReader interface {
	FieldValue(ctx context.Context, recordID, field string) (string, error)
}

// FieldInfoProvider returns platform metadata for the fields of an object.
type FieldInfoProvider interface {
	FieldInfos(ctx context.Context, objectName string) (map[string]domain.FieldInfo, error)
}
