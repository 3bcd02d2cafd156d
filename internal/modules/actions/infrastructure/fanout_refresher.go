package infrastructure

import (
	"context"
	"errors"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
)

// FanoutRefresher signals every configured refresher and joins their errors.
type FanoutRefresher struct {
	refreshers []port.RecordRefresher
}

func NewFanoutRefresher(refreshers ...port.RecordRefresher) *FanoutRefresher {
	kept := make([]port.RecordRefresher, 0, len(refreshers))
	for _, r := range refreshers {
		if r != nil {
			kept = append(kept, r)
		}
	}
	return &FanoutRefresher{refreshers: kept}
}

func (f *FanoutRefresher) Refresh(ctx context.Context, refs []domain.RecordRef) error {
	var errs []error
	for _, r := range f.refreshers {
		if err := r.Refresh(ctx, refs); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var _ port.RecordRefresher = (*FanoutRefresher)(nil)
