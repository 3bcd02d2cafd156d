package transport

import (
	"time"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/application/usecase"
	"dsfrGateway/internal/modules/actions/infrastructure"
	"dsfrGateway/internal/shared/auth"
)

const defaultMaxUploadBytes = 10 << 20

// Dependencies groups everything the HTTP and websocket handlers need.
type Dependencies struct {
	Hub            *infrastructure.Hub
	Validator      auth.TokenValidator
	Catalog        port.ComponentCatalog
	ValidateAction func(raw []byte) error
	Buttons        *usecase.ActionButtonUseCase
	Uploads        *usecase.UploadUseCase
	Forms          *usecase.RecordFormUseCase
	Versions       port.RecordVersionReader
	SendBuffer     int
	CommandTimeout time.Duration
	MaxUploadBytes int64
}

func (d Dependencies) maxUploadBytes() int64 {
	if d.MaxUploadBytes <= 0 {
		return defaultMaxUploadBytes
	}
	return d.MaxUploadBytes
}
