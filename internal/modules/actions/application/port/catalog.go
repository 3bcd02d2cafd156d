package port

import "dsfrGateway/internal/modules/actions/domain"

// ComponentCatalog resolves configured components by name. Unknown names yield
// domain.ErrUnknownComponent.
type ComponentCatalog interface {
	Button(name string) (domain.ButtonDefinition, error)
	Upload(name string) (domain.UploadDefinition, error)
	Form(name string) (domain.FormDefinition, error)
}
