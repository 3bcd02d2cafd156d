// Package catalog loads the YAML components catalog: every action button, upload control and
// record form the gateway serves. The document is validated against an embedded JSON Schema,
// then semantically, before any definition is handed out.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
	"dsfrGateway/internal/shared/normalization"

	"gopkg.in/yaml.v3"
)

// Catalog is an immutable, validated set of component definitions. The exported slices hold
// the same defaulted definitions the lookups return.
type Catalog struct {
	Buttons []domain.ButtonDefinition `json:"buttons"`
	Uploads []domain.UploadDefinition `json:"uploads"`
	Forms   []domain.FormDefinition   `json:"forms"`

	buttons map[string]domain.ButtonDefinition
	uploads map[string]domain.UploadDefinition
	forms   map[string]domain.FormDefinition
}

// Load reads and validates the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(strings.TrimSpace(path))
	if err != nil {
		return nil, domain.NewConfigurationError("catalog", fmt.Errorf("read %s: %w", path, err))
	}
	return Parse(data)
}

// Parse validates a YAML (or JSON) catalog document.
func Parse(data []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.NewConfigurationError("catalog", domain.ErrEmptyConfiguration)
	}

	var document any
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, domain.NewConfigurationError("catalog", fmt.Errorf("yaml: %w", err))
	}
	normalized, err := toJSON(document)
	if err != nil {
		return nil, domain.NewConfigurationError("catalog", err)
	}

	schema, _, err := compiledSchemas()
	if err != nil {
		return nil, err
	}
	instance, err := decodeInstance(bytes.NewReader(normalized))
	if err != nil {
		return nil, domain.NewConfigurationError("catalog", err)
	}
	if err := schema.Validate(instance); err != nil {
		return nil, domain.NewConfigurationError("catalog", fmt.Errorf("schema validation failed: %w", err))
	}

	decoder := json.NewDecoder(bytes.NewReader(normalized))
	decoder.UseNumber()
	var catalog Catalog
	if err := decoder.Decode(&catalog); err != nil {
		return nil, domain.NewConfigurationError("catalog", err)
	}
	if err := catalog.index(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// ValidateAction checks a JSON action descriptor against the action schema.
func ValidateAction(raw []byte) error {
	_, schema, err := compiledSchemas()
	if err != nil {
		return err
	}
	instance, err := decodeInstance(bytes.NewReader(raw))
	if err != nil {
		return domain.NewConfigurationError("action", err)
	}
	if err := schema.Validate(instance); err != nil {
		return domain.NewConfigurationError("action", fmt.Errorf("schema validation failed: %w", err))
	}
	return nil
}

// toJSON re-encodes a YAML document as JSON. yaml.v3 decodes mappings with string keys into
// map[string]any, anything else is rejected.
func toJSON(document any) ([]byte, error) {
	if document == nil {
		return nil, domain.ErrEmptyConfiguration
	}
	if err := checkKeys(document, ""); err != nil {
		return nil, err
	}
	return json.Marshal(document)
}

func checkKeys(value any, path string) error {
	switch typed := value.(type) {
	case map[string]any:
		for key, item := range typed {
			if err := checkKeys(item, path+"."+key); err != nil {
				return err
			}
		}
	case map[any]any:
		return fmt.Errorf("%s: mapping keys must be strings", strings.TrimPrefix(path, "."))
	case []any:
		for i, item := range typed {
			if err := checkKeys(item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Catalog) index() error {
	c.buttons = make(map[string]domain.ButtonDefinition, len(c.Buttons))
	c.uploads = make(map[string]domain.UploadDefinition, len(c.Uploads))
	c.forms = make(map[string]domain.FormDefinition, len(c.Forms))

	var errs []error
	for i, button := range c.Buttons {
		key := normalization.ComponentName(button.Name)
		if _, exists := c.buttons[key]; exists {
			errs = append(errs, domain.NewConfigurationError(fmt.Sprintf("buttons[%d].name", i), fmt.Errorf("duplicate button %q", button.Name)))
			continue
		}
		if err := button.Action.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("buttons[%d]: %w", i, err))
			continue
		}
		c.buttons[key] = button
	}
	for i, upload := range c.Uploads {
		key := normalization.ComponentName(upload.Name)
		if _, exists := c.uploads[key]; exists {
			errs = append(errs, domain.NewConfigurationError(fmt.Sprintf("uploads[%d].name", i), fmt.Errorf("duplicate upload %q", upload.Name)))
			continue
		}
		c.Uploads[i] = upload.WithDefaults()
		c.uploads[key] = c.Uploads[i]
	}
	for i, form := range c.Forms {
		key := normalization.ComponentName(form.Name)
		if _, exists := c.forms[key]; exists {
			errs = append(errs, domain.NewConfigurationError(fmt.Sprintf("forms[%d].name", i), fmt.Errorf("duplicate form %q", form.Name)))
			continue
		}
		fields, err := domain.ApplyFieldDefaults(form.Fields, form.DefaultSize)
		if err != nil {
			errs = append(errs, fmt.Errorf("forms[%d]: %w", i, err))
			continue
		}
		c.Forms[i].Fields = fields
		c.forms[key] = c.Forms[i]
	}
	return errors.Join(errs...)
}

func (c *Catalog) Button(name string) (domain.ButtonDefinition, error) {
	if button, ok := c.buttons[normalization.ComponentName(name)]; ok {
		return button, nil
	}
	return domain.ButtonDefinition{}, fmt.Errorf("button %q: %w", name, domain.ErrUnknownComponent)
}

func (c *Catalog) Upload(name string) (domain.UploadDefinition, error) {
	if upload, ok := c.uploads[normalization.ComponentName(name)]; ok {
		return upload, nil
	}
	return domain.UploadDefinition{}, fmt.Errorf("upload %q: %w", name, domain.ErrUnknownComponent)
}

func (c *Catalog) Form(name string) (domain.FormDefinition, error) {
	if form, ok := c.forms[normalization.ComponentName(name)]; ok {
		return form, nil
	}
	return domain.FormDefinition{}, fmt.Errorf("form %q: %w", name, domain.ErrUnknownComponent)
}

// Summary counts the definitions per kind.
func (c *Catalog) Summary() map[string]int {
	return map[string]int{"buttons": len(c.buttons), "uploads": len(c.uploads), "forms": len(c.forms)}
}

var _ port.ComponentCatalog = (*Catalog)(nil)

// decodeInstance decodes a JSON document for jsonschema/v5 validation, which expects values
// unmarshaled with json.Decoder.UseNumber.
func decodeInstance(r io.Reader) (any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	var instance any
	if err := decoder.Decode(&instance); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, errors.New("invalid character after top-level value")
	}
	return instance, nil
}
