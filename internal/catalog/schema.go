package catalog

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	schemaBaseURL    = "https://dsfr-gateway.local/schemas/"
	catalogSchemaURL = schemaBaseURL + "catalog.schema.json"
	actionSchemaURL  = schemaBaseURL + "action.schema.json"
)

//go:embed schema/*.json
var schemaFS embed.FS

var (
	schemasOnce   sync.Once
	catalogSchema *jsonschema.Schema
	actionSchema  *jsonschema.Schema
	schemasErr    error
)

func compiledSchemas() (*jsonschema.Schema, *jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		for url, file := range map[string]string{
			catalogSchemaURL: "schema/catalog.schema.json",
			actionSchemaURL:  "schema/action.schema.json",
		} {
			data, err := schemaFS.ReadFile(file)
			if err != nil {
				schemasErr = fmt.Errorf("catalog schema read failed: %w", err)
				return
			}
			if err := c.AddResource(url, bytes.NewReader(data)); err != nil {
				schemasErr = fmt.Errorf("catalog schema load failed: %w", err)
				return
			}
		}
		if catalogSchema, schemasErr = c.Compile(catalogSchemaURL); schemasErr != nil {
			schemasErr = fmt.Errorf("catalog schema compile failed: %w", schemasErr)
			return
		}
		if actionSchema, schemasErr = c.Compile(actionSchemaURL); schemasErr != nil {
			schemasErr = fmt.Errorf("action schema compile failed: %w", schemasErr)
		}
	})
	return catalogSchema, actionSchema, schemasErr
}
