package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseActionDescriptor(t *testing.T) {
	raw := `{"type":"create","params":{"apiName":"Case","fields":{"Subject":"Hi","Priority":2}},"navigate":true,"reload":["001",{"recordId":"002"},""]}`

	descriptor, err := ParseActionDescriptor(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if descriptor.Type != ActionCreate {
		t.Fatalf("unexpected type: %s", descriptor.Type)
	}
	if !descriptor.Navigate {
		t.Fatal("expected navigate flag")
	}
	if got := descriptor.ObjectName(); got != "Case" {
		t.Fatalf("expected apiName alias, got %q", got)
	}
	if len(descriptor.Reload) != 2 || descriptor.Reload[0] != "001" || descriptor.Reload[1] != "002" {
		t.Fatalf("unexpected reload list: %#v", descriptor.Reload)
	}
	fields := descriptor.Params["fields"].(map[string]any)
	if fields["Priority"] != json.Number("2") {
		t.Fatalf("expected numbers preserved as json.Number, got %#v", fields["Priority"])
	}
}

func TestParseActionDescriptorObjectNameWins(t *testing.T) {
	descriptor, err := ParseActionDescriptor(`{"type":"update","params":{"objectName":"Account","apiName":"Case"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := descriptor.ObjectName(); got != "Account" {
		t.Fatalf("expected objectName, got %q", got)
	}
}

func TestParseActionDescriptorConfigurationErrors(t *testing.T) {
	cases := map[string]string{
		"empty":       "   ",
		"malformed":   `{"type":`,
		"unknown":     `{"type":"archive"}`,
		"missingType": `{"params":{}}`,
		"badReload":   `{"type":"delete","reload":"001"}`,
	}
	for name, raw := range cases {
		_, err := ParseActionDescriptor(raw)
		if !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("%s: expected configuration error, got %v", name, err)
		}
		var cfgErr *ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("%s: expected *ConfigurationError, got %T", name, err)
		}
	}

	_, err := ParseActionDescriptor(`{"type":"archive"}`)
	if !errors.Is(err, ErrUnsupportedActionType) {
		t.Fatalf("expected unsupported type to be wrapped, got %v", err)
	}
}

func TestActionTypeValid(t *testing.T) {
	for _, valid := range []ActionType{ActionCreate, ActionUpdate, ActionDelete} {
		if !valid.Valid() {
			t.Fatalf("expected %s to be valid", valid)
		}
	}
	for _, invalid := range []ActionType{"", "CREATE", "upsert"} {
		if invalid.Valid() {
			t.Fatalf("expected %q to be invalid", invalid)
		}
	}
}
