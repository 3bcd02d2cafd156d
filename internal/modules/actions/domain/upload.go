package domain

import (
	"path/filepath"
	"strings"
)

const (
	// DefaultShareMode grants inferred permission on linked records.
	DefaultShareMode = "I"
	// DefaultUploadComment is displayed under the upload control when none is configured.
	DefaultUploadComment = "Taille maximale : 10 Mo. Formats supportés : pdf, jpg, png, doc, xls, odt."
	// DefaultAcceptedTypes lists the extensions accepted when none are configured.
	DefaultAcceptedTypes = ".pdf,.jpg,.jpeg,.png,.doc,.docx,.xls,.xlsx,.odt,.ods"
	uploadSuccessTemplate = "Le fichier {0} a bien été chargé."
)

// NewFileUpload registers a new document linked to records.
type NewFileUpload struct {
	Name      string         `json:"name"`
	Content   string         `json:"content"`
	RecordIDs []string       `json:"recordIds"`
	Sharing   string         `json:"sharing"`
	Meta      map[string]any `json:"meta,omitempty"`
}

// NewVersionUpload adds a version to an existing document.
type NewVersionUpload struct {
	Name       string `json:"name"`
	Content    string `json:"content"`
	DocumentID string `json:"documentId"`
}

// UploadReceipt is returned by the upload service.
type UploadReceipt struct {
	ID string `json:"id"`
}

// UploadSuccessMessage formats the confirmation shown under the control.
func UploadSuccessMessage(fileName string) string {
	return strings.Replace(uploadSuccessTemplate, "{0}", fileName, 1)
}

// AcceptsFile reports whether the file extension matches the accept list (".pdf,.png" style).
// An empty list or a "*" entry accepts anything.
func AcceptsFile(accept, fileName string) bool {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return true
	}
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(fileName)))
	for _, entry := range strings.Split(accept, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if entry == "*" || entry == "*/*" {
			return true
		}
		if !strings.HasPrefix(entry, ".") {
			entry = "." + entry
		}
		if entry == ext {
			return true
		}
	}
	return false
}
