package domain

import "strings"

// ViewModeView opens the record detail page.
const ViewModeView = "view"

// NavigationRequest asks the UI to open a record page.
type NavigationRequest struct {
	RecordID   string `json:"recordId"`
	ObjectName string `json:"objectName,omitempty"`
	ViewMode   string `json:"viewMode"`
}

// RecordRef identifies a record whose cached data is stale.
type RecordRef struct {
	RecordID string `json:"recordId"`
}

// RecordRefs converts ids to refs, dropping blanks and duplicates while keeping order.
func RecordRefs(ids []string) []RecordRef {
	if len(ids) == 0 {
		return nil
	}
	refs := make([]RecordRef, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		refs = append(refs, RecordRef{RecordID: trimmed})
	}
	return refs
}

// RecordIDs flattens refs back to identifiers.
func RecordIDs(refs []RecordRef) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.RecordID)
	}
	return ids
}
