package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CaseSortFields contains allowed sort fields for case records
var CaseSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"record_number":       true,
	"full_name":           true,
	"status":              true,
	"progress_percentage": true,
	"funeral_date":        true,
	"date_of_death":       true,
	"amount_covered":      true,
	"amount_paid":         true,
}

// DocumentSortFields contains allowed sort fields for case documents
var DocumentSortFields = map[string]bool{
	"id":            true,
	"uploaded_at":   true,
	"document_name": true,
	"document_type": true,
	"file_size":     true,
}
