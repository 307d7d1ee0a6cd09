// Package collection derives storage-safe collection identifiers from
// uploaded-file display names. Identifiers must be 3-63 chars, contain
// only lowercase alphanumerics, hyphens and underscores, start and end
// alphanumeric, and have no consecutive separators.
package collection

import (
	"path/filepath"
	"regexp"
	"strings"
)

const defaultName = "default_collection"

var (
	invalidChars  = regexp.MustCompile(`[^a-z0-9\-_]`)
	separatorRuns = regexp.MustCompile(`[-_]+`)
	leadingJunk   = regexp.MustCompile(`^[^a-z0-9]+`)
	trailingJunk  = regexp.MustCompile(`[^a-z0-9]+$`)

	validShape = regexp.MustCompile(`^[a-z0-9][a-z0-9\-_]*[a-z0-9]$`)
)

// Sanitize converts an arbitrary display name into a valid collection
// identifier. It is a total, deterministic and idempotent function:
// the same input always yields the same identifier, and its outputs
// map to themselves.
func Sanitize(displayName string) string {
	if displayName == "" {
		return defaultName
	}

	name := strings.TrimSuffix(displayName, filepath.Ext(displayName))
	name = strings.ToLower(name)
	name = invalidChars.ReplaceAllString(name, "_")
	name = separatorRuns.ReplaceAllString(name, "_")
	name = leadingJunk.ReplaceAllString(name, "")
	name = trailingJunk.ReplaceAllString(name, "")

	if len(name) < 3 {
		name = "doc_" + name + "_collection"
		name = separatorRuns.ReplaceAllString(name, "_")
	}
	if len(name) > 63 {
		// 59 + len("_doc") keeps the result within the 63-char cap.
		name = trailingJunk.ReplaceAllString(name[:59], "") + "_doc"
	}
	if name == "" {
		name = defaultName
	}
	return name
}

// Validate independently checks the identifier constraints and returns
// a diagnostic reason on failure. Every Sanitize output passes it.
func Validate(name string) (bool, string) {
	if name == "" {
		return false, "collection name cannot be empty"
	}
	if len(name) < 3 {
		return false, "collection name must be at least 3 characters long"
	}
	if len(name) > 63 {
		return false, "collection name must be at most 63 characters long"
	}
	if strings.Contains(name, "--") || strings.Contains(name, "__") ||
		strings.Contains(name, "-_") || strings.Contains(name, "_-") {
		return false, "collection name cannot contain consecutive hyphens or underscores"
	}
	if !validShape.MatchString(name) {
		return false, "collection name must start and end alphanumeric and contain only lowercase alphanumerics, hyphens, and underscores"
	}
	return true, ""
}
