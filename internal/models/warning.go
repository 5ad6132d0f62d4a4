package models

import "fmt"

// WarningKind categorizes non-fatal build problems.
type WarningKind string

const (
	// WarningMalformedRecord marks a record that failed shape
	// validation, e.g. an inverted port range. The record is skipped.
	WarningMalformedRecord WarningKind = "malformed-record"

	// WarningDanglingReference marks a record whose parent reference
	// did not resolve. Expected under eventual consistency; the record
	// is excluded from the graph.
	WarningDanglingReference WarningKind = "dangling-reference"
)

// Warning is a non-fatal problem recorded during normalization or
// graph building. Warnings accumulate and are attached to reports but
// never abort a build.
type Warning struct {
	Kind         WarningKind `json:"kind"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	Message      string      `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s %s: %s", w.Kind, w.ResourceType, w.ResourceID, w.Message)
}
