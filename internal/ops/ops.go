// Package ops implements taskflow operations as pure functions over the
// store. Each operation takes an Input struct and returns an Output struct;
// the CLI, MCP, and web surfaces are thin adapters over this package.
package ops

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Settings keys used by the review countdown.
const (
	SettingLastReviewDate      = "last_review_date"
	SettingReviewFrequencyDays = "review_frequency_days"
)

// Capture source tags for the built-in entry points. Callers may supply
// their own provenance tag instead.
const (
	SourceQuickCapture = "quick_capture"
	SourceCLI          = "cli"
	SourceMCP          = "mcp"
	SourceWeb          = "web"
	SourceImport       = "import"
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
