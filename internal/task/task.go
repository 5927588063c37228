package task

// Status is the triage state of a task. The set is closed; any state may
// transition to any other state.
type Status string

const (
	StatusNow     Status = "now"
	StatusNext    Status = "next"
	StatusWaiting Status = "waiting"
	StatusSomeday Status = "someday"
	StatusDone    Status = "done"
)

// AllStatuses lists every valid status in display order.
var AllStatuses = []Status{StatusNow, StatusNext, StatusWaiting, StatusSomeday, StatusDone}

// ParseStatus converts a status token into a Status.
// Returns false for tokens outside the closed enumeration.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusNow, StatusNext, StatusWaiting, StatusSomeday, StatusDone:
		return Status(s), true
	}
	return "", false
}

// StatusFromStored converts a status token read back from storage.
// Unrecognized tokens default to "next" rather than failing the read.
func StatusFromStored(s string) Status {
	if status, ok := ParseStatus(s); ok {
		return status
	}
	return StatusNext
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// Task represents a captured task.
type Task struct {
	// ID is a ULID that uniquely identifies this task
	ID string `json:"id"`

	// Title is the cleaned-up task title (markers stripped by the parser)
	Title string `json:"title"`

	// Status is the current triage state
	Status Status `json:"status"`

	// Context is an optional grouping tag extracted from an @word marker (nullable)
	Context *string `json:"context"`

	// ScheduledFor is the Unix timestamp the task is scheduled for (nullable)
	ScheduledFor *int64 `json:"scheduled_for"`

	// CompletedAt is the Unix timestamp set when the task transitions into done (nullable)
	CompletedAt *int64 `json:"completed_at"`

	// CreatedAt is the Unix timestamp when the task was created
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp when the task was last mutated
	UpdatedAt int64 `json:"updated_at"`

	// OriginalInput preserves the raw string the user typed (nullable)
	OriginalInput *string `json:"original_input"`

	// Source identifies the capture entry point (e.g., "quick_capture", "cli")
	Source string `json:"source"`

	// Tags is free-form text, reserved for future use (nullable)
	Tags *string `json:"tags"`

	// SyncVersion starts at 1 and increments by 1 on every status-affecting
	// update. Reserved for a future synchronization protocol.
	SyncVersion int `json:"sync_version"`
}
