package item

// Status is the ingestion lifecycle state of an item.
type Status string

// Lifecycle states.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Statuses lists every lifecycle state in display order.
var Statuses = []Status{StatusPending, StatusProcessing, StatusCompleted, StatusFailed}

// IsValid reports whether s is a known lifecycle state.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
