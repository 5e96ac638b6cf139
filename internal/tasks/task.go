package tasks

import "time"

// Status can be one of:
//   - open
//   - in_progress
//   - done
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	default:
		return false
	}
}

// Task is a committee todo item, e.g. "order the sufganiyot" or
// "collect class fund payments".
type Task struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Details   string     `json:"details"`
	Assignee  string     `json:"assignee"`
	Status    Status     `json:"status"`
	DueAt     *time.Time `json:"due_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
