package models

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// TaskStatuses lists every selectable target status. The server decides which
// transitions are accepted, so the client offers all of them from any state.
var TaskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	ProjectID      int64        `json:"project_id"`
	AssignedTo     *Member      `json:"assigned_to,omitempty"`
	Assignees      []int64      `json:"assignees,omitempty"`
	Priority       Priority     `json:"priority"`
	Status         TaskStatus   `json:"status"`
	DueDate        string       `json:"due_date"`
	EstimatedHours NumberString `json:"estimated_hours"`
}

// TaskPayload is the body of a task create or update.
type TaskPayload struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	ProjectID      int64      `json:"project_id"`
	TaskID         int64      `json:"task_id,omitempty"`
	AssignedTo     []int64    `json:"assigned_to"`
	Priority       Priority   `json:"priority"`
	Status         TaskStatus `json:"status"`
	DueDate        string     `json:"due_date"`
	EstimatedHours string     `json:"estimated_hours"`
}
