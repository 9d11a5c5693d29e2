package viewmodel

import (
	"context"
	"strings"
	"sync"

	"rama-crm/logging"
	"rama-crm/models"
	"rama-crm/notify"
	"rama-crm/services"
	"rama-crm/utils"
)

type TaskEditSource interface {
	GetTask(ctx context.Context, taskID int64) (*services.TaskDetail, error)
	FetchProjectMembers(ctx context.Context, projectID int64) ([]models.Member, error)
	UpdateTask(ctx context.Context, taskID int64, payload models.TaskPayload) error
}

// TaskDraft is the editable copy of a task.
type TaskDraft struct {
	Title          string            `json:"title" validate:"filled"`
	Description    string            `json:"description" validate:"filled"`
	ProjectID      int64             `json:"project_id"`
	AssignedTo     []int64           `json:"assigned_to" validate:"min=1"`
	Priority       models.Priority   `json:"priority" validate:"priority"`
	Status         models.TaskStatus `json:"status" validate:"task_status"`
	DueDate        string            `json:"due_date" validate:"filled,isodate"`
	EstimatedHours string            `json:"estimated_hours" validate:"filled,amount"`
}

var taskMessages = messages{
	"title":           {"filled": "The title field is required."},
	"description":     {"filled": "The description field is required."},
	"assigned_to":     {"min": "Please assign the task to a team member."},
	"priority":        {"priority": "The selected priority is invalid."},
	"status":          {"task_status": "The selected status is invalid."},
	"due_date":        {"filled": "The due date field is required.", "isodate": "The due date is not a valid date."},
	"estimated_hours": {"filled": "The estimated hours field is required.", "amount": "The estimated hours must be a number."},
}

type TaskEditView struct {
	Open            bool            `json:"open"`
	TaskID          int64           `json:"taskId"`
	Confirmed       *models.Task    `json:"confirmed"`
	Draft           TaskDraft       `json:"draft"`
	Errors          FieldErrors     `json:"errors"`
	Members         []models.Member `json:"members"`
	PriorityOptions []Option        `json:"priorityOptions"`
	StatusOptions   []Option        `json:"statusOptions"`
}

// TaskEdit is the edit-task surface.
type TaskEdit struct {
	mu        sync.Mutex
	svc       TaskEditSource
	ui        UI
	onSaved   func(ctx context.Context) error
	open      bool
	taskID    int64
	confirmed *models.Task
	draft     TaskDraft
	errors    FieldErrors
	members   []models.Member
}

// NewTaskEdit builds the surface. onSaved runs after every accepted update,
// usually the owning list's refresh; it may be nil.
func NewTaskEdit(svc TaskEditSource, ui UI, onSaved func(ctx context.Context) error) *TaskEdit {
	return &TaskEdit{svc: svc, ui: ui, onSaved: onSaved, errors: FieldErrors{}}
}

func (e *TaskEdit) Load(ctx context.Context, taskID int64) error {
	defer e.ui.busy()()

	detail, err := e.svc.GetTask(ctx, taskID)
	if err != nil {
		notify.Error(e.ui.Notifier, "Failed to load task")
		return classify(err)
	}
	members, err := e.svc.FetchProjectMembers(ctx, detail.Task.ProjectID)
	if err != nil {
		notify.Error(e.ui.Notifier, "Failed to load team members")
		return classify(err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	task := detail.Task
	e.taskID = taskID
	e.confirmed = &task
	e.draft = draftFromTask(task, detail.AssignUser)
	e.members = members
	e.errors = FieldErrors{}
	e.open = true
	return nil
}

func draftFromTask(t models.Task, assignees []int64) TaskDraft {
	ids := append([]int64{}, assignees...)
	if len(ids) == 0 {
		ids = append(ids, t.Assignees...)
	}
	if len(ids) == 0 && t.AssignedTo != nil {
		ids = append(ids, t.AssignedTo.ID)
	}
	due := ""
	if d, ok := utils.ParseISODate(t.DueDate); ok {
		due = d.Format(utils.PayloadDateLayout)
	}
	return TaskDraft{
		Title:          t.Title,
		Description:    t.Description,
		ProjectID:      t.ProjectID,
		AssignedTo:     ids,
		Priority:       t.Priority,
		Status:         t.Status,
		DueDate:        due,
		EstimatedHours: t.EstimatedHours.String(),
	}
}

// payload builds the request body; taskID is zero for a new task.
func (d TaskDraft) payload(taskID int64) models.TaskPayload {
	return models.TaskPayload{
		Title:          strings.TrimSpace(d.Title),
		Description:    strings.TrimSpace(d.Description),
		ProjectID:      d.ProjectID,
		TaskID:         taskID,
		AssignedTo:     append([]int64{}, d.AssignedTo...),
		Priority:       d.Priority,
		Status:         d.Status,
		DueDate:        utils.NormalizePayloadDate(d.DueDate),
		EstimatedHours: strings.TrimSpace(d.EstimatedHours),
	}
}

// SubmitTaskEdit validates draft and sends it. Local validation failures and
// 422 responses replace the form errors; nothing else touches the form.
func (e *TaskEdit) SubmitTaskEdit(ctx context.Context, taskID int64, draft TaskDraft) error {
	if errs := check(draft, taskMessages); len(errs) > 0 {
		e.mu.Lock()
		e.draft = draft
		e.errors = errs
		e.mu.Unlock()
		return asValidationError(errs)
	}

	e.mu.Lock()
	e.draft = draft
	e.mu.Unlock()

	done := e.ui.busy()
	err := e.svc.UpdateTask(ctx, taskID, draft.payload(taskID))
	done()
	if err != nil {
		logging.Logger.Warnf("Event ID: TASK_UPDATE_FAILED, Description: Task %d: %v", taskID, err)
		return e.ui.settle(err, func(fields FieldErrors) {
			e.mu.Lock()
			e.errors = fields
			e.mu.Unlock()
		})
	}

	e.mu.Lock()
	e.errors = FieldErrors{}
	e.open = false
	e.mu.Unlock()
	notify.Success(e.ui.Notifier, "Task updated successfully!")

	refresh(ctx, e.onSaved)
	return nil
}

func (e *TaskEdit) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = false
	e.errors = FieldErrors{}
}

func (e *TaskEdit) Errors() FieldErrors {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.errors.clone()
}

func (e *TaskEdit) View() TaskEditView {
	e.mu.Lock()
	defer e.mu.Unlock()
	view := TaskEditView{
		Open:            e.open,
		TaskID:          e.taskID,
		Draft:           e.draft,
		Errors:          e.errors.clone(),
		Members:         append([]models.Member{}, e.members...),
		PriorityOptions: PriorityOptions(),
		StatusOptions:   StatusOptions(),
	}
	view.Draft.AssignedTo = append([]int64{}, e.draft.AssignedTo...)
	if e.confirmed != nil {
		t := *e.confirmed
		view.Confirmed = &t
	}
	return view
}
