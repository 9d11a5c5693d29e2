package viewmodel

import (
	"context"
	"sync"

	"rama-crm/logging"
	"rama-crm/models"
	"rama-crm/notify"
)

type TaskCreateSource interface {
	FetchProjectMembers(ctx context.Context, projectID int64) ([]models.Member, error)
	CreateTask(ctx context.Context, payload models.TaskPayload) (*models.Task, error)
}

type TaskCreateView struct {
	Open            bool            `json:"open"`
	ProjectID       int64           `json:"projectId"`
	Draft           TaskDraft       `json:"draft"`
	Errors          FieldErrors     `json:"errors"`
	Members         []models.Member `json:"members"`
	PriorityOptions []Option        `json:"priorityOptions"`
	StatusOptions   []Option        `json:"statusOptions"`
}

// TaskCreate is the new-task form of a project. It shares the draft and the
// rules of the edit form.
type TaskCreate struct {
	mu        sync.Mutex
	svc       TaskCreateSource
	ui        UI
	onSaved   func(ctx context.Context, projectID int64) error
	open      bool
	projectID int64
	draft     TaskDraft
	errors    FieldErrors
	members   []models.Member
}

// NewTaskCreate builds the form. onSaved receives the project the task was
// added to; it may be nil.
func NewTaskCreate(svc TaskCreateSource, ui UI, onSaved func(ctx context.Context, projectID int64) error) *TaskCreate {
	return &TaskCreate{svc: svc, ui: ui, onSaved: onSaved, errors: FieldErrors{}}
}

func blankTask(projectID int64) TaskDraft {
	return TaskDraft{
		ProjectID:  projectID,
		AssignedTo: []int64{},
		Priority:   models.PriorityMedium,
		Status:     models.StatusPending,
	}
}

// Open loads the members of projectID and starts an empty draft.
func (c *TaskCreate) Open(ctx context.Context, projectID int64) error {
	defer c.ui.busy()()

	members, err := c.svc.FetchProjectMembers(ctx, projectID)
	if err != nil {
		notify.Error(c.ui.Notifier, "Failed to load team members")
		return classify(err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.projectID = projectID
	c.members = members
	c.draft = blankTask(projectID)
	c.errors = FieldErrors{}
	c.open = true
	return nil
}

func (c *TaskCreate) Submit(ctx context.Context, projectID int64, draft TaskDraft) error {
	draft.ProjectID = projectID
	if errs := check(draft, taskMessages); len(errs) > 0 {
		c.mu.Lock()
		c.draft = draft
		c.errors = errs
		c.mu.Unlock()
		return asValidationError(errs)
	}

	c.mu.Lock()
	c.draft = draft
	c.mu.Unlock()

	done := c.ui.busy()
	task, err := c.svc.CreateTask(ctx, draft.payload(0))
	done()
	if err != nil {
		logging.Logger.Warnf("Event ID: TASK_CREATE_FAILED, Description: Project %d: %v", projectID, err)
		return c.ui.settle(err, func(fields FieldErrors) {
			c.mu.Lock()
			c.errors = fields
			c.mu.Unlock()
		})
	}
	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %d in project %d", task.ID, projectID)

	c.mu.Lock()
	c.draft = blankTask(projectID)
	c.errors = FieldErrors{}
	c.open = false
	c.mu.Unlock()
	notify.Success(c.ui.Notifier, "Task created successfully!")

	if c.onSaved != nil {
		refresh(ctx, func(ctx context.Context) error { return c.onSaved(ctx, projectID) })
	}
	return nil
}

func (c *TaskCreate) Errors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors.clone()
}

func (c *TaskCreate) View() TaskCreateView {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := TaskCreateView{
		Open:            c.open,
		ProjectID:       c.projectID,
		Draft:           c.draft,
		Errors:          c.errors.clone(),
		Members:         append([]models.Member{}, c.members...),
		PriorityOptions: PriorityOptions(),
		StatusOptions:   StatusOptions(),
	}
	view.Draft.AssignedTo = append([]int64{}, c.draft.AssignedTo...)
	return view
}
