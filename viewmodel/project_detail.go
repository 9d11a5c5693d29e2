package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rama-crm/logging"
	"rama-crm/models"
	"rama-crm/notify"
	"rama-crm/utils"
)

type ProjectDetailSource interface {
	ShowProject(ctx context.Context, projectID int64) (*models.Project, error)
	FetchTasksByProject(ctx context.Context, projectID int64) ([]models.Task, error)
	FetchProjectMembers(ctx context.Context, projectID int64) ([]models.Member, error)
	UpdateTaskStatus(ctx context.Context, taskID int64, status models.TaskStatus) error
	DeleteTask(ctx context.Context, taskID int64) error
}

// ProjectDetail is the project page: project header, members and tasks.
type ProjectDetail struct {
	mu        sync.Mutex
	svc       ProjectDetailSource
	ui        UI
	now       func() time.Time
	projectID int64
	project   *models.Project
	tasks     []models.Task
	members   []models.Member
}

func NewProjectDetail(svc ProjectDetailSource, ui UI) *ProjectDetail {
	return &ProjectDetail{svc: svc, ui: ui, now: time.Now}
}

type TaskRow struct {
	ID             int64             `json:"id"`
	Title          string            `json:"title"`
	Status         models.TaskStatus `json:"status"`
	StatusLabel    string            `json:"statusLabel"`
	StatusColor    string            `json:"statusColor"`
	Priority       models.Priority   `json:"priority"`
	PriorityLabel  string            `json:"priorityLabel"`
	PriorityColor  string            `json:"priorityColor"`
	Assignee       string            `json:"assignee"`
	DueDate        string            `json:"dueDate"`
	EstimatedHours string            `json:"estimatedHours"`
	Overdue        bool              `json:"overdue"`
}

type ProjectSummary struct {
	Members   int `json:"members"`
	Tasks     int `json:"tasks"`
	Completed int `json:"completed"`
}

type ProjectDetailView struct {
	Project       *models.Project `json:"project"`
	Deadline      string          `json:"deadline"`
	Members       []models.Member `json:"members"`
	Tasks         []TaskRow       `json:"tasks"`
	Summary       ProjectSummary  `json:"summary"`
	StatusOptions []Option        `json:"statusOptions"`
}

// Load fetches the project, its tasks and its members concurrently. The
// three results are applied together or not at all.
func (d *ProjectDetail) Load(ctx context.Context, projectID int64) error {
	defer d.ui.busy()()
	return d.load(ctx, projectID)
}

func (d *ProjectDetail) load(ctx context.Context, projectID int64) error {
	var (
		wg      sync.WaitGroup
		project *models.Project
		tasks   []models.Task
		members []models.Member
		errs    [3]error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		project, errs[0] = d.svc.ShowProject(ctx, projectID)
	}()
	go func() {
		defer wg.Done()
		tasks, errs[1] = d.svc.FetchTasksByProject(ctx, projectID)
	}()
	go func() {
		defer wg.Done()
		members, errs[2] = d.svc.FetchProjectMembers(ctx, projectID)
	}()
	wg.Wait()

	failures := [3]string{"Failed to load project details", "Failed to load tasks", "Failed to load team members"}
	var failed []error
	for i, err := range errs {
		if err != nil {
			logging.Logger.Errorf("Event ID: PROJECT_DETAIL_LOAD_FAILED, Description: %s for project %d: %v", failures[i], projectID, err)
			notify.Error(d.ui.Notifier, failures[i])
			failed = append(failed, classify(err))
		}
	}
	if len(failed) > 0 {
		return errors.Join(failed...)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.projectID = projectID
	d.project = project
	d.tasks = tasks
	d.members = members
	return nil
}

// ChangeStatus asks the server to move a task of projectID to status and,
// once accepted, re-fetches that project. The local task is never edited in
// place.
func (d *ProjectDetail) ChangeStatus(ctx context.Context, projectID, taskID int64, status models.TaskStatus) error {
	if !status.Valid() {
		notify.Error(d.ui.Notifier, "Failed to update task status")
		return classify(fmt.Errorf("invalid task status %q", status))
	}
	defer d.ui.busy()()

	if err := d.svc.UpdateTaskStatus(ctx, taskID, status); err != nil {
		logging.Logger.Warnf("Event ID: TASK_STATUS_UPDATE_FAILED, Description: Task %d to %s: %v", taskID, status, err)
		notify.Error(d.ui.Notifier, "Failed to update task status")
		return classify(err)
	}
	notify.Success(d.ui.Notifier, "Task status updated successfully!")
	return d.reload(ctx, projectID)
}

func (d *ProjectDetail) DeleteTask(ctx context.Context, projectID, taskID int64) error {
	defer d.ui.busy()()

	if err := d.svc.DeleteTask(ctx, taskID); err != nil {
		notify.Error(d.ui.Notifier, "Failed to delete task")
		return classify(err)
	}
	notify.Success(d.ui.Notifier, "Task deleted successfully!")
	return d.reload(ctx, projectID)
}

// Reload shows projectID after a change made elsewhere, such as a new task.
func (d *ProjectDetail) Reload(ctx context.Context, projectID int64) error {
	defer d.ui.busy()()
	return d.reload(ctx, projectID)
}

// reload re-fetches the tasks when projectID is the shown project and loads
// the whole page otherwise.
func (d *ProjectDetail) reload(ctx context.Context, projectID int64) error {
	if d.currentProject() == projectID {
		return d.refreshTasks(ctx, projectID)
	}
	return d.load(ctx, projectID)
}

// RefreshTasks re-fetches the task list of the loaded project. It does
// nothing before the first successful Load.
func (d *ProjectDetail) RefreshTasks(ctx context.Context) error {
	projectID := d.currentProject()
	if projectID == 0 {
		return nil
	}
	return d.refreshTasks(ctx, projectID)
}

func (d *ProjectDetail) refreshTasks(ctx context.Context, projectID int64) error {
	tasks, err := d.svc.FetchTasksByProject(ctx, projectID)
	if err != nil {
		notify.Error(d.ui.Notifier, "Failed to load tasks")
		return classify(err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	// a Load of another project won while this fetch was in flight
	if d.projectID != projectID {
		return nil
	}
	d.tasks = tasks
	return nil
}

func (d *ProjectDetail) currentProject() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.projectID
}

func (d *ProjectDetail) Rows() []TaskRow {
	d.mu.Lock()
	defer d.mu.Unlock()
	return taskRows(d.tasks, d.now())
}

func (d *ProjectDetail) Summary() ProjectSummary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ProjectSummary{
		Members:   len(d.members),
		Tasks:     len(d.tasks),
		Completed: countStatus(d.tasks, models.StatusCompleted),
	}
}

// View returns a copy of everything the page renders.
func (d *ProjectDetail) View() ProjectDetailView {
	d.mu.Lock()
	defer d.mu.Unlock()

	view := ProjectDetailView{
		Members:       append([]models.Member{}, d.members...),
		Tasks:         taskRows(d.tasks, d.now()),
		StatusOptions: StatusOptions(),
		Summary: ProjectSummary{
			Members:   len(d.members),
			Tasks:     len(d.tasks),
			Completed: countStatus(d.tasks, models.StatusCompleted),
		},
		Deadline: utils.DatePlaceholder,
	}
	if d.project != nil {
		p := *d.project
		view.Project = &p
		view.Deadline = utils.FormatDate(p.Deadline)
	}
	return view
}

func taskRows(tasks []models.Task, now time.Time) []TaskRow {
	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		assignee := "Unassigned"
		if t.AssignedTo != nil && t.AssignedTo.Name != "" {
			assignee = t.AssignedTo.Name
		}
		rows = append(rows, TaskRow{
			ID:             t.ID,
			Title:          t.Title,
			Status:         t.Status,
			StatusLabel:    StatusLabel(t.Status),
			StatusColor:    StatusColor(t.Status),
			Priority:       t.Priority,
			PriorityLabel:  PriorityLabel(t.Priority),
			PriorityColor:  PriorityColor(t.Priority),
			Assignee:       assignee,
			DueDate:        utils.FormatDate(t.DueDate),
			EstimatedHours: t.EstimatedHours.String(),
			Overdue:        t.Status != models.StatusCompleted && t.Status != models.StatusCancelled && utils.IsOverdue(t.DueDate, now),
		})
	}
	return rows
}

func countStatus(tasks []models.Task, status models.TaskStatus) int {
	n := 0
	for _, t := range tasks {
		if t.Status == status {
			n++
		}
	}
	return n
}
