package viewmodel

import (
	"context"
	"strings"
	"sync"

	"rama-crm/logging"
	"rama-crm/models"
	"rama-crm/notify"
	"rama-crm/utils"
)

type ProjectSource interface {
	FetchProjects(ctx context.Context) ([]models.Project, error)
	ShowProject(ctx context.Context, projectID int64) (*models.Project, error)
	AddProject(ctx context.Context, payload models.ProjectPayload) (*models.Project, error)
	UpdateProject(ctx context.Context, projectID int64, payload models.ProjectPayload) error
	DeleteProject(ctx context.Context, projectID int64) error
}

type ProjectRow struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Members     int    `json:"members"`
	Tasks       int    `json:"tasks"`
}

// ProjectList is the projects table.
type ProjectList struct {
	mu       sync.Mutex
	svc      ProjectSource
	ui       UI
	projects []models.Project
}

func NewProjectList(svc ProjectSource, ui UI) *ProjectList {
	return &ProjectList{svc: svc, ui: ui}
}

func (l *ProjectList) Load(ctx context.Context) error {
	defer l.ui.busy()()

	projects, err := l.svc.FetchProjects(ctx)
	if err != nil {
		notify.Error(l.ui.Notifier, "Failed to load projects")
		return classify(err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.projects = projects
	return nil
}

func (l *ProjectList) Delete(ctx context.Context, projectID int64) error {
	done := l.ui.busy()
	err := l.svc.DeleteProject(ctx, projectID)
	done()
	if err != nil {
		notify.Error(l.ui.Notifier, serverMessage(err, "Failed to delete project"))
		return classify(err)
	}
	notify.Success(l.ui.Notifier, "Project deleted successfully!")
	return l.Load(ctx)
}

func (l *ProjectList) Rows() []ProjectRow {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows := make([]ProjectRow, 0, len(l.projects))
	for _, p := range l.projects {
		rows = append(rows, ProjectRow{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Deadline:    utils.FormatDate(p.Deadline),
			Members:     len(p.Members),
			Tasks:       len(p.Tasks),
		})
	}
	return rows
}

type ProjectDraft struct {
	Name        string `json:"name" validate:"filled"`
	Description string `json:"description" validate:"filled"`
	Deadline    string `json:"deadline" validate:"filled,isodate"`
}

var projectMessages = messages{
	"name":        {"filled": "The name field is required."},
	"description": {"filled": "The description field is required."},
	"deadline":    {"filled": "The deadline field is required.", "isodate": "The deadline is not a valid date."},
}

type ProjectEditView struct {
	Open      bool            `json:"open"`
	ProjectID int64           `json:"projectId"`
	Confirmed *models.Project `json:"confirmed"`
	Draft     ProjectDraft    `json:"draft"`
	Errors    FieldErrors     `json:"errors"`
}

// ProjectEdit creates a project when projectID is zero and edits its details
// otherwise.
type ProjectEdit struct {
	mu        sync.Mutex
	svc       ProjectSource
	ui        UI
	onSaved   func(ctx context.Context) error
	open      bool
	projectID int64
	confirmed *models.Project
	draft     ProjectDraft
	errors    FieldErrors
}

func NewProjectEdit(svc ProjectSource, ui UI, onSaved func(ctx context.Context) error) *ProjectEdit {
	return &ProjectEdit{svc: svc, ui: ui, onSaved: onSaved, errors: FieldErrors{}}
}

func (e *ProjectEdit) Open(ctx context.Context, projectID int64) error {
	if projectID == 0 {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.projectID = 0
		e.confirmed = nil
		e.draft = ProjectDraft{}
		e.errors = FieldErrors{}
		e.open = true
		return nil
	}

	defer e.ui.busy()()
	project, err := e.svc.ShowProject(ctx, projectID)
	if err != nil {
		notify.Error(e.ui.Notifier, "Failed to load project details")
		return classify(err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.projectID = projectID
	e.confirmed = project
	e.draft = ProjectDraft{
		Name:        project.Name,
		Description: project.Description,
		Deadline:    utils.NormalizePayloadDate(project.Deadline),
	}
	e.errors = FieldErrors{}
	e.open = true
	return nil
}

func (e *ProjectEdit) SubmitProjectEdit(ctx context.Context, projectID int64, draft ProjectDraft) error {
	errs := check(draft, projectMessages)

	e.mu.Lock()
	e.draft = draft
	if len(errs) > 0 {
		e.errors = errs
	}
	e.mu.Unlock()
	if len(errs) > 0 {
		return asValidationError(errs)
	}

	payload := models.ProjectPayload{
		Name:        strings.TrimSpace(draft.Name),
		Description: strings.TrimSpace(draft.Description),
		Deadline:    utils.NormalizePayloadDate(draft.Deadline),
		ProjectID:   projectID,
	}

	done := e.ui.busy()
	var err error
	if projectID == 0 {
		_, err = e.svc.AddProject(ctx, payload)
	} else {
		err = e.svc.UpdateProject(ctx, projectID, payload)
	}
	done()
	if err != nil {
		logging.Logger.Warnf("Event ID: PROJECT_SAVE_FAILED, Description: Project %d: %v", projectID, err)
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
	if projectID == 0 {
		notify.Success(e.ui.Notifier, "Project created successfully!")
	} else {
		notify.Success(e.ui.Notifier, "Project updated successfully!")
	}

	refresh(ctx, e.onSaved)
	return nil
}

func (e *ProjectEdit) View() ProjectEditView {
	e.mu.Lock()
	defer e.mu.Unlock()
	view := ProjectEditView{
		Open:      e.open,
		ProjectID: e.projectID,
		Draft:     e.draft,
		Errors:    e.errors.clone(),
	}
	if e.confirmed != nil {
		p := *e.confirmed
		view.Confirmed = &p
	}
	return view
}
