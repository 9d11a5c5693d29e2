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

type AssignmentSource interface {
	FetchUserList(ctx context.Context, projectID int64) (*models.UserList, error)
	UpdateAssignment(ctx context.Context, projectID int64, payload models.Assignment) error
}

type AssignmentDraft struct {
	SelectedUsers []int64 `json:"selectedUsers" validate:"min=1"`
	StartDate     string  `json:"start_date" validate:"filled,isodate"`
	EndDate       string  `json:"end_date" validate:"filled,isodate"`
	HourlyRate    string  `json:"hourly_rate" validate:"filled,amount"`
	Notes         string  `json:"notes" validate:"filled"`
}

var assignmentMessages = messages{
	"selectedUsers": {"min": "The assign team field is required."},
	"start_date":    {"filled": "The start date field is required.", "isodate": "The start date is not a valid date."},
	"end_date":      {"filled": "The end date field is required.", "isodate": "The end date is not a valid date."},
	"hourly_rate":   {"filled": "The hourly rate field is required.", "amount": "The hourly rate must be a number."},
	"notes":         {"filled": "The notes field is required."},
}

type AssignmentView struct {
	Open      bool            `json:"open"`
	ProjectID int64           `json:"projectId"`
	Users     []models.Member `json:"users"`
	Confirmed AssignmentDraft `json:"confirmed"`
	Draft     AssignmentDraft `json:"draft"`
	Errors    FieldErrors     `json:"errors"`
}

// Assignment is the "assign team" surface of a project.
type Assignment struct {
	mu        sync.Mutex
	svc       AssignmentSource
	ui        UI
	onSaved   func(ctx context.Context) error
	open      bool
	projectID int64
	users     []models.Member
	confirmed AssignmentDraft
	draft     AssignmentDraft
	errors    FieldErrors
}

func NewAssignment(svc AssignmentSource, ui UI, onSaved func(ctx context.Context) error) *Assignment {
	return &Assignment{svc: svc, ui: ui, onSaved: onSaved, errors: FieldErrors{}}
}

// Open loads the selectable users and the current assignment of projectID.
func (a *Assignment) Open(ctx context.Context, projectID int64) error {
	defer a.ui.busy()()

	list, err := a.svc.FetchUserList(ctx, projectID)
	if err != nil {
		notify.Error(a.ui.Notifier, "Failed to load team members")
		return classify(err)
	}

	current := AssignmentDraft{SelectedUsers: append([]int64{}, list.AssignUsers...)}
	if d := list.AssignData; d != nil {
		current.StartDate = utils.NormalizePayloadDate(d.StartDate)
		current.EndDate = utils.NormalizePayloadDate(d.EndDate)
		current.HourlyRate = d.HourlyRate.String()
		current.Notes = d.Notes
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.projectID = projectID
	a.users = list.Users
	a.confirmed = current
	a.draft = current
	a.draft.SelectedUsers = append([]int64{}, current.SelectedUsers...)
	a.errors = FieldErrors{}
	a.open = true
	return nil
}

func validateAssignment(d AssignmentDraft) FieldErrors {
	errs := check(d, assignmentMessages)
	if len(errs["start_date"]) == 0 && len(errs["end_date"]) == 0 {
		start, _ := utils.ParseISODate(d.StartDate)
		end, _ := utils.ParseISODate(d.EndDate)
		if end.Before(start) {
			errs["end_date"] = []string{"The end date must be a date after or equal to start date."}
		}
	}
	return errs
}

// SubmitAssignment replaces the project's assignment with draft.
func (a *Assignment) SubmitAssignment(ctx context.Context, projectID int64, draft AssignmentDraft) error {
	errs := validateAssignment(draft)

	a.mu.Lock()
	a.draft = draft
	if len(errs) > 0 {
		a.errors = errs
	}
	a.mu.Unlock()
	if len(errs) > 0 {
		return asValidationError(errs)
	}

	payload := models.Assignment{
		ProjectID:     projectID,
		SelectedUsers: append([]int64{}, draft.SelectedUsers...),
		StartDate:     utils.NormalizePayloadDate(draft.StartDate),
		EndDate:       utils.NormalizePayloadDate(draft.EndDate),
		HourlyRate:    strings.TrimSpace(draft.HourlyRate),
		Notes:         strings.TrimSpace(draft.Notes),
		Flag:          models.FlagAssignment,
	}

	done := a.ui.busy()
	err := a.svc.UpdateAssignment(ctx, projectID, payload)
	done()
	if err != nil {
		logging.Logger.Warnf("Event ID: ASSIGNMENT_UPDATE_FAILED, Description: Project %d: %v", projectID, err)
		return a.ui.settle(err, func(fields FieldErrors) {
			a.mu.Lock()
			a.errors = fields
			a.mu.Unlock()
		})
	}

	a.mu.Lock()
	a.errors = FieldErrors{}
	a.open = false
	a.mu.Unlock()
	notify.Success(a.ui.Notifier, "Project updated successfully!")

	refresh(ctx, a.onSaved)
	return nil
}

func (a *Assignment) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.open = false
	a.errors = FieldErrors{}
}

func (a *Assignment) Errors() FieldErrors {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errors.clone()
}

func (a *Assignment) View() AssignmentView {
	a.mu.Lock()
	defer a.mu.Unlock()
	view := AssignmentView{
		Open:      a.open,
		ProjectID: a.projectID,
		Users:     append([]models.Member{}, a.users...),
		Confirmed: a.confirmed,
		Draft:     a.draft,
		Errors:    a.errors.clone(),
	}
	view.Confirmed.SelectedUsers = append([]int64{}, a.confirmed.SelectedUsers...)
	view.Draft.SelectedUsers = append([]int64{}, a.draft.SelectedUsers...)
	return view
}
