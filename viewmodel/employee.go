package viewmodel

import (
	"context"
	"strings"
	"sync"

	"rama-crm/logging"
	"rama-crm/menu"
	"rama-crm/models"
	"rama-crm/notify"
	"rama-crm/utils"
)

type EmployeeSource interface {
	FetchEmployees(ctx context.Context) ([]models.Employee, error)
	ShowEmployee(ctx context.Context, id int64) (*models.Employee, error)
	AddEmployee(ctx context.Context, payload models.EmployeePayload) error
	UpdateEmployee(ctx context.Context, id int64, payload models.EmployeePayload) error
	DeleteEmployee(ctx context.Context, id int64) error
}

// employeeRoles are the roles an admin may give an employee.
var employeeRoles = []menu.Role{menu.RoleTeamLead, menu.RoleSenior, menu.RoleJunior}

func RoleOptions() []Option {
	opts := make([]Option, 0, len(employeeRoles))
	for _, r := range employeeRoles {
		opts = append(opts, Option{Value: r.String(), Label: r.Label()})
	}
	return opts
}

type EmployeeRow struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
	JoiningDate string `json:"joiningDate"`
	HourlyRate  string `json:"hourlyRate"`
}

type EmployeeList struct {
	mu        sync.Mutex
	svc       EmployeeSource
	ui        UI
	employees []models.Employee
}

func NewEmployeeList(svc EmployeeSource, ui UI) *EmployeeList {
	return &EmployeeList{svc: svc, ui: ui}
}

func (l *EmployeeList) Load(ctx context.Context) error {
	defer l.ui.busy()()

	employees, err := l.svc.FetchEmployees(ctx)
	if err != nil {
		notify.Error(l.ui.Notifier, "Failed to load employees")
		return classify(err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.employees = employees
	return nil
}

func (l *EmployeeList) Delete(ctx context.Context, id int64) error {
	done := l.ui.busy()
	err := l.svc.DeleteEmployee(ctx, id)
	done()
	if err != nil {
		notify.Error(l.ui.Notifier, serverMessage(err, "Failed to delete employee"))
		return classify(err)
	}
	notify.Success(l.ui.Notifier, "Employee deleted successfully!")
	return l.Load(ctx)
}

func (l *EmployeeList) Rows() []EmployeeRow {
	l.mu.Lock()
	defer l.mu.Unlock()
	rows := make([]EmployeeRow, 0, len(l.employees))
	for _, e := range l.employees {
		rows = append(rows, EmployeeRow{
			ID:          e.ID,
			Name:        e.Name,
			Email:       e.Email,
			Role:        menu.ParseRole(e.RoleName()).Label(),
			Designation: e.Designation,
			Department:  e.Department,
			JoiningDate: utils.FormatDate(e.JoiningDate),
			HourlyRate:  e.HourlyRate.String(),
		})
	}
	return rows
}

type EmployeeDraft struct {
	Name        string `json:"name" validate:"filled"`
	Email       string `json:"email" validate:"filled,email"`
	Role        string `json:"role" validate:"filled,employee_role"`
	JoiningDate string `json:"joining_date" validate:"filled,isodate"`
	Designation string `json:"designation" validate:"filled"`
	Department  string `json:"department" validate:"filled"`
	HourlyRate  string `json:"hourly_rate" validate:"filled,amount"`
}

var employeeMessages = messages{
	"name":         {"filled": "The name field is required."},
	"email":        {"filled": "The email field is required.", "email": "The email field must be a valid email address."},
	"role":         {"filled": "The role field is required.", "employee_role": "The selected role is invalid."},
	"joining_date": {"filled": "The joining date field is required.", "isodate": "The joining date is not a valid date."},
	"designation":  {"filled": "The designation field is required."},
	"department":   {"filled": "The department field is required."},
	"hourly_rate":  {"filled": "The hourly rate field is required.", "amount": "The hourly rate must be a number."},
}

type EmployeeFormView struct {
	Open        bool             `json:"open"`
	EmployeeID  int64            `json:"employeeId"`
	Confirmed   *models.Employee `json:"confirmed"`
	Draft       EmployeeDraft    `json:"draft"`
	Errors      FieldErrors      `json:"errors"`
	RoleOptions []Option         `json:"roleOptions"`
}

// EmployeeForm creates an employee when the id is zero and updates one
// otherwise.
type EmployeeForm struct {
	mu         sync.Mutex
	svc        EmployeeSource
	ui         UI
	onSaved    func(ctx context.Context) error
	open       bool
	employeeID int64
	confirmed  *models.Employee
	draft      EmployeeDraft
	errors     FieldErrors
}

func NewEmployeeForm(svc EmployeeSource, ui UI, onSaved func(ctx context.Context) error) *EmployeeForm {
	return &EmployeeForm{svc: svc, ui: ui, onSaved: onSaved, errors: FieldErrors{}}
}

func (f *EmployeeForm) Open(ctx context.Context, id int64) error {
	if id == 0 {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.employeeID = 0
		f.confirmed = nil
		f.draft = EmployeeDraft{}
		f.errors = FieldErrors{}
		f.open = true
		return nil
	}

	defer f.ui.busy()()
	employee, err := f.svc.ShowEmployee(ctx, id)
	if err != nil {
		notify.Error(f.ui.Notifier, "Failed to load employee")
		return classify(err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.employeeID = id
	f.confirmed = employee
	f.draft = EmployeeDraft{
		Name:        employee.Name,
		Email:       employee.Email,
		Role:        employee.RoleName(),
		JoiningDate: utils.NormalizePayloadDate(employee.JoiningDate),
		Designation: employee.Designation,
		Department:  employee.Department,
		HourlyRate:  employee.HourlyRate.String(),
	}
	f.errors = FieldErrors{}
	f.open = true
	return nil
}

func (f *EmployeeForm) Submit(ctx context.Context, id int64, draft EmployeeDraft) error {
	errs := check(draft, employeeMessages)

	f.mu.Lock()
	f.draft = draft
	if len(errs) > 0 {
		f.errors = errs
	}
	f.mu.Unlock()
	if len(errs) > 0 {
		return asValidationError(errs)
	}

	payload := models.EmployeePayload{
		Name:        strings.TrimSpace(draft.Name),
		Email:       strings.TrimSpace(draft.Email),
		Role:        menu.ParseRole(draft.Role).String(),
		JoiningDate: utils.NormalizePayloadDate(draft.JoiningDate),
		Designation: strings.TrimSpace(draft.Designation),
		Department:  strings.TrimSpace(draft.Department),
		HourlyRate:  strings.TrimSpace(draft.HourlyRate),
	}

	done := f.ui.busy()
	var err error
	if id == 0 {
		err = f.svc.AddEmployee(ctx, payload)
	} else {
		err = f.svc.UpdateEmployee(ctx, id, payload)
	}
	done()
	if err != nil {
		logging.Logger.Warnf("Event ID: EMPLOYEE_SAVE_FAILED, Description: Employee %d: %v", id, err)
		return f.ui.settle(err, func(fields FieldErrors) {
			f.mu.Lock()
			f.errors = fields
			f.mu.Unlock()
		})
	}

	f.mu.Lock()
	f.errors = FieldErrors{}
	f.open = false
	f.mu.Unlock()
	if id == 0 {
		notify.Success(f.ui.Notifier, "Employee created successfully!")
	} else {
		notify.Success(f.ui.Notifier, "Employee updated successfully!")
	}

	refresh(ctx, f.onSaved)
	return nil
}

func (f *EmployeeForm) View() EmployeeFormView {
	f.mu.Lock()
	defer f.mu.Unlock()
	view := EmployeeFormView{
		Open:        f.open,
		EmployeeID:  f.employeeID,
		Draft:       f.draft,
		Errors:      f.errors.clone(),
		RoleOptions: RoleOptions(),
	}
	if f.confirmed != nil {
		e := *f.confirmed
		view.Confirmed = &e
	}
	return view
}
