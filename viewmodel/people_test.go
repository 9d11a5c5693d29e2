package viewmodel

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"testing"

	"rama-crm/apiclient"
	"rama-crm/models"
	"rama-crm/services"
	"rama-crm/session"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployees struct {
	employees []models.Employee
	added     []models.EmployeePayload
	deleted   []int64
}

func (f *fakeEmployees) FetchEmployees(ctx context.Context) ([]models.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployees) ShowEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, &apiclient.GenericError{Message: "Employee not found", StatusCode: http.StatusNotFound}
}

func (f *fakeEmployees) AddEmployee(ctx context.Context, payload models.EmployeePayload) error {
	f.added = append(f.added, payload)
	return nil
}

func (f *fakeEmployees) UpdateEmployee(ctx context.Context, id int64, payload models.EmployeePayload) error {
	return nil
}

func (f *fakeEmployees) DeleteEmployee(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func validEmployee() EmployeeDraft {
	return EmployeeDraft{
		Name:        "Ann",
		Email:       "ann@example.com",
		Role:        "Senior",
		JoiningDate: "2023-02-01",
		Designation: "Engineer",
		Department:  "Platform",
		HourlyRate:  "50",
	}
}

func TestEmployeeFormRejectsAdminRole(t *testing.T) {
	fake := &fakeEmployees{}
	ui, _ := newUI()
	form := NewEmployeeForm(fake, ui, nil)

	draft := validEmployee()
	draft.Role = "admin"
	require.Error(t, form.Submit(context.Background(), 0, draft))
	assert.Equal(t, "The selected role is invalid.", form.View().Errors.First("role"))
	assert.Empty(t, fake.added)
}

func TestEmployeeFormCreateNormalisesRole(t *testing.T) {
	fake := &fakeEmployees{}
	ui, center := newUI()
	list := NewEmployeeList(fake, ui)
	form := NewEmployeeForm(fake, ui, list.Load)

	require.NoError(t, form.Submit(context.Background(), 0, validEmployee()))
	require.Len(t, fake.added, 1)
	assert.Equal(t, "senior", fake.added[0].Role)
	assert.Equal(t, "Employee created successfully!", lastMessage(t, center).Message)
	assert.False(t, form.View().Open)
}

func TestEmployeeListRowsAndDelete(t *testing.T) {
	fake := &fakeEmployees{employees: []models.Employee{
		{ID: 3, Name: "Ann", Role: "junior", JoiningDate: "2023-02-01", HourlyRate: "50"},
	}}
	ui, center := newUI()
	list := NewEmployeeList(fake, ui)
	require.NoError(t, list.Load(context.Background()))

	rows := list.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Junior", rows[0].Role)
	assert.Equal(t, "1 Feb 2023", rows[0].JoiningDate)

	require.NoError(t, list.Delete(context.Background(), 3))
	assert.Equal(t, []int64{3}, fake.deleted)
	assert.Equal(t, "Employee deleted successfully!", lastMessage(t, center).Message)
}

func TestEmployeeFormOpenMissing(t *testing.T) {
	ui, center := newUI()
	form := NewEmployeeForm(&fakeEmployees{}, ui, nil)

	err := form.Open(context.Background(), 99)
	var gerr *apiclient.GenericError
	require.True(t, errors.As(err, &gerr))
	assert.False(t, form.View().Open)
	assert.Equal(t, "Failed to load employee", lastMessage(t, center).Message)
}

type fakeMyTasks struct {
	tasks       []models.Task
	statusCalls int
}

func (f *fakeMyTasks) FetchMyTasks(ctx context.Context) ([]models.Task, error) {
	return f.tasks, nil
}

func (f *fakeMyTasks) UpdateTaskStatus(ctx context.Context, taskID int64, status models.TaskStatus) error {
	f.statusCalls++
	for i := range f.tasks {
		if f.tasks[i].ID == taskID {
			f.tasks[i].Status = status
		}
	}
	return nil
}

func TestMyTasksStats(t *testing.T) {
	fake := &fakeMyTasks{tasks: []models.Task{
		{ID: 1, Status: models.StatusCompleted, DueDate: "2024-06-01"},
		{ID: 2, Status: models.StatusPending, DueDate: "2024-06-01"},
		{ID: 3, Status: models.StatusInProgress, DueDate: "2024-07-01"},
	}}
	ui, center := newUI()
	board := NewMyTasks(fake, ui)
	board.now = fixedNow

	require.NoError(t, board.Load(context.Background()))
	n := lastMessage(t, center)
	assert.Equal(t, "Tasks loaded successfully!", n.Message)
	assert.Equal(t, "top-right", n.Position)

	assert.Equal(t, TaskStats{Total: 3, Pending: 1, InProgress: 1, Completed: 1, Overdue: 1, Percent: 33, HasOverdue: true}, board.Stats())

	require.NoError(t, board.ChangeStatus(context.Background(), 2, models.StatusCompleted))
	assert.Equal(t, 1, fake.statusCalls)
	stats := board.Stats()
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 67, stats.Percent)
	assert.False(t, stats.HasOverdue)
}

func TestMyTasksEmptyBoard(t *testing.T) {
	ui, _ := newUI()
	board := NewMyTasks(&fakeMyTasks{}, ui)
	require.NoError(t, board.Load(context.Background()))
	assert.Equal(t, TaskStats{}, board.Stats())
	assert.NotNil(t, board.View().Tasks)
}

func TestLoginStoresSessionAndLogoutClears(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/login", func(w http.ResponseWriter, req *http.Request) {
		reply(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    map[string]any{"id": 5, "name": "Ann", "email": "ann@example.com", "role": "senior"},
			"token":   "opaque-token",
		})
	}).Methods(http.MethodPost)
	r.HandleFunc("/logout", func(w http.ResponseWriter, req *http.Request) {
		reply(w, http.StatusOK, map[string]any{"success": true})
	}).Methods(http.MethodPost)

	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	ui, center := newUI()
	login := NewLogin(services.NewAuthService(newAPI(t, r)), store, ui)

	user, err := login.Submit(context.Background(), models.Credentials{Email: " ann@example.com ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "senior", user.Role)
	assert.Equal(t, "opaque-token", store.Token())
	assert.Equal(t, "senior", store.Role())
	assert.Equal(t, "User Login successfully!", lastMessage(t, center).Message)

	require.NoError(t, login.Logout(context.Background()))
	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())
	assert.Equal(t, "Logged out successfully!", lastMessage(t, center).Message)
}

func TestLoginValidationAndRejection(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/login", func(w http.ResponseWriter, req *http.Request) {
		reply(w, http.StatusUnauthorized, map[string]any{"error": "Invalid credentials"})
	}).Methods(http.MethodPost)

	store, err := session.Open("")
	require.NoError(t, err)
	ui, center := newUI()
	login := NewLogin(services.NewAuthService(newAPI(t, r)), store, ui)

	_, err = login.Submit(context.Background(), models.Credentials{})
	require.Error(t, err)
	assert.ElementsMatch(t, []string{"email", "password"}, keys(login.View().Errors))

	_, err = login.Submit(context.Background(), models.Credentials{Email: "ann@example.com", Password: "nope"})
	var aerr *apiclient.AuthError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, "Invalid credentials", lastMessage(t, center).Message)
	assert.Empty(t, store.Token())
}

type fakeMyProjects struct {
	projects []models.Project
	err      error
}

func (f *fakeMyProjects) FetchMyProjectAssignments(ctx context.Context) ([]models.Project, error) {
	return f.projects, f.err
}

func TestMyProjectsStats(t *testing.T) {
	fake := &fakeMyProjects{projects: []models.Project{
		{ID: 1, Name: "Apollo", Status: "active", Deadline: "2024-09-01", Members: []models.Member{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bo"}},
			Tasks: []models.Task{{Status: models.StatusPending}, {Status: models.StatusInProgress}, {Status: models.StatusCompleted}}},
		{ID: 2, Name: "Gemini", Status: "on_hold", Tasks: []models.Task{{Status: models.StatusCancelled}}},
	}}
	ui, center := newUI()
	board := NewMyProjects(fake, ui)

	require.NoError(t, board.Load(context.Background()))
	view := board.View()
	assert.Equal(t, ProjectStats{Projects: 2, Tasks: 4, Pending: 2, Completed: 1}, view.Stats)
	require.Len(t, view.Projects, 2)
	assert.Equal(t, ColorSuccess, view.Projects[0].StatusColor)
	assert.Equal(t, "1 Sep 2024", view.Projects[0].Deadline)
	assert.Equal(t, []string{"Ann", "Bo"}, view.Projects[0].Members)
	assert.Equal(t, ColorWarning, view.Projects[1].StatusColor)
	assert.Equal(t, "-", view.Projects[1].Deadline)

	last := lastMessage(t, center)
	assert.Equal(t, "Projects loaded successfully!", last.Message)
	assert.Equal(t, "top-right", last.Position)
	assertBalancedBusy(t, center)
}

func TestMyProjectsFailureKeepsBoard(t *testing.T) {
	fake := &fakeMyProjects{projects: []models.Project{{ID: 1, Name: "Apollo"}}}
	ui, center := newUI()
	board := NewMyProjects(fake, ui)
	require.NoError(t, board.Load(context.Background()))

	fake.err = &apiclient.GenericError{Message: "boom"}
	require.Error(t, board.Load(context.Background()))
	assert.Len(t, board.View().Projects, 1)
	assert.Equal(t, "Failed to load projects", lastMessage(t, center).Message)
}

type fakeRegister struct {
	err      error
	payloads []models.Registration
}

func (f *fakeRegister) Register(ctx context.Context, payload models.Registration) error {
	f.payloads = append(f.payloads, payload)
	return f.err
}

func TestRegisterValidation(t *testing.T) {
	fake := &fakeRegister{}
	ui, _ := newUI()
	form := NewRegister(fake, ui)

	err := form.Submit(context.Background(), RegisterDraft{Email: "not-an-email"})
	var verr *apiclient.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, FieldErrors{
		"name":     {"The name field is required."},
		"email":    {"The email must be a valid email address."},
		"password": {"The password field is required."},
		"role":     {"The role field is required."},
	}, form.View().Errors)
	assert.Empty(t, fake.payloads)
	assert.Len(t, form.View().RoleOptions, 4)
}

func TestRegisterServerOutcomes(t *testing.T) {
	fake := &fakeRegister{err: &apiclient.ValidationError{Fields: map[string][]string{"email": {"The email has already been taken."}}}}
	ui, center := newUI()
	form := NewRegister(fake, ui)
	draft := RegisterDraft{Name: " Ann ", Email: "ann@example.com", Password: "secret", Role: "Senior"}

	require.Error(t, form.Submit(context.Background(), draft))
	assert.Equal(t, FieldErrors{"email": {"The email has already been taken."}}, form.View().Errors)
	assert.False(t, form.View().Registered)

	fake.err = &apiclient.AuthError{Message: "Unauthenticated."}
	require.Error(t, form.Submit(context.Background(), draft))
	assert.Equal(t, "Unauthenticated.", lastMessage(t, center).Message)
	assert.Equal(t, "The email has already been taken.", form.View().Errors.First("email"))

	fake.err = nil
	require.NoError(t, form.Submit(context.Background(), draft))
	view := form.View()
	assert.True(t, view.Registered)
	assert.Equal(t, RegisterDraft{}, view.Draft)
	assert.Empty(t, view.Errors)
	assert.Equal(t, models.Registration{Name: "Ann", Email: "ann@example.com", Password: "secret", Role: "senior"}, fake.payloads[2])
	assert.Equal(t, "User registered successfully!", lastMessage(t, center).Message)
	assertBalancedBusy(t, center)
}
