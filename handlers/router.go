package handlers

import (
	"net/http"

	"rama-crm/menu"
	"rama-crm/metrics"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

type RouterConfig struct {
	Session   SessionSource
	Projects  *ProjectHandler
	Tasks     *TaskHandler
	Employees *EmployeeHandler
	Auth      *AuthHandler
	Origin    string
	Limiter   *rate.Limiter
}

var (
	adminOnly      = []menu.Role{menu.RoleAdmin}
	seniorOnly     = []menu.Role{menu.RoleSenior}
	projectEditors = []menu.Role{menu.RoleAdmin, menu.RoleTeamLead}
	projectViewers = []menu.Role{menu.RoleAdmin, menu.RoleTeamLead, menu.RoleSenior}
	taskAuthors    = []menu.Role{menu.RoleTeamLead, menu.RoleSenior}
	taskOwners     = []menu.Role{menu.RoleSenior, menu.RoleJunior}
)

// NewRouter builds the view server routes. Everything except sign-in,
// sign-up, the session probe, the UI state and /metrics requires a session
// with a suitable role.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.Instrument)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	api := r.PathPrefix("/api").Subrouter()
	guard := func(roles []menu.Role, h http.HandlerFunc) http.HandlerFunc {
		return requireSession(cfg.Session, roles, h)
	}

	api.HandleFunc("/login", cfg.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", cfg.Auth.Logout).Methods(http.MethodPost)
	api.HandleFunc("/session", cfg.Auth.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/ui", cfg.Auth.GetUIState).Methods(http.MethodGet)
	api.HandleFunc("/register", cfg.Auth.GetRegisterForm).Methods(http.MethodGet)
	api.HandleFunc("/register", cfg.Auth.Register).Methods(http.MethodPost)

	api.HandleFunc("/projects", guard(projectViewers, cfg.Projects.ListProjects)).Methods(http.MethodGet)
	api.HandleFunc("/projects", guard(projectEditors, cfg.Projects.CreateProject)).Methods(http.MethodPost)
	api.HandleFunc("/projects/new", guard(projectEditors, cfg.Projects.NewProjectForm)).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id:[0-9]+}", guard(projectViewers, cfg.Projects.GetProjectDetail)).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id:[0-9]+}", guard(projectEditors, cfg.Projects.UpdateProject)).Methods(http.MethodPut)
	api.HandleFunc("/projects/{id:[0-9]+}", guard(adminOnly, cfg.Projects.DeleteProject)).Methods(http.MethodDelete)
	api.HandleFunc("/projects/{id:[0-9]+}/edit", guard(projectEditors, cfg.Projects.EditProjectForm)).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id:[0-9]+}/assignment", guard(adminOnly, cfg.Projects.OpenAssignment)).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id:[0-9]+}/assignment", guard(adminOnly, cfg.Projects.SubmitAssignment)).Methods(http.MethodPut)
	api.HandleFunc("/projects/{id:[0-9]+}/tasks/new", guard(taskAuthors, cfg.Projects.NewTaskForm)).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id:[0-9]+}/tasks", guard(taskAuthors, cfg.Projects.CreateTask)).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id:[0-9]+}/tasks/{taskId:[0-9]+}/status", guard(projectViewers, cfg.Projects.ChangeTaskStatus)).Methods(http.MethodPatch)
	api.HandleFunc("/projects/{id:[0-9]+}/tasks/{taskId:[0-9]+}", guard(projectViewers, cfg.Projects.DeleteTask)).Methods(http.MethodDelete)

	api.HandleFunc("/senior/projects", guard(seniorOnly, cfg.Projects.ListMyProjects)).Methods(http.MethodGet)

	api.HandleFunc("/tasks/{id:[0-9]+}/edit", guard(projectViewers, cfg.Tasks.EditTaskForm)).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id:[0-9]+}", guard(projectViewers, cfg.Tasks.UpdateTask)).Methods(http.MethodPut)
	api.HandleFunc("/tasks/edit/close", guard(projectViewers, cfg.Tasks.CloseTaskForm)).Methods(http.MethodPost)
	api.HandleFunc("/my-tasks", guard(taskOwners, cfg.Tasks.GetMyTasks)).Methods(http.MethodGet)
	api.HandleFunc("/my-tasks/{id:[0-9]+}/status", guard(taskOwners, cfg.Tasks.ChangeMyTaskStatus)).Methods(http.MethodPatch)

	api.HandleFunc("/employees", guard(adminOnly, cfg.Employees.ListEmployees)).Methods(http.MethodGet)
	api.HandleFunc("/employees", guard(adminOnly, cfg.Employees.CreateEmployee)).Methods(http.MethodPost)
	api.HandleFunc("/employees/new", guard(adminOnly, cfg.Employees.NewEmployeeForm)).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id:[0-9]+}", guard(adminOnly, cfg.Employees.UpdateEmployee)).Methods(http.MethodPut)
	api.HandleFunc("/employees/{id:[0-9]+}", guard(adminOnly, cfg.Employees.DeleteEmployee)).Methods(http.MethodDelete)
	api.HandleFunc("/employees/{id:[0-9]+}/edit", guard(adminOnly, cfg.Employees.EditEmployeeForm)).Methods(http.MethodGet)

	origin := cfg.Origin
	if origin == "" {
		origin = "*"
	}
	var h http.Handler = r
	if cfg.Limiter != nil {
		h = rateLimit(cfg.Limiter, h)
	}
	return enableCORS(origin, h)
}
