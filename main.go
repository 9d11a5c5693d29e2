package main

import (
	"fmt"
	"net/http"
	"time"

	"rama-crm/apiclient"
	"rama-crm/config"
	"rama-crm/handlers"
	"rama-crm/logging"
	"rama-crm/notify"
	"rama-crm/services"
	"rama-crm/session"
	"rama-crm/viewmodel"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logging.InitLogger("rama-crm", cfg.LogFile, level)
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting view server...")

	store, err := session.Open(cfg.SessionFile)
	if err != nil {
		logging.Logger.Fatalf("Event ID: SESSION_LOAD_FAILED, Description: %v", err)
	}
	if store.Authenticated(time.Now()) {
		logging.Logger.Infof("Event ID: SESSION_RESTORED, Description: Restored session for role %s", store.Role())
	}

	client := apiclient.New(cfg.APIBaseURL, store, apiclient.Options{
		Timeout:            cfg.APITimeout,
		BreakerMaxFailures: cfg.BreakerMaxFailures,
		BreakerTimeout:     cfg.BreakerTimeout,
	})
	logging.Logger.Infof("Event ID: API_CLIENT_READY, Description: Remote API at %s", cfg.APIBaseURL)

	center := notify.NewCenter()
	ui := viewmodel.UI{Notifier: center, Loader: center}

	taskService := services.NewTaskService(client)
	projectService := services.NewProjectService(client)
	employeeService := services.NewEmployeeService(client)
	authService := services.NewAuthService(client)

	projectDetail := viewmodel.NewProjectDetail(taskService, ui)
	projectList := viewmodel.NewProjectList(projectService, ui)
	employeeList := viewmodel.NewEmployeeList(employeeService, ui)

	router := handlers.NewRouter(handlers.RouterConfig{
		Session: store,
		Projects: handlers.NewProjectHandler(
			projectDetail,
			projectList,
			viewmodel.NewProjectEdit(projectService, ui, projectList.Load),
			viewmodel.NewAssignment(projectService, ui, projectList.Load),
			viewmodel.NewMyProjects(taskService, ui),
			viewmodel.NewTaskCreate(taskService, ui, projectDetail.Reload),
		),
		Tasks: handlers.NewTaskHandler(
			viewmodel.NewTaskEdit(taskService, ui, projectDetail.RefreshTasks),
			viewmodel.NewMyTasks(taskService, ui),
		),
		Employees: handlers.NewEmployeeHandler(
			employeeList,
			viewmodel.NewEmployeeForm(employeeService, ui, employeeList.Load),
		),
		Auth: handlers.NewAuthHandler(
			viewmodel.NewLogin(authService, store, ui),
			viewmodel.NewRegister(authService, ui),
			store,
			center,
		),
		Origin:  cfg.CORSOrigin,
		Limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
	})

	serverAddress := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:              serverAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := server.ListenAndServe(); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
