package viewmodel

import (
	"context"
	"sync"

	"rama-crm/logging"
	"rama-crm/models"
	"rama-crm/notify"
	"rama-crm/utils"
)

type MyProjectsSource interface {
	FetchMyProjectAssignments(ctx context.Context) ([]models.Project, error)
}

// ProjectStats counts in-progress work as pending.
type ProjectStats struct {
	Projects  int `json:"totalProjects"`
	Tasks     int `json:"totalTasks"`
	Pending   int `json:"pendingTasks"`
	Completed int `json:"completedTasks"`
}

type ProjectCard struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	StatusColor string   `json:"statusColor"`
	Deadline    string   `json:"deadline"`
	Members     []string `json:"members"`
	Tasks       int      `json:"tasks"`
}

type MyProjectsView struct {
	Projects []ProjectCard `json:"projects"`
	Stats    ProjectStats  `json:"stats"`
}

// MyProjects lists the projects the signed-in senior is assigned to.
type MyProjects struct {
	mu       sync.Mutex
	svc      MyProjectsSource
	ui       UI
	projects []models.Project
}

func NewMyProjects(svc MyProjectsSource, ui UI) *MyProjects {
	return &MyProjects{svc: svc, ui: ui}
}

func (m *MyProjects) Load(ctx context.Context) error {
	defer m.ui.busy()()

	projects, err := m.svc.FetchMyProjectAssignments(ctx)
	if err != nil {
		logging.Logger.Errorf("Event ID: MY_PROJECTS_LOAD_FAILED, Description: %v", err)
		notify.Error(m.ui.Notifier, "Failed to load projects")
		return classify(err)
	}

	m.mu.Lock()
	m.projects = projects
	m.mu.Unlock()
	m.ui.Notifier.Notify(notify.Notification{
		Message:  "Projects loaded successfully!",
		Severity: notify.SeveritySuccess,
		Position: "top-right",
	})
	return nil
}

func (m *MyProjects) View() MyProjectsView {
	m.mu.Lock()
	defer m.mu.Unlock()

	view := MyProjectsView{
		Projects: make([]ProjectCard, 0, len(m.projects)),
		Stats:    ProjectStats{Projects: len(m.projects)},
	}
	for _, p := range m.projects {
		members := make([]string, 0, len(p.Members))
		for _, member := range p.Members {
			members = append(members, member.Name)
		}
		view.Projects = append(view.Projects, ProjectCard{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Status:      p.Status,
			StatusColor: ProjectStatusColor(p.Status),
			Deadline:    utils.FormatDate(p.Deadline),
			Members:     members,
			Tasks:       len(p.Tasks),
		})

		view.Stats.Tasks += len(p.Tasks)
		for _, t := range p.Tasks {
			switch t.Status {
			case models.StatusPending, models.StatusInProgress:
				view.Stats.Pending++
			case models.StatusCompleted:
				view.Stats.Completed++
			}
		}
	}
	return view
}
