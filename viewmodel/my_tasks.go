package viewmodel

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"rama-crm/logging"
	"rama-crm/models"
	"rama-crm/notify"
)

type MyTasksSource interface {
	FetchMyTasks(ctx context.Context) ([]models.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID int64, status models.TaskStatus) error
}

type TaskStats struct {
	Total      int  `json:"total"`
	Pending    int  `json:"pending"`
	InProgress int  `json:"inProgress"`
	Completed  int  `json:"completed"`
	Cancelled  int  `json:"cancelled"`
	Overdue    int  `json:"overdue"`
	Percent    int  `json:"completionPercent"`
	HasOverdue bool `json:"hasOverdue"`
}

type MyTasksView struct {
	Tasks         []TaskRow `json:"tasks"`
	Stats         TaskStats `json:"stats"`
	StatusOptions []Option  `json:"statusOptions"`
}

// MyTasks is the task board of the signed-in user.
type MyTasks struct {
	mu    sync.Mutex
	svc   MyTasksSource
	ui    UI
	now   func() time.Time
	tasks []models.Task
}

func NewMyTasks(svc MyTasksSource, ui UI) *MyTasks {
	return &MyTasks{svc: svc, ui: ui, now: time.Now}
}

func (m *MyTasks) Load(ctx context.Context) error {
	defer m.ui.busy()()
	if err := m.fetch(ctx); err != nil {
		return err
	}
	m.ui.Notifier.Notify(notify.Notification{
		Message:  "Tasks loaded successfully!",
		Severity: notify.SeveritySuccess,
		Position: "top-right",
	})
	return nil
}

func (m *MyTasks) fetch(ctx context.Context) error {
	tasks, err := m.svc.FetchMyTasks(ctx)
	if err != nil {
		logging.Logger.Errorf("Event ID: MY_TASKS_LOAD_FAILED, Description: %v", err)
		notify.Error(m.ui.Notifier, "Failed to load tasks")
		return classify(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = tasks
	return nil
}

// ChangeStatus updates one of the user's tasks and re-fetches the board once
// the server accepts it.
func (m *MyTasks) ChangeStatus(ctx context.Context, taskID int64, status models.TaskStatus) error {
	if !status.Valid() {
		notify.Error(m.ui.Notifier, "Failed to update task status")
		return classify(fmt.Errorf("invalid task status %q", status))
	}
	defer m.ui.busy()()

	if err := m.svc.UpdateTaskStatus(ctx, taskID, status); err != nil {
		notify.Error(m.ui.Notifier, "Failed to update task status")
		return classify(err)
	}
	notify.Success(m.ui.Notifier, "Task status updated successfully!")
	return m.fetch(ctx)
}

func (m *MyTasks) Stats() TaskStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return taskStats(m.tasks, m.now())
}

func (m *MyTasks) View() MyTasksView {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	return MyTasksView{
		Tasks:         taskRows(m.tasks, now),
		Stats:         taskStats(m.tasks, now),
		StatusOptions: StatusOptions(),
	}
}

func taskStats(tasks []models.Task, now time.Time) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, row := range taskRows(tasks, now) {
		switch row.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusCompleted:
			stats.Completed++
		case models.StatusCancelled:
			stats.Cancelled++
		}
		if row.Overdue {
			stats.Overdue++
		}
	}
	if stats.Total > 0 {
		stats.Percent = int(math.Round(float64(stats.Completed) * 100 / float64(stats.Total)))
	}
	stats.HasOverdue = stats.Overdue > 0
	return stats
}
