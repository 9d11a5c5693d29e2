package viewmodel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"rama-crm/apiclient"
	"rama-crm/models"
	"rama-crm/services"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProjectDetail struct {
	mu          sync.Mutex
	project     *models.Project
	members     []models.Member
	tasks       func(call int) ([]models.Task, error)
	taskCalls   int
	projectErr  error
	membersErr  error
	statusErr   error
	statusCalls []models.TaskStatus
	deleted     []int64
}

func (f *fakeProjectDetail) ShowProject(ctx context.Context, projectID int64) (*models.Project, error) {
	if f.projectErr != nil {
		return nil, f.projectErr
	}
	p := *f.project
	p.ID = projectID
	return &p, nil
}

func (f *fakeProjectDetail) FetchTasksByProject(ctx context.Context, projectID int64) ([]models.Task, error) {
	f.mu.Lock()
	f.taskCalls++
	call := f.taskCalls
	f.mu.Unlock()
	return f.tasks(call)
}

func (f *fakeProjectDetail) FetchProjectMembers(ctx context.Context, projectID int64) ([]models.Member, error) {
	if f.membersErr != nil {
		return nil, f.membersErr
	}
	return f.members, nil
}

func (f *fakeProjectDetail) UpdateTaskStatus(ctx context.Context, taskID int64, status models.TaskStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls = append(f.statusCalls, status)
	return f.statusErr
}

func (f *fakeProjectDetail) DeleteTask(ctx context.Context, taskID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, taskID)
	return nil
}

func pendingTask() models.Task {
	return models.Task{ID: 9, Title: "Wire login", Status: models.StatusPending, Priority: models.PriorityHigh, DueDate: "2024-06-20"}
}

func TestProjectDetailLoadAndChangeStatusOverHTTP(t *testing.T) {
	var (
		mu     sync.Mutex
		status = "pending"
	)
	r := mux.NewRouter()
	r.HandleFunc("/show-project/42", func(w http.ResponseWriter, req *http.Request) {
		reply(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"id": 42, "name": "Apollo", "deadline": "2024-09-01"}})
	}).Methods(http.MethodGet)
	r.HandleFunc("/projects/42/members", func(w http.ResponseWriter, req *http.Request) {
		reply(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{{"id": 1, "name": "Ann"}}})
	}).Methods(http.MethodGet)
	r.HandleFunc("/projects/42/tasks", func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		reply(w, http.StatusOK, map[string]any{"success": true, "data": []map[string]any{
			{"id": 9, "title": "Wire login", "status": status, "priority": "high", "assigned_to": map[string]any{"id": 1, "name": "Ann"}},
		}})
	}).Methods(http.MethodGet)
	r.HandleFunc("/tasks/9/status", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		json.NewDecoder(req.Body).Decode(&body)
		mu.Lock()
		status = body["status"]
		mu.Unlock()
		reply(w, http.StatusOK, map[string]any{"success": true})
	}).Methods(http.MethodPatch)

	ui, center := newUI()
	detail := NewProjectDetail(services.NewTaskService(newAPI(t, r)), ui)

	require.NoError(t, detail.Load(context.Background(), 42))
	rows := detail.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, int64(9), rows[0].ID)
	assert.Equal(t, "Pending", rows[0].StatusLabel)
	assert.Equal(t, "Ann", rows[0].Assignee)
	assert.Equal(t, ProjectSummary{Members: 1, Tasks: 1, Completed: 0}, detail.Summary())

	require.NoError(t, detail.ChangeStatus(context.Background(), 42, 9, models.StatusCompleted))
	rows = detail.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Completed", rows[0].StatusLabel)
	assert.Equal(t, ColorSuccess, rows[0].StatusColor)
	assert.Equal(t, "Task status updated successfully!", lastMessage(t, center).Message)
	assertBalancedBusy(t, center)

	view := detail.View()
	assert.Equal(t, "Apollo", view.Project.Name)
	assert.Equal(t, "1 Sep 2024", view.Deadline)
	assert.Equal(t, 1, view.Summary.Completed)
}

func TestProjectDetailStatusShownOnlyAfterRefetch(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fake := &fakeProjectDetail{
		project: &models.Project{Name: "Apollo"},
		tasks: func(call int) ([]models.Task, error) {
			if call == 1 {
				return []models.Task{pendingTask()}, nil
			}
			close(started)
			<-release
			done := pendingTask()
			done.Status = models.StatusCompleted
			return []models.Task{done}, nil
		},
	}
	ui, center := newUI()
	detail := NewProjectDetail(fake, ui)
	require.NoError(t, detail.Load(context.Background(), 42))

	errCh := make(chan error, 1)
	go func() {
		errCh <- detail.ChangeStatus(context.Background(), 42, 9, models.StatusCompleted)
	}()

	<-started
	assert.Equal(t, "Pending", detail.Rows()[0].StatusLabel)

	close(release)
	require.NoError(t, <-errCh)
	assert.Equal(t, "Completed", detail.Rows()[0].StatusLabel)
	assertBalancedBusy(t, center)
}

func TestProjectDetailChangeStatusFailureKeepsState(t *testing.T) {
	fake := &fakeProjectDetail{
		project:   &models.Project{Name: "Apollo"},
		tasks:     func(int) ([]models.Task, error) { return []models.Task{pendingTask()}, nil },
		statusErr: &apiclient.GenericError{Message: "Transition not allowed"},
	}
	ui, center := newUI()
	detail := NewProjectDetail(fake, ui)
	require.NoError(t, detail.Load(context.Background(), 42))

	err := detail.ChangeStatus(context.Background(), 42, 9, models.StatusCancelled)
	var gerr *apiclient.GenericError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, "Pending", detail.Rows()[0].StatusLabel)
	assert.Equal(t, 1, fake.taskCalls)
	assert.Equal(t, "Failed to update task status", lastMessage(t, center).Message)
}

func TestProjectDetailChangeStatusLoadsUnshownProject(t *testing.T) {
	fake := &fakeProjectDetail{
		project: &models.Project{Name: "Apollo"},
		members: []models.Member{{ID: 1, Name: "Ann"}},
		tasks: func(int) ([]models.Task, error) {
			done := pendingTask()
			done.Status = models.StatusCompleted
			return []models.Task{done}, nil
		},
	}
	ui, center := newUI()
	detail := NewProjectDetail(fake, ui)

	require.NoError(t, detail.ChangeStatus(context.Background(), 42, 9, models.StatusCompleted))
	view := detail.View()
	require.NotNil(t, view.Project)
	assert.Equal(t, int64(42), view.Project.ID)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "Completed", view.Tasks[0].StatusLabel)
	assert.Len(t, view.Members, 1)
	assert.Equal(t, "Task status updated successfully!", lastMessage(t, center).Message)
	assertBalancedBusy(t, center)
}

func TestProjectDetailRejectsUnknownStatusLocally(t *testing.T) {
	fake := &fakeProjectDetail{
		project: &models.Project{Name: "Apollo"},
		tasks:   func(int) ([]models.Task, error) { return []models.Task{pendingTask()}, nil },
	}
	ui, _ := newUI()
	detail := NewProjectDetail(fake, ui)
	require.NoError(t, detail.Load(context.Background(), 42))

	require.Error(t, detail.ChangeStatus(context.Background(), 42, 9, "archived"))
	assert.Empty(t, fake.statusCalls)
}

func TestProjectDetailLoadFailureLeavesPriorState(t *testing.T) {
	fake := &fakeProjectDetail{
		project: &models.Project{Name: "Apollo"},
		members: []models.Member{{ID: 1, Name: "Ann"}},
		tasks:   func(int) ([]models.Task, error) { return []models.Task{pendingTask()}, nil },
	}
	ui, center := newUI()
	detail := NewProjectDetail(fake, ui)
	require.NoError(t, detail.Load(context.Background(), 42))

	fake.membersErr = &apiclient.GenericError{Message: "boom"}
	fake.tasks = func(int) ([]models.Task, error) { return []models.Task{}, nil }
	err := detail.Load(context.Background(), 43)
	require.Error(t, err)

	view := detail.View()
	assert.Equal(t, int64(42), view.Project.ID)
	assert.Len(t, view.Tasks, 1)
	assert.Len(t, view.Members, 1)
	assert.Equal(t, "Failed to load team members", lastMessage(t, center).Message)
	assertBalancedBusy(t, center)
}

func TestProjectDetailDeleteTaskRefetches(t *testing.T) {
	fake := &fakeProjectDetail{
		project: &models.Project{Name: "Apollo"},
		tasks: func(call int) ([]models.Task, error) {
			if call == 1 {
				return []models.Task{pendingTask()}, nil
			}
			return []models.Task{}, nil
		},
	}
	ui, center := newUI()
	detail := NewProjectDetail(fake, ui)
	require.NoError(t, detail.Load(context.Background(), 42))

	require.NoError(t, detail.DeleteTask(context.Background(), 42, 9))
	assert.Equal(t, []int64{9}, fake.deleted)
	assert.Empty(t, detail.Rows())
	assert.Equal(t, "Task deleted successfully!", lastMessage(t, center).Message)
}

func TestTaskRowsDisplay(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Title: "Late", Status: models.StatusPending, DueDate: "2024-06-01"},
		{ID: 2, Title: "Done late", Status: models.StatusCompleted, DueDate: "2024-06-01"},
		{ID: 3, Title: "No date", Status: "on_hold", Priority: "urgent", AssignedTo: &models.Member{ID: 4, Name: "Bo"}},
	}
	rows := taskRows(tasks, fixedNow())
	require.Len(t, rows, 3)

	assert.True(t, rows[0].Overdue)
	assert.Equal(t, "Unassigned", rows[0].Assignee)
	assert.Equal(t, "1 Jun 2024", rows[0].DueDate)
	assert.False(t, rows[1].Overdue)

	assert.Equal(t, "-", rows[2].DueDate)
	assert.Equal(t, "Bo", rows[2].Assignee)
	assert.Equal(t, "On Hold", rows[2].StatusLabel)
	assert.Equal(t, ColorDefault, rows[2].StatusColor)
	assert.Equal(t, "Urgent", rows[2].PriorityLabel)
	assert.False(t, rows[2].Overdue)
}
