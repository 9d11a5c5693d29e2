package services

import (
	"context"
	"fmt"

	"rama-crm/models"
)

type TaskService struct {
	api API
}

func NewTaskService(api API) *TaskService {
	return &TaskService{api: api}
}

// TaskDetail is a task together with the ids of its assignees, which the API
// returns next to the data field.
type TaskDetail struct {
	Task       models.Task
	AssignUser []int64
}

func (s *TaskService) ShowProject(ctx context.Context, projectID int64) (*models.Project, error) {
	resp, err := s.api.Get(ctx, fmt.Sprintf("/show-project/%d", projectID))
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Project](resp)
}

func (s *TaskService) FetchTasksByProject(ctx context.Context, projectID int64) ([]models.Task, error) {
	resp, err := s.api.Get(ctx, fmt.Sprintf("/projects/%d/tasks", projectID))
	if err != nil {
		return nil, err
	}
	return decodeList[models.Task](resp)
}

// FetchMyTasks lists the tasks assigned to the signed-in user.
func (s *TaskService) FetchMyTasks(ctx context.Context) ([]models.Task, error) {
	resp, err := s.api.Get(ctx, "/my-tasks")
	if err != nil {
		return nil, err
	}
	return decodeList[models.Task](resp)
}

func (s *TaskService) CreateTask(ctx context.Context, payload models.TaskPayload) (*models.Task, error) {
	resp, err := s.api.Post(ctx, "/tasks", payload)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Task](resp)
}

func (s *TaskService) GetTask(ctx context.Context, taskID int64) (*TaskDetail, error) {
	resp, err := s.api.Get(ctx, fmt.Sprintf("/tasks/%d", taskID))
	if err != nil {
		return nil, err
	}

	var body struct {
		Data       models.Task `json:"data"`
		AssignUser []int64     `json:"assign_user"`
	}
	if err := resp.DecodeBody(&body); err != nil {
		return nil, err
	}
	return &TaskDetail{Task: body.Data, AssignUser: body.AssignUser}, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, taskID int64, payload models.TaskPayload) error {
	_, err := s.api.Put(ctx, fmt.Sprintf("/tasks/%d", taskID), payload)
	return err
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID int64) error {
	_, err := s.api.Delete(ctx, fmt.Sprintf("/tasks/%d", taskID))
	return err
}

func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID int64, status models.TaskStatus) error {
	_, err := s.api.Patch(ctx, fmt.Sprintf("/tasks/%d/status", taskID), map[string]models.TaskStatus{"status": status})
	return err
}

// FetchMyProjectAssignments lists the projects the signed-in user is assigned to.
func (s *TaskService) FetchMyProjectAssignments(ctx context.Context) ([]models.Project, error) {
	resp, err := s.api.Get(ctx, "/project-assignments/my-projects")
	if err != nil {
		return nil, err
	}
	return decodeList[models.Project](resp)
}

func (s *TaskService) FetchProjectMembers(ctx context.Context, projectID int64) ([]models.Member, error) {
	resp, err := s.api.Get(ctx, fmt.Sprintf("/projects/%d/members", projectID))
	if err != nil {
		return nil, err
	}
	return decodeList[models.Member](resp)
}
