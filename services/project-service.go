package services

import (
	"context"
	"fmt"

	"rama-crm/models"
)

type ProjectService struct {
	api API
}

func NewProjectService(api API) *ProjectService {
	return &ProjectService{api: api}
}

func (s *ProjectService) FetchProjects(ctx context.Context) ([]models.Project, error) {
	resp, err := s.api.Get(ctx, "/projects")
	if err != nil {
		return nil, err
	}
	return decodeList[models.Project](resp)
}

func (s *ProjectService) AddProject(ctx context.Context, payload models.ProjectPayload) (*models.Project, error) {
	resp, err := s.api.Post(ctx, "/projects", payload)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Project](resp)
}

func (s *ProjectService) ShowProject(ctx context.Context, projectID int64) (*models.Project, error) {
	resp, err := s.api.Get(ctx, fmt.Sprintf("/projects/%d", projectID))
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Project](resp)
}

// UpdateProject replaces the name, deadline and description of a project.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID int64, payload models.ProjectPayload) error {
	payload.Flag = models.FlagProjectDetails
	_, err := s.api.Put(ctx, fmt.Sprintf("/projects/%d", projectID), payload)
	return err
}

// UpdateAssignment replaces the project's assignment wholesale.
func (s *ProjectService) UpdateAssignment(ctx context.Context, projectID int64, payload models.Assignment) error {
	payload.Flag = models.FlagAssignment
	_, err := s.api.Put(ctx, fmt.Sprintf("/projects/%d", projectID), payload)
	return err
}

func (s *ProjectService) DeleteProject(ctx context.Context, projectID int64) error {
	_, err := s.api.Delete(ctx, fmt.Sprintf("/projects/%d", projectID))
	return err
}

func (s *ProjectService) FetchUserList(ctx context.Context, projectID int64) (*models.UserList, error) {
	resp, err := s.api.Get(ctx, fmt.Sprintf("/project/user-list/%d", projectID))
	if err != nil {
		return nil, err
	}
	list, err := decodeOne[models.UserList](resp)
	if err != nil {
		return nil, err
	}
	if list.Users == nil {
		list.Users = []models.Member{}
	}
	return list, nil
}
