package services

import (
	"context"
	"fmt"

	"rama-crm/models"
)

type EmployeeService struct {
	api API
}

func NewEmployeeService(api API) *EmployeeService {
	return &EmployeeService{api: api}
}

func (s *EmployeeService) FetchEmployees(ctx context.Context) ([]models.Employee, error) {
	resp, err := s.api.Get(ctx, "/employees")
	if err != nil {
		return nil, err
	}
	return decodeList[models.Employee](resp)
}

func (s *EmployeeService) AddEmployee(ctx context.Context, payload models.EmployeePayload) error {
	_, err := s.api.Post(ctx, "/employees", payload)
	return err
}

func (s *EmployeeService) ShowEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	resp, err := s.api.Get(ctx, fmt.Sprintf("/employees/%d", id))
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Employee](resp)
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int64, payload models.EmployeePayload) error {
	_, err := s.api.Put(ctx, fmt.Sprintf("/employees/%d", id), payload)
	return err
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id int64) error {
	_, err := s.api.Delete(ctx, fmt.Sprintf("/employees/%d", id))
	return err
}
