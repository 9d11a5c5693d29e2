package services

import (
	"context"

	"rama-crm/models"
)

type AuthService struct {
	api API
}

func NewAuthService(api API) *AuthService {
	return &AuthService{api: api}
}

func (s *AuthService) Register(ctx context.Context, payload models.Registration) error {
	_, err := s.api.Post(ctx, "/register", payload)
	return err
}

func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	resp, err := s.api.Post(ctx, "/login", creds)
	if err != nil {
		return nil, err
	}
	var login models.LoginResponse
	if err := resp.DecodeBody(&login); err != nil {
		return nil, err
	}
	return &login, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.api.Post(ctx, "/logout", nil)
	return err
}
