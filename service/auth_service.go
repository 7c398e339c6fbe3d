package service

import (
	"fmt"

	"naebak/config"
	"naebak/models"
	"naebak/utils"
)

// AuthService authenticates staff accounts (deputies and admins)
type AuthService struct {
	deputies DeputyStore
	auth     config.AuthConfig
}

// NewAuthService creates a new auth service
func NewAuthService(deputies DeputyStore, auth config.AuthConfig) *AuthService {
	return &AuthService{deputies: deputies, auth: auth}
}

// Login verifies staff credentials and returns a signed token. Unknown
// accounts and wrong passwords produce the same error so the login form
// cannot be used to probe for registered emails.
func (s *AuthService) Login(email, password string) (string, *models.Deputy, error) {
	deputy, err := s.deputies.GetDeputyByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}
	if !deputy.IsActive {
		return "", nil, fmt.Errorf("account is disabled")
	}
	if !utils.CheckPasswordHash(password, deputy.PasswordHash) {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	token, err := utils.GenerateToken(deputy.ID, string(deputy.Role), s.auth.JWTSecret, s.auth.TokenTTLHours)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, deputy, nil
}
