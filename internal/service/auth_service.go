package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xflyve-service/internal/auth"
	"xflyve-service/internal/model"
	"xflyve-service/internal/repository"
)

type AuthService struct {
	drivers repository.DriverRepository
	tokens  *auth.Manager
}

func NewAuthService(drivers repository.DriverRepository, tokens *auth.Manager) *AuthService {
	return &AuthService{drivers: drivers, tokens: tokens}
}

type SignupInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	DriverType string `json:"driver_type"`
}

// Signup registers a driver account. The role is always driver; admin
// accounts are seeded out of band.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*model.Driver, string, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	driverType := model.DriverType(strings.TrimSpace(input.DriverType))

	if name == "" || email == "" {
		return nil, "", fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	if len(input.Password) < 6 {
		return nil, "", fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	if !driverType.IsValid() {
		return nil, "", fmt.Errorf("%w: invalid driver type %q", ErrInvalidInput, input.DriverType)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	driver := &model.Driver{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleDriver,
		DriverType:   driverType,
	}
	if err := s.drivers.Create(ctx, driver); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, "", fmt.Errorf("create driver: %w", err)
	}

	token, err := s.tokens.Sign(driver.ID, driver.Role)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return driver, token, nil
}

// Login verifies credentials. A missing account and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Driver, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	driver, err := s.drivers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("get driver by email: %w", err)
	}

	if !auth.CheckPassword(driver.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(driver.ID, driver.Role)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return driver, token, nil
}

// Profile returns the caller's own driver record.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*model.Driver, error) {
	driver, err := s.drivers.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	return driver, nil
}
