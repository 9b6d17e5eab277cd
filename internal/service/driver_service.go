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

type DriverService struct {
	drivers  repository.DriverRepository
	trucks   repository.TruckRepository
	jobs     repository.JobRepository
	workLogs repository.WorkLogRepository
}

func NewDriverService(
	drivers repository.DriverRepository,
	trucks repository.TruckRepository,
	jobs repository.JobRepository,
	workLogs repository.WorkLogRepository,
) *DriverService {
	return &DriverService{drivers: drivers, trucks: trucks, jobs: jobs, workLogs: workLogs}
}

func (s *DriverService) List(ctx context.Context) ([]model.Driver, error) {
	return s.drivers.List(ctx)
}

func (s *DriverService) GetByID(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	return driver, nil
}

// Create is the admin path for adding driver accounts; same rules as
// signup, role always driver.
func (s *DriverService) Create(ctx context.Context, input SignupInput) (*model.Driver, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	driverType := model.DriverType(strings.TrimSpace(input.DriverType))

	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrInvalidInput)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	if !driverType.IsValid() {
		return nil, fmt.Errorf("%w: invalid driver type %q", ErrInvalidInput, input.DriverType)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
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
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("create driver: %w", err)
	}
	return driver, nil
}

// Delete removes a driver account. Admins cannot delete themselves.
// Related jobs, logs and files are left in place with dangling references.
func (s *DriverService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	if callerID == id {
		return fmt.Errorf("%w: you cannot delete your own account", ErrInvalidInput)
	}
	if err := s.drivers.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete driver: %w", err)
	}
	return nil
}

type SystemStats struct {
	Drivers  int64 `json:"drivers"`
	Trucks   int64 `json:"trucks"`
	Jobs     int64 `json:"jobs"`
	WorkLogs int64 `json:"work_logs"`
}

func (s *DriverService) Stats(ctx context.Context) (*SystemStats, error) {
	stats := &SystemStats{}
	var err error
	if stats.Drivers, err = s.drivers.Count(ctx); err != nil {
		return nil, fmt.Errorf("count drivers: %w", err)
	}
	if stats.Trucks, err = s.trucks.Count(ctx); err != nil {
		return nil, fmt.Errorf("count trucks: %w", err)
	}
	if stats.Jobs, err = s.jobs.Count(ctx); err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	if stats.WorkLogs, err = s.workLogs.Count(ctx); err != nil {
		return nil, fmt.Errorf("count work logs: %w", err)
	}
	return stats, nil
}
