package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xflyve-service/internal/model"
	"xflyve-service/internal/repository"
	"xflyve-service/internal/utils"
)

type TruckService struct {
	trucks repository.TruckRepository
}

func NewTruckService(trucks repository.TruckRepository) *TruckService {
	return &TruckService{trucks: trucks}
}

type CreateTruckInput struct {
	TruckNumber         string     `json:"truck_number"`
	Model               string     `json:"model"`
	Capacity            float64    `json:"capacity"`
	Status              string     `json:"status"`
	AssignedDriverID    *uuid.UUID `json:"assigned_driver_id"`
	LastMaintenanceDate *time.Time `json:"last_maintenance_date"`
}

func (s *TruckService) Create(ctx context.Context, input CreateTruckInput) (*model.Truck, error) {
	number := utils.NormalizeTruckNumber(input.TruckNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: truck number is required", ErrInvalidInput)
	}
	if input.Capacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
	}

	status := model.TruckStatus(input.Status)
	if status == "" {
		status = model.TruckStatusAvailable
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid truck status %q", ErrInvalidInput, input.Status)
	}

	truck := &model.Truck{
		TruckNumber:         number,
		Model:               input.Model,
		Capacity:            input.Capacity,
		Status:              status,
		AssignedDriverID:    input.AssignedDriverID,
		LastMaintenanceDate: input.LastMaintenanceDate,
	}
	if err := s.trucks.Create(ctx, truck); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: truck number already exists", ErrConflict)
		}
		return nil, fmt.Errorf("create truck: %w", err)
	}
	return truck, nil
}

func (s *TruckService) GetByID(ctx context.Context, id uuid.UUID) (*model.Truck, error) {
	truck, err := s.trucks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get truck: %w", err)
	}
	return truck, nil
}

func (s *TruckService) List(ctx context.Context) ([]model.Truck, error) {
	return s.trucks.List(ctx)
}

type UpdateTruckInput struct {
	TruckNumber         *string    `json:"truck_number"`
	Model               *string    `json:"model"`
	Capacity            *float64   `json:"capacity"`
	Status              *string    `json:"status"`
	AssignedDriverID    *uuid.UUID `json:"assigned_driver_id"`
	LastMaintenanceDate *time.Time `json:"last_maintenance_date"`
}

func (s *TruckService) Update(ctx context.Context, id uuid.UUID, input UpdateTruckInput) (*model.Truck, error) {
	truck, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.TruckNumber != nil {
		number := utils.NormalizeTruckNumber(*input.TruckNumber)
		if number == "" {
			return nil, fmt.Errorf("%w: truck number is required", ErrInvalidInput)
		}
		truck.TruckNumber = number
	}
	if input.Model != nil {
		truck.Model = *input.Model
	}
	if input.Capacity != nil {
		if *input.Capacity <= 0 {
			return nil, fmt.Errorf("%w: capacity must be positive", ErrInvalidInput)
		}
		truck.Capacity = *input.Capacity
	}
	if input.Status != nil {
		status := model.TruckStatus(*input.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid truck status %q", ErrInvalidInput, *input.Status)
		}
		truck.Status = status
	}
	if input.AssignedDriverID != nil {
		truck.AssignedDriverID = input.AssignedDriverID
	}
	if input.LastMaintenanceDate != nil {
		truck.LastMaintenanceDate = input.LastMaintenanceDate
	}

	if err := s.trucks.Update(ctx, truck); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: truck number already exists", ErrConflict)
		}
		return nil, fmt.Errorf("update truck: %w", err)
	}
	return truck, nil
}

func (s *TruckService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trucks.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete truck: %w", err)
	}
	return nil
}
