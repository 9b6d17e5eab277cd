package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xflyve-service/internal/model"
	"xflyve-service/internal/repository"
)

type WorkLogService struct {
	workLogs repository.WorkLogRepository
}

func NewWorkLogService(workLogs repository.WorkLogRepository) *WorkLogService {
	return &WorkLogService{workLogs: workLogs}
}

type WorkLogInput struct {
	Date              string   `json:"date"`
	Hours             float64  `json:"hours"`
	Kilometers        float64  `json:"kilometers"`
	LocalStartTime    string   `json:"local_start_time"`
	LocalEndTime      string   `json:"local_end_time"`
	InterstateStartKm *float64 `json:"interstate_start_km"`
	InterstateEndKm   *float64 `json:"interstate_end_km"`
	DeliveriesDone    int      `json:"deliveries_done"`
	DeliveryLocations []string `json:"delivery_locations"`
	Notes             string   `json:"notes"`
}

// Create records a day log for the calling driver. The driver id comes
// from the token, never the body, and job refs start empty.
func (s *WorkLogService) Create(ctx context.Context, driverID uuid.UUID, input WorkLogInput) (*model.DailyWorkLog, error) {
	if input.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date, err := ParseDate(input.Date)
	if err != nil {
		return nil, err
	}

	log := &model.DailyWorkLog{
		DriverID:          driverID,
		Date:              date,
		Hours:             input.Hours,
		Kilometers:        input.Kilometers,
		LocalStartTime:    input.LocalStartTime,
		LocalEndTime:      input.LocalEndTime,
		InterstateStartKm: input.InterstateStartKm,
		InterstateEndKm:   input.InterstateEndKm,
		DeliveriesDone:    input.DeliveriesDone,
		DeliveryLocations: model.StringSlice(input.DeliveryLocations),
		JobIDs:            model.UUIDSlice{},
	}
	log.Notes = input.Notes
	if err := s.workLogs.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("create work log: %w", err)
	}
	return log, nil
}

// GetByID is scoped to admins and the owning driver.
func (s *WorkLogService) GetByID(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.DailyWorkLog, error) {
	log, err := s.workLogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get work log: %w", err)
	}
	if !principal.IsAdmin() && log.DriverID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	return log, nil
}

func (s *WorkLogService) ListMine(ctx context.Context, driverID uuid.UUID) ([]model.DailyWorkLog, error) {
	return s.workLogs.ListByDriver(ctx, driverID)
}

// ListAll is the admin view, newest first, optionally scoped to a driver.
func (s *WorkLogService) ListAll(ctx context.Context, driverID *uuid.UUID) ([]model.DailyWorkLog, error) {
	return s.workLogs.ListAll(ctx, driverID)
}

type UpdateWorkLogInput struct {
	Date              *string     `json:"date"`
	Hours             *float64    `json:"hours"`
	Kilometers        *float64    `json:"kilometers"`
	LocalStartTime    *string     `json:"local_start_time"`
	LocalEndTime      *string     `json:"local_end_time"`
	InterstateStartKm *float64    `json:"interstate_start_km"`
	InterstateEndKm   *float64    `json:"interstate_end_km"`
	DeliveriesDone    *int        `json:"deliveries_done"`
	DeliveryLocations []string    `json:"delivery_locations"`
	JobIDs            []uuid.UUID `json:"job_ids"`
	Notes             *string     `json:"notes"`
}

// Update patches a log's reported figures; owning driver or admin. Only
// fields present in the request are touched.
func (s *WorkLogService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateWorkLogInput) (*model.DailyWorkLog, error) {
	log, err := s.GetByID(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		date, err := ParseDate(*input.Date)
		if err != nil {
			return nil, err
		}
		log.Date = date
	}
	if input.Hours != nil {
		log.Hours = *input.Hours
	}
	if input.Kilometers != nil {
		log.Kilometers = *input.Kilometers
	}
	if input.LocalStartTime != nil {
		log.LocalStartTime = *input.LocalStartTime
	}
	if input.LocalEndTime != nil {
		log.LocalEndTime = *input.LocalEndTime
	}
	if input.InterstateStartKm != nil {
		log.InterstateStartKm = input.InterstateStartKm
	}
	if input.InterstateEndKm != nil {
		log.InterstateEndKm = input.InterstateEndKm
	}
	if input.DeliveriesDone != nil {
		log.DeliveriesDone = *input.DeliveriesDone
	}
	if input.DeliveryLocations != nil {
		log.DeliveryLocations = model.StringSlice(input.DeliveryLocations)
	}
	if input.JobIDs != nil {
		log.JobIDs = model.UUIDSlice(input.JobIDs)
	}
	if input.Notes != nil {
		log.Notes = *input.Notes
	}

	if err := s.workLogs.Update(ctx, log); err != nil {
		return nil, fmt.Errorf("update work log: %w", err)
	}
	return log, nil
}

func (s *WorkLogService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, principal, id); err != nil {
		return err
	}
	if err := s.workLogs.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete work log: %w", err)
	}
	return nil
}
