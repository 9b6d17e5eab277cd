package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xflyve-service/internal/model"
	"xflyve-service/internal/repository"
)

type JobService struct {
	jobs    repository.JobRepository
	drivers repository.DriverRepository
}

func NewJobService(jobs repository.JobRepository, drivers repository.DriverRepository) *JobService {
	return &JobService{jobs: jobs, drivers: drivers}
}

type CreateJobInput struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	PickupLocation   string `json:"pickup_location"`
	DeliveryLocation string `json:"delivery_location"`
	AssignedTo       string `json:"assigned_to"`
	AssignedTruck    string `json:"assigned_truck"`
	JobDate          string `json:"job_date"`
	JobType          string `json:"job_type"`
}

// Create books a job. A truck serves at most one job per calendar day;
// any existing job for the same truck inside the day window blocks the
// create. There is no unique index behind this check.
func (s *JobService) Create(ctx context.Context, input CreateJobInput) (*model.Job, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.PickupLocation) == "" || strings.TrimSpace(input.DeliveryLocation) == "" {
		return nil, fmt.Errorf("%w: pickup and delivery locations are required", ErrInvalidInput)
	}

	driverID, err := uuid.Parse(input.AssignedTo)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid driver id", ErrInvalidInput)
	}
	if input.AssignedTruck == "" || input.JobDate == "" {
		return nil, fmt.Errorf("%w: assigned truck and job date are required", ErrInvalidInput)
	}
	truckID, err := uuid.Parse(input.AssignedTruck)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid truck id", ErrInvalidInput)
	}
	jobDate, err := ParseDate(input.JobDate)
	if err != nil {
		return nil, err
	}

	jobType := model.JobType(strings.TrimSpace(input.JobType))
	if !jobType.IsValid() {
		return nil, fmt.Errorf("%w: invalid job type %q", ErrInvalidInput, input.JobType)
	}

	if _, err := s.drivers.GetByID(ctx, driverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: driver not found", ErrNotFound)
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}

	dayStart, dayEnd := DayWindow(jobDate)
	count, err := s.jobs.CountTruckJobsInWindow(ctx, truckID, dayStart, dayEnd, nil)
	if err != nil {
		return nil, fmt.Errorf("check truck availability: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: truck is already assigned to another job on the selected date", ErrConflict)
	}

	job := &model.Job{
		Title:            title,
		Description:      input.Description,
		PickupLocation:   strings.TrimSpace(input.PickupLocation),
		DeliveryLocation: strings.TrimSpace(input.DeliveryLocation),
		AssignedTo:       driverID,
		AssignedTruck:    truckID,
		JobDate:          jobDate,
		JobType:          jobType,
		Status:           model.JobStatusPending,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// GetByID is scoped to admins and the assigned driver.
func (s *JobService) GetByID(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	if !principal.IsAdmin() && job.AssignedTo != principal.UserID {
		return nil, ErrPermissionDenied
	}
	return job, nil
}

func (s *JobService) List(ctx context.Context) ([]model.Job, error) {
	return s.jobs.List(ctx)
}

// ListByDriver is scoped to admins and the driver themself.
func (s *JobService) ListByDriver(ctx context.Context, principal model.Principal, driverID uuid.UUID) ([]model.Job, error) {
	if !principal.IsAdmin() && principal.UserID != driverID {
		return nil, ErrPermissionDenied
	}
	return s.jobs.ListByDriver(ctx, driverID)
}

type UpdateJobInput struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	PickupLocation   *string `json:"pickup_location"`
	DeliveryLocation *string `json:"delivery_location"`
	AssignedTo       *string `json:"assigned_to"`
	AssignedTruck    *string `json:"assigned_truck"`
	JobDate          *string `json:"job_date"`
	JobType          *string `json:"job_type"`
	Status           *string `json:"status"`
}

// Update has two branches. Drivers may only change the status of their own
// jobs; admins may patch any field. Known limitation: admin updates do not
// re-run the truck availability check.
func (s *JobService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateJobInput) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}

	if principal.IsAdmin() {
		if err := s.applyAdminPatch(ctx, job, input); err != nil {
			return nil, err
		}
	} else {
		if job.AssignedTo != principal.UserID {
			return nil, ErrPermissionDenied
		}
		if input.Status == nil || hasNonStatusFields(input) {
			return nil, fmt.Errorf("%w: invalid status update", ErrInvalidInput)
		}
		status := model.JobStatus(*input.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: invalid status update", ErrInvalidInput)
		}
		job.Status = status
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

func hasNonStatusFields(input UpdateJobInput) bool {
	return input.Title != nil || input.Description != nil ||
		input.PickupLocation != nil || input.DeliveryLocation != nil ||
		input.AssignedTo != nil || input.AssignedTruck != nil ||
		input.JobDate != nil || input.JobType != nil
}

func (s *JobService) applyAdminPatch(ctx context.Context, job *model.Job, input UpdateJobInput) error {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		job.Title = title
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.PickupLocation != nil {
		job.PickupLocation = strings.TrimSpace(*input.PickupLocation)
	}
	if input.DeliveryLocation != nil {
		job.DeliveryLocation = strings.TrimSpace(*input.DeliveryLocation)
	}
	if input.AssignedTo != nil {
		driverID, err := uuid.Parse(*input.AssignedTo)
		if err != nil {
			return fmt.Errorf("%w: invalid driver id", ErrInvalidInput)
		}
		if _, err := s.drivers.GetByID(ctx, driverID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: driver not found", ErrNotFound)
			}
			return fmt.Errorf("get driver: %w", err)
		}
		job.AssignedTo = driverID
	}
	if input.AssignedTruck != nil {
		truckID, err := uuid.Parse(*input.AssignedTruck)
		if err != nil {
			return fmt.Errorf("%w: invalid truck id", ErrInvalidInput)
		}
		job.AssignedTruck = truckID
	}
	if input.JobDate != nil {
		jobDate, err := ParseDate(*input.JobDate)
		if err != nil {
			return err
		}
		job.JobDate = jobDate
	}
	if input.JobType != nil {
		jobType := model.JobType(*input.JobType)
		if !jobType.IsValid() {
			return fmt.Errorf("%w: invalid job type %q", ErrInvalidInput, *input.JobType)
		}
		job.JobType = jobType
	}
	if input.Status != nil {
		status := model.JobStatus(*input.Status)
		if !status.IsValid() {
			return fmt.Errorf("%w: invalid status update", ErrInvalidInput)
		}
		job.Status = status
	}
	return nil
}

// MarkComplete is the driver's completion endpoint. Only the assigned
// driver may call it, and a completed job stays completed.
func (s *JobService) MarkComplete(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Job, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get job: %w", err)
	}

	if job.AssignedTo != principal.UserID {
		return nil, ErrPermissionDenied
	}
	if job.Status == model.JobStatusCompleted {
		return nil, fmt.Errorf("%w: job is already completed", ErrInvalidInput)
	}

	job.Status = model.JobStatusCompleted
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	return job, nil
}

func (s *JobService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.jobs.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}
