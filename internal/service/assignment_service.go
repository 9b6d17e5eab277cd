package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xflyve-service/internal/cache"
	"xflyve-service/internal/model"
	"xflyve-service/internal/repository"
)

type AssignmentService struct {
	assignments repository.AssignmentRepository
	permanents  repository.PermanentAssignmentRepository
	drivers     repository.DriverRepository
	trucks      repository.TruckRepository
	lookups     *cache.AssignmentCache
}

func NewAssignmentService(
	assignments repository.AssignmentRepository,
	permanents repository.PermanentAssignmentRepository,
	drivers repository.DriverRepository,
	trucks repository.TruckRepository,
	lookups *cache.AssignmentCache,
) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		permanents:  permanents,
		drivers:     drivers,
		trucks:      trucks,
		lookups:     lookups,
	}
}

type AssignmentInput struct {
	DriverID string `json:"driver_id"`
	TruckID  string `json:"truck_id"`
	Date     string `json:"date"`
}

// CreateDaily records a (driver, truck, date) assignment. The exact triple
// must be unique; the storage index backstops the read-then-write race. The
// same truck can still go to another driver the same day.
func (s *AssignmentService) CreateDaily(ctx context.Context, input AssignmentInput) (*model.DailyTruckAssignment, error) {
	driverID, truckID, date, err := s.parseAssignmentInput(input)
	if err != nil {
		return nil, err
	}

	if err := s.checkDriverExists(ctx, driverID); err != nil {
		return nil, err
	}
	if err := s.checkTruckExists(ctx, truckID); err != nil {
		return nil, err
	}

	exists, err := s.assignments.TripleExists(ctx, driverID, truckID, date, nil)
	if err != nil {
		return nil, fmt.Errorf("check assignment triple: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: assignment already exists for this driver, truck and date", ErrConflict)
	}

	assignment := &model.DailyTruckAssignment{
		DriverID: driverID,
		TruckID:  truckID,
		Date:     date,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: assignment already exists for this driver, truck and date", ErrConflict)
		}
		return nil, fmt.Errorf("create assignment: %w", err)
	}

	s.lookups.Invalidate(ctx, driverID, date)
	return assignment, nil
}

// UpdateDaily rewrites an assignment, re-running the triple check with the
// updated row excluded.
func (s *AssignmentService) UpdateDaily(ctx context.Context, id uuid.UUID, input AssignmentInput) (*model.DailyTruckAssignment, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	prevDriverID, prevDate := assignment.DriverID, assignment.Date

	driverID, truckID, date, err := s.parseAssignmentInput(input)
	if err != nil {
		return nil, err
	}

	if err := s.checkDriverExists(ctx, driverID); err != nil {
		return nil, err
	}
	if err := s.checkTruckExists(ctx, truckID); err != nil {
		return nil, err
	}

	exists, err := s.assignments.TripleExists(ctx, driverID, truckID, date, &id)
	if err != nil {
		return nil, fmt.Errorf("check assignment triple: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: assignment already exists for this driver, truck and date", ErrConflict)
	}

	assignment.DriverID = driverID
	assignment.TruckID = truckID
	assignment.Date = date
	if err := s.assignments.Update(ctx, assignment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: assignment already exists for this driver, truck and date", ErrConflict)
		}
		return nil, fmt.Errorf("update assignment: %w", err)
	}

	s.lookups.Invalidate(ctx, prevDriverID, prevDate)
	s.lookups.Invalidate(ctx, driverID, date)
	return assignment, nil
}

// DeleteDaily removes an assignment unconditionally; deletion never
// trips the triple constraint.
func (s *AssignmentService) DeleteDaily(ctx context.Context, id uuid.UUID) error {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get assignment: %w", err)
	}

	if err := s.assignments.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete assignment: %w", err)
	}

	s.lookups.Invalidate(ctx, assignment.DriverID, assignment.Date)
	return nil
}

func (s *AssignmentService) ListDaily(ctx context.Context) ([]model.DailyTruckAssignment, error) {
	return s.assignments.List(ctx)
}

// GetDriverAssignment returns a driver's assignment for one day. Drivers
// can only look up their own; admins can look up anyone's.
func (s *AssignmentService) GetDriverAssignment(ctx context.Context, principal model.Principal, driverID uuid.UUID, rawDate string) (*model.DailyTruckAssignment, error) {
	if !principal.IsAdmin() && principal.UserID != driverID {
		return nil, ErrPermissionDenied
	}

	date, err := ParseDate(rawDate)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.lookups.Get(ctx, driverID, date); ok {
		return cached, nil
	}

	assignment, err := s.assignments.FindByDriverAndDate(ctx, driverID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}

	s.lookups.Set(ctx, assignment)
	return assignment, nil
}

// AssignPermanent gives a driver their default truck. One record per
// driver; assigning again swaps the truck and the assigning admin.
func (s *AssignmentService) AssignPermanent(ctx context.Context, adminID uuid.UUID, input AssignmentInput) (*model.PermanentTruckAssignment, error) {
	driverID, err := uuid.Parse(input.DriverID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid driver id", ErrInvalidInput)
	}
	truckID, err := uuid.Parse(input.TruckID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid truck id", ErrInvalidInput)
	}

	if err := s.checkDriverExists(ctx, driverID); err != nil {
		return nil, err
	}
	if err := s.checkTruckExists(ctx, truckID); err != nil {
		return nil, err
	}

	existing, err := s.permanents.FindByDriver(ctx, driverID)
	switch {
	case err == nil:
		existing.TruckID = truckID
		existing.AssignedBy = adminID
		if err := s.permanents.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("update permanent assignment: %w", err)
		}
		return existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		assignment := &model.PermanentTruckAssignment{
			DriverID:   driverID,
			TruckID:    truckID,
			AssignedBy: adminID,
		}
		if err := s.permanents.Create(ctx, assignment); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("%w: driver already has a permanent assignment", ErrConflict)
			}
			return nil, fmt.Errorf("create permanent assignment: %w", err)
		}
		return assignment, nil
	default:
		return nil, fmt.Errorf("find permanent assignment: %w", err)
	}
}

// GetPermanent returns a driver's permanent truck; admin or the driver
// themself.
func (s *AssignmentService) GetPermanent(ctx context.Context, principal model.Principal, driverID uuid.UUID) (*model.PermanentTruckAssignment, error) {
	if !principal.IsAdmin() && principal.UserID != driverID {
		return nil, ErrPermissionDenied
	}

	assignment, err := s.permanents.FindByDriver(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find permanent assignment: %w", err)
	}
	return assignment, nil
}

func (s *AssignmentService) parseAssignmentInput(input AssignmentInput) (uuid.UUID, uuid.UUID, time.Time, error) {
	driverID, err := uuid.Parse(input.DriverID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, fmt.Errorf("%w: invalid driver id", ErrInvalidInput)
	}
	truckID, err := uuid.Parse(input.TruckID)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, fmt.Errorf("%w: invalid truck id", ErrInvalidInput)
	}
	date, err := ParseDate(input.Date)
	if err != nil {
		return uuid.Nil, uuid.Nil, time.Time{}, err
	}
	return driverID, truckID, date, nil
}

func (s *AssignmentService) checkDriverExists(ctx context.Context, driverID uuid.UUID) error {
	if _, err := s.drivers.GetByID(ctx, driverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: driver not found", ErrNotFound)
		}
		return fmt.Errorf("get driver: %w", err)
	}
	return nil
}

func (s *AssignmentService) checkTruckExists(ctx context.Context, truckID uuid.UUID) error {
	if _, err := s.trucks.GetByID(ctx, truckID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: truck not found", ErrNotFound)
		}
		return fmt.Errorf("get truck: %w", err)
	}
	return nil
}
