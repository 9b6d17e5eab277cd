package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xflyve-service/internal/model"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.DailyTruckAssignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.DailyTruckAssignment, error)
	Update(ctx context.Context, assignment *model.DailyTruckAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.DailyTruckAssignment, error)
	FindByDriverAndDate(ctx context.Context, driverID uuid.UUID, date time.Time) (*model.DailyTruckAssignment, error)
	// TripleExists reports whether the exact (driver, truck, date) triple is
	// already recorded, optionally excluding one assignment id.
	TripleExists(ctx context.Context, driverID, truckID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *model.DailyTruckAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DailyTruckAssignment, error) {
	var assignment model.DailyTruckAssignment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *model.DailyTruckAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DailyTruckAssignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assignmentRepository) List(ctx context.Context) ([]model.DailyTruckAssignment, error) {
	var assignments []model.DailyTruckAssignment
	err := r.db.WithContext(ctx).Order("date DESC").Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) FindByDriverAndDate(ctx context.Context, driverID uuid.UUID, date time.Time) (*model.DailyTruckAssignment, error) {
	var assignment model.DailyTruckAssignment
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND date = ?", driverID, date).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepository) TripleExists(ctx context.Context, driverID, truckID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&model.DailyTruckAssignment{}).
		Where("driver_id = ? AND truck_id = ? AND date = ?", driverID, truckID, date)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type PermanentAssignmentRepository interface {
	Create(ctx context.Context, assignment *model.PermanentTruckAssignment) error
	Update(ctx context.Context, assignment *model.PermanentTruckAssignment) error
	FindByDriver(ctx context.Context, driverID uuid.UUID) (*model.PermanentTruckAssignment, error)
}

type permanentAssignmentRepository struct {
	db *gorm.DB
}

func NewPermanentAssignmentRepository(db *gorm.DB) PermanentAssignmentRepository {
	return &permanentAssignmentRepository{db: db}
}

func (r *permanentAssignmentRepository) Create(ctx context.Context, assignment *model.PermanentTruckAssignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *permanentAssignmentRepository) Update(ctx context.Context, assignment *model.PermanentTruckAssignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *permanentAssignmentRepository) FindByDriver(ctx context.Context, driverID uuid.UUID) (*model.PermanentTruckAssignment, error) {
	var assignment model.PermanentTruckAssignment
	err := r.db.WithContext(ctx).Where("driver_id = ?", driverID).First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
