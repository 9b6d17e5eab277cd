package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xflyve-service/internal/model"
)

type JobRepository interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Job, error)
	Update(ctx context.Context, job *model.Job) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.Job, error)
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]model.Job, error)
	// CountTruckJobsInWindow reports how many jobs reference the truck with
	// a job date inside [from, to), optionally excluding one job id.
	CountTruckJobsInWindow(ctx context.Context, truckID uuid.UUID, from, to time.Time, excludeID *uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *jobRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) Update(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *jobRepository) List(ctx context.Context) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).Order("job_date DESC").Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]model.Job, error) {
	var jobs []model.Job
	err := r.db.WithContext(ctx).
		Where("assigned_to = ?", driverID).
		Order("job_date DESC").
		Find(&jobs).Error
	return jobs, err
}

func (r *jobRepository) CountTruckJobsInWindow(ctx context.Context, truckID uuid.UUID, from, to time.Time, excludeID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Job{}).
		Where("assigned_truck = ? AND job_date >= ? AND job_date < ?", truckID, from, to)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *jobRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Job{}).Count(&count).Error
	return count, err
}
