package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xflyve-service/internal/model"
)

type WorkLogRepository interface {
	Create(ctx context.Context, log *model.DailyWorkLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.DailyWorkLog, error)
	Update(ctx context.Context, log *model.DailyWorkLog) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]model.DailyWorkLog, error)
	// ListAll returns every log newest-first, optionally scoped to one driver.
	ListAll(ctx context.Context, driverID *uuid.UUID) ([]model.DailyWorkLog, error)
	Count(ctx context.Context) (int64, error)
}

type workLogRepository struct {
	db *gorm.DB
}

func NewWorkLogRepository(db *gorm.DB) WorkLogRepository {
	return &workLogRepository{db: db}
}

func (r *workLogRepository) Create(ctx context.Context, log *model.DailyWorkLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *workLogRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.DailyWorkLog, error) {
	var log model.DailyWorkLog
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *workLogRepository) Update(ctx context.Context, log *model.DailyWorkLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *workLogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.DailyWorkLog{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *workLogRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]model.DailyWorkLog, error) {
	var logs []model.DailyWorkLog
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("date DESC").
		Find(&logs).Error
	return logs, err
}

func (r *workLogRepository) ListAll(ctx context.Context, driverID *uuid.UUID) ([]model.DailyWorkLog, error) {
	query := r.db.WithContext(ctx).Model(&model.DailyWorkLog{})
	if driverID != nil {
		query = query.Where("driver_id = ?", *driverID)
	}

	var logs []model.DailyWorkLog
	err := query.Order("date DESC").Find(&logs).Error
	return logs, err
}

func (r *workLogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.DailyWorkLog{}).Count(&count).Error
	return count, err
}
