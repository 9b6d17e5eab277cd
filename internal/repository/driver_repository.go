package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xflyve-service/internal/model"
)

type DriverRepository interface {
	Create(ctx context.Context, driver *model.Driver) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Driver, error)
	GetByEmail(ctx context.Context, email string) (*model.Driver, error)
	List(ctx context.Context) ([]model.Driver, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type driverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(ctx context.Context, driver *model.Driver) error {
	return r.db.WithContext(ctx).Create(driver).Error
}

func (r *driverRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Driver, error) {
	var driver model.Driver
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&driver).Error
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) GetByEmail(ctx context.Context, email string) (*model.Driver, error) {
	var driver model.Driver
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&driver).Error
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) List(ctx context.Context) ([]model.Driver, error) {
	var drivers []model.Driver
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&drivers).Error
	return drivers, err
}

func (r *driverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Driver{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *driverRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Driver{}).Count(&count).Error
	return count, err
}
