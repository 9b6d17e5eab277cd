package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xflyve-service/internal/model"
)

type TruckRepository interface {
	Create(ctx context.Context, truck *model.Truck) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Truck, error)
	List(ctx context.Context) ([]model.Truck, error)
	Update(ctx context.Context, truck *model.Truck) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type truckRepository struct {
	db *gorm.DB
}

func NewTruckRepository(db *gorm.DB) TruckRepository {
	return &truckRepository{db: db}
}

func (r *truckRepository) Create(ctx context.Context, truck *model.Truck) error {
	return r.db.WithContext(ctx).Create(truck).Error
}

func (r *truckRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Truck, error) {
	var truck model.Truck
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&truck).Error
	if err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *truckRepository) List(ctx context.Context) ([]model.Truck, error) {
	var trucks []model.Truck
	err := r.db.WithContext(ctx).Order("truck_number ASC").Find(&trucks).Error
	return trucks, err
}

func (r *truckRepository) Update(ctx context.Context, truck *model.Truck) error {
	return r.db.WithContext(ctx).Save(truck).Error
}

func (r *truckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Truck{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *truckRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Truck{}).Count(&count).Error
	return count, err
}
