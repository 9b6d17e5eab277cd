package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xflyve-service/internal/model"
)

type PodRepository interface {
	Create(ctx context.Context, pod *model.JobPod) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.JobPod, error)
	Update(ctx context.Context, pod *model.JobPod) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]model.JobPod, error)
	ListAll(ctx context.Context) ([]model.JobPod, error)
}

type podRepository struct {
	db *gorm.DB
}

func NewPodRepository(db *gorm.DB) PodRepository {
	return &podRepository{db: db}
}

func (r *podRepository) Create(ctx context.Context, pod *model.JobPod) error {
	return r.db.WithContext(ctx).Create(pod).Error
}

func (r *podRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.JobPod, error) {
	var pod model.JobPod
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pod).Error
	if err != nil {
		return nil, err
	}
	return &pod, nil
}

func (r *podRepository) Update(ctx context.Context, pod *model.JobPod) error {
	return r.db.WithContext(ctx).Save(pod).Error
}

func (r *podRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.JobPod{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *podRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]model.JobPod, error) {
	var pods []model.JobPod
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("uploaded_at DESC").
		Find(&pods).Error
	return pods, err
}

func (r *podRepository) ListAll(ctx context.Context) ([]model.JobPod, error) {
	var pods []model.JobPod
	err := r.db.WithContext(ctx).Order("uploaded_at DESC").Find(&pods).Error
	return pods, err
}

type DiaryRepository interface {
	Create(ctx context.Context, diary *model.WorkDiary) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.WorkDiary, error)
	Update(ctx context.Context, diary *model.WorkDiary) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]model.WorkDiary, error)
}

type diaryRepository struct {
	db *gorm.DB
}

func NewDiaryRepository(db *gorm.DB) DiaryRepository {
	return &diaryRepository{db: db}
}

func (r *diaryRepository) Create(ctx context.Context, diary *model.WorkDiary) error {
	return r.db.WithContext(ctx).Create(diary).Error
}

func (r *diaryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.WorkDiary, error) {
	var diary model.WorkDiary
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&diary).Error
	if err != nil {
		return nil, err
	}
	return &diary, nil
}

func (r *diaryRepository) Update(ctx context.Context, diary *model.WorkDiary) error {
	return r.db.WithContext(ctx).Save(diary).Error
}

func (r *diaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.WorkDiary{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *diaryRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]model.WorkDiary, error) {
	var diaries []model.WorkDiary
	err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("uploaded_at DESC").
		Find(&diaries).Error
	return diaries, err
}
