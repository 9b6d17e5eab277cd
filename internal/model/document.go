package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobPod is a proof-of-delivery file owned by the uploading driver.
// StorageKey locates the blob in whichever store is configured; FileURL is
// what clients fetch.
type JobPod struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	DriverID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"driver_id"`
	JobID      *uuid.UUID `gorm:"type:uuid;index" json:"job_id"`
	StorageKey string     `gorm:"type:text;not null" json:"-"`
	FileURL    string     `gorm:"type:text;not null" json:"file_url"`
	Notes      string     `gorm:"type:text" json:"notes"`
	UploadedAt time.Time  `gorm:"not null;default:now()" json:"uploaded_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (JobPod) TableName() string {
	return "job_pods"
}

func (p *JobPod) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.UploadedAt.IsZero() {
		p.UploadedAt = time.Now()
	}
	return nil
}

// WorkDiary is an uploaded diary PDF; same ownership rules as JobPod but
// never linked to a job.
type WorkDiary struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	DriverID   uuid.UUID `gorm:"type:uuid;not null;index" json:"driver_id"`
	StorageKey string    `gorm:"type:text;not null" json:"-"`
	FileURL    string    `gorm:"type:text;not null" json:"file_url"`
	Notes      string    `gorm:"type:text" json:"notes"`
	UploadedAt time.Time `gorm:"not null;default:now()" json:"uploaded_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WorkDiary) TableName() string {
	return "work_diaries"
}

func (d *WorkDiary) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now()
	}
	return nil
}
