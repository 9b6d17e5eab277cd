package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
)

func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusInProgress, JobStatusCompleted:
		return true
	default:
		return false
	}
}

type JobType string

const (
	JobTypeLocal      JobType = "local"
	JobTypeInterstate JobType = "interstate"
)

func (t JobType) IsValid() bool {
	switch t {
	case JobTypeLocal, JobTypeInterstate:
		return true
	default:
		return false
	}
}

type Job struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Title            string    `gorm:"type:varchar(255);not null" json:"title"`
	Description      string    `gorm:"type:text" json:"description"`
	PickupLocation   string    `gorm:"type:varchar(255);not null" json:"pickup_location"`
	DeliveryLocation string    `gorm:"type:varchar(255);not null" json:"delivery_location"`
	AssignedTo       uuid.UUID `gorm:"type:uuid;not null;index" json:"assigned_to"`
	AssignedTruck    uuid.UUID `gorm:"type:uuid;not null;index" json:"assigned_truck"`
	JobDate          time.Time `gorm:"not null;index" json:"job_date"`
	JobType          JobType   `gorm:"type:job_type;not null" json:"job_type"`
	Status           JobStatus `gorm:"type:job_status;not null;default:pending" json:"status"`
	PodURL           *string   `gorm:"type:text" json:"pod_url"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
