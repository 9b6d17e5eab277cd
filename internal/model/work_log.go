package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyWorkLog is a driver's self-reported day summary. Local drivers fill
// the start/end times, interstate drivers the odometer readings; neither is
// enforced.
type DailyWorkLog struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	DriverID          uuid.UUID   `gorm:"type:uuid;not null;index" json:"driver_id"`
	Date              time.Time   `gorm:"not null;index" json:"date"`
	Hours             float64     `gorm:"not null;default:0" json:"hours"`
	Kilometers        float64     `gorm:"not null;default:0" json:"kilometers"`
	LocalStartTime    string      `gorm:"type:varchar(16)" json:"local_start_time"`
	LocalEndTime      string      `gorm:"type:varchar(16)" json:"local_end_time"`
	InterstateStartKm *float64    `json:"interstate_start_km"`
	InterstateEndKm   *float64    `json:"interstate_end_km"`
	DeliveriesDone    int         `gorm:"not null;default:0" json:"deliveries_done"`
	DeliveryLocations StringSlice `gorm:"type:jsonb" json:"delivery_locations"`
	JobIDs            UUIDSlice   `gorm:"type:jsonb" json:"job_ids"`
	Notes             string      `gorm:"type:text" json:"notes"`
	CreatedAt         time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DailyWorkLog) TableName() string {
	return "daily_work_logs"
}

func (l *DailyWorkLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
