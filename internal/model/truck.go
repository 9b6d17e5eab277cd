package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TruckStatus string

const (
	TruckStatusAvailable   TruckStatus = "available"
	TruckStatusOnRoute     TruckStatus = "on route"
	TruckStatusMaintenance TruckStatus = "maintenance"
)

func (s TruckStatus) IsValid() bool {
	switch s {
	case TruckStatusAvailable, TruckStatusOnRoute, TruckStatusMaintenance:
		return true
	default:
		return false
	}
}

// Truck status is advisory only; it is never reconciled against job or
// assignment records.
type Truck struct {
	ID                  uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	TruckNumber         string      `gorm:"type:varchar(32);uniqueIndex;not null" json:"truck_number"`
	Model               string      `gorm:"type:varchar(255)" json:"model"`
	Capacity            float64     `gorm:"not null" json:"capacity"`
	Status              TruckStatus `gorm:"type:truck_status;not null;default:available" json:"status"`
	AssignedDriverID    *uuid.UUID  `gorm:"type:uuid" json:"assigned_driver_id"`
	LastMaintenanceDate *time.Time  `json:"last_maintenance_date"`
	CreatedAt           time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Truck) TableName() string {
	return "trucks"
}

func (t *Truck) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
