package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

type DriverType string

const (
	DriverTypeLocal      DriverType = "local"
	DriverTypeInterstate DriverType = "interstate"
)

func (t DriverType) IsValid() bool {
	switch t {
	case DriverTypeLocal, DriverTypeInterstate:
		return true
	default:
		return false
	}
}

// Driver is both the driver and admin account record; admins are drivers
// with an elevated role, as in the original system.
type Driver struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role       `gorm:"type:driver_role;not null;default:driver" json:"role"`
	DriverType   DriverType `gorm:"type:driver_type;not null" json:"driver_type"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Driver) TableName() string {
	return "drivers"
}

func (d *Driver) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
