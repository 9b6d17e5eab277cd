package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyTruckAssignment pairs a driver with a truck for one calendar day.
// Date is stored at day granularity (midnight UTC); the (driver, truck,
// date) triple is unique at the storage layer. Known limitation: the
// constraint does not stop the same truck going to a different driver on
// the same date.
type DailyTruckAssignment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	DriverID  uuid.UUID `gorm:"type:uuid;not null;index" json:"driver_id"`
	TruckID   uuid.UUID `gorm:"type:uuid;not null;index" json:"truck_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DailyTruckAssignment) TableName() string {
	return "daily_truck_assignments"
}

func (a *DailyTruckAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// PermanentTruckAssignment gives a driver a default truck. One per driver;
// assigning again replaces the truck rather than adding a row.
type PermanentTruckAssignment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	DriverID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"driver_id"`
	TruckID    uuid.UUID `gorm:"type:uuid;not null" json:"truck_id"`
	AssignedBy uuid.UUID `gorm:"type:uuid;not null" json:"assigned_by"`
	AssignedAt time.Time `gorm:"not null;default:now()" json:"assigned_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PermanentTruckAssignment) TableName() string {
	return "permanent_truck_assignments"
}

func (a *PermanentTruckAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now()
	}
	return nil
}
