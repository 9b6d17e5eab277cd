package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"xflyve-service/internal/model"
)

func newDriverFixture(t *testing.T) (*DriverService, *mockDriverRepo) {
	t.Helper()
	driverRepo := newMockDriverRepo()
	svc := NewDriverService(driverRepo, newMockTruckRepo(), newMockJobRepo(), newMockWorkLogRepo())
	return svc, driverRepo
}

func TestDriverSelfDeleteForbidden(t *testing.T) {
	svc, repo := newDriverFixture(t)
	ctx := context.Background()

	admin := &model.Driver{ID: uuid.New(), Name: "Boss", Email: "boss@example.com", Role: model.RoleAdmin, DriverType: model.DriverTypeLocal}
	repo.drivers[admin.ID] = admin

	if err := svc.Delete(ctx, admin.ID, admin.ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("self delete: err = %v, want ErrInvalidInput", err)
	}

	other := &model.Driver{ID: uuid.New(), Name: "Dana", Email: "dana@example.com", Role: model.RoleDriver, DriverType: model.DriverTypeLocal}
	repo.drivers[other.ID] = other
	if err := svc.Delete(ctx, admin.ID, other.ID); err != nil {
		t.Fatalf("delete other: %v", err)
	}

	if err := svc.Delete(ctx, admin.ID, other.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete missing: err = %v, want ErrNotFound", err)
	}
}

func TestSystemStats(t *testing.T) {
	svc, repo := newDriverFixture(t)
	ctx := context.Background()

	repo.drivers[uuid.New()] = &model.Driver{Email: "a@b.com"}
	repo.drivers[uuid.New()] = &model.Driver{Email: "c@d.com"}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Drivers != 2 {
		t.Errorf("drivers = %d, want 2", stats.Drivers)
	}
	if stats.Trucks != 0 || stats.Jobs != 0 || stats.WorkLogs != 0 {
		t.Errorf("empty counts wrong: %+v", stats)
	}
}
