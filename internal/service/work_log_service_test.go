package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"xflyve-service/internal/model"
)

func TestCreateWorkLogOwnership(t *testing.T) {
	svc := NewWorkLogService(newMockWorkLogRepo())
	ctx := context.Background()
	driverID := uuid.New()

	log, err := svc.Create(ctx, driverID, WorkLogInput{
		Date:              "2026-03-01",
		Hours:             9.5,
		Kilometers:        320,
		DeliveriesDone:    4,
		DeliveryLocations: []string{"Geelong", "Ballarat"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if log.DriverID != driverID {
		t.Errorf("driver id = %s, want the token subject", log.DriverID)
	}
	if len(log.JobIDs) != 0 {
		t.Errorf("job refs should start empty, got %d", len(log.JobIDs))
	}
}

func TestCreateWorkLogRequiresDate(t *testing.T) {
	svc := NewWorkLogService(newMockWorkLogRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, uuid.New(), WorkLogInput{Hours: 8}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing date: err = %v, want ErrInvalidInput", err)
	}
}

func TestWorkLogReadScoping(t *testing.T) {
	svc := NewWorkLogService(newMockWorkLogRepo())
	ctx := context.Background()
	driverID := uuid.New()

	log, err := svc.Create(ctx, driverID, WorkLogInput{Date: "2026-03-01", Hours: 8})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	owner := model.Principal{UserID: driverID, Role: model.RoleDriver}
	if _, err := svc.GetByID(ctx, owner, log.ID); err != nil {
		t.Errorf("owner get: %v", err)
	}

	admin := model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
	if _, err := svc.GetByID(ctx, admin, log.ID); err != nil {
		t.Errorf("admin get: %v", err)
	}

	stranger := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}
	if _, err := svc.GetByID(ctx, stranger, log.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("stranger get: err = %v, want ErrPermissionDenied", err)
	}
}

func TestWorkLogListAllFilter(t *testing.T) {
	svc := NewWorkLogService(newMockWorkLogRepo())
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()
	if _, err := svc.Create(ctx, first, WorkLogInput{Date: "2026-03-01"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, second, WorkLogInput{Date: "2026-03-01"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := svc.ListAll(ctx, nil)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered count = %d, want 2", len(all))
	}

	scoped, err := svc.ListAll(ctx, &first)
	if err != nil {
		t.Fatalf("ListAll filtered: %v", err)
	}
	if len(scoped) != 1 || scoped[0].DriverID != first {
		t.Errorf("filtered list wrong: %+v", scoped)
	}
}

func TestWorkLogPartialUpdatePreservesFigures(t *testing.T) {
	svc := NewWorkLogService(newMockWorkLogRepo())
	ctx := context.Background()
	driverID := uuid.New()

	log, err := svc.Create(ctx, driverID, WorkLogInput{
		Date:              "2026-03-01",
		Hours:             8,
		Kilometers:        120,
		LocalStartTime:    "07:00",
		LocalEndTime:      "16:30",
		DeliveriesDone:    4,
		DeliveryLocations: []string{"Geelong"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	owner := model.Principal{UserID: driverID, Role: model.RoleDriver}
	notes := "add a note"
	updated, err := svc.Update(ctx, owner, log.ID, UpdateWorkLogInput{Notes: &notes})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if updated.Notes != "add a note" {
		t.Errorf("notes = %q", updated.Notes)
	}
	if updated.Hours != 8 || updated.Kilometers != 120 || updated.DeliveriesDone != 4 {
		t.Errorf("notes-only update wiped figures: hours=%v km=%v deliveries=%v",
			updated.Hours, updated.Kilometers, updated.DeliveriesDone)
	}
	if updated.LocalStartTime != "07:00" || updated.LocalEndTime != "16:30" {
		t.Errorf("notes-only update wiped times: %q-%q", updated.LocalStartTime, updated.LocalEndTime)
	}
	if len(updated.DeliveryLocations) != 1 {
		t.Errorf("notes-only update wiped delivery locations: %v", updated.DeliveryLocations)
	}
}

func TestWorkLogUpdateJobRefs(t *testing.T) {
	svc := NewWorkLogService(newMockWorkLogRepo())
	ctx := context.Background()
	driverID := uuid.New()

	log, err := svc.Create(ctx, driverID, WorkLogInput{Date: "2026-03-01", Hours: 8})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	owner := model.Principal{UserID: driverID, Role: model.RoleDriver}
	jobID := uuid.New()
	updated, err := svc.Update(ctx, owner, log.ID, UpdateWorkLogInput{JobIDs: []uuid.UUID{jobID}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.JobIDs) != 1 || updated.JobIDs[0] != jobID {
		t.Errorf("job refs not applied: %v", updated.JobIDs)
	}
	if updated.Hours != 8 {
		t.Errorf("job-refs update wiped hours: %v", updated.Hours)
	}
}

func TestWorkLogUpdateAndDelete(t *testing.T) {
	svc := NewWorkLogService(newMockWorkLogRepo())
	ctx := context.Background()
	driverID := uuid.New()

	log, err := svc.Create(ctx, driverID, WorkLogInput{Date: "2026-03-01", Hours: 8})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	owner := model.Principal{UserID: driverID, Role: model.RoleDriver}
	hours := 10.0
	notes := "overtime"
	updated, err := svc.Update(ctx, owner, log.ID, UpdateWorkLogInput{Hours: &hours, Notes: &notes})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Hours != 10 || updated.Notes != "overtime" {
		t.Errorf("update not applied: %+v", updated)
	}

	stranger := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}
	if err := svc.Delete(ctx, stranger, log.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("stranger delete: err = %v, want ErrPermissionDenied", err)
	}
	if err := svc.Delete(ctx, owner, log.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, owner, log.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: err = %v, want ErrNotFound", err)
	}
}
