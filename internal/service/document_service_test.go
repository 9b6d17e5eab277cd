package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"xflyve-service/internal/model"
	"xflyve-service/internal/storage"
)

// fakeBlobStore keeps blobs in a map.
type fakeBlobStore struct {
	blobs map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (storage.Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return storage.Object{}, err
	}
	f.blobs[key] = data
	return storage.Object{Key: key, URL: "https://files.test/" + key}, nil
}

func (f *fakeBlobStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.blobs[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	delete(f.blobs, key)
	return nil
}

func newDocumentFixture(t *testing.T) (*DocumentService, *mockPodRepo, *mockDiaryRepo, *mockJobRepo, *fakeBlobStore) {
	t.Helper()
	podRepo := newMockPodRepo()
	diaryRepo := newMockDiaryRepo()
	jobRepo := newMockJobRepo()
	blobs := newFakeBlobStore()
	svc := NewDocumentService(podRepo, diaryRepo, jobRepo, blobs, zerolog.Nop())
	return svc, podRepo, diaryRepo, jobRepo, blobs
}

func pdfUpload(notes string, jobID *uuid.UUID) UploadInput {
	body := strings.NewReader("%PDF-1.4 test")
	return UploadInput{
		Filename:    "delivery.pdf",
		ContentType: "application/pdf",
		Size:        int64(body.Len()),
		Body:        body,
		Notes:       notes,
		JobID:       jobID,
	}
}

func TestUploadPod(t *testing.T) {
	svc, _, _, _, blobs := newDocumentFixture(t)
	ctx := context.Background()
	driver := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}

	pod, err := svc.UploadPod(ctx, driver, pdfUpload("left at gate", nil))
	if err != nil {
		t.Fatalf("UploadPod: %v", err)
	}
	if pod.FileURL == "" {
		t.Error("expected a file URL")
	}
	if _, ok := blobs.blobs[pod.StorageKey]; !ok {
		t.Error("blob not stored")
	}
	if pod.Notes != "left at gate" {
		t.Errorf("notes = %q", pod.Notes)
	}
}

func TestUploadPodLinksJob(t *testing.T) {
	svc, _, _, jobRepo, _ := newDocumentFixture(t)
	ctx := context.Background()
	driver := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}

	job := &model.Job{ID: uuid.New(), AssignedTo: driver.UserID}
	jobRepo.jobs[job.ID] = job

	pod, err := svc.UploadPod(ctx, driver, pdfUpload("", &job.ID))
	if err != nil {
		t.Fatalf("UploadPod: %v", err)
	}
	if job.PodURL == nil || *job.PodURL != pod.FileURL {
		t.Error("job pod url not attached")
	}
}

func TestUploadPodJobChecks(t *testing.T) {
	svc, _, _, jobRepo, _ := newDocumentFixture(t)
	ctx := context.Background()
	driver := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}

	ghost := uuid.New()
	if _, err := svc.UploadPod(ctx, driver, pdfUpload("", &ghost)); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown job: err = %v, want ErrNotFound", err)
	}

	foreign := &model.Job{ID: uuid.New(), AssignedTo: uuid.New()}
	jobRepo.jobs[foreign.ID] = foreign
	if _, err := svc.UploadPod(ctx, driver, pdfUpload("", &foreign.ID)); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("foreign job: err = %v, want ErrPermissionDenied", err)
	}
}

func TestUploadPodCleansUpOnInsertFailure(t *testing.T) {
	svc, podRepo, _, _, blobs := newDocumentFixture(t)
	ctx := context.Background()
	driver := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}

	podRepo.failCreate = true
	if _, err := svc.UploadPod(ctx, driver, pdfUpload("", nil)); err == nil {
		t.Fatal("expected error from failed insert")
	}
	if len(blobs.blobs) != 0 {
		t.Errorf("orphaned blobs left behind: %d", len(blobs.blobs))
	}
}

func TestPodScopingAndNotes(t *testing.T) {
	svc, _, _, _, _ := newDocumentFixture(t)
	ctx := context.Background()
	driver := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}

	pod, err := svc.UploadPod(ctx, driver, pdfUpload("", nil))
	if err != nil {
		t.Fatalf("UploadPod: %v", err)
	}

	stranger := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}
	if _, err := svc.GetPod(ctx, stranger, pod.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("stranger get: err = %v, want ErrPermissionDenied", err)
	}

	admin := model.Principal{UserID: uuid.New(), Role: model.RoleAdmin}
	updated, err := svc.UpdatePodNotes(ctx, admin, pod.ID, "checked")
	if err != nil {
		t.Fatalf("UpdatePodNotes: %v", err)
	}
	if updated.Notes != "checked" {
		t.Errorf("notes = %q", updated.Notes)
	}
}

func TestDeletePodRemovesBlob(t *testing.T) {
	svc, _, _, _, blobs := newDocumentFixture(t)
	ctx := context.Background()
	driver := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}

	pod, err := svc.UploadPod(ctx, driver, pdfUpload("", nil))
	if err != nil {
		t.Fatalf("UploadPod: %v", err)
	}

	if err := svc.DeletePod(ctx, driver, pod.ID); err != nil {
		t.Fatalf("DeletePod: %v", err)
	}
	if _, ok := blobs.blobs[pod.StorageKey]; ok {
		t.Error("blob still present after delete")
	}
	if _, err := svc.GetPod(ctx, driver, pod.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("after delete: err = %v, want ErrNotFound", err)
	}
}

func TestZipAllPodsSkipsMissingBlobs(t *testing.T) {
	svc, _, _, _, blobs := newDocumentFixture(t)
	ctx := context.Background()

	var kept *model.JobPod
	for i := 0; i < 3; i++ {
		driver := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}
		pod, err := svc.UploadPod(ctx, driver, pdfUpload(fmt.Sprintf("pod %d", i), nil))
		if err != nil {
			t.Fatalf("UploadPod: %v", err)
		}
		if i == 0 {
			delete(blobs.blobs, pod.StorageKey)
		} else {
			kept = pod
		}
	}

	var buf bytes.Buffer
	if err := svc.ZipAllPods(ctx, &buf); err != nil {
		t.Fatalf("ZipAllPods: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("read zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("zip entries = %d, want 2 (missing blob skipped)", len(zr.File))
	}
	if kept == nil {
		t.Fatal("fixture bug: no kept pod")
	}
}

func TestUploadDiaryCleansUpOnInsertFailure(t *testing.T) {
	svc, _, diaryRepo, _, blobs := newDocumentFixture(t)
	ctx := context.Background()
	driver := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}

	diaryRepo.failCreate = true
	if _, err := svc.UploadDiary(ctx, driver, pdfUpload("", nil)); err == nil {
		t.Fatal("expected error from failed insert")
	}
	if len(blobs.blobs) != 0 {
		t.Errorf("orphaned blobs left behind: %d", len(blobs.blobs))
	}
}

func TestDiaryScoping(t *testing.T) {
	svc, _, _, _, _ := newDocumentFixture(t)
	ctx := context.Background()
	driver := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}

	diary, err := svc.UploadDiary(ctx, driver, pdfUpload("week 9", nil))
	if err != nil {
		t.Fatalf("UploadDiary: %v", err)
	}

	stranger := model.Principal{UserID: uuid.New(), Role: model.RoleDriver}
	if _, err := svc.GetDiary(ctx, stranger, diary.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("stranger get: err = %v, want ErrPermissionDenied", err)
	}

	mine, err := svc.ListMyDiaries(ctx, driver.UserID)
	if err != nil {
		t.Fatalf("ListMyDiaries: %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("list count = %d, want 1", len(mine))
	}

	if err := svc.DeleteDiary(ctx, driver, diary.ID); err != nil {
		t.Fatalf("DeleteDiary: %v", err)
	}
}
