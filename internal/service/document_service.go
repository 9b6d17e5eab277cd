package service

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"xflyve-service/internal/model"
	"xflyve-service/internal/repository"
	"xflyve-service/internal/storage"
)

// DocumentService handles proof-of-delivery files and work diaries: blob
// uploads plus their database records. If the record insert fails after a
// successful upload, the blob is deleted best-effort.
type DocumentService struct {
	pods    repository.PodRepository
	diaries repository.DiaryRepository
	jobs    repository.JobRepository
	blobs   storage.Store
	log     zerolog.Logger
}

func NewDocumentService(
	pods repository.PodRepository,
	diaries repository.DiaryRepository,
	jobs repository.JobRepository,
	blobs storage.Store,
	log zerolog.Logger,
) *DocumentService {
	return &DocumentService{pods: pods, diaries: diaries, jobs: jobs, blobs: blobs, log: log}
}

type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
	Notes       string
	JobID       *uuid.UUID
}

func blobKey(kind string, driverID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s/%s%s", kind, driverID, uuid.New(), ext)
}

// UploadPod stores a proof-of-delivery file for the calling driver. When a
// job is referenced the job must exist and belong to the driver, and the
// job's POD URL is updated to point at the new file.
func (s *DocumentService) UploadPod(ctx context.Context, principal model.Principal, input UploadInput) (*model.JobPod, error) {
	if input.Body == nil || input.Filename == "" {
		return nil, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	var job *model.Job
	if input.JobID != nil {
		var err error
		job, err = s.jobs.GetByID(ctx, *input.JobID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: job not found", ErrNotFound)
			}
			return nil, fmt.Errorf("get job: %w", err)
		}
		if !principal.IsAdmin() && job.AssignedTo != principal.UserID {
			return nil, ErrPermissionDenied
		}
	}

	obj, err := s.blobs.Put(ctx, blobKey("pods", principal.UserID, input.Filename), input.Body, input.Size, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store pod file: %w", err)
	}

	pod := &model.JobPod{
		DriverID:   principal.UserID,
		JobID:      input.JobID,
		StorageKey: obj.Key,
		FileURL:    obj.URL,
		Notes:      input.Notes,
	}
	if err := s.pods.Create(ctx, pod); err != nil {
		if delErr := s.blobs.Delete(ctx, obj.Key); delErr != nil {
			s.log.Warn().Err(delErr).Str("key", obj.Key).Msg("orphaned pod blob after failed insert")
		}
		return nil, fmt.Errorf("create pod record: %w", err)
	}

	if job != nil {
		job.PodURL = &pod.FileURL
		if err := s.jobs.Update(ctx, job); err != nil {
			s.log.Warn().Err(err).Str("job_id", job.ID.String()).Msg("failed to attach pod url to job")
		}
	}
	return pod, nil
}

func (s *DocumentService) GetPod(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.JobPod, error) {
	pod, err := s.pods.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get pod: %w", err)
	}
	if !principal.IsAdmin() && pod.DriverID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	return pod, nil
}

func (s *DocumentService) ListMyPods(ctx context.Context, driverID uuid.UUID) ([]model.JobPod, error) {
	return s.pods.ListByDriver(ctx, driverID)
}

func (s *DocumentService) ListAllPods(ctx context.Context) ([]model.JobPod, error) {
	return s.pods.ListAll(ctx)
}

// UpdatePodNotes patches the notes field only.
func (s *DocumentService) UpdatePodNotes(ctx context.Context, principal model.Principal, id uuid.UUID, notes string) (*model.JobPod, error) {
	pod, err := s.GetPod(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	pod.Notes = notes
	if err := s.pods.Update(ctx, pod); err != nil {
		return nil, fmt.Errorf("update pod: %w", err)
	}
	return pod, nil
}

// DeletePod removes the record, then the blob best-effort.
func (s *DocumentService) DeletePod(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	pod, err := s.GetPod(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := s.pods.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete pod: %w", err)
	}
	if err := s.blobs.Delete(ctx, pod.StorageKey); err != nil {
		s.log.Warn().Err(err).Str("key", pod.StorageKey).Msg("failed to delete pod blob")
	}
	return nil
}

// ZipAllPods streams every stored POD into one ZIP archive written to w,
// one blob at a time. Blobs that can no longer be opened are skipped with
// a warning.
func (s *DocumentService) ZipAllPods(ctx context.Context, w io.Writer) error {
	pods, err := s.pods.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list pods: %w", err)
	}

	zw := zip.NewWriter(w)
	for _, pod := range pods {
		rc, err := s.blobs.Open(ctx, pod.StorageKey)
		if err != nil {
			s.log.Warn().Err(err).Str("key", pod.StorageKey).Msg("skipping unreadable pod blob")
			continue
		}

		name := fmt.Sprintf("%s/%s%s", pod.DriverID, pod.ID, strings.ToLower(path.Ext(pod.StorageKey)))
		entry, err := zw.Create(name)
		if err != nil {
			rc.Close()
			zw.Close()
			return fmt.Errorf("add zip entry: %w", err)
		}
		if _, err := io.Copy(entry, rc); err != nil {
			rc.Close()
			zw.Close()
			return fmt.Errorf("write zip entry: %w", err)
		}
		rc.Close()
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize zip: %w", err)
	}
	return nil
}

// UploadDiary mirrors UploadPod without the job linkage.
func (s *DocumentService) UploadDiary(ctx context.Context, principal model.Principal, input UploadInput) (*model.WorkDiary, error) {
	if input.Body == nil || input.Filename == "" {
		return nil, fmt.Errorf("%w: file is required", ErrInvalidInput)
	}

	obj, err := s.blobs.Put(ctx, blobKey("diaries", principal.UserID, input.Filename), input.Body, input.Size, input.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store diary file: %w", err)
	}

	diary := &model.WorkDiary{
		DriverID:   principal.UserID,
		StorageKey: obj.Key,
		FileURL:    obj.URL,
		Notes:      input.Notes,
	}
	if err := s.diaries.Create(ctx, diary); err != nil {
		if delErr := s.blobs.Delete(ctx, obj.Key); delErr != nil {
			s.log.Warn().Err(delErr).Str("key", obj.Key).Msg("orphaned diary blob after failed insert")
		}
		return nil, fmt.Errorf("create diary record: %w", err)
	}
	return diary, nil
}

func (s *DocumentService) GetDiary(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.WorkDiary, error) {
	diary, err := s.diaries.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get diary: %w", err)
	}
	if !principal.IsAdmin() && diary.DriverID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	return diary, nil
}

func (s *DocumentService) ListMyDiaries(ctx context.Context, driverID uuid.UUID) ([]model.WorkDiary, error) {
	return s.diaries.ListByDriver(ctx, driverID)
}

func (s *DocumentService) UpdateDiaryNotes(ctx context.Context, principal model.Principal, id uuid.UUID, notes string) (*model.WorkDiary, error) {
	diary, err := s.GetDiary(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	diary.Notes = notes
	if err := s.diaries.Update(ctx, diary); err != nil {
		return nil, fmt.Errorf("update diary: %w", err)
	}
	return diary, nil
}

func (s *DocumentService) DeleteDiary(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	diary, err := s.GetDiary(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := s.diaries.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete diary: %w", err)
	}
	if err := s.blobs.Delete(ctx, diary.StorageKey); err != nil {
		s.log.Warn().Err(err).Str("key", diary.StorageKey).Msg("failed to delete diary blob")
	}
	return nil
}
