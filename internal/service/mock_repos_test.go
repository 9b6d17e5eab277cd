package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"xflyve-service/internal/model"
)

// ── Mock DriverRepository ──

type mockDriverRepo struct {
	drivers map[uuid.UUID]*model.Driver
}

func newMockDriverRepo() *mockDriverRepo {
	return &mockDriverRepo{drivers: make(map[uuid.UUID]*model.Driver)}
}

func (m *mockDriverRepo) Create(_ context.Context, driver *model.Driver) error {
	for _, d := range m.drivers {
		if d.Email == driver.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if driver.ID == uuid.Nil {
		driver.ID = uuid.New()
	}
	m.drivers[driver.ID] = driver
	return nil
}

func (m *mockDriverRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Driver, error) {
	if d, ok := m.drivers[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDriverRepo) GetByEmail(_ context.Context, email string) (*model.Driver, error) {
	for _, d := range m.drivers {
		if d.Email == email {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDriverRepo) List(_ context.Context) ([]model.Driver, error) {
	var result []model.Driver
	for _, d := range m.drivers {
		result = append(result, *d)
	}
	return result, nil
}

func (m *mockDriverRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.drivers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.drivers, id)
	return nil
}

func (m *mockDriverRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.drivers)), nil
}

// ── Mock TruckRepository ──

type mockTruckRepo struct {
	trucks map[uuid.UUID]*model.Truck
}

func newMockTruckRepo() *mockTruckRepo {
	return &mockTruckRepo{trucks: make(map[uuid.UUID]*model.Truck)}
}

func (m *mockTruckRepo) Create(_ context.Context, truck *model.Truck) error {
	for _, t := range m.trucks {
		if t.TruckNumber == truck.TruckNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if truck.ID == uuid.Nil {
		truck.ID = uuid.New()
	}
	m.trucks[truck.ID] = truck
	return nil
}

func (m *mockTruckRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Truck, error) {
	if t, ok := m.trucks[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTruckRepo) List(_ context.Context) ([]model.Truck, error) {
	var result []model.Truck
	for _, t := range m.trucks {
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TruckNumber < result[j].TruckNumber
	})
	return result, nil
}

func (m *mockTruckRepo) Update(_ context.Context, truck *model.Truck) error {
	m.trucks[truck.ID] = truck
	return nil
}

func (m *mockTruckRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.trucks[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.trucks, id)
	return nil
}

func (m *mockTruckRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.trucks)), nil
}

// ── Mock JobRepository ──

type mockJobRepo struct {
	jobs map[uuid.UUID]*model.Job
}

func newMockJobRepo() *mockJobRepo {
	return &mockJobRepo{jobs: make(map[uuid.UUID]*model.Job)}
}

func (m *mockJobRepo) Create(_ context.Context, job *model.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Job, error) {
	if j, ok := m.jobs[id]; ok {
		return j, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockJobRepo) Update(_ context.Context, job *model.Job) error {
	m.jobs[job.ID] = job
	return nil
}

func (m *mockJobRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.jobs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.jobs, id)
	return nil
}

func (m *mockJobRepo) List(_ context.Context) ([]model.Job, error) {
	var result []model.Job
	for _, j := range m.jobs {
		result = append(result, *j)
	}
	return result, nil
}

func (m *mockJobRepo) ListByDriver(_ context.Context, driverID uuid.UUID) ([]model.Job, error) {
	var result []model.Job
	for _, j := range m.jobs {
		if j.AssignedTo == driverID {
			result = append(result, *j)
		}
	}
	return result, nil
}

func (m *mockJobRepo) CountTruckJobsInWindow(_ context.Context, truckID uuid.UUID, from, to time.Time, excludeID *uuid.UUID) (int64, error) {
	var count int64
	for _, j := range m.jobs {
		if excludeID != nil && j.ID == *excludeID {
			continue
		}
		if j.AssignedTruck == truckID && !j.JobDate.Before(from) && j.JobDate.Before(to) {
			count++
		}
	}
	return count, nil
}

func (m *mockJobRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.jobs)), nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[uuid.UUID]*model.DailyTruckAssignment
	// failCreateWithDuplicate simulates the unique index firing on insert.
	failCreateWithDuplicate bool
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[uuid.UUID]*model.DailyTruckAssignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.DailyTruckAssignment) error {
	if m.failCreateWithDuplicate {
		return gorm.ErrDuplicatedKey
	}
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	m.assignments[assignment.ID] = assignment
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id uuid.UUID) (*model.DailyTruckAssignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.DailyTruckAssignment) error {
	m.assignments[assignment.ID] = assignment
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.assignments, id)
	return nil
}

func (m *mockAssignmentRepo) List(_ context.Context) ([]model.DailyTruckAssignment, error) {
	var result []model.DailyTruckAssignment
	for _, a := range m.assignments {
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAssignmentRepo) FindByDriverAndDate(_ context.Context, driverID uuid.UUID, date time.Time) (*model.DailyTruckAssignment, error) {
	for _, a := range m.assignments {
		if a.DriverID == driverID && a.Date.Equal(date) {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) TripleExists(_ context.Context, driverID, truckID uuid.UUID, date time.Time, excludeID *uuid.UUID) (bool, error) {
	for _, a := range m.assignments {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if a.DriverID == driverID && a.TruckID == truckID && a.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock PermanentAssignmentRepository ──

type mockPermanentRepo struct {
	assignments map[uuid.UUID]*model.PermanentTruckAssignment // keyed by driver id
}

func newMockPermanentRepo() *mockPermanentRepo {
	return &mockPermanentRepo{assignments: make(map[uuid.UUID]*model.PermanentTruckAssignment)}
}

func (m *mockPermanentRepo) Create(_ context.Context, assignment *model.PermanentTruckAssignment) error {
	if _, ok := m.assignments[assignment.DriverID]; ok {
		return gorm.ErrDuplicatedKey
	}
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	m.assignments[assignment.DriverID] = assignment
	return nil
}

func (m *mockPermanentRepo) Update(_ context.Context, assignment *model.PermanentTruckAssignment) error {
	m.assignments[assignment.DriverID] = assignment
	return nil
}

func (m *mockPermanentRepo) FindByDriver(_ context.Context, driverID uuid.UUID) (*model.PermanentTruckAssignment, error) {
	if a, ok := m.assignments[driverID]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock WorkLogRepository ──

type mockWorkLogRepo struct {
	logs map[uuid.UUID]*model.DailyWorkLog
}

func newMockWorkLogRepo() *mockWorkLogRepo {
	return &mockWorkLogRepo{logs: make(map[uuid.UUID]*model.DailyWorkLog)}
}

func (m *mockWorkLogRepo) Create(_ context.Context, log *model.DailyWorkLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	m.logs[log.ID] = log
	return nil
}

func (m *mockWorkLogRepo) GetByID(_ context.Context, id uuid.UUID) (*model.DailyWorkLog, error) {
	if l, ok := m.logs[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkLogRepo) Update(_ context.Context, log *model.DailyWorkLog) error {
	m.logs[log.ID] = log
	return nil
}

func (m *mockWorkLogRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.logs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.logs, id)
	return nil
}

func (m *mockWorkLogRepo) ListByDriver(_ context.Context, driverID uuid.UUID) ([]model.DailyWorkLog, error) {
	var result []model.DailyWorkLog
	for _, l := range m.logs {
		if l.DriverID == driverID {
			result = append(result, *l)
		}
	}
	return result, nil
}

func (m *mockWorkLogRepo) ListAll(_ context.Context, driverID *uuid.UUID) ([]model.DailyWorkLog, error) {
	var result []model.DailyWorkLog
	for _, l := range m.logs {
		if driverID != nil && l.DriverID != *driverID {
			continue
		}
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockWorkLogRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.logs)), nil
}

// ── Mock PodRepository ──

type mockPodRepo struct {
	pods       map[uuid.UUID]*model.JobPod
	failCreate bool
}

func newMockPodRepo() *mockPodRepo {
	return &mockPodRepo{pods: make(map[uuid.UUID]*model.JobPod)}
}

func (m *mockPodRepo) Create(_ context.Context, pod *model.JobPod) error {
	if m.failCreate {
		return gorm.ErrInvalidData
	}
	if pod.ID == uuid.Nil {
		pod.ID = uuid.New()
	}
	m.pods[pod.ID] = pod
	return nil
}

func (m *mockPodRepo) GetByID(_ context.Context, id uuid.UUID) (*model.JobPod, error) {
	if p, ok := m.pods[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPodRepo) Update(_ context.Context, pod *model.JobPod) error {
	m.pods[pod.ID] = pod
	return nil
}

func (m *mockPodRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.pods[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.pods, id)
	return nil
}

func (m *mockPodRepo) ListByDriver(_ context.Context, driverID uuid.UUID) ([]model.JobPod, error) {
	var result []model.JobPod
	for _, p := range m.pods {
		if p.DriverID == driverID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockPodRepo) ListAll(_ context.Context) ([]model.JobPod, error) {
	var result []model.JobPod
	for _, p := range m.pods {
		result = append(result, *p)
	}
	return result, nil
}

// ── Mock DiaryRepository ──

type mockDiaryRepo struct {
	diaries    map[uuid.UUID]*model.WorkDiary
	failCreate bool
}

func newMockDiaryRepo() *mockDiaryRepo {
	return &mockDiaryRepo{diaries: make(map[uuid.UUID]*model.WorkDiary)}
}

func (m *mockDiaryRepo) Create(_ context.Context, diary *model.WorkDiary) error {
	if m.failCreate {
		return gorm.ErrInvalidData
	}
	if diary.ID == uuid.Nil {
		diary.ID = uuid.New()
	}
	m.diaries[diary.ID] = diary
	return nil
}

func (m *mockDiaryRepo) GetByID(_ context.Context, id uuid.UUID) (*model.WorkDiary, error) {
	if d, ok := m.diaries[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDiaryRepo) Update(_ context.Context, diary *model.WorkDiary) error {
	m.diaries[diary.ID] = diary
	return nil
}

func (m *mockDiaryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.diaries[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.diaries, id)
	return nil
}

func (m *mockDiaryRepo) ListByDriver(_ context.Context, driverID uuid.UUID) ([]model.WorkDiary, error) {
	var result []model.WorkDiary
	for _, d := range m.diaries {
		if d.DriverID == driverID {
			result = append(result, *d)
		}
	}
	return result, nil
}
