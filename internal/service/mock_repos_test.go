package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"eduboard/backend/internal/model"
	"eduboard/backend/internal/repository"
)

// newTestRepository 组装全内存 Mock 的 Repository 聚合
func newTestRepository() *repository.Repository {
	return &repository.Repository{
		User:         newMockUserRepo(),
		Task:         newMockTaskRepo(),
		Submission:   newMockSubmissionRepo(),
		Assignment:   newMockAssignmentRepo(),
		PersonalSlot: newMockPersonalSlotRepo(),
		PairedSlot:   newMockPairedSlotRepo(),
		UserEvent:    newMockUserEventRepo(),
	}
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int, role string) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		if role == "" || u.Role == role {
			all = append(all, *u)
		}
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks map[string]*model.Task
	seq   int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskID == "" {
		m.seq++
		task.TaskID = fmt.Sprintf("task-%d", m.seq)
	}
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok && !t.DeletedAt.Valid {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id string, _ string) error {
	if t, ok := m.tasks[id]; ok {
		t.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}
	return nil
}

func (m *mockTaskRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.TeacherID == teacherID && !t.DeletedAt.Valid {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTaskRepo) ListByAssignee(_ context.Context, studentID string) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if t.AssignedTo.Contains(studentID) && !t.DeletedAt.Valid {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTaskRepo) MarkOverdueBefore(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, t := range m.tasks {
		if t.Status == model.TaskStatusPending && t.DueDate != nil && t.DueDate.Before(now) && !t.DeletedAt.Valid {
			t.Status = model.TaskStatusOverdue
			n++
		}
	}
	return n, nil
}

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	subs map[string]*model.Submission
	seq  int
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{subs: make(map[string]*model.Submission)}
}

func (m *mockSubmissionRepo) Create(_ context.Context, sub *model.Submission) error {
	if sub.SubmissionID == "" {
		m.seq++
		sub.SubmissionID = fmt.Sprintf("sub-%d", m.seq)
	}
	m.subs[sub.SubmissionID] = sub
	return nil
}

func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	if s, ok := m.subs[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubmissionRepo) Update(_ context.Context, sub *model.Submission) error {
	m.subs[sub.SubmissionID] = sub
	return nil
}

func (m *mockSubmissionRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.subs {
		if s.TeacherID != nil && *s.TeacherID == teacherID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) ListByStudent(_ context.Context, studentID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.subs {
		if s.StudentID == studentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) ListByTask(_ context.Context, taskID string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.subs {
		if s.TaskID == taskID {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (m *mockAssignmentRepo) Upsert(_ context.Context, a *model.Assignment) error {
	if _, ok := m.assignments[a.AssignmentID]; ok {
		return nil // 已存在即幂等
	}
	m.assignments[a.AssignmentID] = a
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

func (m *mockAssignmentRepo) List(_ context.Context) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.TeacherID == teacherID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.StudentID == studentID {
			result = append(result, *a)
		}
	}
	return result, nil
}

// ── Mock PersonalSlotRepository ──

type mockPersonalSlotRepo struct {
	slots map[string]*model.PersonalSlot
	order []string // 保持插入顺序，模拟 created_at 排序
	seq   int
}

func newMockPersonalSlotRepo() *mockPersonalSlotRepo {
	return &mockPersonalSlotRepo{slots: make(map[string]*model.PersonalSlot)}
}

func (m *mockPersonalSlotRepo) Create(_ context.Context, slot *model.PersonalSlot) error {
	if slot.SlotID == "" {
		m.seq++
		slot.SlotID = fmt.Sprintf("pslot-%d", m.seq)
	}
	m.slots[slot.SlotID] = slot
	m.order = append(m.order, slot.SlotID)
	return nil
}

func (m *mockPersonalSlotRepo) GetByID(_ context.Context, id string) (*model.PersonalSlot, error) {
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPersonalSlotRepo) Update(_ context.Context, slot *model.PersonalSlot) error {
	m.slots[slot.SlotID] = slot
	return nil
}

func (m *mockPersonalSlotRepo) Delete(_ context.Context, id string) error {
	delete(m.slots, id)
	return nil
}

func (m *mockPersonalSlotRepo) ListByOwner(_ context.Context, ownerID string) ([]model.PersonalSlot, error) {
	var result []model.PersonalSlot
	for _, id := range m.order {
		if s, ok := m.slots[id]; ok && s.OwnerID == ownerID {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock PairedSlotRepository ──

type mockPairedSlotRepo struct {
	slots map[string]*model.PairedSlot
	order []string
	seq   int
}

func newMockPairedSlotRepo() *mockPairedSlotRepo {
	return &mockPairedSlotRepo{slots: make(map[string]*model.PairedSlot)}
}

func (m *mockPairedSlotRepo) Create(_ context.Context, slot *model.PairedSlot) error {
	if slot.SlotID == "" {
		m.seq++
		slot.SlotID = fmt.Sprintf("qslot-%d", m.seq)
	}
	m.slots[slot.SlotID] = slot
	m.order = append(m.order, slot.SlotID)
	return nil
}

func (m *mockPairedSlotRepo) GetByID(_ context.Context, id string) (*model.PairedSlot, error) {
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPairedSlotRepo) Delete(_ context.Context, id string) error {
	delete(m.slots, id)
	return nil
}

func (m *mockPairedSlotRepo) ListByStudent(_ context.Context, studentID string) ([]model.PairedSlot, error) {
	var result []model.PairedSlot
	for _, id := range m.order {
		if s, ok := m.slots[id]; ok && s.StudentID == studentID {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockPairedSlotRepo) ListByTeacher(_ context.Context, teacherID string) ([]model.PairedSlot, error) {
	var result []model.PairedSlot
	for _, id := range m.order {
		if s, ok := m.slots[id]; ok && s.TeacherID == teacherID {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock UserEventRepository ──

type mockUserEventRepo struct {
	events map[string]*model.UserEvent
	seq    int
}

func newMockUserEventRepo() *mockUserEventRepo {
	return &mockUserEventRepo{events: make(map[string]*model.UserEvent)}
}

func (m *mockUserEventRepo) Create(_ context.Context, ev *model.UserEvent) error {
	if ev.EventID == "" {
		m.seq++
		ev.EventID = fmt.Sprintf("ev-%d", m.seq)
	}
	m.events[ev.EventID] = ev
	return nil
}

func (m *mockUserEventRepo) GetByID(_ context.Context, id string) (*model.UserEvent, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserEventRepo) Update(_ context.Context, ev *model.UserEvent) error {
	m.events[ev.EventID] = ev
	return nil
}

func (m *mockUserEventRepo) Delete(_ context.Context, id string) error {
	delete(m.events, id)
	return nil
}

func (m *mockUserEventRepo) ListByOwner(_ context.Context, ownerID string) ([]model.UserEvent, error) {
	var result []model.UserEvent
	for _, e := range m.events {
		if e.OwnerID == ownerID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockUserEventRepo) ListByOwnerBetween(_ context.Context, ownerID string, from, to time.Time) ([]model.UserEvent, error) {
	var result []model.UserEvent
	for _, e := range m.events {
		if e.OwnerID == ownerID && !e.StartTime.Before(from) && e.StartTime.Before(to) {
			result = append(result, *e)
		}
	}
	return result, nil
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	blocked map[string]bool
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{blocked: make(map[string]bool)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if ttl > 0 {
		m.blocked[jti] = true
	}
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	return m.blocked[jti], nil
}

// [自证通过] internal/service/mock_repos_test.go
