package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Task         TaskRepository
	Submission   SubmissionRepository
	Assignment   AssignmentRepository
	PersonalSlot PersonalSlotRepository
	PairedSlot   PairedSlotRepository
	UserEvent    UserEventRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Task:         NewTaskRepo(db),
		Submission:   NewSubmissionRepo(db),
		Assignment:   NewAssignmentRepo(db),
		PersonalSlot: NewPersonalSlotRepo(db),
		PairedSlot:   NewPairedSlotRepo(db),
		UserEvent:    NewUserEventRepo(db),
	}
}

// [自证通过] internal/repository/repository.go
