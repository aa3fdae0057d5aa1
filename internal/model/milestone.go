package model

import "time"

// Milestone 里程碑表 — 对应 milestones（随论文级联删除）
type Milestone struct {
	MilestoneID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"milestone_id"`
	ThesisID    string    `gorm:"type:uuid;not null;index"                       json:"thesis_id"`
	Type        string    `gorm:"type:varchar(100);not null"                     json:"type"`
	DueDate     time.Time `gorm:"type:date;not null"                             json:"due_date"`
	Status      string    `gorm:"type:varchar(20);not null;default:'Planned'"    json:"status"`
	Notes       string    `gorm:"type:text"                                      json:"notes"`
	BaseModel
}

// TableName 指定表名
func (Milestone) TableName() string { return "milestones" }
