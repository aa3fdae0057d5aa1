package model

import "time"

// DecisionLog 委员会评审决定表 — 对应 decision_logs
// 仅追加，同一 (论文, 成员) 允许多条记录，以最新一条为准；
// 自增主键为同秒时间戳提供确定性次序
type DecisionLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"           json:"id"`
	ThesisID  string    `gorm:"type:uuid;not null;index"           json:"thesis_id"`
	MemberID  string    `gorm:"type:uuid;not null"                 json:"member_id"`
	Decision  string    `gorm:"type:varchar(20);not null"          json:"decision"`
	Comment   string    `gorm:"type:text"                          json:"comment"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	// 关联
	Member *CommitteeMember `gorm:"foreignKey:MemberID;references:MemberID" json:"member,omitempty"`
}

// TableName 指定表名
func (DecisionLog) TableName() string { return "decision_logs" }
