package model

import "time"

// Submission 提交记录表 — 对应 submissions（仅追加，随论文级联删除）
type Submission struct {
	SubmissionID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	ThesisID      string    `gorm:"type:uuid;not null;index"                       json:"thesis_id"`
	Kind          string    `gorm:"type:varchar(20);not null"                      json:"kind"`
	SubmittedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"submitted_at"`
	Comment       string    `gorm:"type:text"                                      json:"comment"`
	AttachmentRef string    `gorm:"type:varchar(1000)"                             json:"attachment_ref"`
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }
