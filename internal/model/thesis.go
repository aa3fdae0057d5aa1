package model

import "time"

// Thesis 论文表 — 对应 theses（聚合根）
// 状态值见 internal/workflow，迁移脚本中默认值为 Draft
type Thesis struct {
	ThesisID           string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"thesis_id"`
	Title              string     `gorm:"type:varchar(500);not null"                     json:"title"`
	Abstract           string     `gorm:"type:text"                                      json:"abstract"`
	StudentID          string     `gorm:"type:uuid;not null"                             json:"student_id"`
	SupervisorID       *string    `gorm:"type:uuid"                                      json:"supervisor_id,omitempty"`
	ExternalReviewerID *string    `gorm:"type:uuid"                                      json:"external_reviewer_id,omitempty"`
	SubmissionDeadline *time.Time `gorm:"type:date"                                      json:"submission_deadline,omitempty"`
	Status             string     `gorm:"type:varchar(30);not null;default:'Draft'"      json:"status"`
	VersionedModel

	// 关联
	Student          *Student          `gorm:"foreignKey:StudentID;references:StudentID"           json:"student,omitempty"`
	Supervisor       *Supervisor       `gorm:"foreignKey:SupervisorID;references:SupervisorID"     json:"supervisor,omitempty"`
	ExternalReviewer *ExternalReviewer `gorm:"foreignKey:ExternalReviewerID;references:ReviewerID" json:"external_reviewer,omitempty"`
	Committee        []CommitteeMember `gorm:"many2many:thesis_committee;foreignKey:ThesisID;joinForeignKey:ThesisID;references:MemberID;joinReferences:MemberID" json:"committee,omitempty"`
}

// TableName 指定表名
func (Thesis) TableName() string { return "theses" }

// StatusHistory 状态变更审计表 — 对应 status_histories
// 仅追加；OldStatus 为空表示创建时的初始记录
type StatusHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"   json:"id"`
	ThesisID  string    `gorm:"type:uuid;not null;index"   json:"thesis_id"`
	OldStatus *string   `gorm:"type:varchar(30)"           json:"old_status"`
	NewStatus string    `gorm:"type:varchar(30);not null"  json:"new_status"`
	ChangedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"changed_at"`
}

// TableName 指定表名
func (StatusHistory) TableName() string { return "status_histories" }
