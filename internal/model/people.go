package model

// Student 学生表 — 对应 students
type Student struct {
	StudentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email     string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	BaseModel
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// Supervisor 导师表 — 对应 supervisors
type Supervisor struct {
	SupervisorID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"supervisor_id"`
	Name         string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Department   string `gorm:"type:varchar(100);not null"                     json:"department"`
	BaseModel
}

// TableName 指定表名
func (Supervisor) TableName() string { return "supervisors" }

// ExternalReviewer 外审专家表 — 对应 external_reviewers
type ExternalReviewer struct {
	ReviewerID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reviewer_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email      string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	BaseModel
}

// TableName 指定表名
func (ExternalReviewer) TableName() string { return "external_reviewers" }

// CommitteeMember 答辩委员会成员表 — 对应 committee_members
type CommitteeMember struct {
	MemberID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"member_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	BaseModel
}

// TableName 指定表名
func (CommitteeMember) TableName() string { return "committee_members" }
