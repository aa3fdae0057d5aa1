package dto

// ── 论文模块 DTO ──

// CreateThesisRequest 创建论文请求
type CreateThesisRequest struct {
	Title              string   `json:"title"                binding:"required,min=2,max=500"`
	Abstract           string   `json:"abstract"`
	StudentID          string   `json:"student_id"           binding:"required,uuid"`
	SupervisorID       *string  `json:"supervisor_id"        binding:"omitempty,uuid"`
	ExternalReviewerID *string  `json:"external_reviewer_id" binding:"omitempty,uuid"`
	SubmissionDeadline *string  `json:"submission_deadline"` // "2026-06-30"
	CommitteeMemberIDs []string `json:"committee_member_ids" binding:"omitempty,dive,uuid"`
}

// UpdateThesisRequest 更新论文请求
// Version 用于乐观锁校验，必须携带读取时的版本号
type UpdateThesisRequest struct {
	Title              *string  `json:"title"                binding:"omitempty,min=2,max=500"`
	Abstract           *string  `json:"abstract"`
	StudentID          *string  `json:"student_id"           binding:"omitempty,uuid"`
	SupervisorID       *string  `json:"supervisor_id"        binding:"omitempty,uuid"`
	ExternalReviewerID *string  `json:"external_reviewer_id" binding:"omitempty,uuid"`
	SubmissionDeadline *string  `json:"submission_deadline"`
	CommitteeMemberIDs []string `json:"committee_member_ids" binding:"omitempty,dive,uuid"`
	Version            int      `json:"version"              binding:"required,min=1"`
}

// ThesisListQuery 论文列表查询参数
type ThesisListQuery struct {
	ListQuery
	Status string `form:"status" binding:"omitempty"`
}

// TransitionRequest 论文状态转换请求
type TransitionRequest struct {
	TargetStatus string `json:"target_status" binding:"required"`
}

// AssignSupervisorRequest 指派导师请求
type AssignSupervisorRequest struct {
	SupervisorID string `json:"supervisor_id" binding:"required,uuid"`
}

// AssignReviewerRequest 指派外审专家请求
type AssignReviewerRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required,uuid"`
}

// ThesisResponse 论文摘要响应（列表项）
type ThesisResponse struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	StudentID          string  `json:"student_id"`
	StudentName        string  `json:"student_name,omitempty"`
	Status             string  `json:"status"`
	SubmissionDeadline *string `json:"submission_deadline,omitempty"`
	Version            int     `json:"version"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

// ThesisDetailResponse 论文详情响应
type ThesisDetailResponse struct {
	ID                 string                    `json:"id"`
	Title              string                    `json:"title"`
	Abstract           string                    `json:"abstract"`
	Status             string                    `json:"status"`
	SubmissionDeadline *string                   `json:"submission_deadline,omitempty"`
	Version            int                       `json:"version"`
	Student            *StudentResponse          `json:"student,omitempty"`
	Supervisor         *SupervisorResponse       `json:"supervisor,omitempty"`
	ExternalReviewer   *ReviewerResponse         `json:"external_reviewer,omitempty"`
	Committee          []CommitteeMemberResponse `json:"committee"`
	Milestones         []MilestoneResponse       `json:"milestones"`
	Submissions        []SubmissionResponse      `json:"submissions"`
	Decisions          []DecisionResponse        `json:"decisions"`
	History            []StatusHistoryResponse   `json:"history"`
	Approval           *ApprovalStatusResponse   `json:"approval,omitempty"`
	CreatedAt          string                    `json:"created_at"`
	UpdatedAt          string                    `json:"updated_at"`
}

// StatusHistoryResponse 状态审计响应
type StatusHistoryResponse struct {
	OldStatus *string `json:"old_status"`
	NewStatus string  `json:"new_status"`
	ChangedAt string  `json:"changed_at"`
}
