package dto

// ── 委员会评审 DTO ──

// SetCommitteeRequest 整体替换论文委员会请求（集合语义）
type SetCommitteeRequest struct {
	MemberIDs []string `json:"member_ids" binding:"required,dive,uuid"`
}

// DecisionRequest 提交评审决定请求
type DecisionRequest struct {
	MemberID string `json:"member_id" binding:"required,uuid"`
	Decision string `json:"decision"  binding:"required"`
	Comment  string `json:"comment"`
}

// DecisionResponse 评审决定响应（审计列表项）
type DecisionResponse struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name,omitempty"`
	Decision   string `json:"decision"`
	Comment    string `json:"comment,omitempty"`
	CreatedAt  string `json:"created_at"`
}

// MemberDecisionStatus 单个成员的最新评审状态
// 未决成员的 Decision / Comment / DecidedAt 为 null
type MemberDecisionStatus struct {
	MemberID  string  `json:"member_id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Decision  *string `json:"decision"`
	Comment   *string `json:"comment"`
	DecidedAt *string `json:"decided_at"`
}

// ApprovalStatusResponse 批准门控评估结果
type ApprovalStatusResponse struct {
	CanApprove     bool                   `json:"can_approve"`
	BlockingReason *string                `json:"blocking_reason,omitempty"`
	Members        []MemberDecisionStatus `json:"members"`
}
