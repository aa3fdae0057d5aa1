package dto

// ── 里程碑模块 DTO ──

// CreateMilestoneRequest 创建里程碑请求
type CreateMilestoneRequest struct {
	Type    string `json:"type"     binding:"required,max=100"`
	DueDate string `json:"due_date" binding:"required"` // "2026-03-15"
	Notes   string `json:"notes"`
}

// UpdateMilestoneRequest 更新里程碑请求（状态转换走专门接口）
type UpdateMilestoneRequest struct {
	Type    *string `json:"type"     binding:"omitempty,max=100"`
	DueDate *string `json:"due_date"`
	Notes   *string `json:"notes"`
}

// MilestoneTransitionRequest 里程碑状态转换请求
type MilestoneTransitionRequest struct {
	TargetStatus string `json:"target_status" binding:"required"`
}

// MilestoneResponse 里程碑信息响应
type MilestoneResponse struct {
	ID        string `json:"id"`
	ThesisID  string `json:"thesis_id"`
	Type      string `json:"type"`
	DueDate   string `json:"due_date"`
	Status    string `json:"status"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
