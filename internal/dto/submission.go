package dto

// ── 提交记录模块 DTO ──

// CreateSubmissionRequest 登记提交记录请求
type CreateSubmissionRequest struct {
	Kind          string `json:"kind"           binding:"required"`
	Comment       string `json:"comment"`
	AttachmentRef string `json:"attachment_ref" binding:"omitempty,max=1000"`
}

// SubmissionResponse 提交记录响应
type SubmissionResponse struct {
	ID            string `json:"id"`
	ThesisID      string `json:"thesis_id"`
	Kind          string `json:"kind"`
	SubmittedAt   string `json:"submitted_at"`
	Comment       string `json:"comment,omitempty"`
	AttachmentRef string `json:"attachment_ref,omitempty"`
}
