package dto

// ── 人员模块 DTO（学生 / 导师 / 外审专家 / 委员会成员）──

// ListQuery 通用分页查询参数
type ListQuery struct {
	Page     int `form:"page,default=1"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

// Offset 换算分页偏移量
func (q *ListQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// CreateStudentRequest 创建学生请求
type CreateStudentRequest struct {
	Name  string `json:"name"  binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateStudentRequest 更新学生请求
type UpdateStudentRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// StudentResponse 学生信息响应
type StudentResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// CreateSupervisorRequest 创建导师请求
type CreateSupervisorRequest struct {
	Name       string `json:"name"       binding:"required,min=2,max=100"`
	Email      string `json:"email"      binding:"required,email"`
	Department string `json:"department" binding:"required,max=100"`
}

// UpdateSupervisorRequest 更新导师请求
type UpdateSupervisorRequest struct {
	Name       *string `json:"name"       binding:"omitempty,min=2,max=100"`
	Email      *string `json:"email"      binding:"omitempty,email"`
	Department *string `json:"department" binding:"omitempty,max=100"`
}

// SupervisorResponse 导师信息响应
type SupervisorResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	CreatedAt  string `json:"created_at"`
}

// CreateReviewerRequest 创建外审专家请求
type CreateReviewerRequest struct {
	Name  string `json:"name"  binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateReviewerRequest 更新外审专家请求
type UpdateReviewerRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// ReviewerResponse 外审专家信息响应
type ReviewerResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// CreateCommitteeMemberRequest 创建委员会成员请求
type CreateCommitteeMemberRequest struct {
	Name  string `json:"name"  binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateCommitteeMemberRequest 更新委员会成员请求
type UpdateCommitteeMemberRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// CommitteeMemberResponse 委员会成员信息响应
type CommitteeMemberResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}
