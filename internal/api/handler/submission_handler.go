package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/dto"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/service"
	"github.com/zhangirtastemir/thesis-workflow-manager/pkg/response"
)

// SubmissionHandler 提交记录模块 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// Create 登记提交记录
// POST /api/v1/theses/:id/submissions
func (h *SubmissionHandler) Create(c *gin.Context) {
	var req dto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	submission, err := h.submissionSvc.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}
	response.Created(c, submission)
}

// ListByThesis 指定论文的提交记录列表
// GET /api/v1/theses/:id/submissions
func (h *SubmissionHandler) ListByThesis(c *gin.Context) {
	submissions, err := h.submissionSvc.ListByThesis(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}
	response.OK(c, submissions)
}

// ── 错误映射 ──

func (h *SubmissionHandler) handleSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrThesisNotFound):
		response.NotFound(c, 13001, "论文不存在")
	case errors.Is(err, service.ErrInvalidSubmissionKind):
		response.BadRequest(c, 13008, "无效的提交类型")
	default:
		response.InternalError(c)
	}
}
