package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/dto"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/service"
	pkgerrors "github.com/zhangirtastemir/thesis-workflow-manager/pkg/errors"
	"github.com/zhangirtastemir/thesis-workflow-manager/pkg/response"
)

// ThesisHandler 论文模块 HTTP 处理器
type ThesisHandler struct {
	thesisSvc   service.ThesisService
	workflowSvc service.WorkflowService
}

// NewThesisHandler 创建 ThesisHandler
func NewThesisHandler(thesisSvc service.ThesisService, workflowSvc service.WorkflowService) *ThesisHandler {
	return &ThesisHandler{thesisSvc: thesisSvc, workflowSvc: workflowSvc}
}

// Create 创建论文
// POST /api/v1/theses
func (h *ThesisHandler) Create(c *gin.Context) {
	var req dto.CreateThesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	thesis, err := h.thesisSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleThesisError(c, err)
		return
	}
	response.Created(c, thesis)
}

// Get 论文详情（含委员会、里程碑、提交、决定、审计与门控评估）
// GET /api/v1/theses/:id
func (h *ThesisHandler) Get(c *gin.Context) {
	detail, err := h.thesisSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleThesisError(c, err)
		return
	}

	// 详情随附门控评估结果，前端可直接展示受阻原因
	approval, err := h.workflowSvc.EvaluateApproval(c.Request.Context(), detail.ID)
	if err != nil {
		h.handleThesisError(c, err)
		return
	}
	detail.Approval = approval

	response.OK(c, detail)
}

// List 论文列表
// GET /api/v1/theses?status=Submitted&page=1&page_size=20
func (h *ThesisHandler) List(c *gin.Context) {
	var query dto.ThesisListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	theses, total, err := h.thesisSvc.List(c.Request.Context(), &query)
	if err != nil {
		h.handleThesisError(c, err)
		return
	}
	response.OK(c, gin.H{"items": theses, "total": total})
}

// Update 更新论文基本信息（乐观锁）
// PUT /api/v1/theses/:id
func (h *ThesisHandler) Update(c *gin.Context) {
	var req dto.UpdateThesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	thesis, err := h.thesisSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleThesisError(c, err)
		return
	}
	response.OK(c, thesis)
}

// Delete 删除论文（级联删除里程碑、提交、审计与委员会关联）
// DELETE /api/v1/theses/:id
func (h *ThesisHandler) Delete(c *gin.Context) {
	if err := h.thesisSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleThesisError(c, err)
		return
	}
	response.OK(c, nil)
}

// Transition 请求论文状态转换
// POST /api/v1/theses/:id/transition
func (h *ThesisHandler) Transition(c *gin.Context) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	thesis, err := h.workflowSvc.RequestThesisTransition(c.Request.Context(), c.Param("id"), req.TargetStatus)
	if err != nil {
		h.handleThesisError(c, err)
		return
	}
	response.OK(c, thesis)
}

// AssignSupervisor 指派导师
// PUT /api/v1/theses/:id/supervisor
func (h *ThesisHandler) AssignSupervisor(c *gin.Context) {
	var req dto.AssignSupervisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.thesisSvc.AssignSupervisor(c.Request.Context(), c.Param("id"), req.SupervisorID); err != nil {
		h.handleThesisError(c, err)
		return
	}
	response.OK(c, nil)
}

// AssignReviewer 指派外审专家
// PUT /api/v1/theses/:id/reviewer
func (h *ThesisHandler) AssignReviewer(c *gin.Context) {
	var req dto.AssignReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.thesisSvc.AssignReviewer(c.Request.Context(), c.Param("id"), req.ReviewerID); err != nil {
		h.handleThesisError(c, err)
		return
	}
	response.OK(c, nil)
}

// SetCommittee 整体替换委员会（集合语义）
// PUT /api/v1/theses/:id/committee
func (h *ThesisHandler) SetCommittee(c *gin.Context) {
	var req dto.SetCommitteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.thesisSvc.SetCommittee(c.Request.Context(), c.Param("id"), req.MemberIDs); err != nil {
		h.handleThesisError(c, err)
		return
	}
	response.OK(c, nil)
}

// RecordDecision 提交委员会评审决定（仅追加）
// POST /api/v1/theses/:id/decisions
func (h *ThesisHandler) RecordDecision(c *gin.Context) {
	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.workflowSvc.RecordDecision(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.handleThesisError(c, err)
		return
	}
	response.Created(c, nil)
}

// GetApproval 查询批准门控评估结果
// GET /api/v1/theses/:id/approval
func (h *ThesisHandler) GetApproval(c *gin.Context) {
	approval, err := h.workflowSvc.EvaluateApproval(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleThesisError(c, err)
		return
	}
	response.OK(c, approval)
}

// GetHistory 查询状态变更审计
// GET /api/v1/theses/:id/history
func (h *ThesisHandler) GetHistory(c *gin.Context) {
	history, err := h.thesisSvc.GetHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleThesisError(c, err)
		return
	}
	response.OK(c, history)
}

// ── 错误映射 ──

func (h *ThesisHandler) handleThesisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrThesisNotFound):
		response.NotFound(c, 13001, "论文不存在")
	case errors.Is(err, service.ErrIllegalTransition):
		response.BadRequest(c, 13002, "非法状态转换")
	case errors.Is(err, service.ErrMissingReviewer):
		response.BadRequest(c, 13003, "未指派外审专家，无法进入外审状态")
	case errors.Is(err, service.ErrApprovalBlocked):
		// 受阻原因原样返回给调用方
		response.Conflict(c, 13004, err.Error())
	case errors.Is(err, service.ErrInvalidDecision):
		response.BadRequest(c, 13006, "无效的评审决定")
	case errors.Is(err, service.ErrNotAssigned):
		response.BadRequest(c, 13007, "该成员不在此论文的委员会中")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 13009, "数据已被其他请求修改，请刷新后重试")
	case errors.Is(err, service.ErrDeadlineInvalid):
		response.BadRequest(c, 13010, "截止日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrStudentNotFound):
		response.BadRequest(c, 12001, "学生不存在")
	case errors.Is(err, service.ErrSupervisorNotFound):
		response.BadRequest(c, 12002, "导师不存在")
	case errors.Is(err, service.ErrReviewerNotFound):
		response.BadRequest(c, 12003, "外审专家不存在")
	case errors.Is(err, service.ErrMemberNotFound):
		response.BadRequest(c, 12004, "委员会成员不存在")
	default:
		response.InternalError(c)
	}
}
