package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/dto"
	"github.com/zhangirtastemir/thesis-workflow-manager/internal/service"
	"github.com/zhangirtastemir/thesis-workflow-manager/pkg/response"
)

// MilestoneHandler 里程碑模块 HTTP 处理器
type MilestoneHandler struct {
	milestoneSvc service.MilestoneService
	workflowSvc  service.WorkflowService
}

// NewMilestoneHandler 创建 MilestoneHandler
func NewMilestoneHandler(milestoneSvc service.MilestoneService, workflowSvc service.WorkflowService) *MilestoneHandler {
	return &MilestoneHandler{milestoneSvc: milestoneSvc, workflowSvc: workflowSvc}
}

// Create 创建里程碑
// POST /api/v1/theses/:id/milestones
func (h *MilestoneHandler) Create(c *gin.Context) {
	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	milestone, err := h.milestoneSvc.Create(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleMilestoneError(c, err)
		return
	}
	response.Created(c, milestone)
}

// ListByThesis 指定论文的里程碑列表
// GET /api/v1/theses/:id/milestones
func (h *MilestoneHandler) ListByThesis(c *gin.Context) {
	milestones, err := h.milestoneSvc.ListByThesis(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleMilestoneError(c, err)
		return
	}
	response.OK(c, milestones)
}

// Get 里程碑详情
// GET /api/v1/milestones/:id
func (h *MilestoneHandler) Get(c *gin.Context) {
	milestone, err := h.milestoneSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleMilestoneError(c, err)
		return
	}
	response.OK(c, milestone)
}

// Update 更新里程碑基本信息
// PUT /api/v1/milestones/:id
func (h *MilestoneHandler) Update(c *gin.Context) {
	var req dto.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	milestone, err := h.milestoneSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleMilestoneError(c, err)
		return
	}
	response.OK(c, milestone)
}

// Delete 删除里程碑
// DELETE /api/v1/milestones/:id
func (h *MilestoneHandler) Delete(c *gin.Context) {
	if err := h.milestoneSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleMilestoneError(c, err)
		return
	}
	response.OK(c, nil)
}

// Transition 请求里程碑状态转换
// POST /api/v1/milestones/:id/transition
func (h *MilestoneHandler) Transition(c *gin.Context) {
	var req dto.MilestoneTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	milestone, err := h.workflowSvc.RequestMilestoneTransition(c.Request.Context(), c.Param("id"), req.TargetStatus)
	if err != nil {
		h.handleMilestoneError(c, err)
		return
	}
	response.OK(c, milestone)
}

// ── 错误映射 ──

func (h *MilestoneHandler) handleMilestoneError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMilestoneNotFound):
		response.NotFound(c, 13005, "里程碑不存在")
	case errors.Is(err, service.ErrThesisNotFound):
		response.NotFound(c, 13001, "论文不存在")
	case errors.Is(err, service.ErrIllegalTransition):
		response.BadRequest(c, 13002, "非法状态转换")
	case errors.Is(err, service.ErrDueDateInvalid):
		response.BadRequest(c, 13011, "到期日期格式无效，应为 YYYY-MM-DD")
	default:
		response.InternalError(c)
	}
}
