package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/service"
	"github.com/zhangirtastemir/thesis-workflow-manager/pkg/response"
)

// DashboardHandler 工作台 HTTP 处理器
type DashboardHandler struct {
	dashboardSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashboardSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Overview 工作台概览
// GET /api/v1/dashboard
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashboardSvc.Overview(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, overview)
}
