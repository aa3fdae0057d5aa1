package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/zhangirtastemir/thesis-workflow-manager/internal/service"
	"github.com/zhangirtastemir/thesis-workflow-manager/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	calendarSvc service.CalendarService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, calendarSvc service.CalendarService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, calendarSvc: calendarSvc}
}

// ExportTheses 导出论文清单为 Excel
// GET /api/v1/export/theses
func (h *ExportHandler) ExportTheses(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportTheses(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportNoTheses):
			response.NotFound(c, 14001, "暂无论文数据可导出")
		default:
			response.InternalError(c)
		}
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Calendar 日历订阅（iCalendar 格式）
// GET /api/v1/export/calendar.ics
func (h *ExportHandler) Calendar(c *gin.Context) {
	content, err := h.calendarSvc.GenerateCalendar(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=thesis_deadlines.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(content))
}
