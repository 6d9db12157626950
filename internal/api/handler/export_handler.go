package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Rushant-123/ui-learnings/internal/service"
	"github.com/Rushant-123/ui-learnings/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportProgress 导出学习进度报表
// GET /api/export/progress
func (h *ExportHandler) ExportProgress(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportProgress(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportCalendar 导出课程日历
// GET /api/export/calendar
func (h *ExportHandler) ExportCalendar(c *gin.Context) {
	if _, ok := MustGetUserID(c); !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportCalendar(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrExportNoStartDate) {
			response.BadRequest(c, "Curriculum start date is not configured")
			return
		}
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
