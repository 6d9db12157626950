package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Rushant-123/ui-learnings/internal/dto"
	"github.com/Rushant-123/ui-learnings/internal/service"
	"github.com/Rushant-123/ui-learnings/pkg/response"
)

// UploadHandler 文件上传 HTTP 处理器
type UploadHandler struct {
	uploadSvc service.UploadService
}

// NewUploadHandler 创建 UploadHandler
func NewUploadHandler(uploadSvc service.UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

// Presign 签发浏览器直传 URL
// POST /api/upload
func (h *UploadHandler) Presign(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields: fileName, fileType, fileSize")
		return
	}

	result, err := h.uploadSvc.Presign(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			response.BadRequest(c, "File size exceeds 10MB limit")
		case errors.Is(err, service.ErrInvalidFileType):
			response.BadRequest(c, "File type not allowed")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
