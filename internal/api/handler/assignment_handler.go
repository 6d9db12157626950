package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Rushant-123/ui-learnings/internal/dto"
	"github.com/Rushant-123/ui-learnings/internal/service"
	"github.com/Rushant-123/ui-learnings/pkg/response"
)

// AssignmentHandler 作业模块 HTTP 处理器
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc}
}

// List 当前用户作业列表，支持 weekNumber / taskDay 过滤
// GET /api/assignments
func (h *AssignmentHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.assignmentSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Submit 提交作业
// POST /api/assignments
func (h *AssignmentHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields: weekNumber, taskDay, title, submissionType")
		return
	}

	result, err := h.assignmentSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSubmission) {
			response.BadRequest(c, "Invalid submission type. Must be: text, file, link, image, or reflection")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Update 更新作业（id 在请求体中）
// PUT /api/assignments
func (h *AssignmentHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Assignment ID is required")
		return
	}

	result, err := h.assignmentSvc.Update(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			response.NotFound(c, "Assignment not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
