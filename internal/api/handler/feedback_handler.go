package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Rushant-123/ui-learnings/internal/dto"
	"github.com/Rushant-123/ui-learnings/internal/service"
	"github.com/Rushant-123/ui-learnings/pkg/response"
)

// FeedbackHandler 作业反馈 HTTP 处理器
type FeedbackHandler struct {
	feedbackSvc service.FeedbackService
}

// NewFeedbackHandler 创建 FeedbackHandler
func NewFeedbackHandler(feedbackSvc service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackSvc: feedbackSvc}
}

// List 反馈列表（assignmentId 可选，缺省为本人作业的所有反馈）
// GET /api/feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.FeedbackListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.feedbackSvc.List(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Create 创建反馈
// POST /api/feedback
func (h *FeedbackHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields: assignmentId, feedbackType, content")
		return
	}

	result, err := h.feedbackSvc.Create(c.Request.Context(), userID, c.GetString("role"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFeedback):
			response.BadRequest(c, "Invalid feedback type. Must be: ai_generated, instructor_review, or peer_review")
		case errors.Is(err, service.ErrAssignmentNotFound):
			response.NotFound(c, "Assignment not found")
		case errors.Is(err, service.ErrFeedbackForbidden):
			response.Forbidden(c, "You do not have permission to review this assignment")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Update 更新反馈（仅 reviewer 本人，ai_generated 不可改）
// PUT /api/feedback
func (h *FeedbackHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Feedback ID is required")
		return
	}

	result, err := h.feedbackSvc.Update(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFeedbackNotFound):
			response.NotFound(c, "Feedback not found")
		case errors.Is(err, service.ErrFeedbackForbidden):
			response.Forbidden(c, "You do not have permission to update this feedback")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
