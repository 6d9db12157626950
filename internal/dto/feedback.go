package dto

import "github.com/Rushant-123/ui-learnings/internal/model"

// ── 反馈模块 DTO ──

// CreateFeedbackRequest 创建反馈请求
type CreateFeedbackRequest struct {
	AssignmentID string   `json:"assignmentId" binding:"required"`
	FeedbackType string   `json:"feedbackType" binding:"required"`
	Content      string   `json:"content"      binding:"required"`
	Score        *int     `json:"score"        binding:"omitempty,min=1,max=10"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// UpdateFeedbackRequest 更新反馈请求（仅限人工反馈且本人为 reviewer）
type UpdateFeedbackRequest struct {
	ID           string    `json:"id" binding:"required"`
	Content      *string   `json:"content"`
	Score        *int      `json:"score" binding:"omitempty,min=1,max=10"`
	Strengths    *[]string `json:"strengths"`
	Improvements *[]string `json:"improvements"`
}

// FeedbackListRequest GET /api/feedback 查询参数
type FeedbackListRequest struct {
	AssignmentID string `form:"assignmentId"`
}

// FeedbackListResponse 反馈列表响应
type FeedbackListResponse struct {
	Feedback []model.AssignmentFeedback `json:"feedback"`
}

// FeedbackResponse 单条反馈响应
type FeedbackResponse struct {
	Feedback *model.AssignmentFeedback `json:"feedback"`
}
