package dto

import "github.com/Rushant-123/ui-learnings/internal/model"

// ── 作业模块 DTO ──

// SubmitAssignmentRequest 作业提交请求
type SubmitAssignmentRequest struct {
	WeekNumber     int      `json:"weekNumber"     binding:"required,min=1"`
	TaskDay        string   `json:"taskDay"        binding:"required"`
	Title          string   `json:"title"          binding:"required"`
	Description    string   `json:"description"`
	SubmissionType string   `json:"submissionType" binding:"required"`
	Content        string   `json:"content"`
	FileURLs       []string `json:"fileUrls"`
	ExternalLinks  []string `json:"externalLinks"`
}

// UpdateAssignmentRequest 作业更新请求（id 在请求体中，沿用原线上契约）
// 指针字段区分 "未提供" 与 "清空"
type UpdateAssignmentRequest struct {
	ID            string    `json:"id" binding:"required"`
	Title         *string   `json:"title"`
	Description   *string   `json:"description"`
	Content       *string   `json:"content"`
	FileURLs      *[]string `json:"fileUrls"`
	ExternalLinks *[]string `json:"externalLinks"`
}

// AssignmentListRequest GET /api/assignments 查询参数
type AssignmentListRequest struct {
	WeekNumber int    `form:"weekNumber" binding:"omitempty,min=1"`
	TaskDay    string `form:"taskDay"`
}

// AssignmentListResponse 作业列表响应
type AssignmentListResponse struct {
	Assignments []model.Assignment `json:"assignments"`
}

// AssignmentResponse 单个作业响应
type AssignmentResponse struct {
	Assignment *model.Assignment `json:"assignment"`
}

// SubmitAssignmentResponse 作业提交响应，符合条件的文本作业附带生成的反馈
type SubmitAssignmentResponse struct {
	Assignment *model.Assignment         `json:"assignment"`
	AIFeedback *model.AssignmentFeedback `json:"aiFeedback"`
}
