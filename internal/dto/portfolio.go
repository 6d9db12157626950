package dto

import "github.com/Rushant-123/ui-learnings/internal/model"

// ── 作品集模块 DTO ──

// SubmitMilestoneRequest 里程碑提交请求，按 (user, week) upsert
type SubmitMilestoneRequest struct {
	WeekNumber     int      `json:"weekNumber"     binding:"required,min=1"`
	MilestoneTitle string   `json:"milestoneTitle" binding:"required"`
	Description    string   `json:"description"`
	Deliverables   []string `json:"deliverables"`
	ProjectLinks   []string `json:"projectLinks"`
}

// UpdateMilestoneRequest 里程碑更新请求（按 id）
type UpdateMilestoneRequest struct {
	ID             string    `json:"id" binding:"required"`
	MilestoneTitle *string   `json:"milestoneTitle"`
	Description    *string   `json:"description"`
	Deliverables   *[]string `json:"deliverables"`
	ProjectLinks   *[]string `json:"projectLinks"`
	Status         *string   `json:"status"`
}

// PortfolioListResponse 里程碑列表响应
type PortfolioListResponse struct {
	Portfolio []model.PortfolioMilestone `json:"portfolio"`
}

// MilestoneResponse 单个里程碑响应
type MilestoneResponse struct {
	Milestone *model.PortfolioMilestone `json:"milestone"`
}
