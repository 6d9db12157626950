package dto

import "github.com/Rushant-123/ui-learnings/internal/model"

// ── 进度模块 DTO ──

// UpdateProgressRequest 任务完成状态 upsert 请求
type UpdateProgressRequest struct {
	WeekNumber int    `json:"weekNumber" binding:"required,min=1"`
	TaskDay    string `json:"taskDay"    binding:"required"`
	Completed  bool   `json:"completed"`
}

// WeekProgress 单周完成度
type WeekProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// ProgressStats 派生统计，每次读取从完成记录重新计算，不落库
type ProgressStats struct {
	TotalTasks      int                  `json:"totalTasks"`
	CompletedTasks  int                  `json:"completedTasks"`
	CompletedWeeks  int                  `json:"completedWeeks"`
	OverallProgress int                  `json:"overallProgress"` // 0-100 取整
	WeeklyProgress  map[int]WeekProgress `json:"weeklyProgress"`
}

// ProgressListResponse GET /api/progress 响应
type ProgressListResponse struct {
	Progress []model.TaskProgress `json:"progress"`
	Stats    ProgressStats        `json:"stats"`
}

// ProgressUpdateResponse POST /api/progress 响应
type ProgressUpdateResponse struct {
	Progress *model.TaskProgress `json:"progress"`
	Stats    ProgressStats       `json:"stats"`
}
