package model

import "time"

// TaskProgress 任务完成记录表 — 对应 user_progress
// 以 (user_id, week_number, task_day) 为自然键，只翻转不删除
type TaskProgress struct {
	ProgressID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"          json:"id"`
	UserID      string     `gorm:"type:uuid;not null;uniqueIndex:uq_progress_user_week_day" json:"user_id"`
	WeekNumber  int        `gorm:"not null;uniqueIndex:uq_progress_user_week_day"           json:"week_number"`
	TaskDay     string     `gorm:"type:varchar(20);not null;uniqueIndex:uq_progress_user_week_day" json:"task_day"`
	Completed   bool       `gorm:"not null;default:false"                                   json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	BaseModel
}

// TableName 指定表名
func (TaskProgress) TableName() string { return "user_progress" }
