package model

import "time"

// PortfolioMilestone 作品集里程碑表 — 对应 portfolio_milestones
// 以 (user_id, week_number) 为自然键做 upsert，同周重复提交只更新
type PortfolioMilestone struct {
	MilestoneID    string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"      json:"id"`
	UserID         string      `gorm:"type:uuid;not null;uniqueIndex:uq_milestone_user_week" json:"user_id"`
	WeekNumber     int         `gorm:"not null;uniqueIndex:uq_milestone_user_week"          json:"week_number"`
	MilestoneTitle string      `gorm:"type:varchar(255);not null"                           json:"milestone_title"`
	Description    string      `gorm:"type:text;not null;default:''"                        json:"description"`
	Deliverables   StringArray `gorm:"type:text[]"                                          json:"deliverables,omitempty"`
	ProjectLinks   StringArray `gorm:"type:text[]"                                          json:"project_links,omitempty"`
	Status         string      `gorm:"type:varchar(20);not null;default:'submitted'"        json:"status"`
	SubmittedAt    time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"                   json:"submitted_at"`
	UpdatedAt      *time.Time  `json:"updated_at,omitempty"`
}

// TableName 指定表名
func (PortfolioMilestone) TableName() string { return "portfolio_milestones" }
