package model

import "time"

// 反馈类型
const (
	FeedbackAIGenerated      = "ai_generated"
	FeedbackInstructorReview = "instructor_review"
	FeedbackPeerReview       = "peer_review"
)

// ValidFeedbackType 校验反馈类型枚举
func ValidFeedbackType(t string) bool {
	switch t {
	case FeedbackAIGenerated, FeedbackInstructorReview, FeedbackPeerReview:
		return true
	}
	return false
}

// AssignmentFeedback 作业反馈表 — 对应 assignment_feedback
// ai_generated 反馈无 reviewer，且终端用户不可修改
type AssignmentFeedback struct {
	FeedbackID   string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AssignmentID string      `gorm:"type:uuid;not null;index"                       json:"assignment_id"`
	FeedbackType string      `gorm:"type:varchar(20);not null"                      json:"feedback_type"`
	ReviewerID   *string     `gorm:"type:uuid"                                      json:"reviewer_id,omitempty"`
	Content      string      `gorm:"type:text;not null"                             json:"content"`
	Score        *int        `json:"score,omitempty"` // 1-10，数据库 CHECK 约束兜底
	Strengths    StringArray `gorm:"type:text[]"                                    json:"strengths,omitempty"`
	Improvements StringArray `gorm:"type:text[]"                                    json:"improvements,omitempty"`
	CreatedAt    time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    *time.Time  `json:"updated_at,omitempty"`
}

// TableName 指定表名
func (AssignmentFeedback) TableName() string { return "assignment_feedback" }
