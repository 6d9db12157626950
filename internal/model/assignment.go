package model

import "time"

// 作业提交类型
const (
	SubmissionText       = "text"
	SubmissionFile       = "file"
	SubmissionLink       = "link"
	SubmissionImage      = "image"
	SubmissionReflection = "reflection"
)

// 作业状态
const (
	StatusSubmitted     = "submitted"
	StatusApproved      = "approved"
	StatusNeedsRevision = "needs_revision"
)

// ValidSubmissionType 校验提交类型枚举
func ValidSubmissionType(t string) bool {
	switch t {
	case SubmissionText, SubmissionFile, SubmissionLink, SubmissionImage, SubmissionReflection:
		return true
	}
	return false
}

// Assignment 作业提交表 — 对应 assignments
type Assignment struct {
	AssignmentID   string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         string      `gorm:"type:uuid;not null;index"                       json:"user_id"`
	WeekNumber     int         `gorm:"not null"                                       json:"week_number"`
	TaskDay        string      `gorm:"type:varchar(20);not null"                      json:"task_day"`
	Title          string      `gorm:"type:varchar(255);not null"                     json:"title"`
	Description    string      `gorm:"type:text;not null;default:''"                  json:"description"`
	SubmissionType string      `gorm:"type:varchar(20);not null"                      json:"submission_type"`
	Content        *string     `gorm:"type:text"                                      json:"content,omitempty"`
	FileURLs       StringArray `gorm:"type:text[];column:file_urls"                   json:"file_urls,omitempty"`
	ExternalLinks  StringArray `gorm:"type:text[]"                                    json:"external_links,omitempty"`
	Status         string      `gorm:"type:varchar(20);not null;default:'submitted'"  json:"status"`
	SubmittedAt    time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"submitted_at"`
	UpdatedAt      *time.Time  `json:"updated_at,omitempty"`

	// 关联
	Feedback []AssignmentFeedback `gorm:"foreignKey:AssignmentID;references:AssignmentID" json:"assignment_feedback,omitempty"`
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }
