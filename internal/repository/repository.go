package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User       UserRepository
	Progress   ProgressRepository
	Assignment AssignmentRepository
	Feedback   FeedbackRepository
	Portfolio  PortfolioRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Progress:   NewProgressRepo(db),
		Assignment: NewAssignmentRepo(db),
		Feedback:   NewFeedbackRepo(db),
		Portfolio:  NewPortfolioRepo(db),
	}
}
