package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Rushant-123/ui-learnings/internal/curriculum"
	"github.com/Rushant-123/ui-learnings/internal/dto"
	"github.com/Rushant-123/ui-learnings/internal/model"
	"github.com/Rushant-123/ui-learnings/internal/repository"
)

var ErrUnknownTask = errors.New("大纲中不存在该任务")

// ProgressService 学习进度业务接口
type ProgressService interface {
	// Get 用户全部完成记录及派生统计
	Get(ctx context.Context, userID string) (*dto.ProgressListResponse, error)
	// Update 按 (week, day) upsert 完成状态，返回更新后的记录与统计
	Update(ctx context.Context, userID string, req *dto.UpdateProgressRequest) (*dto.ProgressUpdateResponse, error)
}

type progressService struct {
	repo   *repository.Repository
	curr   *curriculum.Store
	logger *zap.Logger
}

// NewProgressService 创建 ProgressService 实例
func NewProgressService(repo *repository.Repository, curr *curriculum.Store, logger *zap.Logger) ProgressService {
	return &progressService{repo: repo, curr: curr, logger: logger}
}

func (s *progressService) Get(ctx context.Context, userID string) (*dto.ProgressListResponse, error) {
	records, err := s.repo.Progress.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询进度失败", zap.Error(err))
		return nil, err
	}
	return &dto.ProgressListResponse{
		Progress: records,
		Stats:    s.computeStats(records),
	}, nil
}

func (s *progressService) Update(ctx context.Context, userID string, req *dto.UpdateProgressRequest) (*dto.ProgressUpdateResponse, error) {
	// 1. 校验 (week, day) 存在于大纲
	if !s.curr.HasTask(req.WeekNumber, req.TaskDay) {
		return nil, ErrUnknownTask
	}

	// 2. upsert 完成记录
	record := &model.TaskProgress{
		UserID:     userID,
		WeekNumber: req.WeekNumber,
		TaskDay:    req.TaskDay,
		Completed:  req.Completed,
	}
	if req.Completed {
		now := time.Now()
		record.CompletedAt = &now
	}
	if err := s.repo.Progress.Upsert(ctx, record); err != nil {
		s.logger.Error("更新进度失败", zap.Error(err))
		return nil, err
	}

	// 3. 重算统计
	records, err := s.repo.Progress.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询进度失败", zap.Error(err))
		return nil, err
	}

	var updated *model.TaskProgress
	for i := range records {
		if records[i].WeekNumber == req.WeekNumber && records[i].TaskDay == req.TaskDay {
			updated = &records[i]
			break
		}
	}

	return &dto.ProgressUpdateResponse{
		Progress: updated,
		Stats:    s.computeStats(records),
	}, nil
}

// computeStats 从完成记录派生统计，总量取自当前大纲而非写死常量
func (s *progressService) computeStats(records []model.TaskProgress) dto.ProgressStats {
	stats := dto.ProgressStats{
		TotalTasks:     s.curr.TotalTasks(),
		WeeklyProgress: make(map[int]dto.WeekProgress, s.curr.TotalWeeks()),
	}
	for _, w := range s.curr.Weeks() {
		stats.WeeklyProgress[w.WeekNumber] = dto.WeekProgress{Total: len(w.DailyTasks)}
	}

	for _, r := range records {
		if !r.Completed {
			continue
		}
		// 大纲调整后遗留的记录不计入
		if !s.curr.HasTask(r.WeekNumber, r.TaskDay) {
			continue
		}
		stats.CompletedTasks++
		wp := stats.WeeklyProgress[r.WeekNumber]
		wp.Completed++
		stats.WeeklyProgress[r.WeekNumber] = wp
	}

	for _, wp := range stats.WeeklyProgress {
		if wp.Total > 0 && wp.Completed >= wp.Total {
			stats.CompletedWeeks++
		}
	}
	if stats.TotalTasks > 0 {
		stats.OverallProgress = stats.CompletedTasks * 100 / stats.TotalTasks
	}
	return stats
}
