package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Rushant-123/ui-learnings/internal/dto"
)

func TestProgressUpdate_UpsertAndStats(t *testing.T) {
	repo := newMockRepository()
	svc := NewProgressService(repo, newTestCurriculum(t), zap.NewNop())

	result, err := svc.Update(context.Background(), "user-1", &dto.UpdateProgressRequest{
		WeekNumber: 1,
		TaskDay:    "Monday",
		Completed:  true,
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Progress == nil || !result.Progress.Completed {
		t.Fatal("返回的记录应为已完成")
	}
	if result.Progress.CompletedAt == nil {
		t.Error("完成时应记录 CompletedAt")
	}
	if result.Stats.CompletedTasks != 1 {
		t.Errorf("期望 CompletedTasks=1，实际=%d", result.Stats.CompletedTasks)
	}
	if result.Stats.TotalTasks != 5 {
		t.Errorf("期望 TotalTasks=5，实际=%d", result.Stats.TotalTasks)
	}
	if result.Stats.OverallProgress != 20 {
		t.Errorf("期望 OverallProgress=20，实际=%d", result.Stats.OverallProgress)
	}
}

func TestProgressUpdate_ToggleIsIdempotentPerKey(t *testing.T) {
	repo := newMockRepository()
	svc := NewProgressService(repo, newTestCurriculum(t), zap.NewNop())
	ctx := context.Background()

	// 同一 (week, day) 翻转两次，应只保留一条记录
	if _, err := svc.Update(ctx, "user-1", &dto.UpdateProgressRequest{WeekNumber: 1, TaskDay: "Monday", Completed: true}); err != nil {
		t.Fatalf("第一次 Update 失败: %v", err)
	}
	result, err := svc.Update(ctx, "user-1", &dto.UpdateProgressRequest{WeekNumber: 1, TaskDay: "Monday", Completed: false})
	if err != nil {
		t.Fatalf("第二次 Update 失败: %v", err)
	}

	list, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if len(list.Progress) != 1 {
		t.Fatalf("期望 1 条记录，实际=%d", len(list.Progress))
	}
	if result.Stats.CompletedTasks != 0 {
		t.Errorf("取消完成后期望 CompletedTasks=0，实际=%d", result.Stats.CompletedTasks)
	}
}

func TestProgressUpdate_UnknownTask(t *testing.T) {
	repo := newMockRepository()
	svc := NewProgressService(repo, newTestCurriculum(t), zap.NewNop())

	_, err := svc.Update(context.Background(), "user-1", &dto.UpdateProgressRequest{
		WeekNumber: 9,
		TaskDay:    "Monday",
		Completed:  true,
	})
	if !errors.Is(err, ErrUnknownTask) {
		t.Errorf("期望 ErrUnknownTask，实际: %v", err)
	}
}

func TestProgressStats_CompletedWeeks(t *testing.T) {
	repo := newMockRepository()
	svc := NewProgressService(repo, newTestCurriculum(t), zap.NewNop())
	ctx := context.Background()

	// 完成第 2 周全部任务（Monday + Wednesday）
	for _, day := range []string{"Monday", "Wednesday"} {
		if _, err := svc.Update(ctx, "user-1", &dto.UpdateProgressRequest{WeekNumber: 2, TaskDay: day, Completed: true}); err != nil {
			t.Fatalf("Update(%s) 失败: %v", day, err)
		}
	}

	result, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get 失败: %v", err)
	}
	if result.Stats.CompletedWeeks != 1 {
		t.Errorf("期望 CompletedWeeks=1，实际=%d", result.Stats.CompletedWeeks)
	}
	wp := result.Stats.WeeklyProgress[2]
	if wp.Completed != 2 || wp.Total != 2 {
		t.Errorf("期望第 2 周 2/2，实际=%d/%d", wp.Completed, wp.Total)
	}
	// 未动过的第 1 周也应出现在 WeeklyProgress 中
	if result.Stats.WeeklyProgress[1].Total != 3 {
		t.Errorf("期望第 1 周 Total=3，实际=%d", result.Stats.WeeklyProgress[1].Total)
	}
}

func TestProgressGet_EmptyUser(t *testing.T) {
	repo := newMockRepository()
	svc := NewProgressService(repo, newTestCurriculum(t), zap.NewNop())

	result, err := svc.Get(context.Background(), "fresh-user")
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if len(result.Progress) != 0 {
		t.Errorf("新用户期望 0 条记录，实际=%d", len(result.Progress))
	}
	if result.Stats.OverallProgress != 0 {
		t.Errorf("新用户期望 OverallProgress=0，实际=%d", result.Stats.OverallProgress)
	}
}
