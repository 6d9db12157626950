package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Rushant-123/ui-learnings/internal/curriculum"
	"github.com/Rushant-123/ui-learnings/internal/dto"
)

// Tracker 进度跟踪器：内存完成集 + 本地存储 + 可选的远端同步
// 未登录时纯本地运行；远端不可达时降级本地模式并置 NotSynced 标记
//
// 一致性模型为记录粒度的后写覆盖：Load 在有会话时用远端集合整体替换
// 本地集合，不合并并发修改。登录切换可能覆盖未同步的本地完成记录，
// 这是沿用的已知缺口，调用方应在登录前先 Persist
type Tracker struct {
	curr  *curriculum.Store
	api   *Client
	local *LocalStore

	completed map[string]bool // key: curriculum.TaskKey
	notSynced bool
}

// NewTracker api 可为 nil（纯本地模式）
func NewTracker(curr *curriculum.Store, api *Client, local *LocalStore) *Tracker {
	return &Tracker{
		curr:      curr,
		api:       api,
		local:     local,
		completed: make(map[string]bool),
	}
}

// authenticated 远端同步是否可用
func (t *Tracker) authenticated() bool {
	return t.api != nil && t.api.Authenticated()
}

// Load 先读本地存储，有会话时再用远端集合整体替换
// 远端不可达只置 NotSynced，不报错；其余远端错误原样返回
func (t *Tracker) Load(ctx context.Context) error {
	set, err := t.local.Completions()
	if err != nil {
		return fmt.Errorf("load local completions: %w", err)
	}
	t.completed = set

	if !t.authenticated() {
		return nil
	}

	resp, err := t.api.GetProgress(ctx)
	if err != nil {
		if IsUnreachable(err) {
			t.notSynced = true
			return nil
		}
		return err
	}

	remote := make(map[string]bool, len(resp.Progress))
	for _, record := range resp.Progress {
		if record.Completed {
			remote[curriculum.TaskKey(record.WeekNumber, record.TaskDay)] = true
		}
	}
	t.completed = remote
	t.notSynced = false

	if err := t.local.SaveCompletions(t.completed); err != nil {
		return fmt.Errorf("save local completions: %w", err)
	}
	return nil
}

// Toggle 翻转 (week, day) 的完成状态并立即持久化，返回新状态
// 大纲外的组合是无动作，返回 false
func (t *Tracker) Toggle(ctx context.Context, week int, day string) (bool, error) {
	if !t.curr.HasTask(week, day) {
		return false, nil
	}

	key := curriculum.TaskKey(week, day)
	next := !t.completed[key]
	if next {
		t.completed[key] = true
	} else {
		delete(t.completed, key)
	}

	if err := t.local.SaveCompletions(t.completed); err != nil {
		return next, fmt.Errorf("save local completions: %w", err)
	}
	if t.authenticated() {
		if _, err := t.api.UpdateProgress(ctx, week, day, next); err != nil {
			if IsUnreachable(err) {
				t.notSynced = true
				return next, nil
			}
			return next, err
		}
		t.notSynced = false
	}
	return next, nil
}

// Persist 整集写本地，有会话时对每个已完成项逐条 upsert
// 远端逐条调用互相独立，部分失败只置 NotSynced，本地与远端
// 的差异留待下一次 Toggle 或 Persist 收敛
func (t *Tracker) Persist(ctx context.Context) error {
	if err := t.local.SaveCompletions(t.completed); err != nil {
		return fmt.Errorf("save local completions: %w", err)
	}
	if !t.authenticated() {
		return nil
	}

	for key := range t.completed {
		week, day, ok := splitTaskKey(key)
		if !ok {
			continue
		}
		if _, err := t.api.UpdateProgress(ctx, week, day, true); err != nil {
			if IsUnreachable(err) {
				t.notSynced = true
				continue
			}
			return err
		}
	}
	return nil
}

// Completed 查询单个任务的完成状态
func (t *Tracker) Completed(week int, day string) bool {
	return t.completed[curriculum.TaskKey(week, day)]
}

// NotSynced 本地有远端未收到的修改时为 true，UI 据此渲染"未同步"提示
func (t *Tracker) NotSynced() bool { return t.notSynced }

// Stats 由当前完成集与大纲派生统计，纯函数，不做 I/O
func (t *Tracker) Stats() dto.ProgressStats {
	stats := dto.ProgressStats{
		TotalTasks:     t.curr.TotalTasks(),
		WeeklyProgress: make(map[int]dto.WeekProgress, t.curr.TotalWeeks()),
	}
	for _, w := range t.curr.Weeks() {
		wp := dto.WeekProgress{Total: len(w.DailyTasks)}
		for _, task := range w.DailyTasks {
			if t.completed[curriculum.TaskKey(w.WeekNumber, task.Day)] {
				wp.Completed++
			}
		}
		if wp.Total > 0 && wp.Completed >= wp.Total {
			stats.CompletedWeeks++
		}
		stats.CompletedTasks += wp.Completed
		stats.WeeklyProgress[w.WeekNumber] = wp
	}
	if stats.TotalTasks > 0 {
		stats.OverallProgress = stats.CompletedTasks * 100 / stats.TotalTasks
	}
	return stats
}

// splitTaskKey 解析 "{week}-{day}" 键，day 自身可含连字符
func splitTaskKey(key string) (int, string, bool) {
	idx := strings.Index(key, "-")
	if idx <= 0 {
		return 0, "", false
	}
	week, err := strconv.Atoi(key[:idx])
	if err != nil {
		return 0, "", false
	}
	return week, key[idx+1:], true
}
