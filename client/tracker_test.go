package client

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Rushant-123/ui-learnings/internal/curriculum"
)

func newLocalTracker(t *testing.T, curr *curriculum.Store, api *Client) *Tracker {
	t.Helper()
	local := NewLocalStore(filepath.Join(t.TempDir(), "store.json"))
	return NewTracker(curr, api, local)
}

func loadCurriculum(t *testing.T) *curriculum.Store {
	t.Helper()
	curr, err := curriculum.Load([]byte(testCurriculumJSON))
	if err != nil {
		t.Fatalf("加载测试大纲失败: %v", err)
	}
	return curr
}

func TestTracker_ToggleInvolution(t *testing.T) {
	tracker := newLocalTracker(t, loadCurriculum(t), nil)
	ctx := context.Background()

	first, err := tracker.Toggle(ctx, 1, "Monday")
	if err != nil {
		t.Fatalf("翻转失败: %v", err)
	}
	if !first {
		t.Fatal("首次翻转应为完成")
	}
	second, err := tracker.Toggle(ctx, 1, "Monday")
	if err != nil {
		t.Fatalf("翻转失败: %v", err)
	}
	if second {
		t.Fatal("二次翻转应回到未完成")
	}
	if tracker.Completed(1, "Monday") {
		t.Error("两次翻转后状态应还原")
	}
}

func TestTracker_ToggleUnknownTaskIsNoop(t *testing.T) {
	tracker := newLocalTracker(t, loadCurriculum(t), nil)

	done, err := tracker.Toggle(context.Background(), 9, "Monday")
	if err != nil {
		t.Fatalf("大纲外翻转不应报错: %v", err)
	}
	if done {
		t.Error("大纲外任务应保持未完成")
	}
	if tracker.Stats().CompletedTasks != 0 {
		t.Error("无动作不应影响统计")
	}
}

func TestTracker_StatsScenario(t *testing.T) {
	// 第 1 周 3 个任务全部完成：weeklyProgress[1] = 3/3，整周计 1
	tracker := newLocalTracker(t, loadCurriculum(t), nil)
	ctx := context.Background()

	for _, day := range []string{"Monday", "Tuesday", "Friday"} {
		if _, err := tracker.Toggle(ctx, 1, day); err != nil {
			t.Fatalf("翻转失败: %v", err)
		}
	}

	stats := tracker.Stats()
	if wp := stats.WeeklyProgress[1]; wp.Completed != 3 || wp.Total != 3 {
		t.Errorf("期望第 1 周 3/3，实际=%d/%d", wp.Completed, wp.Total)
	}
	if stats.CompletedTasks != 3 || stats.TotalTasks != 5 {
		t.Errorf("期望总完成 3/5，实际=%d/%d", stats.CompletedTasks, stats.TotalTasks)
	}
	if stats.CompletedWeeks != 1 {
		t.Errorf("期望整周完成数 1，实际=%d", stats.CompletedWeeks)
	}
	if stats.OverallProgress != 60 {
		t.Errorf("期望总进度 60，实际=%d", stats.OverallProgress)
	}
}

func TestTracker_StatsIsPure(t *testing.T) {
	curr := loadCurriculum(t)
	ctx := context.Background()

	// 不同翻转顺序得到同一完成集，统计必须一致
	a := newLocalTracker(t, curr, nil)
	a.Toggle(ctx, 1, "Monday")
	a.Toggle(ctx, 2, "Wednesday")

	b := newLocalTracker(t, curr, nil)
	b.Toggle(ctx, 2, "Wednesday")
	b.Toggle(ctx, 1, "Friday")
	b.Toggle(ctx, 1, "Monday")
	b.Toggle(ctx, 1, "Friday")

	if !reflect.DeepEqual(a.Stats(), b.Stats()) {
		t.Errorf("同一完成集统计不一致:\n a=%+v\n b=%+v", a.Stats(), b.Stats())
	}
	if !reflect.DeepEqual(a.Stats(), a.Stats()) {
		t.Error("重复求值结果应一致")
	}
}

func TestTracker_AllCompleteIsHundredPercent(t *testing.T) {
	curr := loadCurriculum(t)
	tracker := newLocalTracker(t, curr, nil)
	ctx := context.Background()

	for _, w := range curr.Weeks() {
		for _, task := range w.DailyTasks {
			if _, err := tracker.Toggle(ctx, w.WeekNumber, task.Day); err != nil {
				t.Fatalf("翻转失败: %v", err)
			}
		}
	}

	stats := tracker.Stats()
	if stats.CompletedWeeks != curr.TotalWeeks() {
		t.Errorf("期望整周完成数 %d，实际=%d", curr.TotalWeeks(), stats.CompletedWeeks)
	}
	if stats.OverallProgress != 100 {
		t.Errorf("期望总进度 100，实际=%d", stats.OverallProgress)
	}
}

func TestTracker_LoadPersistsLocally(t *testing.T) {
	curr := loadCurriculum(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	ctx := context.Background()

	first := NewTracker(curr, nil, NewLocalStore(path))
	first.Toggle(ctx, 1, "Monday")

	// 新实例从同一文件恢复完成集
	second := NewTracker(curr, nil, NewLocalStore(path))
	if err := second.Load(ctx); err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if !second.Completed(1, "Monday") {
		t.Error("本地完成集应跨实例恢复")
	}
}

func TestTracker_LoadRemoteReplacesLocal(t *testing.T) {
	srv, curr := newTestBackend(t)
	api := signinDemo(t, srv.URL)
	ctx := context.Background()

	// 远端已有第 2 周的完成记录
	if _, err := api.UpdateProgress(ctx, 2, "Monday", true); err != nil {
		t.Fatalf("预置远端进度失败: %v", err)
	}

	local := NewLocalStore(filepath.Join(t.TempDir(), "store.json"))
	if err := local.SaveCompletions(map[string]bool{"1-Monday": true}); err != nil {
		t.Fatalf("预置本地进度失败: %v", err)
	}

	tracker := NewTracker(curr, api, local)
	if err := tracker.Load(ctx); err != nil {
		t.Fatalf("加载失败: %v", err)
	}

	// 远端集合整体替换本地：本地独有的记录被覆盖
	if tracker.Completed(1, "Monday") {
		t.Error("本地独有记录应被远端集合覆盖")
	}
	if !tracker.Completed(2, "Monday") {
		t.Error("远端记录应生效")
	}
	if tracker.NotSynced() {
		t.Error("成功同步后不应有未同步标记")
	}

	// 覆盖结果写回本地文件
	set, _ := local.Completions()
	if !set["2-Monday"] || set["1-Monday"] {
		t.Errorf("本地文件应与远端一致，实际=%v", set)
	}
}

func TestTracker_UnreachableDegradesToLocal(t *testing.T) {
	srv, curr := newTestBackend(t)
	api := signinDemo(t, srv.URL)
	srv.Close()

	local := NewLocalStore(filepath.Join(t.TempDir(), "store.json"))
	if err := local.SaveCompletions(map[string]bool{"1-Monday": true}); err != nil {
		t.Fatalf("预置本地进度失败: %v", err)
	}

	tracker := NewTracker(curr, api, local)
	if err := tracker.Load(context.Background()); err != nil {
		t.Fatalf("不可达时加载应降级而非报错: %v", err)
	}
	if !tracker.Completed(1, "Monday") {
		t.Error("降级后应保留本地完成集")
	}
	if !tracker.NotSynced() {
		t.Error("降级后应置未同步标记")
	}

	// 降级状态下翻转依然在本地生效
	done, err := tracker.Toggle(context.Background(), 1, "Tuesday")
	if err != nil {
		t.Fatalf("降级翻转失败: %v", err)
	}
	if !done || !tracker.Completed(1, "Tuesday") {
		t.Error("降级翻转应在本地生效")
	}
}

func TestTracker_ToggleSyncsRemote(t *testing.T) {
	srv, curr := newTestBackend(t)
	api := signinDemo(t, srv.URL)
	ctx := context.Background()

	tracker := newLocalTracker(t, curr, api)
	if _, err := tracker.Toggle(ctx, 1, "Monday"); err != nil {
		t.Fatalf("翻转失败: %v", err)
	}

	resp, err := api.GetProgress(ctx)
	if err != nil {
		t.Fatalf("查询远端进度失败: %v", err)
	}
	if len(resp.Progress) != 1 || !resp.Progress[0].Completed {
		t.Errorf("远端应收到完成记录，实际=%+v", resp.Progress)
	}
	if resp.Stats.CompletedTasks != 1 {
		t.Errorf("远端统计应为 1，实际=%d", resp.Stats.CompletedTasks)
	}
}

func TestTracker_PersistUpsertsCompletedPairs(t *testing.T) {
	srv, curr := newTestBackend(t)
	ctx := context.Background()

	// 未登录阶段的本地完成集
	local := NewLocalStore(filepath.Join(t.TempDir(), "store.json"))
	tracker := NewTracker(curr, nil, local)
	tracker.Toggle(ctx, 1, "Monday")
	tracker.Toggle(ctx, 2, "Wednesday")

	// 登录后显式 Persist 把本地集推到远端
	api := signinDemo(t, srv.URL)
	tracker.api = api
	if err := tracker.Persist(ctx); err != nil {
		t.Fatalf("持久化失败: %v", err)
	}

	resp, err := api.GetProgress(ctx)
	if err != nil {
		t.Fatalf("查询远端进度失败: %v", err)
	}
	if len(resp.Progress) != 2 {
		t.Errorf("期望远端 2 条记录，实际=%d", len(resp.Progress))
	}
}
