package service

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"gorm.io/gorm"

	"github.com/Rushant-123/ui-learnings/internal/curriculum"
	"github.com/Rushant-123/ui-learnings/internal/model"
	"github.com/Rushant-123/ui-learnings/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id 或 "email:"+email
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	m.users["email:"+user.Email] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := m.users["email:"+email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ProgressRepository ──

type mockProgressRepo struct {
	records map[string]*model.TaskProgress // key: userID|week|day
	seq     int
	failAll bool
}

func newMockProgressRepo() *mockProgressRepo {
	return &mockProgressRepo{records: make(map[string]*model.TaskProgress)}
}

func (m *mockProgressRepo) key(userID string, week int, day string) string {
	return fmt.Sprintf("%s|%d|%s", userID, week, day)
}

func (m *mockProgressRepo) Upsert(_ context.Context, record *model.TaskProgress) error {
	if m.failAll {
		return fmt.Errorf("db down")
	}
	k := m.key(record.UserID, record.WeekNumber, record.TaskDay)
	if existing, ok := m.records[k]; ok {
		existing.Completed = record.Completed
		existing.CompletedAt = record.CompletedAt
		return nil
	}
	m.seq++
	record.ProgressID = fmt.Sprintf("prog-%d", m.seq)
	cp := *record
	m.records[k] = &cp
	return nil
}

func (m *mockProgressRepo) ListByUser(_ context.Context, userID string) ([]model.TaskProgress, error) {
	if m.failAll {
		return nil, fmt.Errorf("db down")
	}
	var result []model.TaskProgress
	for _, r := range m.records {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].WeekNumber != result[j].WeekNumber {
			return result[i].WeekNumber < result[j].WeekNumber
		}
		return result[i].TaskDay > result[j].TaskDay
	})
	return result, nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	seq         int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, a *model.Assignment) error {
	m.seq++
	a.AssignmentID = fmt.Sprintf("assign-%d", m.seq)
	cp := *a
	m.assignments[a.AssignmentID] = &cp
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) Update(_ context.Context, a *model.Assignment) error {
	if _, ok := m.assignments[a.AssignmentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *a
	m.assignments[a.AssignmentID] = &cp
	return nil
}

func (m *mockAssignmentRepo) ListByUser(_ context.Context, userID string, filters *repository.AssignmentFilters) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.UserID != userID {
			continue
		}
		if filters != nil {
			if filters.WeekNumber != 0 && a.WeekNumber != filters.WeekNumber {
				continue
			}
			if filters.TaskDay != "" && a.TaskDay != filters.TaskDay {
				continue
			}
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result, nil
}

// ── Mock FeedbackRepository ──

type mockFeedbackRepo struct {
	feedback    map[string]*model.AssignmentFeedback
	assignments *mockAssignmentRepo // ListByOwner 依赖作业归属
	seq         int
	failCreate  bool
}

func newMockFeedbackRepo(assignments *mockAssignmentRepo) *mockFeedbackRepo {
	return &mockFeedbackRepo{
		feedback:    make(map[string]*model.AssignmentFeedback),
		assignments: assignments,
	}
}

func (m *mockFeedbackRepo) Create(_ context.Context, f *model.AssignmentFeedback) error {
	if m.failCreate {
		return fmt.Errorf("db down")
	}
	m.seq++
	f.FeedbackID = fmt.Sprintf("fb-%d", m.seq)
	cp := *f
	m.feedback[f.FeedbackID] = &cp
	return nil
}

func (m *mockFeedbackRepo) GetByID(_ context.Context, id string) (*model.AssignmentFeedback, error) {
	if f, ok := m.feedback[id]; ok {
		cp := *f
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFeedbackRepo) Update(_ context.Context, f *model.AssignmentFeedback) error {
	if _, ok := m.feedback[f.FeedbackID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *f
	m.feedback[f.FeedbackID] = &cp
	return nil
}

func (m *mockFeedbackRepo) ListByAssignment(_ context.Context, assignmentID string) ([]model.AssignmentFeedback, error) {
	var result []model.AssignmentFeedback
	for _, f := range m.feedback {
		if f.AssignmentID == assignmentID {
			result = append(result, *f)
		}
	}
	return result, nil
}

func (m *mockFeedbackRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.AssignmentFeedback, error) {
	owned := make(map[string]bool)
	for _, a := range m.assignments.assignments {
		if a.UserID == ownerID {
			owned[a.AssignmentID] = true
		}
	}
	var result []model.AssignmentFeedback
	for _, f := range m.feedback {
		if owned[f.AssignmentID] {
			result = append(result, *f)
		}
	}
	return result, nil
}

// ── Mock PortfolioRepository ──

type mockPortfolioRepo struct {
	milestones map[string]*model.PortfolioMilestone
	seq        int
}

func newMockPortfolioRepo() *mockPortfolioRepo {
	return &mockPortfolioRepo{milestones: make(map[string]*model.PortfolioMilestone)}
}

func (m *mockPortfolioRepo) Create(_ context.Context, ms *model.PortfolioMilestone) error {
	m.seq++
	ms.MilestoneID = fmt.Sprintf("ms-%d", m.seq)
	cp := *ms
	m.milestones[ms.MilestoneID] = &cp
	return nil
}

func (m *mockPortfolioRepo) GetByID(_ context.Context, id string) (*model.PortfolioMilestone, error) {
	if ms, ok := m.milestones[id]; ok {
		cp := *ms
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPortfolioRepo) GetByUserWeek(_ context.Context, userID string, weekNumber int) (*model.PortfolioMilestone, error) {
	for _, ms := range m.milestones {
		if ms.UserID == userID && ms.WeekNumber == weekNumber {
			cp := *ms
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPortfolioRepo) Update(_ context.Context, ms *model.PortfolioMilestone) error {
	if _, ok := m.milestones[ms.MilestoneID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *ms
	m.milestones[ms.MilestoneID] = &cp
	return nil
}

func (m *mockPortfolioRepo) ListByUser(_ context.Context, userID string) ([]model.PortfolioMilestone, error) {
	var result []model.PortfolioMilestone
	for _, ms := range m.milestones {
		if ms.UserID == userID {
			result = append(result, *ms)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].WeekNumber < result[j].WeekNumber
	})
	return result, nil
}

// ── 测试夹具 ──

// newMockRepository 组装全量 mock 仓储
func newMockRepository() *repository.Repository {
	assignments := newMockAssignmentRepo()
	return &repository.Repository{
		User:       newMockUserRepo(),
		Progress:   newMockProgressRepo(),
		Assignment: assignments,
		Feedback:   newMockFeedbackRepo(assignments),
		Portfolio:  newMockPortfolioRepo(),
	}
}

// testCurriculumJSON 两周小型大纲：第 1 周含自动反馈白名单内的周五任务
const testCurriculumJSON = `{
  "weeks": [
    {
      "week_number": 1,
      "title": "设计基础",
      "objective": "掌握视觉设计基础",
      "daily_tasks": [
        {"day": "Monday", "task": "色彩理论", "deliverable": "配色板"},
        {"day": "Tuesday", "task": "排版基础", "deliverable": "字体样式表"},
        {"day": "Friday", "task": "结账流程重设计分析", "deliverable": "分析报告"}
      ],
      "portfolio_milestones": [{"title": "第一周作品集"}]
    },
    {
      "week_number": 2,
      "title": "界面布局",
      "daily_tasks": [
        {"day": "Monday", "task": "栅格系统", "deliverable": "布局稿"},
        {"day": "Wednesday", "task": "响应式设计", "deliverable": "断点说明"}
      ]
    }
  ]
}`

// newTestCurriculum 加载测试大纲，共 5 个任务、2 周
func newTestCurriculum(t *testing.T) *curriculum.Store {
	t.Helper()
	store, err := curriculum.Load([]byte(testCurriculumJSON))
	if err != nil {
		t.Fatalf("加载测试大纲失败: %v", err)
	}
	return store
}
