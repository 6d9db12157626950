package mockapi

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Rushant-123/ui-learnings/internal/model"
)

// Store 内存态数据存储
// 通过依赖注入传给 Server，不使用进程级单例，多个实例互不干扰
type Store struct {
	mu          sync.RWMutex
	progress    map[string]*model.TaskProgress // key: userID|week|day
	assignments map[string]*model.Assignment
	feedback    map[string]*model.AssignmentFeedback
	milestones  map[string]*model.PortfolioMilestone
	users       map[string]*mockUser // key: email
	seq         int
}

type mockUser struct {
	ID       string
	Email    string
	Password string
	FullName string
}

// NewStore 创建空存储并种入固定的演示用户
func NewStore() *Store {
	s := &Store{
		progress:    make(map[string]*model.TaskProgress),
		assignments: make(map[string]*model.Assignment),
		feedback:    make(map[string]*model.AssignmentFeedback),
		milestones:  make(map[string]*model.PortfolioMilestone),
		users:       make(map[string]*mockUser),
	}
	// 确定性种子：固定演示账号，id 不随时间变化
	s.users["demo@example.com"] = &mockUser{
		ID:       "mock-user-id",
		Email:    "demo@example.com",
		Password: "demo123",
		FullName: "Demo Learner",
	}
	return s
}

func (s *Store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

// ── 用户 ──

func (s *Store) CreateUser(email, password, fullName string) (*mockUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		return nil, false
	}
	u := &mockUser{
		ID:       s.nextID("user"),
		Email:    email,
		Password: password,
		FullName: fullName,
	}
	s.users[email] = u
	return u, true
}

func (s *Store) GetUser(email string) (*mockUser, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[email]
	return u, ok
}

// ── 进度 ──

func progressKey(userID string, week int, day string) string {
	return fmt.Sprintf("%s|%d|%s", userID, week, day)
}

// UpsertProgress 按 (user, week, day) 插入或更新
func (s *Store) UpsertProgress(userID string, week int, day string, completed bool) *model.TaskProgress {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := progressKey(userID, week, day)
	now := time.Now()

	record, ok := s.progress[k]
	if !ok {
		record = &model.TaskProgress{
			UserID:     userID,
			WeekNumber: week,
			TaskDay:    day,
		}
		record.ProgressID = s.nextID("progress")
		record.CreatedAt = now
		s.progress[k] = record
	}
	record.Completed = completed
	record.UpdatedAt = now
	if completed {
		record.CompletedAt = &now
	} else {
		record.CompletedAt = nil
	}
	cp := *record
	return &cp
}

// ListProgress 用户全部进度，周升序、日降序
func (s *Store) ListProgress(userID string) []model.TaskProgress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.TaskProgress, 0)
	for _, r := range s.progress {
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
	return result
}

// ── 作业 ──

func (s *Store) CreateAssignment(a *model.Assignment) *model.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.AssignmentID = s.nextID("assignment")
	cp := *a
	s.assignments[a.AssignmentID] = &cp
	return a
}

func (s *Store) GetAssignment(id string) (*model.Assignment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assignments[id]
	if !ok {
		return nil, false
	}
	cp := *a
	cp.Feedback = s.feedbackFor(id)
	return &cp, true
}

func (s *Store) UpdateAssignment(a *model.Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *a
	cp.Feedback = nil
	s.assignments[a.AssignmentID] = &cp
}

// ListAssignments 用户作业，提交时间倒序，可按周/日过滤
func (s *Store) ListAssignments(userID string, week int, day string) []model.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Assignment, 0)
	for _, a := range s.assignments {
		if a.UserID != userID {
			continue
		}
		if week != 0 && a.WeekNumber != week {
			continue
		}
		if day != "" && a.TaskDay != day {
			continue
		}
		cp := *a
		cp.Feedback = s.feedbackFor(a.AssignmentID)
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result
}

// ── 反馈 ──

// feedbackFor 调用方需已持有锁
func (s *Store) feedbackFor(assignmentID string) []model.AssignmentFeedback {
	var result []model.AssignmentFeedback
	for _, f := range s.feedback {
		if f.AssignmentID == assignmentID {
			result = append(result, *f)
		}
	}
	return result
}

func (s *Store) CreateFeedback(f *model.AssignmentFeedback) *model.AssignmentFeedback {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.FeedbackID = s.nextID("feedback")
	cp := *f
	s.feedback[f.FeedbackID] = &cp
	return f
}

func (s *Store) GetFeedback(id string) (*model.AssignmentFeedback, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.feedback[id]
	if !ok {
		return nil, false
	}
	cp := *f
	return &cp, true
}

func (s *Store) UpdateFeedback(f *model.AssignmentFeedback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *f
	s.feedback[f.FeedbackID] = &cp
}

// ListFeedback assignmentID 为空时返回用户名下所有作业的反馈
func (s *Store) ListFeedback(userID, assignmentID string) []model.AssignmentFeedback {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.AssignmentFeedback, 0)
	if assignmentID != "" {
		for _, f := range s.feedback {
			if f.AssignmentID == assignmentID {
				result = append(result, *f)
			}
		}
		return result
	}
	owned := make(map[string]bool)
	for _, a := range s.assignments {
		if a.UserID == userID {
			owned[a.AssignmentID] = true
		}
	}
	for _, f := range s.feedback {
		if owned[f.AssignmentID] {
			result = append(result, *f)
		}
	}
	return result
}

// ── 作品集 ──

func (s *Store) GetMilestoneByUserWeek(userID string, week int) (*model.PortfolioMilestone, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.milestones {
		if m.UserID == userID && m.WeekNumber == week {
			cp := *m
			return &cp, true
		}
	}
	return nil, false
}

func (s *Store) CreateMilestone(m *model.PortfolioMilestone) *model.PortfolioMilestone {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.MilestoneID = s.nextID("milestone")
	cp := *m
	s.milestones[m.MilestoneID] = &cp
	return m
}

func (s *Store) GetMilestone(id string) (*model.PortfolioMilestone, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.milestones[id]
	if !ok {
		return nil, false
	}
	cp := *m
	return &cp, true
}

func (s *Store) UpdateMilestone(m *model.PortfolioMilestone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *m
	s.milestones[m.MilestoneID] = &cp
}

// ListMilestones 用户作品集，周升序
func (s *Store) ListMilestones(userID string) []model.PortfolioMilestone {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.PortfolioMilestone, 0)
	for _, m := range s.milestones {
		if m.UserID == userID {
			result = append(result, *m)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].WeekNumber < result[j].WeekNumber
	})
	return result
}
