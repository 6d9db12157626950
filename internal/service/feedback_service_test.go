package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Rushant-123/ui-learnings/internal/dto"
	"github.com/Rushant-123/ui-learnings/internal/model"
	"github.com/Rushant-123/ui-learnings/internal/repository"
)

// seedAssignment 直接经仓储种入一条作业
func seedAssignment(t *testing.T, repo *repository.Repository, userID string) *model.Assignment {
	t.Helper()
	a := &model.Assignment{
		UserID:         userID,
		WeekNumber:     1,
		TaskDay:        "Monday",
		Title:          "测试作业",
		SubmissionType: model.SubmissionText,
		Status:         model.StatusSubmitted,
	}
	if err := repo.Assignment.Create(context.Background(), a); err != nil {
		t.Fatalf("种入作业失败: %v", err)
	}
	return a
}

func TestFeedbackCreate_SelfReview(t *testing.T) {
	repo := newMockRepository()
	svc := NewFeedbackService(repo, zap.NewNop())
	a := seedAssignment(t, repo, "user-1")

	result, err := svc.Create(context.Background(), "user-1", model.RoleLearner, &dto.CreateFeedbackRequest{
		AssignmentID: a.AssignmentID,
		FeedbackType: model.FeedbackPeerReview,
		Content:      "自评内容",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Feedback.ReviewerID == nil || *result.Feedback.ReviewerID != "user-1" {
		t.Error("人工反馈应记录 reviewer")
	}
}

func TestFeedbackCreate_PeerOnOthersForbidden(t *testing.T) {
	repo := newMockRepository()
	svc := NewFeedbackService(repo, zap.NewNop())
	a := seedAssignment(t, repo, "user-1")

	// 非讲师评审他人作业
	_, err := svc.Create(context.Background(), "user-2", model.RoleLearner, &dto.CreateFeedbackRequest{
		AssignmentID: a.AssignmentID,
		FeedbackType: model.FeedbackPeerReview,
		Content:      "未经授权的互评",
	})
	if !errors.Is(err, ErrFeedbackForbidden) {
		t.Errorf("期望 ErrFeedbackForbidden，实际: %v", err)
	}
}

func TestFeedbackCreate_InstructorReviewRequiresRole(t *testing.T) {
	repo := newMockRepository()
	svc := NewFeedbackService(repo, zap.NewNop())
	ctx := context.Background()
	a := seedAssignment(t, repo, "user-1")

	// 学员角色冒用 instructor_review 评审他人作业
	_, err := svc.Create(ctx, "user-2", model.RoleLearner, &dto.CreateFeedbackRequest{
		AssignmentID: a.AssignmentID,
		FeedbackType: model.FeedbackInstructorReview,
		Content:      "冒充讲师",
	})
	if !errors.Is(err, ErrFeedbackForbidden) {
		t.Errorf("期望 ErrFeedbackForbidden，实际: %v", err)
	}

	// 讲师角色可评审
	if _, err := svc.Create(ctx, "instructor-1", model.RoleInstructor, &dto.CreateFeedbackRequest{
		AssignmentID: a.AssignmentID,
		FeedbackType: model.FeedbackInstructorReview,
		Content:      "讲师点评",
	}); err != nil {
		t.Errorf("讲师角色 Create 应成功: %v", err)
	}

	// 作业本人不受角色限制
	if _, err := svc.Create(ctx, "user-1", model.RoleLearner, &dto.CreateFeedbackRequest{
		AssignmentID: a.AssignmentID,
		FeedbackType: model.FeedbackInstructorReview,
		Content:      "本人记录",
	}); err != nil {
		t.Errorf("本人 Create 应成功: %v", err)
	}
}

func TestFeedbackCreate_AssignmentNotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewFeedbackService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), "user-1", model.RoleLearner, &dto.CreateFeedbackRequest{
		AssignmentID: "no-such",
		FeedbackType: model.FeedbackPeerReview,
		Content:      "x",
	})
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("期望 ErrAssignmentNotFound，实际: %v", err)
	}
}

func TestFeedbackCreate_InvalidType(t *testing.T) {
	repo := newMockRepository()
	svc := NewFeedbackService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), "user-1", model.RoleLearner, &dto.CreateFeedbackRequest{
		AssignmentID: "any",
		FeedbackType: "mentor_review",
		Content:      "x",
	})
	if !errors.Is(err, ErrInvalidFeedback) {
		t.Errorf("期望 ErrInvalidFeedback，实际: %v", err)
	}
}

func TestFeedbackCreate_InstructorScoreUpdatesStatus(t *testing.T) {
	repo := newMockRepository()
	svc := NewFeedbackService(repo, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		score      int
		wantStatus string
	}{
		{score: 8, wantStatus: model.StatusApproved},
		{score: 5, wantStatus: model.StatusNeedsRevision},
	}
	for _, tt := range tests {
		a := seedAssignment(t, repo, "user-1")
		score := tt.score
		if _, err := svc.Create(ctx, "instructor-1", model.RoleInstructor, &dto.CreateFeedbackRequest{
			AssignmentID: a.AssignmentID,
			FeedbackType: model.FeedbackInstructorReview,
			Content:      "讲师评审",
			Score:        &score,
		}); err != nil {
			t.Fatalf("Create(score=%d) 失败: %v", tt.score, err)
		}
		got, err := repo.Assignment.GetByID(ctx, a.AssignmentID)
		if err != nil {
			t.Fatalf("查询作业失败: %v", err)
		}
		if got.Status != tt.wantStatus {
			t.Errorf("score=%d 期望 Status=%s，实际=%s", tt.score, tt.wantStatus, got.Status)
		}
	}
}

func TestFeedbackCreate_InstructorNoScoreKeepsStatus(t *testing.T) {
	repo := newMockRepository()
	svc := NewFeedbackService(repo, zap.NewNop())
	ctx := context.Background()
	a := seedAssignment(t, repo, "user-1")

	if _, err := svc.Create(ctx, "instructor-1", model.RoleInstructor, &dto.CreateFeedbackRequest{
		AssignmentID: a.AssignmentID,
		FeedbackType: model.FeedbackInstructorReview,
		Content:      "无评分的点评",
	}); err != nil {
		t.Fatalf("Create 失败: %v", err)
	}
	got, _ := repo.Assignment.GetByID(ctx, a.AssignmentID)
	if got.Status != model.StatusSubmitted {
		t.Errorf("无评分评审不应改状态，实际=%s", got.Status)
	}
}

func TestFeedbackUpdate_AIGeneratedImmutable(t *testing.T) {
	repo := newMockRepository()
	svc := NewFeedbackService(repo, zap.NewNop())
	ctx := context.Background()
	a := seedAssignment(t, repo, "user-1")

	f := &model.AssignmentFeedback{
		AssignmentID: a.AssignmentID,
		FeedbackType: model.FeedbackAIGenerated,
		Content:      "自动反馈",
	}
	if err := repo.Feedback.Create(ctx, f); err != nil {
		t.Fatalf("种入反馈失败: %v", err)
	}

	content := "篡改"
	_, err := svc.Update(ctx, "user-1", &dto.UpdateFeedbackRequest{ID: f.FeedbackID, Content: &content})
	if !errors.Is(err, ErrFeedbackForbidden) {
		t.Errorf("期望 ErrFeedbackForbidden，实际: %v", err)
	}
	got, _ := repo.Feedback.GetByID(ctx, f.FeedbackID)
	if got.Content != "自动反馈" {
		t.Errorf("被拒绝的更新不应生效，实际 Content=%s", got.Content)
	}
}

func TestFeedbackUpdate_OnlyReviewer(t *testing.T) {
	repo := newMockRepository()
	svc := NewFeedbackService(repo, zap.NewNop())
	ctx := context.Background()
	a := seedAssignment(t, repo, "user-1")

	created, err := svc.Create(ctx, "user-1", model.RoleLearner, &dto.CreateFeedbackRequest{
		AssignmentID: a.AssignmentID,
		FeedbackType: model.FeedbackPeerReview,
		Content:      "原内容",
	})
	if err != nil {
		t.Fatalf("Create 失败: %v", err)
	}

	content := "他人篡改"
	_, err = svc.Update(ctx, "user-2", &dto.UpdateFeedbackRequest{ID: created.Feedback.FeedbackID, Content: &content})
	if !errors.Is(err, ErrFeedbackForbidden) {
		t.Errorf("期望 ErrFeedbackForbidden，实际: %v", err)
	}

	ownContent := "本人修订"
	result, err := svc.Update(ctx, "user-1", &dto.UpdateFeedbackRequest{ID: created.Feedback.FeedbackID, Content: &ownContent})
	if err != nil {
		t.Fatalf("本人 Update 应成功: %v", err)
	}
	if result.Feedback.Content != "本人修订" {
		t.Errorf("期望 Content=本人修订，实际=%s", result.Feedback.Content)
	}
}

func TestFeedbackUpdate_NotFound(t *testing.T) {
	repo := newMockRepository()
	svc := NewFeedbackService(repo, zap.NewNop())

	content := "x"
	_, err := svc.Update(context.Background(), "user-1", &dto.UpdateFeedbackRequest{ID: "no-such", Content: &content})
	if !errors.Is(err, ErrFeedbackNotFound) {
		t.Errorf("期望 ErrFeedbackNotFound，实际: %v", err)
	}
}

func TestFeedbackList_DefaultsToOwnAssignments(t *testing.T) {
	repo := newMockRepository()
	svc := NewFeedbackService(repo, zap.NewNop())
	ctx := context.Background()

	mine := seedAssignment(t, repo, "user-1")
	others := seedAssignment(t, repo, "user-2")
	for _, aid := range []string{mine.AssignmentID, others.AssignmentID} {
		if err := repo.Feedback.Create(ctx, &model.AssignmentFeedback{
			AssignmentID: aid,
			FeedbackType: model.FeedbackAIGenerated,
			Content:      "x",
		}); err != nil {
			t.Fatalf("种入反馈失败: %v", err)
		}
	}

	result, err := svc.List(ctx, "user-1", &dto.FeedbackListRequest{})
	if err != nil {
		t.Fatalf("List 失败: %v", err)
	}
	if len(result.Feedback) != 1 {
		t.Fatalf("期望 1 条（仅本人作业的反馈），实际=%d", len(result.Feedback))
	}
	if result.Feedback[0].AssignmentID != mine.AssignmentID {
		t.Errorf("期望反馈属于本人作业，实际=%s", result.Feedback[0].AssignmentID)
	}
}
