package mockapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rushant-123/ui-learnings/internal/curriculum"
	"github.com/Rushant-123/ui-learnings/internal/dto"
	"github.com/Rushant-123/ui-learnings/internal/model"
	"github.com/Rushant-123/ui-learnings/pkg/response"
)

// Server 本地开发用内存态 API 服务
// 与线上服务同一套线上契约：任意格式正确的 Bearer Token 即视为已登录，
// upsert / 排序 / 过滤语义与真实实现一致，供客户端库及其测试使用
type Server struct {
	store *Store
	curr  *curriculum.Store
}

// NewServer 创建 mock 服务，store 与大纲由调用方注入
func NewServer(store *Store, curr *curriculum.Store) *Server {
	return &Server{store: store, curr: curr}
}

// Router 构建 Gin 路由
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "mode": "mock"})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/signup", s.signup)
		api.POST("/auth/signin", s.signin)

		authorized := api.Group("")
		authorized.Use(s.bearerAuth)
		{
			authorized.GET("/auth/me", s.me)
			authorized.POST("/auth/signout", s.signout)

			authorized.GET("/progress", s.getProgress)
			authorized.POST("/progress", s.updateProgress)

			authorized.GET("/assignments", s.listAssignments)
			authorized.POST("/assignments", s.submitAssignment)
			authorized.PUT("/assignments", s.updateAssignment)

			authorized.GET("/portfolio", s.listPortfolio)
			authorized.POST("/portfolio", s.submitMilestone)
			authorized.PUT("/portfolio", s.updateMilestone)

			authorized.GET("/feedback", s.listFeedback)
			authorized.POST("/feedback", s.createFeedback)
			authorized.PUT("/feedback", s.updateFeedback)

			authorized.POST("/upload", s.presignUpload)
		}
	}

	return r
}

// bearerAuth 任意非空 Bearer Token 放行
// mock_token_{id} 形式的 Token 解析出用户 id，其余统一映射到演示用户
func (s *Server) bearerAuth(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		response.Unauthorized(c, "Missing or invalid authorization header")
		c.Abort()
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		response.Unauthorized(c, "Invalid or expired token")
		c.Abort()
		return
	}

	userID := "mock-user-id"
	if strings.HasPrefix(token, "mock_token_") {
		userID = strings.TrimPrefix(token, "mock_token_")
	}
	c.Set("user_id", userID)
	c.Next()
}

func (s *Server) userID(c *gin.Context) string {
	return c.GetString("user_id")
}

// ── 认证 ──

func (s *Server) signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	fullName := req.FullName
	if fullName == "" {
		fullName = strings.SplitN(req.Email, "@", 2)[0]
	}
	u, created := s.store.CreateUser(req.Email, req.Password, fullName)
	if !created {
		response.Error(c, http.StatusConflict, "An account with this email already exists")
		return
	}

	response.Created(c, dto.AuthResponse{
		Message: "Account created successfully",
		User:    dto.UserResponse{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: model.RoleLearner},
		Session: &dto.SessionResponse{AccessToken: "mock_token_" + u.ID, ExpiresIn: 86400},
	})
}

func (s *Server) signin(c *gin.Context) {
	var req dto.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	u, ok := s.store.GetUser(req.Email)
	if !ok || u.Password != req.Password {
		response.Unauthorized(c, "Invalid email or password")
		return
	}

	response.OK(c, dto.AuthResponse{
		Message: "Signed in successfully",
		User:    dto.UserResponse{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: model.RoleLearner},
		Session: &dto.SessionResponse{AccessToken: "mock_token_" + u.ID, ExpiresIn: 86400},
	})
}

func (s *Server) me(c *gin.Context) {
	response.OK(c, dto.MeResponse{
		User: dto.UserResponse{
			ID:       s.userID(c),
			Email:    "demo@example.com",
			FullName: "Demo Learner",
			Role:     model.RoleLearner,
		},
	})
}

func (s *Server) signout(c *gin.Context) {
	response.OK(c, dto.MessageResponse{Message: "Signed out successfully"})
}

// ── 进度 ──

func (s *Server) getProgress(c *gin.Context) {
	records := s.store.ListProgress(s.userID(c))
	response.OK(c, dto.ProgressListResponse{
		Progress: records,
		Stats:    s.computeStats(records),
	})
}

func (s *Server) updateProgress(c *gin.Context) {
	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "weekNumber and taskDay are required")
		return
	}
	if !s.curr.HasTask(req.WeekNumber, req.TaskDay) {
		response.BadRequest(c, "Unknown curriculum task")
		return
	}

	record := s.store.UpsertProgress(s.userID(c), req.WeekNumber, req.TaskDay, req.Completed)
	records := s.store.ListProgress(s.userID(c))
	response.OK(c, dto.ProgressUpdateResponse{
		Progress: record,
		Stats:    s.computeStats(records),
	})
}

func (s *Server) computeStats(records []model.TaskProgress) dto.ProgressStats {
	stats := dto.ProgressStats{
		TotalTasks:     s.curr.TotalTasks(),
		WeeklyProgress: make(map[int]dto.WeekProgress, s.curr.TotalWeeks()),
	}
	for _, w := range s.curr.Weeks() {
		stats.WeeklyProgress[w.WeekNumber] = dto.WeekProgress{Total: len(w.DailyTasks)}
	}
	for _, r := range records {
		if !r.Completed || !s.curr.HasTask(r.WeekNumber, r.TaskDay) {
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

// ── 作业 ──

func (s *Server) listAssignments(c *gin.Context) {
	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	list := s.store.ListAssignments(s.userID(c), req.WeekNumber, req.TaskDay)
	response.OK(c, dto.AssignmentListResponse{Assignments: list})
}

func (s *Server) submitAssignment(c *gin.Context) {
	var req dto.SubmitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields: weekNumber, taskDay, title, submissionType")
		return
	}
	if !model.ValidSubmissionType(req.SubmissionType) {
		response.BadRequest(c, "Invalid submission type. Must be: text, file, link, image, or reflection")
		return
	}

	a := &model.Assignment{
		UserID:         s.userID(c),
		WeekNumber:     req.WeekNumber,
		TaskDay:        req.TaskDay,
		Title:          req.Title,
		Description:    req.Description,
		SubmissionType: req.SubmissionType,
		FileURLs:       req.FileURLs,
		ExternalLinks:  req.ExternalLinks,
		Status:         model.StatusSubmitted,
		SubmittedAt:    time.Now(),
	}
	if req.Content != "" {
		content := req.Content
		a.Content = &content
	}
	s.store.CreateAssignment(a)

	response.Created(c, dto.SubmitAssignmentResponse{Assignment: a, AIFeedback: nil})
}

func (s *Server) updateAssignment(c *gin.Context) {
	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Assignment ID is required")
		return
	}

	a, ok := s.store.GetAssignment(req.ID)
	if !ok || a.UserID != s.userID(c) {
		response.NotFound(c, "Assignment not found")
		return
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Content != nil {
		a.Content = req.Content
	}
	if req.FileURLs != nil {
		a.FileURLs = *req.FileURLs
	}
	if req.ExternalLinks != nil {
		a.ExternalLinks = *req.ExternalLinks
	}
	now := time.Now()
	a.UpdatedAt = &now
	s.store.UpdateAssignment(a)

	response.OK(c, dto.AssignmentResponse{Assignment: a})
}

// ── 作品集 ──

func (s *Server) listPortfolio(c *gin.Context) {
	list := s.store.ListMilestones(s.userID(c))
	response.OK(c, dto.PortfolioListResponse{Portfolio: list})
}

func (s *Server) submitMilestone(c *gin.Context) {
	var req dto.SubmitMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields: weekNumber, milestoneTitle")
		return
	}

	userID := s.userID(c)
	if existing, ok := s.store.GetMilestoneByUserWeek(userID, req.WeekNumber); ok {
		existing.MilestoneTitle = req.MilestoneTitle
		existing.Description = req.Description
		existing.Deliverables = req.Deliverables
		existing.ProjectLinks = req.ProjectLinks
		now := time.Now()
		existing.UpdatedAt = &now
		s.store.UpdateMilestone(existing)
		response.OK(c, dto.MilestoneResponse{Milestone: existing})
		return
	}

	m := &model.PortfolioMilestone{
		UserID:         userID,
		WeekNumber:     req.WeekNumber,
		MilestoneTitle: req.MilestoneTitle,
		Description:    req.Description,
		Deliverables:   req.Deliverables,
		ProjectLinks:   req.ProjectLinks,
		Status:         "submitted",
		SubmittedAt:    time.Now(),
	}
	s.store.CreateMilestone(m)
	response.Created(c, dto.MilestoneResponse{Milestone: m})
}

func (s *Server) updateMilestone(c *gin.Context) {
	var req dto.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Milestone ID is required")
		return
	}

	m, ok := s.store.GetMilestone(req.ID)
	if !ok || m.UserID != s.userID(c) {
		response.NotFound(c, "Milestone not found")
		return
	}

	if req.MilestoneTitle != nil {
		m.MilestoneTitle = *req.MilestoneTitle
	}
	if req.Description != nil {
		m.Description = *req.Description
	}
	if req.Deliverables != nil {
		m.Deliverables = *req.Deliverables
	}
	if req.ProjectLinks != nil {
		m.ProjectLinks = *req.ProjectLinks
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
	now := time.Now()
	m.UpdatedAt = &now
	s.store.UpdateMilestone(m)

	response.OK(c, dto.MilestoneResponse{Milestone: m})
}

// ── 反馈 ──

func (s *Server) listFeedback(c *gin.Context) {
	var req dto.FeedbackListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	list := s.store.ListFeedback(s.userID(c), req.AssignmentID)
	response.OK(c, dto.FeedbackListResponse{Feedback: list})
}

func (s *Server) createFeedback(c *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields: assignmentId, feedbackType, content")
		return
	}
	if !model.ValidFeedbackType(req.FeedbackType) {
		response.BadRequest(c, "Invalid feedback type. Must be: ai_generated, instructor_review, or peer_review")
		return
	}

	a, ok := s.store.GetAssignment(req.AssignmentID)
	if !ok {
		response.NotFound(c, "Assignment not found")
		return
	}
	userID := s.userID(c)
	if a.UserID != userID && req.FeedbackType != model.FeedbackInstructorReview {
		response.Forbidden(c, "You do not have permission to review this assignment")
		return
	}

	f := &model.AssignmentFeedback{
		AssignmentID: req.AssignmentID,
		FeedbackType: req.FeedbackType,
		Content:      req.Content,
		Score:        req.Score,
		Strengths:    req.Strengths,
		Improvements: req.Improvements,
		CreatedAt:    time.Now(),
	}
	if req.FeedbackType != model.FeedbackAIGenerated {
		reviewer := userID
		f.ReviewerID = &reviewer
	}
	s.store.CreateFeedback(f)

	if req.FeedbackType == model.FeedbackInstructorReview && req.Score != nil {
		if *req.Score >= 8 {
			a.Status = model.StatusApproved
		} else {
			a.Status = model.StatusNeedsRevision
		}
		s.store.UpdateAssignment(a)
	}

	response.Created(c, dto.FeedbackResponse{Feedback: f})
}

func (s *Server) updateFeedback(c *gin.Context) {
	var req dto.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Feedback ID is required")
		return
	}

	f, ok := s.store.GetFeedback(req.ID)
	if !ok {
		response.NotFound(c, "Feedback not found")
		return
	}
	if f.FeedbackType == model.FeedbackAIGenerated ||
		(f.ReviewerID != nil && *f.ReviewerID != s.userID(c)) {
		response.Forbidden(c, "You do not have permission to update this feedback")
		return
	}

	if req.Content != nil {
		f.Content = *req.Content
	}
	if req.Score != nil {
		f.Score = req.Score
	}
	if req.Strengths != nil {
		f.Strengths = *req.Strengths
	}
	if req.Improvements != nil {
		f.Improvements = *req.Improvements
	}
	now := time.Now()
	f.UpdatedAt = &now
	s.store.UpdateFeedback(f)

	response.OK(c, dto.FeedbackResponse{Feedback: f})
}

// ── 上传 ──

func (s *Server) presignUpload(c *gin.Context) {
	var req dto.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields: fileName, fileType, fileSize")
		return
	}

	key := fmt.Sprintf("uploads/%s/%d_%s", s.userID(c), time.Now().UnixMilli(), req.FileName)
	response.OK(c, dto.UploadResponse{
		UploadURL: "https://mock-upload-url.example/" + key,
		FilePath:  key,
		PublicURL: "https://mock-storage.example/" + key,
	})
}
