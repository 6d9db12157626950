package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Rushant-123/ui-learnings/internal/dto"
	"github.com/Rushant-123/ui-learnings/internal/service"
	"github.com/Rushant-123/ui-learnings/pkg/response"
)

// PortfolioHandler 作品集里程碑 HTTP 处理器
type PortfolioHandler struct {
	portfolioSvc service.PortfolioService
}

// NewPortfolioHandler 创建 PortfolioHandler
func NewPortfolioHandler(portfolioSvc service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioSvc: portfolioSvc}
}

// List 当前用户作品集，按周升序
// GET /api/portfolio
func (h *PortfolioHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.portfolioSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Submit 提交里程碑，同周重复提交为更新
// POST /api/portfolio
func (h *PortfolioHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields: weekNumber, milestoneTitle")
		return
	}

	result, created, err := h.portfolioSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	if created {
		response.Created(c, result)
		return
	}
	response.OK(c, result)
}

// Update 按 id 更新里程碑
// PUT /api/portfolio
func (h *PortfolioHandler) Update(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Milestone ID is required")
		return
	}

	result, err := h.portfolioSvc.Update(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrMilestoneNotFound) {
			response.NotFound(c, "Milestone not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
