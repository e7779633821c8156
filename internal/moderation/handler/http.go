// Package handler exposes the moderation queue over HTTP.
package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogdomain "quizdesk/backend/internal/catalog/domain"
	catalogrepo "quizdesk/backend/internal/catalog/repository"
	"quizdesk/backend/internal/moderation/domain"
	"quizdesk/backend/internal/moderation/repository"
	"quizdesk/backend/internal/platform/rbac"
	"quizdesk/backend/internal/server/middleware"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// Handler serves the proposal and report endpoints. Approving a proposal
// promotes it into the question catalog.
type Handler struct {
	proposals repository.ProposalRepository
	reports   repository.ReportRepository
	questions catalogrepo.QuestionRepository
	logger    *zap.Logger
}

func NewHandler(proposals repository.ProposalRepository, reports repository.ReportRepository, questions catalogrepo.QuestionRepository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{proposals: proposals, reports: reports, questions: questions, logger: logger}
}

// Register mounts the moderation routes. Submitting is open to any
// authenticated user; deciding requires the admin role.
func (h *Handler) Register(rg *gin.RouterGroup) {
	admin := rbac.RequireAdmin()

	rg.POST("/proposals", h.SubmitProposal)
	rg.GET("/proposals", h.ListProposals)
	rg.POST("/proposals/:id/approve", admin, h.ApproveProposal)
	rg.POST("/proposals/:id/reject", admin, h.RejectProposal)

	rg.POST("/reports", h.SubmitReport)
	rg.GET("/reports", h.ListReports)
	rg.POST("/reports/:id/resolve", admin, h.ResolveReport)
}

func pageWindow(c *gin.Context) (limit, offset int32) {
	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return int32(size), int32(page-1) * int32(size)
}

type proposalRequest struct {
	Prompt      string `json:"prompt"`
	Answer      string `json:"answer"`
	CategoryID  string `json:"category_id"`
	SubmittedBy string `json:"submitted_by"`
}

// SubmitProposal handles POST /api/v1/moderation/proposals.
func (h *Handler) SubmitProposal(c *gin.Context) {
	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	now := time.Now().UTC()
	p := &domain.Proposal{
		ID:          uuid.New().String(),
		Prompt:      req.Prompt,
		Answer:      req.Answer,
		CategoryID:  req.CategoryID,
		SubmittedBy: req.SubmittedBy,
		Status:      domain.ProposalPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.proposals.Create(c.Request.Context(), p); err != nil {
		h.internal(c, "create proposal", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListProposals handles GET /api/v1/moderation/proposals. The status
// query defaults to pending.
func (h *Handler) ListProposals(c *gin.Context) {
	status := domain.ProposalStatus(c.DefaultQuery("status", string(domain.ProposalPending)))
	switch status {
	case domain.ProposalPending, domain.ProposalApproved, domain.ProposalRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	limit, offset := pageWindow(c)
	proposals, err := h.proposals.ListByStatus(c.Request.Context(), status, limit, offset)
	if err != nil {
		h.internal(c, "list proposals", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": proposals})
}

// ApproveProposal handles POST /api/v1/moderation/proposals/:id/approve.
// The approved proposal becomes a catalog question.
func (h *Handler) ApproveProposal(c *gin.Context) {
	p, done := h.loadPending(c)
	if done {
		return
	}
	reviewerID, _ := middleware.GetUserID(c.Request.Context())
	if err := p.Approve(reviewerID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	now := time.Now().UTC()
	q := &catalogdomain.Question{
		ID:         uuid.New().String(),
		CategoryID: p.CategoryID,
		Prompt:     p.Prompt,
		Answer:     p.Answer,
		Difficulty: catalogdomain.DifficultyMedium,
		CreatedBy:  reviewerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.questions.Create(c.Request.Context(), q); err != nil {
		h.internal(c, "promote proposal", err)
		return
	}
	if err := h.proposals.Update(c.Request.Context(), p); err != nil {
		h.internal(c, "update proposal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposal": p, "question_id": q.ID})
}

// RejectProposal handles POST /api/v1/moderation/proposals/:id/reject.
func (h *Handler) RejectProposal(c *gin.Context) {
	p, done := h.loadPending(c)
	if done {
		return
	}
	reviewerID, _ := middleware.GetUserID(c.Request.Context())
	if err := p.Reject(reviewerID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err := h.proposals.Update(c.Request.Context(), p); err != nil {
		h.internal(c, "update proposal", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposal": p})
}

// loadPending fetches the proposal named by the path, writing the error
// response itself when the proposal is missing or already decided.
func (h *Handler) loadPending(c *gin.Context) (*domain.Proposal, bool) {
	p, err := h.proposals.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internal(c, "get proposal", err)
		return nil, true
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "proposal not found"})
		return nil, true
	}
	if p.Status != domain.ProposalPending {
		c.JSON(http.StatusConflict, gin.H{"error": domain.ErrProposalDecided.Error()})
		return nil, true
	}
	return p, false
}

type reportRequest struct {
	QuestionID string `json:"question_id"`
	Reason     string `json:"reason"`
	ReportedBy string `json:"reported_by"`
}

// SubmitReport handles POST /api/v1/moderation/reports. The reported
// question must exist.
func (h *Handler) SubmitReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	now := time.Now().UTC()
	r := &domain.Report{
		ID:         uuid.New().String(),
		QuestionID: req.QuestionID,
		Reason:     req.Reason,
		ReportedBy: req.ReportedBy,
		Status:     domain.ReportOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := r.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	q, err := h.questions.GetByID(c.Request.Context(), r.QuestionID)
	if err != nil {
		h.internal(c, "get question", err)
		return
	}
	if q == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}
	if err := h.reports.Create(c.Request.Context(), r); err != nil {
		h.internal(c, "create report", err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListReports handles GET /api/v1/moderation/reports. The status query
// defaults to open.
func (h *Handler) ListReports(c *gin.Context) {
	status := domain.ReportStatus(c.DefaultQuery("status", string(domain.ReportOpen)))
	switch status {
	case domain.ReportOpen, domain.ReportResolved:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	limit, offset := pageWindow(c)
	reports, err := h.reports.ListByStatus(c.Request.Context(), status, limit, offset)
	if err != nil {
		h.internal(c, "list reports", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// ResolveReport handles POST /api/v1/moderation/reports/:id/resolve.
func (h *Handler) ResolveReport(c *gin.Context) {
	r, err := h.reports.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internal(c, "get report", err)
		return
	}
	if r == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
		return
	}
	resolverID, _ := middleware.GetUserID(c.Request.Context())
	if err := r.Resolve(resolverID); err != nil {
		if errors.Is(err, domain.ErrReportResolved) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.internal(c, "resolve report", err)
		return
	}
	if err := h.reports.Update(c.Request.Context(), r); err != nil {
		h.internal(c, "update report", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": r})
}

func (h *Handler) internal(c *gin.Context, op string, err error) {
	h.logger.Error("moderation handler failed", zap.String("op", op), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
