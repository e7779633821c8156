// Package handler exposes the catalog over HTTP.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"quizdesk/backend/internal/catalog/domain"
	"quizdesk/backend/internal/catalog/repository"
	"quizdesk/backend/internal/platform/rbac"
	"quizdesk/backend/internal/server/middleware"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// Handler serves the question, category, and announcement endpoints.
type Handler struct {
	questions     repository.QuestionRepository
	categories    repository.CategoryRepository
	announcements repository.AnnouncementRepository
	logger        *zap.Logger
}

func NewHandler(questions repository.QuestionRepository, categories repository.CategoryRepository, announcements repository.AnnouncementRepository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{questions: questions, categories: categories, announcements: announcements, logger: logger}
}

// Register mounts the catalog routes. Reads are open to any authenticated
// user; mutations require the admin role.
func (h *Handler) Register(rg *gin.RouterGroup) {
	admin := rbac.RequireAdmin()

	rg.GET("/questions", h.ListQuestions)
	rg.GET("/questions/:id", h.GetQuestion)
	rg.POST("/questions", admin, h.CreateQuestion)
	rg.PUT("/questions/:id", admin, h.UpdateQuestion)
	rg.DELETE("/questions/:id", admin, h.DeleteQuestion)

	rg.GET("/categories", h.ListCategories)
	rg.POST("/categories", admin, h.CreateCategory)
	rg.PUT("/categories/:id", admin, h.UpdateCategory)
	rg.DELETE("/categories/:id", admin, h.DeleteCategory)

	rg.GET("/announcements", h.ListAnnouncements)
	rg.POST("/announcements", admin, h.CreateAnnouncement)
	rg.PUT("/announcements/:id", admin, h.UpdateAnnouncement)
	rg.DELETE("/announcements/:id", admin, h.DeleteAnnouncement)
}

// pageWindow reads limit/offset from ?page and ?page_size, clamping the
// page size to maxPageSize.
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

type questionRequest struct {
	CategoryID string `json:"category_id"`
	Prompt     string `json:"prompt"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
}

type questionResponse struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"category_id,omitempty"`
	Prompt     string    `json:"prompt"`
	Answer     string    `json:"answer"`
	Difficulty string    `json:"difficulty"`
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toQuestionResponse(q *domain.Question) questionResponse {
	return questionResponse{
		ID:         q.ID,
		CategoryID: q.CategoryID,
		Prompt:     q.Prompt,
		Answer:     q.Answer,
		Difficulty: string(q.Difficulty),
		CreatedBy:  q.CreatedBy,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

// ListQuestions handles GET /api/v1/catalog/questions. An optional
// category_id query filters by category.
func (h *Handler) ListQuestions(c *gin.Context) {
	limit, offset := pageWindow(c)
	var (
		questions []*domain.Question
		err       error
	)
	if categoryID := c.Query("category_id"); categoryID != "" {
		questions, err = h.questions.ListByCategory(c.Request.Context(), categoryID, limit, offset)
	} else {
		questions, err = h.questions.List(c.Request.Context(), limit, offset)
	}
	if err != nil {
		h.internal(c, "list questions", err)
		return
	}
	out := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, toQuestionResponse(q))
	}
	c.JSON(http.StatusOK, gin.H{"questions": out})
}

func (h *Handler) GetQuestion(c *gin.Context) {
	q, err := h.questions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internal(c, "get question", err)
		return
	}
	if q == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}
	c.JSON(http.StatusOK, toQuestionResponse(q))
}

func (h *Handler) CreateQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	userID, _ := middleware.GetUserID(c.Request.Context())
	now := time.Now().UTC()
	q := &domain.Question{
		ID:         uuid.New().String(),
		CategoryID: req.CategoryID,
		Prompt:     req.Prompt,
		Answer:     req.Answer,
		Difficulty: domain.Difficulty(req.Difficulty),
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := q.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.questions.Create(c.Request.Context(), q); err != nil {
		h.internal(c, "create question", err)
		return
	}
	c.JSON(http.StatusCreated, toQuestionResponse(q))
}

func (h *Handler) UpdateQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	q, err := h.questions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internal(c, "get question", err)
		return
	}
	if q == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}
	q.CategoryID = req.CategoryID
	q.Prompt = req.Prompt
	q.Answer = req.Answer
	q.Difficulty = domain.Difficulty(req.Difficulty)
	q.UpdatedAt = time.Now().UTC()
	if err := q.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.questions.Update(c.Request.Context(), q); err != nil {
		h.internal(c, "update question", err)
		return
	}
	c.JSON(http.StatusOK, toQuestionResponse(q))
}

func (h *Handler) DeleteQuestion(c *gin.Context) {
	id := c.Param("id")
	q, err := h.questions.GetByID(c.Request.Context(), id)
	if err != nil {
		h.internal(c, "get question", err)
		return
	}
	if q == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
		return
	}
	if err := h.questions.Delete(c.Request.Context(), id); err != nil {
		h.internal(c, "delete question", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *Handler) ListCategories(c *gin.Context) {
	limit, offset := pageWindow(c)
	categories, err := h.categories.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.internal(c, "list categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	now := time.Now().UTC()
	cat := &domain.Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := cat.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.categories.Create(c.Request.Context(), cat); err != nil {
		h.internal(c, "create category", err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	cat, err := h.categories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internal(c, "get category", err)
		return
	}
	if cat == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	cat.Name = req.Name
	cat.Description = req.Description
	cat.UpdatedAt = time.Now().UTC()
	if err := cat.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.categories.Update(c.Request.Context(), cat); err != nil {
		h.internal(c, "update category", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	cat, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		h.internal(c, "get category", err)
		return
	}
	if cat == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		h.internal(c, "delete category", err)
		return
	}
	c.Status(http.StatusNoContent)
}

type announcementRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

func (h *Handler) ListAnnouncements(c *gin.Context) {
	limit, offset := pageWindow(c)
	announcements, err := h.announcements.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.internal(c, "list announcements", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}

func (h *Handler) CreateAnnouncement(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	userID, _ := middleware.GetUserID(c.Request.Context())
	now := time.Now().UTC()
	a := &domain.Announcement{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.announcements.Create(c.Request.Context(), a); err != nil {
		h.internal(c, "create announcement", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *Handler) UpdateAnnouncement(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	a, err := h.announcements.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.internal(c, "get announcement", err)
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
		return
	}
	a.Title = req.Title
	a.Body = req.Body
	a.Published = req.Published
	a.UpdatedAt = time.Now().UTC()
	if err := a.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.announcements.Update(c.Request.Context(), a); err != nil {
		h.internal(c, "update announcement", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAnnouncement(c *gin.Context) {
	id := c.Param("id")
	a, err := h.announcements.GetByID(c.Request.Context(), id)
	if err != nil {
		h.internal(c, "get announcement", err)
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "announcement not found"})
		return
	}
	if err := h.announcements.Delete(c.Request.Context(), id); err != nil {
		h.internal(c, "delete announcement", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) internal(c *gin.Context, op string, err error) {
	h.logger.Error("catalog handler failed", zap.String("op", op), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
