package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quizdesk/backend/internal/catalog/domain"
	"quizdesk/backend/internal/catalog/repository"
	"quizdesk/backend/internal/server/middleware"
)

type fixture struct {
	router    *gin.Engine
	questions *repository.MemoryQuestionRepository
}

// newFixture mounts the catalog routes behind a stub identity middleware
// carrying the given role.
func newFixture(t *testing.T, role string) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	questions := repository.NewMemoryQuestionRepository()
	h := NewHandler(questions, repository.NewMemoryCategoryRepository(), repository.NewMemoryAnnouncementRepository(), nil)

	router := gin.New()
	group := router.Group("/api/v1/catalog", func(c *gin.Context) {
		ctx := middleware.WithIdentity(c.Request.Context(), "u-1", role, "s-1")
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	h.Register(group)
	return &fixture{router: router, questions: questions}
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestQuestionCRUD(t *testing.T) {
	f := newFixture(t, "admin")

	w := f.do(http.MethodPost, "/api/v1/catalog/questions",
		`{"prompt":"Capital of France?","answer":"Paris","difficulty":"easy"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status %d body %s", w.Code, w.Body.String())
	}
	var created questionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.CreatedBy != "u-1" {
		t.Errorf("CreatedBy = %q, want u-1", created.CreatedBy)
	}

	w = f.do(http.MethodGet, "/api/v1/catalog/questions/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: status %d", w.Code)
	}

	w = f.do(http.MethodPut, "/api/v1/catalog/questions/"+created.ID,
		`{"prompt":"Capital of Japan?","answer":"Tokyo","difficulty":"easy"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d body %s", w.Code, w.Body.String())
	}
	stored, _ := f.questions.GetByID(context.Background(), created.ID)
	if stored.Answer != "Tokyo" {
		t.Errorf("Answer = %q after update", stored.Answer)
	}

	w = f.do(http.MethodDelete, "/api/v1/catalog/questions/"+created.ID, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", w.Code)
	}
	if gone, _ := f.questions.GetByID(context.Background(), created.ID); gone != nil {
		t.Error("question should be gone after delete")
	}
}

func TestQuestionValidationRejected(t *testing.T) {
	f := newFixture(t, "admin")
	w := f.do(http.MethodPost, "/api/v1/catalog/questions", `{"prompt":"","answer":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", w.Code)
	}
}

func TestQuestionNotFound(t *testing.T) {
	f := newFixture(t, "admin")
	w := f.do(http.MethodGet, "/api/v1/catalog/questions/"+uuid.New().String(), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status %d, want 404", w.Code)
	}
}

func TestMutationsRequireAdmin(t *testing.T) {
	f := newFixture(t, "editor")
	w := f.do(http.MethodPost, "/api/v1/catalog/questions",
		`{"prompt":"p","answer":"a"}`)
	if w.Code != http.StatusForbidden {
		t.Errorf("editor create: status %d, want 403", w.Code)
	}

	// Reads stay open to editors.
	w = f.do(http.MethodGet, "/api/v1/catalog/questions", "")
	if w.Code != http.StatusOK {
		t.Errorf("editor list: status %d, want 200", w.Code)
	}
}

func TestListQuestionsPagination(t *testing.T) {
	f := newFixture(t, "admin")
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		err := f.questions.Create(context.Background(), &domain.Question{
			ID:         uuid.New().String(),
			Prompt:     fmt.Sprintf("q%d", i),
			Answer:     "a",
			Difficulty: domain.DifficultyEasy,
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	w := f.do(http.MethodGet, "/api/v1/catalog/questions?page=1&page_size=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var body struct {
		Questions []questionResponse `json:"questions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Questions) != 2 {
		t.Fatalf("page 1 len = %d, want 2", len(body.Questions))
	}
	// Newest first.
	if body.Questions[0].Prompt != "q4" || body.Questions[1].Prompt != "q3" {
		t.Errorf("page 1 = %s, %s", body.Questions[0].Prompt, body.Questions[1].Prompt)
	}

	w = f.do(http.MethodGet, "/api/v1/catalog/questions?page=3&page_size=2", "")
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if len(body.Questions) != 1 || body.Questions[0].Prompt != "q0" {
		t.Errorf("page 3 = %+v", body.Questions)
	}
}

func TestPageWindowClampsSize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x?page_size=5000&page=2", nil)
	limit, offset := pageWindow(c)
	if limit != maxPageSize {
		t.Errorf("limit = %d, want %d", limit, maxPageSize)
	}
	if offset != maxPageSize {
		t.Errorf("offset = %d, want %d", offset, maxPageSize)
	}

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x?page_size=-3&page=junk", nil)
	limit, offset = pageWindow(c)
	if limit != defaultPageSize || offset != 0 {
		t.Errorf("defaults = %d, %d", limit, offset)
	}
}
