// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the admin user already exists.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	catalogdomain "quizdesk/backend/internal/catalog/domain"
	catalogrepo "quizdesk/backend/internal/catalog/repository"
	"quizdesk/backend/internal/config"
	"quizdesk/backend/internal/db"
	"quizdesk/backend/internal/security"
	userdomain "quizdesk/backend/internal/user/domain"
	userrepo "quizdesk/backend/internal/user/repository"
)

const (
	adminUsername = "admin"
	adminPassword = "admin-dev-password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	users := userrepo.NewPostgresRepository(pool)
	existing, err := users.GetByUsername(ctx, adminUsername)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (admin exists). Skipping.")
		return
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	passwordHash, err := hasher.Hash(adminPassword)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	now := time.Now().UTC()
	admin := &userdomain.User{
		ID:           uuid.New().String(),
		Username:     adminUsername,
		DisplayName:  "Dev Admin",
		Role:         userdomain.RoleAdmin,
		PasswordHash: passwordHash,
		Status:       userdomain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("create admin: %v", err)
	}

	editorHash, err := hasher.Hash("editor-dev-password")
	if err != nil {
		log.Fatalf("hash: %v", err)
	}
	editor := &userdomain.User{
		ID:           uuid.New().String(),
		Username:     "editor",
		DisplayName:  "Dev Editor",
		Role:         userdomain.RoleEditor,
		PasswordHash: editorHash,
		Status:       userdomain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, editor); err != nil {
		log.Fatalf("create editor: %v", err)
	}

	categories := catalogrepo.NewPostgresCategoryRepository(pool)
	questions := catalogrepo.NewPostgresQuestionRepository(pool)

	samples := map[string][]catalogdomain.Question{
		"Geography": {
			{Prompt: "What is the capital of Australia?", Answer: "Canberra", Difficulty: catalogdomain.DifficultyMedium},
			{Prompt: "Which river runs through Cairo?", Answer: "The Nile", Difficulty: catalogdomain.DifficultyEasy},
		},
		"Science": {
			{Prompt: "What is the chemical symbol for gold?", Answer: "Au", Difficulty: catalogdomain.DifficultyEasy},
			{Prompt: "What particle carries a negative charge?", Answer: "Electron", Difficulty: catalogdomain.DifficultyEasy},
		},
		"History": {
			{Prompt: "In which year did the Berlin Wall fall?", Answer: "1989", Difficulty: catalogdomain.DifficultyMedium},
		},
	}

	for name, qs := range samples {
		cat := &catalogdomain.Category{
			ID:        uuid.New().String(),
			Name:      name,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := categories.Create(ctx, cat); err != nil {
			log.Fatalf("create category %s: %v", name, err)
		}
		for _, q := range qs {
			q.ID = uuid.New().String()
			q.CategoryID = cat.ID
			q.CreatedBy = admin.ID
			q.CreatedAt = now
			q.UpdatedAt = now
			if err := questions.Create(ctx, &q); err != nil {
				log.Fatalf("create question: %v", err)
			}
		}
	}

	log.Println("Seed applied: admin, editor, sample catalog.")
}
