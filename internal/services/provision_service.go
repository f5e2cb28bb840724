package services

import (
	"log/slog"

	"github.com/bookshelfapp/bookshelf-server/internal/models"
	"gorm.io/gorm"
)

// ProvisionService bootstraps schema and baseline records. Every step is a
// conditional create, so the routine is safe to run repeatedly and
// concurrently; individual failures are logged and the remaining steps still
// run (best-effort).
type ProvisionService struct {
	db *gorm.DB
}

func NewProvisionService(db *gorm.DB) *ProvisionService {
	return &ProvisionService{db: db}
}

// Run migrates every model and ensures the demo user exists. It reports
// overall success only; per-step failures surface in the logs.
func (s *ProvisionService) Run() bool {
	ok := true

	steps := []struct {
		name  string
		model interface{}
	}{
		{"users", &models.User{}},
		{"shelf_entries", &models.ShelfEntry{}},
		{"refresh_tokens", &models.RefreshToken{}},
		{"system_logs", &models.SystemLog{}},
	}

	for _, step := range steps {
		if err := s.db.AutoMigrate(step.model); err != nil {
			slog.Error("provisioning step failed", "action", "migrate", "table", step.name, "error", err)
			ok = false
		}
	}

	if err := s.ensureDemoUser(); err != nil {
		slog.Error("provisioning step failed", "action", "ensure_demo_user", "error", err)
		ok = false
	}

	return ok
}

func (s *ProvisionService) ensureDemoUser() error {
	demo := models.User{
		ID:           models.DemoUserID,
		Email:        models.DemoUserEmail,
		Name:         "Demo User",
		AuthProvider: models.ProviderDemo,
	}
	return s.db.Where("id = ?", models.DemoUserID).
		FirstOrCreate(&demo).Error
}
