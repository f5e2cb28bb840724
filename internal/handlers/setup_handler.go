package handlers

import (
	"github.com/bookshelfapp/bookshelf-server/internal/dto"
	"github.com/bookshelfapp/bookshelf-server/internal/services"
	"github.com/gofiber/fiber/v2"
)

type SetupHandler struct {
	provision *services.ProvisionService
}

func NewSetupHandler(provision *services.ProvisionService) *SetupHandler {
	return &SetupHandler{provision: provision}
}

// Run handles POST /setup - idempotent schema and baseline-record bootstrap.
// Provisioning is best-effort: step failures are logged, not surfaced.
func (h *SetupHandler) Run(c *fiber.Ctx) error {
	h.provision.Run()
	return c.JSON(dto.SetupResponse{
		Success: true,
		Message: "Database setup completed",
	})
}
