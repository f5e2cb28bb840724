package handlers

import (
	"errors"

	"github.com/bookshelfapp/bookshelf-server/internal/catalog"
	"github.com/bookshelfapp/bookshelf-server/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	client *catalog.Client
}

func NewSearchHandler(client *catalog.Client) *SearchHandler {
	return &SearchHandler{client: client}
}

// Search handles GET /search?q= - proxies the query to the book catalog.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")

	volumes, err := h.client.Search(c.Context(), query)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyQuery) {
			return badRequest(c, "Query parameter is required")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search books",
		})
	}

	return c.JSON(volumes)
}
