package handlers

import (
	"errors"

	"github.com/bookshelfapp/bookshelf-server/internal/dto"
	"github.com/bookshelfapp/bookshelf-server/internal/middleware"
	"github.com/bookshelfapp/bookshelf-server/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ShelfHandler struct {
	shelfService *services.ShelfService
}

func NewShelfHandler(shelfService *services.ShelfService) *ShelfHandler {
	return &ShelfHandler{shelfService: shelfService}
}

// List handles GET /shelf - returns the user's entries, newest first.
func (h *ShelfHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	entries, err := h.shelfService.List(userID)
	if err != nil {
		return internalError(c)
	}

	return c.JSON(dto.NewShelfListResponse(entries))
}

// Add handles POST /shelf - shelves a catalog volume for the user.
func (h *ShelfHandler) Add(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.AddBookRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, "googleId and title are required; status must be a valid reading status")
	}

	entry, err := h.shelfService.Add(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyOnShelf):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Book already in your shelf",
			})
		case errors.Is(err, services.ErrInvalidStatus):
			return badRequest(c, err.Error())
		default:
			return internalError(c)
		}
	}

	resp := dto.NewShelfEntryResponse(entry)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateStatus handles PATCH /shelf/:id - moves an entry to another reading
// status. Entries not owned by the caller report not found.
func (h *ShelfHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Book not found")
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if err := dto.Validate(&req); err != nil {
		return badRequest(c, "status must be one of want_to_read, currently_reading, read")
	}

	entry, err := h.shelfService.SetStatus(userID, entryID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEntryNotFound):
			return notFound(c, "Book not found")
		case errors.Is(err, services.ErrInvalidStatus):
			return badRequest(c, err.Error())
		default:
			return internalError(c)
		}
	}

	resp := dto.NewShelfEntryResponse(entry)
	return c.JSON(resp)
}

// Remove handles DELETE /shelf/:id.
func (h *ShelfHandler) Remove(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return notFound(c, "Book not found")
	}

	if err := h.shelfService.Remove(userID, entryID); err != nil {
		if errors.Is(err, services.ErrEntryNotFound) {
			return notFound(c, "Book not found")
		}
		return internalError(c)
	}

	return c.JSON(fiber.Map{"success": true})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
