package dto

import (
	"encoding/json"
	"time"

	"github.com/bookshelfapp/bookshelf-server/internal/models"
)

// AddBookRequest carries the catalog metadata of a search result the user
// wants to shelve. Field names match what the web client sends, which in
// turn mirrors the Google Books volume fields.
type AddBookRequest struct {
	GoogleID      string   `json:"googleId" validate:"required"`
	Title         string   `json:"title" validate:"required,max=500"`
	Author        string   `json:"author" validate:"max=500"`
	ImageURL      string   `json:"imageUrl"`
	Description   string   `json:"description"`
	PublishedDate string   `json:"publishedDate" validate:"max=50"`
	PageCount     int      `json:"pageCount" validate:"gte=0"`
	Categories    []string `json:"categories"`
	Status        string   `json:"status" validate:"omitempty,oneof=want_to_read currently_reading read"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=want_to_read currently_reading read"`
}

// ShelfEntryResponse is the transfer shape for a shelved book. The camelCase
// field mapping is a fixed contract with the web client.
type ShelfEntryResponse struct {
	ID            string    `json:"id"`
	GoogleID      string    `json:"googleId"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	ImageURL      string    `json:"imageUrl"`
	Description   string    `json:"description"`
	PublishedDate string    `json:"publishedDate"`
	PageCount     int       `json:"pageCount"`
	Categories    []string  `json:"categories"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NewShelfEntryResponse maps the persisted entry to its transfer shape.
func NewShelfEntryResponse(e *models.ShelfEntry) ShelfEntryResponse {
	var categories []string
	if len(e.Categories) > 0 {
		// Stored as a JSON array; a decode failure just leaves it empty.
		_ = json.Unmarshal(e.Categories, &categories)
	}

	return ShelfEntryResponse{
		ID:            e.ID.String(),
		GoogleID:      e.GoogleBooksID,
		Title:         e.Title,
		Author:        e.Author,
		ImageURL:      e.ImageURL,
		Description:   e.Description,
		PublishedDate: e.PublishedDate,
		PageCount:     e.PageCount,
		Categories:    categories,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt,
	}
}

// NewShelfListResponse maps a list of entries, preserving order.
func NewShelfListResponse(entries []models.ShelfEntry) []ShelfEntryResponse {
	out := make([]ShelfEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewShelfEntryResponse(&entries[i]))
	}
	return out
}
