package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bookshelfapp/bookshelf-server/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestNewShelfEntryResponse_FieldMapping(t *testing.T) {
	id := uuid.New()
	userID := uuid.New()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	entry := &models.ShelfEntry{
		ID:            id,
		UserID:        userID,
		GoogleBooksID: "abc123",
		Title:         "Dune",
		Author:        "Frank Herbert",
		ImageURL:      "https://example.com/dune.jpg",
		Description:   "Desert planet",
		PublishedDate: "1965-08-01",
		PageCount:     412,
		Categories:    datatypes.JSON(`["Fiction","Classics"]`),
		Status:        models.StatusCurrentlyReading,
		CreatedAt:     created,
	}

	resp := NewShelfEntryResponse(entry)

	assert.Equal(t, id.String(), resp.ID)
	assert.Equal(t, "abc123", resp.GoogleID)
	assert.Equal(t, "Dune", resp.Title)
	assert.Equal(t, "Frank Herbert", resp.Author)
	assert.Equal(t, "https://example.com/dune.jpg", resp.ImageURL)
	assert.Equal(t, "Desert planet", resp.Description)
	assert.Equal(t, "1965-08-01", resp.PublishedDate)
	assert.Equal(t, 412, resp.PageCount)
	assert.Equal(t, []string{"Fiction", "Classics"}, resp.Categories)
	assert.Equal(t, models.StatusCurrentlyReading, resp.Status)
	assert.Equal(t, created, resp.CreatedAt)
}

// The wire contract uses camelCase keys; the web client depends on them.
func TestShelfEntryResponse_JSONKeys(t *testing.T) {
	resp := NewShelfEntryResponse(&models.ShelfEntry{
		ID:            uuid.New(),
		GoogleBooksID: "abc123",
		Title:         "Dune",
	})

	b, err := json.Marshal(resp)
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))

	for _, key := range []string{
		"id", "googleId", "title", "author", "imageUrl",
		"description", "publishedDate", "pageCount", "status", "createdAt",
	} {
		assert.Contains(t, m, key)
	}
}

func TestValidate_AddBookRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     AddBookRequest
		wantErr bool
	}{
		{
			name: "valid with status",
			req:  AddBookRequest{GoogleID: "abc123", Title: "Dune", Status: "read"},
		},
		{
			name: "valid without status",
			req:  AddBookRequest{GoogleID: "abc123", Title: "Dune"},
		},
		{
			name:    "missing googleId",
			req:     AddBookRequest{Title: "Dune"},
			wantErr: true,
		},
		{
			name:    "missing title",
			req:     AddBookRequest{GoogleID: "abc123"},
			wantErr: true,
		},
		{
			name:    "unknown status",
			req:     AddBookRequest{GoogleID: "abc123", Title: "Dune", Status: "WANT_TO_READ"},
			wantErr: true,
		},
		{
			name:    "negative page count",
			req:     AddBookRequest{GoogleID: "abc123", Title: "Dune", PageCount: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_UpdateStatusRequest(t *testing.T) {
	assert.NoError(t, Validate(&UpdateStatusRequest{Status: "want_to_read"}))
	assert.NoError(t, Validate(&UpdateStatusRequest{Status: "currently_reading"}))
	assert.NoError(t, Validate(&UpdateStatusRequest{Status: "read"}))
	assert.Error(t, Validate(&UpdateStatusRequest{Status: ""}))
	assert.Error(t, Validate(&UpdateStatusRequest{Status: "reading"}))
}
