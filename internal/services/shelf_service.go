package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bookshelfapp/bookshelf-server/internal/dto"
	"github.com/bookshelfapp/bookshelf-server/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrAlreadyOnShelf = errors.New("book already on shelf")
	ErrEntryNotFound  = errors.New("shelf entry not found")
	ErrInvalidStatus  = errors.New("invalid reading status")
)

// ShelfService enforces ownership scoping, per-shelf uniqueness and the
// reading-status contract on top of the store. Every operation is scoped to
// the owning user id; entries of other users are indistinguishable from
// absent ones.
type ShelfService struct {
	db *gorm.DB
}

func NewShelfService(db *gorm.DB) *ShelfService {
	return &ShelfService{db: db}
}

// List returns the user's entries, newest-created first.
func (s *ShelfService) List(userID uuid.UUID) ([]models.ShelfEntry, error) {
	var entries []models.ShelfEntry
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list shelf: %w", err)
	}
	return entries, nil
}

// Add shelves a catalog volume for the user. The (user, volume) pair is
// unique; a second add of the same volume reports a conflict. Status
// defaults to want_to_read.
func (s *ShelfService) Add(userID uuid.UUID, req *dto.AddBookRequest) (*models.ShelfEntry, error) {
	status := req.Status
	if status == "" {
		status = models.StatusWantToRead
	}
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var existing models.ShelfEntry
	err := s.db.Where("user_id = ? AND google_books_id = ?", userID, req.GoogleID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyOnShelf
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check shelf: %w", err)
	}

	var categories datatypes.JSON
	if len(req.Categories) > 0 {
		if b, err := json.Marshal(req.Categories); err == nil {
			categories = datatypes.JSON(b)
		}
	}

	entry := models.ShelfEntry{
		ID:            uuid.New(),
		UserID:        userID,
		GoogleBooksID: req.GoogleID,
		Title:         req.Title,
		Author:        req.Author,
		ImageURL:      req.ImageURL,
		Description:   req.Description,
		PublishedDate: req.PublishedDate,
		PageCount:     req.PageCount,
		Categories:    categories,
		Status:        status,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		// Two adds of the same volume can race past the pre-check; the
		// unique index arbitrates and the loser sees a conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyOnShelf
		}
		return nil, fmt.Errorf("failed to add book: %w", err)
	}

	return &entry, nil
}

// SetStatus updates the reading status of an owned entry. Any valid status
// may move to any other valid status. An entry owned by someone else matches
// zero rows and is reported as not found.
func (s *ShelfService) SetStatus(userID uuid.UUID, entryID uuid.UUID, status string) (*models.ShelfEntry, error) {
	if !models.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	result := s.db.Model(&models.ShelfEntry{}).
		Where("id = ? AND user_id = ?", entryID, userID).
		Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrEntryNotFound
	}

	var entry models.ShelfEntry
	if err := s.db.First(&entry, "id = ?", entryID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload entry: %w", err)
	}
	return &entry, nil
}

// Remove deletes an owned entry, with the same ownership-filtered semantics
// as SetStatus.
func (s *ShelfService) Remove(userID uuid.UUID, entryID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.ShelfEntry{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}
