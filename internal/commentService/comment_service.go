package comment

import (
	"fmt"
	"strings"
	"time"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// CommentService defines the business logic for the per-listing comment board
type CommentService struct {
	repo repository.AuctionDB
}

// NewCommentService creates a new CommentService instance
func NewCommentService(repo repository.AuctionDB) *CommentService {
	return &CommentService{
		repo: repo,
	}
}

// AddComment validates and appends a comment to a listing. The message must
// contain at least one non-whitespace character.
func (s *CommentService) AddComment(listingID, authorID, message string) (models.Comment, error) {
	if listingID == "" || authorID == "" {
		return models.Comment{}, fmt.Errorf("service: %w - missing listingID or authorID", auctionerrors.ErrInvalidInput)
	}
	if strings.TrimSpace(message) == "" {
		return models.Comment{}, fmt.Errorf("service: %w", auctionerrors.ErrEmptyMessage)
	}

	comment := models.Comment{
		CommentID: utils.GenerateID(),
		ListingID: listingID,
		AuthorID:  authorID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.AddComment(comment); err != nil {
		return models.Comment{}, fmt.Errorf("service: failed to add comment on listing %s by user %s: %w", listingID, authorID, err)
	}

	return comment, nil
}

// CommentsForListing returns a listing's comments, newest first
func (s *CommentService) CommentsForListing(listingID string) ([]models.Comment, error) {
	if listingID == "" {
		return nil, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidInput)
	}

	comments, err := s.repo.GetCommentsByListing(listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get comments for listing %s: %w", listingID, err)
	}
	return comments, nil
}
