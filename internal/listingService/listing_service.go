package listing

import (
	"fmt"
	"strings"
	"time"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// ListingService defines the business logic for creating and browsing
// listings, including the category index
type ListingService struct {
	repo repository.AuctionDB
}

// NewListingService creates a new ListingService instance
func NewListingService(repo repository.AuctionDB) *ListingService {
	return &ListingService{
		repo: repo,
	}
}

// CreateListing validates and stores a new listing. New listings start open.
func (s *ListingService) CreateListing(ownerID, title, description string, startingPrice float64, imageURL, categoryID string) (models.Listing, error) {
	title = strings.TrimSpace(title)
	if ownerID == "" || title == "" {
		return models.Listing{}, fmt.Errorf("service: %w - missing ownerID or title", auctionerrors.ErrInvalidListing)
	}
	if startingPrice <= 0 {
		return models.Listing{}, fmt.Errorf("service: %w - non-positive starting price", auctionerrors.ErrInvalidListing)
	}

	listing := models.Listing{
		ListingID:     utils.GenerateID(),
		Title:         title,
		Description:   description,
		ImageURL:      imageURL,
		StartingPrice: startingPrice,
		IsActive:      true,
		CategoryID:    categoryID,
		OwnerID:       ownerID,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.CreateListing(listing); err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to create listing for user %s: %w", ownerID, err)
	}

	return listing, nil
}

// GetListing returns a listing by ID
func (s *ListingService) GetListing(listingID string) (models.Listing, error) {
	if listingID == "" {
		return models.Listing{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidInput)
	}

	listing, err := s.repo.GetListing(listingID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}

	return listing, nil
}

// ActiveListings returns all open listings, newest first
func (s *ListingService) ActiveListings() ([]models.Listing, error) {
	listings, err := s.repo.ActiveListings()
	if err != nil {
		return nil, fmt.Errorf("service: failed to get active listings: %w", err)
	}
	return listings, nil
}

// Categories returns all categories ordered alphabetically by name
func (s *ListingService) Categories() ([]models.Category, error) {
	categories, err := s.repo.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list categories: %w", err)
	}
	return categories, nil
}

// ListingsByCategory returns the open listings in the named category,
// newest first
func (s *ListingService) ListingsByCategory(name string) ([]models.Listing, error) {
	if name == "" {
		return nil, fmt.Errorf("service: %w - empty category name", auctionerrors.ErrInvalidInput)
	}

	category, err := s.repo.GetCategoryByName(name)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get category %s: %w", name, err)
	}

	listings, err := s.repo.ListingsByCategory(category.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get listings for category %s: %w", name, err)
	}
	return listings, nil
}
