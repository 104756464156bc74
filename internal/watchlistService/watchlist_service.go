package watchlist

import (
	"fmt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
)

// WatchlistService defines the business logic for per-user watchlists
type WatchlistService struct {
	repo repository.AuctionDB
}

// NewWatchlistService creates a new WatchlistService instance
func NewWatchlistService(repo repository.AuctionDB) *WatchlistService {
	return &WatchlistService{
		repo: repo,
	}
}

// ToggleWatch adds the listing to the user's watchlist when absent and
// removes it when present. Returns true when the listing was added. Calling
// it twice in a row restores the original membership state.
func (s *WatchlistService) ToggleWatch(userID, listingID string) (bool, error) {
	if userID == "" || listingID == "" {
		return false, fmt.Errorf("service: %w - missing userID or listingID", auctionerrors.ErrInvalidInput)
	}

	added, err := s.repo.ToggleWatch(userID, listingID)
	if err != nil {
		return false, fmt.Errorf("service: failed to toggle watch on listing %s for user %s: %w", listingID, userID, err)
	}
	return added, nil
}

// WatchedListings returns the listings on a user's watchlist
func (s *WatchlistService) WatchedListings(userID string) ([]models.Listing, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}

	listings, err := s.repo.GetWatchedListings(userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get watchlist for user %s: %w", userID, err)
	}
	return listings, nil
}
