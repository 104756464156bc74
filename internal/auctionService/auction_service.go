package auction

import (
	"errors"
	"fmt"
	"math"
	"time"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// AuctionService defines the business logic for bidding and the auction
// lifecycle. Static input validation happens here; the stateful checks
// (floor, open/closed) run inside the repository's critical section.
type AuctionService struct {
	repo repository.AuctionDB
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(repo repository.AuctionDB) *AuctionService {
	return &AuctionService{
		repo: repo,
	}
}

// PlaceBid validates and records a user's bid on a listing
func (s *AuctionService) PlaceBid(listingID, bidderID string, amount float64) (models.Bid, error) {
	if listingID == "" || bidderID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing listingID or bidderID", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.Bid{}, fmt.Errorf("service: %w - bid amount must be a positive finite number", auctionerrors.ErrInvalidBid)
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		ListingID: listingID,
		BidderID:  bidderID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.RecordBid(bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid on listing %s by user %s: %w", listingID, bidderID, err)
	}

	return bid, nil
}

// CurrentPrice returns the highest bid amount for a listing, or its starting
// price when no bids exist. Uses the same tie-break as the bid floor: a new
// bid must strictly exceed this value.
func (s *AuctionService) CurrentPrice(listingID string) (float64, error) {
	if listingID == "" {
		return 0, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidInput)
	}

	winning, err := s.repo.GetWinningBid(listingID)
	if err == nil {
		return winning.Amount, nil
	}
	if !errors.Is(err, auctionerrors.ErrNoBids) {
		return 0, fmt.Errorf("service: failed to get current price for listing %s: %w", listingID, err)
	}

	listing, err := s.repo.GetListing(listingID)
	if err != nil {
		return 0, fmt.Errorf("service: failed to get current price for listing %s: %w", listingID, err)
	}
	return listing.StartingPrice, nil
}

// BidsForListing returns all bids for a specific listing
func (s *AuctionService) BidsForListing(listingID string) ([]models.Bid, error) {
	if listingID == "" {
		return nil, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidInput)
	}

	bids, err := s.repo.GetBidsByListing(listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}

	return bids, nil
}

// WinningBid returns the highest bid for a specific listing
func (s *AuctionService) WinningBid(listingID string) (models.Bid, error) {
	if listingID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidInput)
	}

	winning, err := s.repo.GetWinningBid(listingID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get winning bid for listing %s: %w", listingID, err)
	}

	return winning, nil
}

// CloseAuction transitions a listing from open to closed and determines the
// winner. Only the owner may close; closing is terminal. Ownership never
// changes after creation, so the owner check can safely happen before the
// atomic close transition.
func (s *AuctionService) CloseAuction(listingID, requesterID string) (models.CloseOutcome, error) {
	if listingID == "" || requesterID == "" {
		return models.CloseOutcome{}, fmt.Errorf("service: %w - missing listingID or requesterID", auctionerrors.ErrInvalidInput)
	}

	listing, err := s.repo.GetListing(listingID)
	if err != nil {
		return models.CloseOutcome{}, fmt.Errorf("service: failed to close listing %s: %w", listingID, err)
	}
	if listing.OwnerID != requesterID {
		return models.CloseOutcome{}, fmt.Errorf("service: user %s cannot close listing %s: %w", requesterID, listingID, auctionerrors.ErrNotOwner)
	}

	closed, err := s.repo.CloseListing(listingID)
	if err != nil {
		return models.CloseOutcome{}, fmt.Errorf("service: failed to close listing %s: %w", listingID, err)
	}

	outcome := models.CloseOutcome{
		ListingID: closed.ListingID,
	}
	if closed.WinnerID != "" {
		outcome.HasWinner = true
		outcome.WinnerID = closed.WinnerID
		outcome.FinalPrice = closed.FinalPrice
	}
	return outcome, nil
}
