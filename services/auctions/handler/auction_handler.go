package handler

import (
	"net/http"
	"time"

	model "auction-house/internal/models"
	"auction-house/services/auctions/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	PlaceBid(listingID, bidderID string, amount float64) (model.Bid, error)
	CurrentPrice(listingID string) (float64, error)
	BidsForListing(listingID string) ([]model.Bid, error)
	WinningBid(listingID string) (model.Bid, error)
	CloseAuction(listingID, requesterID string) (model.CloseOutcome, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

func bidResponse(bid model.Bid) helpers.BidResponse {
	return helpers.BidResponse{
		BidID:     bid.BidID,
		ListingID: bid.ListingID,
		UserID:    bid.BidderID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// PlaceBidHandler handles POST /bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(req.ListingID, req.UserID, req.Amount)
	if err != nil {
		helpers.HandleServiceError(c, "PlaceBidHandler", err, map[string]any{
			"listing_id": req.ListingID,
			"user_id":    req.UserID,
			"amount":     req.Amount,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, bidResponse(bid), "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"user_id":    bid.BidderID,
		"amount":     bid.Amount,
	})
}

// GetBidsByListingHandler handles GET /listings/:listing_id/bids
func (h *AuctionHandler) GetBidsByListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bids, err := h.service.BidsForListing(listingID)
	if err != nil {
		helpers.HandleServiceError(c, "GetBidsByListingHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, bid := range bids {
		resp = append(resp, bidResponse(bid))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByListingHandler", "bids retrieved successfully", map[string]any{
		"listing_id": listingID,
		"count":      len(resp),
	})
}

// GetWinningBidHandler handles GET /listings/:listing_id/winning
func (h *AuctionHandler) GetWinningBidHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bid, err := h.service.WinningBid(listingID)
	if err != nil {
		helpers.HandleServiceError(c, "GetWinningBidHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, bidResponse(bid), "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"user_id":    bid.BidderID,
		"amount":     bid.Amount,
	})
}

// GetCurrentPriceHandler handles GET /listings/:listing_id/price
func (h *AuctionHandler) GetCurrentPriceHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	price, err := h.service.CurrentPrice(listingID)
	if err != nil {
		helpers.HandleServiceError(c, "GetCurrentPriceHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	resp := helpers.CurrentPriceResponse{ListingID: listingID, CurrentPrice: price}
	utils.JSONResponse(c, http.StatusOK, resp, "current price retrieved successfully")
}

// CloseAuctionHandler handles POST /listings/:listing_id/close
func (h *AuctionHandler) CloseAuctionHandler(c *gin.Context) {
	listingID := c.Param("listing_id")

	var req helpers.ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CloseAuctionHandler", err)
		return
	}

	outcome, err := h.service.CloseAuction(listingID, req.UserID)
	if err != nil {
		helpers.HandleServiceError(c, "CloseAuctionHandler", err, map[string]any{
			"listing_id": listingID,
			"user_id":    req.UserID,
		})
		return
	}

	message := "auction closed without winner"
	if outcome.HasWinner {
		message = "auction closed with winner"
	}

	utils.JSONResponse(c, http.StatusOK, outcome, message)
	helpers.LogSuccess("CloseAuctionHandler", message, map[string]any{
		"listing_id":  outcome.ListingID,
		"has_winner":  outcome.HasWinner,
		"winner_id":   outcome.WinnerID,
		"final_price": outcome.FinalPrice,
	})
}
