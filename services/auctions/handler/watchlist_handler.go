package handler

import (
	"net/http"

	model "auction-house/internal/models"
	"auction-house/services/auctions/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

type WatchlistServiceInterface interface {
	ToggleWatch(userID, listingID string) (bool, error)
	WatchedListings(userID string) ([]model.Listing, error)
}

type WatchlistHandler struct {
	service WatchlistServiceInterface
}

func NewWatchlistHandler(service WatchlistServiceInterface) *WatchlistHandler {
	return &WatchlistHandler{service: service}
}

// ToggleWatchHandler handles POST /listings/:listing_id/watch
func (h *WatchlistHandler) ToggleWatchHandler(c *gin.Context) {
	listingID := c.Param("listing_id")

	var req helpers.ActorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "ToggleWatchHandler", err)
		return
	}

	added, err := h.service.ToggleWatch(req.UserID, listingID)
	if err != nil {
		helpers.HandleServiceError(c, "ToggleWatchHandler", err, map[string]any{
			"listing_id": listingID,
			"user_id":    req.UserID,
		})
		return
	}

	action := "removed"
	if added {
		action = "added"
	}

	resp := helpers.WatchToggleResponse{ListingID: listingID, UserID: req.UserID, Action: action}
	utils.JSONResponse(c, http.StatusOK, resp, "listing "+action+" successfully")
	helpers.LogSuccess("ToggleWatchHandler", "listing "+action, map[string]any{
		"listing_id": listingID,
		"user_id":    req.UserID,
	})
}

// GetWatchlistHandler handles GET /users/:user_id/watchlist
func (h *WatchlistHandler) GetWatchlistHandler(c *gin.Context) {
	userID := c.Param("user_id")
	listings, err := h.service.WatchedListings(userID)
	if err != nil {
		helpers.HandleServiceError(c, "GetWatchlistHandler", err, map[string]any{"user_id": userID})
		return
	}

	if listings == nil {
		listings = []model.Listing{}
	}

	utils.JSONResponse(c, http.StatusOK, listings, "watchlist retrieved successfully")
	helpers.LogSuccess("GetWatchlistHandler", "watchlist retrieved successfully", map[string]any{
		"user_id": userID,
		"count":   len(listings),
	})
}
