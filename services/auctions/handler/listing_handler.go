package handler

import (
	"net/http"

	model "auction-house/internal/models"
	"auction-house/services/auctions/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

type ListingServiceInterface interface {
	CreateListing(ownerID, title, description string, startingPrice float64, imageURL, categoryID string) (model.Listing, error)
	GetListing(listingID string) (model.Listing, error)
	ActiveListings() ([]model.Listing, error)
	Categories() ([]model.Category, error)
	ListingsByCategory(name string) ([]model.Listing, error)
}

type ListingHandler struct {
	service ListingServiceInterface
}

func NewListingHandler(service ListingServiceInterface) *ListingHandler {
	return &ListingHandler{service: service}
}

// CreateListingHandler handles POST /listings
func (h *ListingHandler) CreateListingHandler(c *gin.Context) {
	var req helpers.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateListingHandler", err)
		return
	}

	listing, err := h.service.CreateListing(req.OwnerID, req.Title, req.Description, req.StartingPrice, req.ImageURL, req.CategoryID)
	if err != nil {
		helpers.HandleServiceError(c, "CreateListingHandler", err, map[string]any{
			"owner_id": req.OwnerID,
			"title":    req.Title,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, listing, "listing created successfully")
	helpers.LogSuccess("CreateListingHandler", "listing created successfully", map[string]any{
		"listing_id": listing.ListingID,
		"owner_id":   listing.OwnerID,
		"title":      listing.Title,
	})
}

// GetListingHandler handles GET /listings/:listing_id
func (h *ListingHandler) GetListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	listing, err := h.service.GetListing(listingID)
	if err != nil {
		helpers.HandleServiceError(c, "GetListingHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, listing, "listing retrieved successfully")
}

// ActiveListingsHandler handles GET /listings
func (h *ListingHandler) ActiveListingsHandler(c *gin.Context) {
	listings, err := h.service.ActiveListings()
	if err != nil {
		helpers.HandleServiceError(c, "ActiveListingsHandler", err, nil)
		return
	}

	if listings == nil {
		listings = []model.Listing{}
	}

	utils.JSONResponse(c, http.StatusOK, listings, "active listings retrieved successfully")
	helpers.LogSuccess("ActiveListingsHandler", "active listings retrieved successfully", map[string]any{
		"count": len(listings),
	})
}

// ListCategoriesHandler handles GET /categories
func (h *ListingHandler) ListCategoriesHandler(c *gin.Context) {
	categories, err := h.service.Categories()
	if err != nil {
		helpers.HandleServiceError(c, "ListCategoriesHandler", err, nil)
		return
	}

	if categories == nil {
		categories = []model.Category{}
	}

	utils.JSONResponse(c, http.StatusOK, categories, "categories retrieved successfully")
}

// ListingsByCategoryHandler handles GET /categories/:name/listings
func (h *ListingHandler) ListingsByCategoryHandler(c *gin.Context) {
	name := c.Param("name")
	listings, err := h.service.ListingsByCategory(name)
	if err != nil {
		helpers.HandleServiceError(c, "ListingsByCategoryHandler", err, map[string]any{"category": name})
		return
	}

	if listings == nil {
		listings = []model.Listing{}
	}

	utils.JSONResponse(c, http.StatusOK, listings, "category listings retrieved successfully")
	helpers.LogSuccess("ListingsByCategoryHandler", "category listings retrieved successfully", map[string]any{
		"category": name,
		"count":    len(listings),
	})
}
