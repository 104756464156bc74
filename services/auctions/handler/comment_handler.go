package handler

import (
	"net/http"
	"time"

	model "auction-house/internal/models"
	"auction-house/services/auctions/helpers"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

type CommentServiceInterface interface {
	AddComment(listingID, authorID, message string) (model.Comment, error)
	CommentsForListing(listingID string) ([]model.Comment, error)
}

type CommentHandler struct {
	service CommentServiceInterface
}

func NewCommentHandler(service CommentServiceInterface) *CommentHandler {
	return &CommentHandler{service: service}
}

func commentResponse(comment model.Comment) helpers.CommentResponse {
	return helpers.CommentResponse{
		CommentID: comment.CommentID,
		ListingID: comment.ListingID,
		UserID:    comment.AuthorID,
		Message:   comment.Message,
		CreatedAt: comment.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// AddCommentHandler handles POST /listings/:listing_id/comments
func (h *CommentHandler) AddCommentHandler(c *gin.Context) {
	listingID := c.Param("listing_id")

	var req helpers.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddCommentHandler", err)
		return
	}

	comment, err := h.service.AddComment(listingID, req.UserID, req.Message)
	if err != nil {
		helpers.HandleServiceError(c, "AddCommentHandler", err, map[string]any{
			"listing_id": listingID,
			"user_id":    req.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, commentResponse(comment), "comment added successfully")
	helpers.LogSuccess("AddCommentHandler", "comment added successfully", map[string]any{
		"comment_id": comment.CommentID,
		"listing_id": comment.ListingID,
		"user_id":    comment.AuthorID,
	})
}

// GetCommentsHandler handles GET /listings/:listing_id/comments
func (h *CommentHandler) GetCommentsHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	comments, err := h.service.CommentsForListing(listingID)
	if err != nil {
		helpers.HandleServiceError(c, "GetCommentsHandler", err, map[string]any{"listing_id": listingID})
		return
	}

	resp := make([]helpers.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resp = append(resp, commentResponse(comment))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "comments retrieved successfully")
	helpers.LogSuccess("GetCommentsHandler", "comments retrieved successfully", map[string]any{
		"listing_id": listingID,
		"count":      len(resp),
	})
}
