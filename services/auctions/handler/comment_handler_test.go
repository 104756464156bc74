package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/services/auctions/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// Test AddCommentHandler
func TestAddCommentHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockCommentServiceInterface(ctrl)
	h := NewCommentHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/listings/:listing_id/comments", h.AddCommentHandler)

	now := time.Now().UTC()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "success",
			requestBody: helpers.AddCommentRequest{UserID: "user1", Message: "Nice item"},
			mockSetup: func() {
				mockService.EXPECT().
					AddComment("listing1", "user1", "Nice item").
					Return(model.Comment{
						CommentID: "c1",
						ListingID: "listing1",
						AuthorID:  "user1",
						Message:   "Nice item",
						CreatedAt: now,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "comment added successfully",
		},
		{
			name:           "missing_message",
			requestBody:    map[string]any{"user_id": "user1"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "whitespace_message",
			requestBody: helpers.AddCommentRequest{UserID: "user1", Message: "   "},
			mockSetup: func() {
				mockService.EXPECT().
					AddComment("listing1", "user1", "   ").
					Return(model.Comment{}, fmt.Errorf("service: %w", auctionerrors.ErrEmptyMessage))
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "comment message is empty",
		},
		{
			name:        "listing_not_found",
			requestBody: helpers.AddCommentRequest{UserID: "user1", Message: "hello"},
			mockSetup: func() {
				mockService.EXPECT().
					AddComment("listing1", "user1", "hello").
					Return(model.Comment{}, fmt.Errorf("service: %w", auctionerrors.ErrListingNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "listing not found",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			resp, w := performRequest(t, router, http.MethodPost, "/listings/listing1/comments", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedMsg, resp["message"])
		})
	}
}

// Test GetCommentsHandler
func TestGetCommentsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockCommentServiceInterface(ctrl)
	h := NewCommentHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/listings/:listing_id/comments", h.GetCommentsHandler)

	t.Run("newest_first", func(t *testing.T) {
		now := time.Now().UTC()
		comments := []model.Comment{
			{CommentID: "c2", ListingID: "listing1", AuthorID: "user2", Message: "second", CreatedAt: now.Add(time.Minute)},
			{CommentID: "c1", ListingID: "listing1", AuthorID: "user1", Message: "first", CreatedAt: now},
		}
		mockService.EXPECT().CommentsForListing("listing1").Return(comments, nil)

		resp, w := performRequest(t, router, http.MethodGet, "/listings/listing1/comments", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].([]any)
		require.Len(t, data, 2)
		first := data[0].(map[string]any)
		require.Equal(t, "c2", first["comment_id"])
	})

	t.Run("no_comments", func(t *testing.T) {
		mockService.EXPECT().CommentsForListing("listing1").Return(nil, nil)

		resp, w := performRequest(t, router, http.MethodGet, "/listings/listing1/comments", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].([]any)
		require.Empty(t, data)
	})
}
