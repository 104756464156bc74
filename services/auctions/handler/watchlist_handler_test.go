package handler

import (
	"fmt"
	"net/http"
	"testing"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/services/auctions/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// Test ToggleWatchHandler
func TestToggleWatchHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockWatchlistServiceInterface(ctrl)
	h := NewWatchlistHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/listings/:listing_id/watch", h.ToggleWatchHandler)

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedAction string
	}{
		{
			name:        "added",
			requestBody: helpers.ActorRequest{UserID: "user1"},
			mockSetup: func() {
				mockService.EXPECT().ToggleWatch("user1", "listing1").Return(true, nil)
			},
			expectedStatus: http.StatusOK,
			expectedAction: "added",
		},
		{
			name:        "removed",
			requestBody: helpers.ActorRequest{UserID: "user1"},
			mockSetup: func() {
				mockService.EXPECT().ToggleWatch("user1", "listing1").Return(false, nil)
			},
			expectedStatus: http.StatusOK,
			expectedAction: "removed",
		},
		{
			name:           "missing_user_id",
			requestBody:    map[string]any{},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "watch_conflict",
			requestBody: helpers.ActorRequest{UserID: "user1"},
			mockSetup: func() {
				mockService.EXPECT().ToggleWatch("user1", "listing1").
					Return(false, fmt.Errorf("service: %w", auctionerrors.ErrWatchConflict))
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			resp, w := performRequest(t, router, http.MethodPost, "/listings/listing1/watch", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)

			if tc.expectedAction != "" {
				data := resp["data"].(map[string]any)
				require.Equal(t, tc.expectedAction, data["action"])
				require.Equal(t, "listing1", data["listing_id"])
			}
		})
	}
}

// Test GetWatchlistHandler
func TestGetWatchlistHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockWatchlistServiceInterface(ctrl)
	h := NewWatchlistHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/users/:user_id/watchlist", h.GetWatchlistHandler)

	t.Run("returns_listings", func(t *testing.T) {
		listings := []model.Listing{{ListingID: "listing1", Title: "Listing 1", IsActive: true}}
		mockService.EXPECT().WatchedListings("user1").Return(listings, nil)

		resp, w := performRequest(t, router, http.MethodGet, "/users/user1/watchlist", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].([]any)
		require.Len(t, data, 1)
	})

	t.Run("empty_watchlist", func(t *testing.T) {
		mockService.EXPECT().WatchedListings("user2").Return(nil, nil)

		resp, w := performRequest(t, router, http.MethodGet, "/users/user2/watchlist", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].([]any)
		require.Empty(t, data)
	})
}
