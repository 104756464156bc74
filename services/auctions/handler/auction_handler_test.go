package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/services/auctions/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	h := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/bids", h.PlaceBidHandler)

	now := time.Now().UTC()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name: "success_valid_bid",
			requestBody: helpers.PlaceBidRequest{
				ListingID: "listing1",
				UserID:    "user1",
				Amount:    100,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("listing1", "user1", 100.0).
					Return(model.Bid{
						BidID:     uuid.NewString(),
						ListingID: "listing1",
						BidderID:  "user1",
						Amount:    100.0,
						CreatedAt: now,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid recorded successfully",
			validateData: func(t *testing.T, data map[string]any) {
				bidID := data["bid_id"].(string)
				require.NotEmpty(t, bidID)
				_, parseErr := uuid.Parse(bidID)
				require.NoError(t, parseErr, "BidID should be a valid UUID")
				require.Equal(t, "listing1", data["listing_id"])
				require.Equal(t, "user1", data["user_id"])
				require.Equal(t, 100.0, data["amount"])
			},
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "missing_listing_id",
			requestBody: helpers.PlaceBidRequest{
				UserID: "user1",
				Amount: 50,
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "zero_amount",
			requestBody: helpers.PlaceBidRequest{
				ListingID: "listing1",
				UserID:    "user1",
				Amount:    0,
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "bid_too_low",
			requestBody: helpers.PlaceBidRequest{
				ListingID: "listing1",
				UserID:    "user1",
				Amount:    50,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("listing1", "user1", 50.0).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrBidTooLow))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "bid amount too low",
		},
		{
			name: "auction_closed",
			requestBody: helpers.PlaceBidRequest{
				ListingID: "listing1",
				UserID:    "user1",
				Amount:    500,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("listing1", "user1", 500.0).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrAuctionClosed))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "auction is closed",
		},
		{
			name: "listing_not_found",
			requestBody: helpers.PlaceBidRequest{
				ListingID: "listingX",
				UserID:    "user1",
				Amount:    50,
			},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid("listingX", "user1", 50.0).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrListingNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "listing not found",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			resp, w := performRequest(t, router, http.MethodPost, "/bids", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedMsg, resp["message"])

			if tc.validateData != nil {
				data, ok := resp["data"].(map[string]any)
				require.True(t, ok)
				tc.validateData(t, data)
			}
		})
	}
}

// Test CloseAuctionHandler
func TestCloseAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	h := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/listings/:listing_id/close", h.CloseAuctionHandler)

	tests := []struct {
		name           string
		listingID      string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "closed_with_winner",
			listingID:   "listing1",
			requestBody: helpers.ActorRequest{UserID: "owner1"},
			mockSetup: func() {
				mockService.EXPECT().
					CloseAuction("listing1", "owner1").
					Return(model.CloseOutcome{
						ListingID:  "listing1",
						HasWinner:  true,
						WinnerID:   "userB",
						FinalPrice: 7.50,
					}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auction closed with winner",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "listing1", data["listing_id"])
				require.Equal(t, true, data["has_winner"])
				require.Equal(t, "userB", data["winner_id"])
				require.Equal(t, 7.50, data["final_price"])
			},
		},
		{
			name:        "closed_without_winner",
			listingID:   "listing1",
			requestBody: helpers.ActorRequest{UserID: "owner1"},
			mockSetup: func() {
				mockService.EXPECT().
					CloseAuction("listing1", "owner1").
					Return(model.CloseOutcome{ListingID: "listing1"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auction closed without winner",
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, false, data["has_winner"])
			},
		},
		{
			name:        "non_owner_forbidden",
			listingID:   "listing1",
			requestBody: helpers.ActorRequest{UserID: "intruder"},
			mockSetup: func() {
				mockService.EXPECT().
					CloseAuction("listing1", "intruder").
					Return(model.CloseOutcome{}, fmt.Errorf("service: %w", auctionerrors.ErrNotOwner))
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "only the owner may close this auction",
		},
		{
			name:        "already_closed",
			listingID:   "listing1",
			requestBody: helpers.ActorRequest{UserID: "owner1"},
			mockSetup: func() {
				mockService.EXPECT().
					CloseAuction("listing1", "owner1").
					Return(model.CloseOutcome{}, fmt.Errorf("service: %w", auctionerrors.ErrAlreadyClosed))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "auction already closed",
		},
		{
			name:           "missing_user_id",
			listingID:      "listing1",
			requestBody:    map[string]any{},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			url := "/listings/" + tc.listingID + "/close"
			resp, w := performRequest(t, router, http.MethodPost, url, tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedMsg, resp["message"])

			if tc.validateData != nil {
				data, ok := resp["data"].(map[string]any)
				require.True(t, ok)
				tc.validateData(t, data)
			}
		})
	}
}

// Test GetCurrentPriceHandler
func TestGetCurrentPriceHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	h := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/listings/:listing_id/price", h.GetCurrentPriceHandler)

	t.Run("returns_price", func(t *testing.T) {
		mockService.EXPECT().CurrentPrice("listing1").Return(10.01, nil)

		resp, w := performRequest(t, router, http.MethodGet, "/listings/listing1/price", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].(map[string]any)
		require.Equal(t, "listing1", data["listing_id"])
		require.Equal(t, 10.01, data["current_price"])
	})

	t.Run("listing_not_found", func(t *testing.T) {
		mockService.EXPECT().CurrentPrice("listingX").
			Return(0.0, fmt.Errorf("service: %w", auctionerrors.ErrListingNotFound))

		_, w := performRequest(t, router, http.MethodGet, "/listings/listingX/price", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
