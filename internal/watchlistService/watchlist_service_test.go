package watchlist

import (
	"fmt"
	"testing"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

// Tests ToggleWatch
func TestWatchlistService_ToggleWatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewWatchlistService(mockRepo)

	tests := []struct {
		name          string
		userID        string
		listingID     string
		mockSetup     func()
		expectedAdded bool
		expectedError error
	}{
		{
			name:      "added",
			userID:    "user1",
			listingID: "listing1",
			mockSetup: func() {
				mockRepo.EXPECT().ToggleWatch("user1", "listing1").Return(true, nil)
			},
			expectedAdded: true,
		},
		{
			name:      "removed",
			userID:    "user1",
			listingID: "listing1",
			mockSetup: func() {
				mockRepo.EXPECT().ToggleWatch("user1", "listing1").Return(false, nil)
			},
			expectedAdded: false,
		},
		{
			name:          "empty_userID",
			userID:        "",
			listingID:     "listing1",
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:          "empty_listingID",
			userID:        "user1",
			listingID:     "",
			mockSetup:     func() {},
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:      "listing_not_found",
			userID:    "user1",
			listingID: "listingX",
			mockSetup: func() {
				mockRepo.EXPECT().ToggleWatch("user1", "listingX").
					Return(false, fmt.Errorf("toggle watch: %w", auctionerrors.ErrListingNotFound))
			},
			expectedError: auctionerrors.ErrListingNotFound,
		},
		{
			name:      "duplicate_key_race",
			userID:    "user1",
			listingID: "listing1",
			mockSetup: func() {
				mockRepo.EXPECT().ToggleWatch("user1", "listing1").
					Return(false, fmt.Errorf("toggle watch: %w", auctionerrors.ErrWatchConflict))
			},
			expectedError: auctionerrors.ErrWatchConflict,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			added, err := service.ToggleWatch(tc.userID, tc.listingID)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedAdded, added)
		})
	}
}

// Tests WatchedListings
func TestWatchlistService_WatchedListings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	service := NewWatchlistService(mockRepo)

	t.Run("returns_watched_listings", func(t *testing.T) {
		listings := []model.Listing{
			{ListingID: "listing1", Title: "Listing 1", IsActive: true},
			{ListingID: "listing2", Title: "Listing 2", IsActive: false},
		}
		mockRepo.EXPECT().GetWatchedListings("user1").Return(listings, nil)

		got, err := service.WatchedListings("user1")
		require.NoError(t, err)
		require.Equal(t, listings, got)
	})

	t.Run("empty_userID", func(t *testing.T) {
		_, err := service.WatchedListings("")
		require.ErrorIs(t, err, auctionerrors.ErrInvalidInput)
	})
}
