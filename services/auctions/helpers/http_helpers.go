package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"auction-house/internal/auctionerrors"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, auctionerrors.ErrCategoryNotFound):
		return http.StatusNotFound, "category not found"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for listing"
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request details"
	case errors.Is(err, auctionerrors.ErrInvalidListing):
		return http.StatusBadRequest, "invalid listing details"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrEmptyMessage):
		return http.StatusBadRequest, "comment message is empty"
	case errors.Is(err, auctionerrors.ErrNotOwner):
		return http.StatusForbidden, "only the owner may close this auction"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrAuctionClosed):
		return http.StatusConflict, "auction is closed"
	case errors.Is(err, auctionerrors.ErrAlreadyClosed):
		return http.StatusConflict, "auction already closed"
	case errors.Is(err, auctionerrors.ErrWatchConflict):
		return http.StatusConflict, "watchlist was updated concurrently"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// HandleServiceError sends the mapped error response and logs it
func HandleServiceError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	if fields == nil {
		fields = map[string]any{}
	}
	fields["error"] = err.Error()
	utils.Warn(handlerName+": "+message, fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
