package auctionerrors

import "errors"

// Validation errors
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidListing = errors.New("invalid listing")
	ErrInvalidBid     = errors.New("invalid bid")
	ErrEmptyMessage   = errors.New("comment message is empty")
)

// Authorization errors
var (
	ErrNotOwner = errors.New("requester is not the listing owner")
)

// State conflict errors
var (
	ErrBidTooLow     = errors.New("bid amount too low")
	ErrAuctionClosed = errors.New("auction is closed")
	ErrAlreadyClosed = errors.New("auction already closed")
)

// Repository-level errors
var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrNoBids           = errors.New("no bids found for listing")
)

// Concurrency errors
var (
	ErrWatchConflict = errors.New("concurrent watchlist update")
)
