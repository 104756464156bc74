package models

import "time"

// User represents a participant in the marketplace
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Category groups listings for browsing
type Category struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

// Listing represents an item up for auction.
// StartingPrice never changes after creation; FinalPrice is zero until the
// auction is closed with a winning bid.
type Listing struct {
	ListingID     string    `json:"listing_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"image_url,omitempty"`
	StartingPrice float64   `json:"starting_price"`
	FinalPrice    float64   `json:"final_price,omitempty"`
	IsActive      bool      `json:"is_active"`
	CategoryID    string    `json:"category_id,omitempty"`
	OwnerID       string    `json:"owner_id"`
	WinnerID      string    `json:"winner_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Bid represents a user's bid on a listing. Bids are append-only.
type Bid struct {
	BidID     string    `json:"bid_id"`
	ListingID string    `json:"listing_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a message left on a listing. Comments are append-only.
type Comment struct {
	CommentID string    `json:"comment_id"`
	ListingID string    `json:"listing_id"`
	AuthorID  string    `json:"author_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// WatchlistEntry marks a user's interest in a listing, unique per pair
type WatchlistEntry struct {
	UserID    string    `json:"user_id"`
	ListingID string    `json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CloseOutcome reports the result of closing an auction
type CloseOutcome struct {
	ListingID  string  `json:"listing_id"`
	HasWinner  bool    `json:"has_winner"`
	WinnerID   string  `json:"winner_id,omitempty"`
	FinalPrice float64 `json:"final_price,omitempty"`
}
