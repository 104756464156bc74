package helpers

// Request DTOs
type CreateListingRequest struct {
	OwnerID       string  `json:"owner_id" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description"`
	StartingPrice float64 `json:"starting_price" binding:"required,gt=0"`
	ImageURL      string  `json:"image_url"`
	CategoryID    string  `json:"category_id"`
}

type PlaceBidRequest struct {
	ListingID string  `json:"listing_id" binding:"required"`
	UserID    string  `json:"user_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

// ActorRequest carries the requesting user for operations whose only input
// is the actor identity (close, watch toggle)
type ActorRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type AddCommentRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// Response DTOs
type BidResponse struct {
	BidID     string  `json:"bid_id"`
	ListingID string  `json:"listing_id"`
	UserID    string  `json:"user_id"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

type CommentResponse struct {
	CommentID string `json:"comment_id"`
	ListingID string `json:"listing_id"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

type WatchToggleResponse struct {
	ListingID string `json:"listing_id"`
	UserID    string `json:"user_id"`
	Action    string `json:"action"` // "added" or "removed"
}

type CurrentPriceResponse struct {
	ListingID    string  `json:"listing_id"`
	CurrentPrice float64 `json:"current_price"`
}
