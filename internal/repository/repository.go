package repository

import (
	"fmt"
	"sort"
	"sync"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
)

// AuctionDB defines the storage interface for the auction marketplace.
//
// The store is the single point of shared mutation: implementations must make
// each mutating operation atomic with respect to concurrent writers on the
// same listing (and, for the watchlist, the same (user, listing) pair). The
// stateful invariants - the bid floor, the open/closed check and the
// one-shot close transition - are enforced here, inside the critical section.
type AuctionDB interface {
	CreateListing(listing model.Listing) error
	GetListing(listingID string) (model.Listing, error)
	ActiveListings() ([]model.Listing, error)
	ListingsByCategory(categoryID string) ([]model.Listing, error)

	// CloseListing flips an open listing to closed and assigns the winner
	// and final price from the highest bid, if any. Returns the updated
	// listing. Fails with ErrAlreadyClosed on a closed listing.
	CloseListing(listingID string) (model.Listing, error)

	// RecordBid appends a bid after checking, atomically, that the listing
	// is open and that the amount strictly exceeds the current floor.
	RecordBid(bid model.Bid) error
	GetBidsByListing(listingID string) ([]model.Bid, error)
	GetWinningBid(listingID string) (model.Bid, error)

	// ToggleWatch adds the (user, listing) entry if absent, removes it if
	// present. Returns true when the entry was added. Implementations backed
	// by a unique index report a duplicate-key race as ErrWatchConflict.
	ToggleWatch(userID, listingID string) (bool, error)
	GetWatchedListings(userID string) ([]model.Listing, error)

	AddComment(comment model.Comment) error
	GetCommentsByListing(listingID string) ([]model.Comment, error)

	AddCategory(category model.Category) error
	ListCategories() ([]model.Category, error)
	GetCategoryByName(name string) (model.Category, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu           sync.RWMutex
	listings     map[string]model.Listing
	listingOrder []string                          // listing IDs in creation order
	bids         map[string][]model.Bid            // key: listingID
	comments     map[string][]model.Comment        // key: listingID
	watchlists   map[string][]model.WatchlistEntry // key: userID
	categories   map[string]model.Category         // key: categoryID
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		listings:   make(map[string]model.Listing),
		bids:       make(map[string][]model.Bid),
		comments:   make(map[string][]model.Comment),
		watchlists: make(map[string][]model.WatchlistEntry),
		categories: make(map[string]model.Category),
	}
}

// CreateListing stores a new listing
func (r *MemoryRepo) CreateListing(listing model.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if listing.CategoryID != "" {
		if _, ok := r.categories[listing.CategoryID]; !ok {
			return fmt.Errorf("create listing %s: %w", listing.ListingID, auctionerrors.ErrCategoryNotFound)
		}
	}

	r.listings[listing.ListingID] = listing
	r.listingOrder = append(r.listingOrder, listing.ListingID)
	return nil
}

// GetListing returns a listing by ID
func (r *MemoryRepo) GetListing(listingID string) (model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[listingID]
	if !ok {
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return listing, nil
}

// ActiveListings returns all open listings, newest first
func (r *MemoryRepo) ActiveListings() ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listings := make([]model.Listing, 0)
	for i := len(r.listingOrder) - 1; i >= 0; i-- {
		if l := r.listings[r.listingOrder[i]]; l.IsActive {
			listings = append(listings, l)
		}
	}
	return listings, nil
}

// ListingsByCategory returns open listings in a category, newest first
func (r *MemoryRepo) ListingsByCategory(categoryID string) ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.categories[categoryID]; !ok {
		return nil, fmt.Errorf("listings for category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
	}

	listings := make([]model.Listing, 0)
	for i := len(r.listingOrder) - 1; i >= 0; i-- {
		if l := r.listings[r.listingOrder[i]]; l.IsActive && l.CategoryID == categoryID {
			listings = append(listings, l)
		}
	}
	return listings, nil
}

// CloseListing performs the open->closed transition atomically
func (r *MemoryRepo) CloseListing(listingID string) (model.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[listingID]
	if !ok {
		return model.Listing{}, fmt.Errorf("close listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	if !listing.IsActive {
		return model.Listing{}, fmt.Errorf("close listing %s: %w", listingID, auctionerrors.ErrAlreadyClosed)
	}

	if winning, ok := winningBid(r.bids[listingID]); ok {
		listing.WinnerID = winning.BidderID
		listing.FinalPrice = winning.Amount
	}
	listing.IsActive = false
	r.listings[listingID] = listing
	return listing, nil
}

// RecordBid records a user's bid on a listing
func (r *MemoryRepo) RecordBid(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[bid.ListingID]
	if !ok {
		return fmt.Errorf("record bid for listing %s: %w", bid.ListingID, auctionerrors.ErrListingNotFound)
	}
	if !listing.IsActive {
		return fmt.Errorf("record bid for listing %s: %w", bid.ListingID, auctionerrors.ErrAuctionClosed)
	}

	floor := listing.StartingPrice
	if winning, ok := winningBid(r.bids[bid.ListingID]); ok {
		floor = winning.Amount
	}
	if bid.Amount <= floor {
		return fmt.Errorf("record bid for listing %s: %w - current floor is %.2f", bid.ListingID, auctionerrors.ErrBidTooLow, floor)
	}

	r.bids[bid.ListingID] = append(r.bids[bid.ListingID], bid)
	return nil
}

// GetBidsByListing returns all bids for a listing
func (r *MemoryRepo) GetBidsByListing(listingID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.listings[listingID]; !ok {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return append([]model.Bid(nil), r.bids[listingID]...), nil
}

// GetWinningBid returns the highest bid for a listing
func (r *MemoryRepo) GetWinningBid(listingID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.listings[listingID]; !ok {
		return model.Bid{}, fmt.Errorf("get winning bid for listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	winning, ok := winningBid(r.bids[listingID])
	if !ok {
		return model.Bid{}, fmt.Errorf("get winning bid for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	return winning, nil
}

// winningBid picks the highest bid; the earliest bid wins amount ties.
// Callers must hold the lock.
func winningBid(bids []model.Bid) (model.Bid, bool) {
	if len(bids) == 0 {
		return model.Bid{}, false
	}
	winning := bids[0]
	for _, b := range bids[1:] {
		if b.Amount > winning.Amount || (b.Amount == winning.Amount && b.CreatedAt.Before(winning.CreatedAt)) {
			winning = b
		}
	}
	return winning, true
}

// ToggleWatch flips watchlist membership for a (user, listing) pair
func (r *MemoryRepo) ToggleWatch(userID, listingID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[listingID]; !ok {
		return false, fmt.Errorf("toggle watch for listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}

	entries := r.watchlists[userID]
	for i, e := range entries {
		if e.ListingID == listingID {
			r.watchlists[userID] = append(entries[:i], entries[i+1:]...)
			return false, nil
		}
	}
	r.watchlists[userID] = append(entries, model.WatchlistEntry{UserID: userID, ListingID: listingID})
	return true, nil
}

// GetWatchedListings returns the listings a user watches, in watch order
func (r *MemoryRepo) GetWatchedListings(userID string) ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listings := make([]model.Listing, 0, len(r.watchlists[userID]))
	for _, e := range r.watchlists[userID] {
		if l, ok := r.listings[e.ListingID]; ok {
			listings = append(listings, l)
		}
	}
	return listings, nil
}

// AddComment appends a comment to a listing
func (r *MemoryRepo) AddComment(comment model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[comment.ListingID]; !ok {
		return fmt.Errorf("add comment for listing %s: %w", comment.ListingID, auctionerrors.ErrListingNotFound)
	}
	r.comments[comment.ListingID] = append(r.comments[comment.ListingID], comment)
	return nil
}

// GetCommentsByListing returns comments newest first; comments with equal
// timestamps keep their insertion order.
func (r *MemoryRepo) GetCommentsByListing(listingID string) ([]model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.listings[listingID]; !ok {
		return nil, fmt.Errorf("get comments for listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}

	comments := append([]model.Comment(nil), r.comments[listingID]...)
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

// AddCategory stores a category. Names are unique.
func (r *MemoryRepo) AddCategory(category model.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.Name == category.Name {
			return fmt.Errorf("add category %s: name already exists", category.Name)
		}
	}
	r.categories[category.CategoryID] = category
	return nil
}

// ListCategories returns all categories ordered alphabetically by name
func (r *MemoryRepo) ListCategories() ([]model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

// GetCategoryByName looks up a category by its unique name
func (r *MemoryRepo) GetCategoryByName(name string) (model.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Category{}, fmt.Errorf("get category %s: %w", name, auctionerrors.ErrCategoryNotFound)
}
