package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
)

// Row types are private to this adapter so the domain structs carry no
// persistence tags.

type categoryRow struct {
	ID   string `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

func (categoryRow) TableName() string { return "categories" }

type listingRow struct {
	ID            string `gorm:"primaryKey"`
	Title         string `gorm:"not null"`
	Description   string `gorm:"type:text"`
	ImageURL      string
	StartingPrice float64 `gorm:"not null"`
	FinalPrice    float64
	IsActive      bool    `gorm:"not null;index"`
	CategoryID    *string `gorm:"index"`
	OwnerID       string  `gorm:"not null;index"`
	WinnerID      *string
	CreatedAt     time.Time

	Category *categoryRow `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
}

func (listingRow) TableName() string { return "listings" }

type bidRow struct {
	ID        string  `gorm:"primaryKey"`
	ListingID string  `gorm:"not null;index"`
	BidderID  string  `gorm:"not null"`
	Amount    float64 `gorm:"not null"`
	CreatedAt time.Time
}

func (bidRow) TableName() string { return "bids" }

type commentRow struct {
	Seq       int64  `gorm:"primaryKey;autoIncrement"`
	ID        string `gorm:"uniqueIndex;not null"`
	ListingID string `gorm:"not null;index"`
	AuthorID  string `gorm:"not null"`
	Message   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (commentRow) TableName() string { return "comments" }

type watchRow struct {
	UserID    string `gorm:"primaryKey"`
	ListingID string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (watchRow) TableName() string { return "watchlist_entries" }

// GormRepo is a Postgres-backed implementation of AuctionDB. Mutations that
// read before writing run in a transaction holding a row lock on the
// listing, so concurrent bids and closes serialize per listing.
type GormRepo struct {
	db *gorm.DB
}

// NewGormRepo opens the database and migrates the schema
func NewGormRepo(dsn string) (*GormRepo, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&categoryRow{}, &listingRow{}, &bidRow{}, &commentRow{}, &watchRow{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return &GormRepo{db: db}, nil
}

func toListingRow(l model.Listing) listingRow {
	row := listingRow{
		ID:            l.ListingID,
		Title:         l.Title,
		Description:   l.Description,
		ImageURL:      l.ImageURL,
		StartingPrice: l.StartingPrice,
		FinalPrice:    l.FinalPrice,
		IsActive:      l.IsActive,
		OwnerID:       l.OwnerID,
		CreatedAt:     l.CreatedAt,
	}
	if l.CategoryID != "" {
		row.CategoryID = &l.CategoryID
	}
	if l.WinnerID != "" {
		row.WinnerID = &l.WinnerID
	}
	return row
}

func fromListingRow(row listingRow) model.Listing {
	l := model.Listing{
		ListingID:     row.ID,
		Title:         row.Title,
		Description:   row.Description,
		ImageURL:      row.ImageURL,
		StartingPrice: row.StartingPrice,
		FinalPrice:    row.FinalPrice,
		IsActive:      row.IsActive,
		OwnerID:       row.OwnerID,
		CreatedAt:     row.CreatedAt,
	}
	if row.CategoryID != nil {
		l.CategoryID = *row.CategoryID
	}
	if row.WinnerID != nil {
		l.WinnerID = *row.WinnerID
	}
	return l
}

func fromBidRow(row bidRow) model.Bid {
	return model.Bid{
		BidID:     row.ID,
		ListingID: row.ListingID,
		BidderID:  row.BidderID,
		Amount:    row.Amount,
		CreatedAt: row.CreatedAt,
	}
}

// CreateListing stores a new listing
func (r *GormRepo) CreateListing(listing model.Listing) error {
	if listing.CategoryID != "" {
		var count int64
		if err := r.db.Model(&categoryRow{}).Where("id = ?", listing.CategoryID).Count(&count).Error; err != nil {
			return fmt.Errorf("create listing %s: %w", listing.ListingID, err)
		}
		if count == 0 {
			return fmt.Errorf("create listing %s: %w", listing.ListingID, auctionerrors.ErrCategoryNotFound)
		}
	}

	row := toListingRow(listing)
	if err := r.db.Create(&row).Error; err != nil {
		return fmt.Errorf("create listing %s: %w", listing.ListingID, err)
	}
	return nil
}

// GetListing returns a listing by ID
func (r *GormRepo) GetListing(listingID string) (model.Listing, error) {
	var row listingRow
	if err := r.db.First(&row, "id = ?", listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
		}
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, err)
	}
	return fromListingRow(row), nil
}

// ActiveListings returns all open listings, newest first
func (r *GormRepo) ActiveListings() ([]model.Listing, error) {
	var rows []listingRow
	if err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("active listings: %w", err)
	}
	listings := make([]model.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, fromListingRow(row))
	}
	return listings, nil
}

// ListingsByCategory returns open listings in a category, newest first
func (r *GormRepo) ListingsByCategory(categoryID string) ([]model.Listing, error) {
	var count int64
	if err := r.db.Model(&categoryRow{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("listings for category %s: %w", categoryID, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("listings for category %s: %w", categoryID, auctionerrors.ErrCategoryNotFound)
	}

	var rows []listingRow
	if err := r.db.Where("is_active = ? AND category_id = ?", true, categoryID).
		Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listings for category %s: %w", categoryID, err)
	}
	listings := make([]model.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, fromListingRow(row))
	}
	return listings, nil
}

// CloseListing performs the open->closed transition in a transaction holding
// a row lock on the listing
func (r *GormRepo) CloseListing(listingID string) (model.Listing, error) {
	var closed model.Listing
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var row listingRow
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return auctionerrors.ErrListingNotFound
			}
			return err
		}
		if !row.IsActive {
			return auctionerrors.ErrAlreadyClosed
		}

		var winning bidRow
		err := tx.Where("listing_id = ?", listingID).
			Order("amount DESC, created_at ASC").First(&winning).Error
		switch {
		case err == nil:
			row.WinnerID = &winning.BidderID
			row.FinalPrice = winning.Amount
		case errors.Is(err, gorm.ErrRecordNotFound):
			// closed without winner
		default:
			return err
		}

		row.IsActive = false
		if err := tx.Save(&row).Error; err != nil {
			return err
		}
		closed = fromListingRow(row)
		return nil
	})
	if err != nil {
		return model.Listing{}, fmt.Errorf("close listing %s: %w", listingID, err)
	}
	return closed, nil
}

// RecordBid appends a bid after checking the floor under a row lock
func (r *GormRepo) RecordBid(bid model.Bid) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var row listingRow
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, "id = ?", bid.ListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return auctionerrors.ErrListingNotFound
			}
			return err
		}
		if !row.IsActive {
			return auctionerrors.ErrAuctionClosed
		}

		floor := row.StartingPrice
		var winning bidRow
		err := tx.Where("listing_id = ?", bid.ListingID).
			Order("amount DESC, created_at ASC").First(&winning).Error
		switch {
		case err == nil:
			floor = winning.Amount
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first bid, floor stays at the starting price
		default:
			return err
		}
		if bid.Amount <= floor {
			return fmt.Errorf("%w - current floor is %.2f", auctionerrors.ErrBidTooLow, floor)
		}

		return tx.Create(&bidRow{
			ID:        bid.BidID,
			ListingID: bid.ListingID,
			BidderID:  bid.BidderID,
			Amount:    bid.Amount,
			CreatedAt: bid.CreatedAt,
		}).Error
	})
	if err != nil {
		return fmt.Errorf("record bid for listing %s: %w", bid.ListingID, err)
	}
	return nil
}

// GetBidsByListing returns all bids for a listing
func (r *GormRepo) GetBidsByListing(listingID string) ([]model.Bid, error) {
	if _, err := r.GetListing(listingID); err != nil {
		return nil, err
	}
	var rows []bidRow
	if err := r.db.Where("listing_id = ?", listingID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, err)
	}
	bids := make([]model.Bid, 0, len(rows))
	for _, row := range rows {
		bids = append(bids, fromBidRow(row))
	}
	return bids, nil
}

// GetWinningBid returns the highest bid for a listing
func (r *GormRepo) GetWinningBid(listingID string) (model.Bid, error) {
	if _, err := r.GetListing(listingID); err != nil {
		return model.Bid{}, err
	}
	var row bidRow
	err := r.db.Where("listing_id = ?", listingID).Order("amount DESC, created_at ASC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Bid{}, fmt.Errorf("get winning bid for listing %s: %w", listingID, auctionerrors.ErrNoBids)
		}
		return model.Bid{}, fmt.Errorf("get winning bid for listing %s: %w", listingID, err)
	}
	return fromBidRow(row), nil
}

// ToggleWatch flips watchlist membership for a (user, listing) pair. The
// composite primary key makes a racing double-insert fail with a
// duplicate-key error, reported as ErrWatchConflict.
func (r *GormRepo) ToggleWatch(userID, listingID string) (bool, error) {
	if _, err := r.GetListing(listingID); err != nil {
		return false, err
	}

	var added bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND listing_id = ?", userID, listingID).Delete(&watchRow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			added = false
			return nil
		}
		if err := tx.Create(&watchRow{UserID: userID, ListingID: listingID, CreatedAt: time.Now().UTC()}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return auctionerrors.ErrWatchConflict
			}
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("toggle watch for listing %s: %w", listingID, err)
	}
	return added, nil
}

// GetWatchedListings returns the listings a user watches, in watch order
func (r *GormRepo) GetWatchedListings(userID string) ([]model.Listing, error) {
	var rows []listingRow
	err := r.db.Joins("JOIN watchlist_entries w ON w.listing_id = listings.id").
		Where("w.user_id = ?", userID).Order("w.created_at ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("get watchlist for user %s: %w", userID, err)
	}
	listings := make([]model.Listing, 0, len(rows))
	for _, row := range rows {
		listings = append(listings, fromListingRow(row))
	}
	return listings, nil
}

// AddComment appends a comment to a listing
func (r *GormRepo) AddComment(comment model.Comment) error {
	if _, err := r.GetListing(comment.ListingID); err != nil {
		return err
	}
	row := commentRow{
		ID:        comment.CommentID,
		ListingID: comment.ListingID,
		AuthorID:  comment.AuthorID,
		Message:   comment.Message,
		CreatedAt: comment.CreatedAt,
	}
	if err := r.db.Create(&row).Error; err != nil {
		return fmt.Errorf("add comment for listing %s: %w", comment.ListingID, err)
	}
	return nil
}

// GetCommentsByListing returns comments newest first; the sequence column
// keeps insertion order among equal timestamps
func (r *GormRepo) GetCommentsByListing(listingID string) ([]model.Comment, error) {
	if _, err := r.GetListing(listingID); err != nil {
		return nil, err
	}
	var rows []commentRow
	if err := r.db.Where("listing_id = ?", listingID).
		Order("created_at DESC, seq ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get comments for listing %s: %w", listingID, err)
	}
	comments := make([]model.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, model.Comment{
			CommentID: row.ID,
			ListingID: row.ListingID,
			AuthorID:  row.AuthorID,
			Message:   row.Message,
			CreatedAt: row.CreatedAt,
		})
	}
	return comments, nil
}

// AddCategory stores a category, skipping names that already exist so
// startup seeding stays idempotent
func (r *GormRepo) AddCategory(category model.Category) error {
	row := categoryRow{ID: category.CategoryID, Name: category.Name}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("add category %s: %w", category.Name, err)
	}
	return nil
}

// ListCategories returns all categories ordered alphabetically by name
func (r *GormRepo) ListCategories() ([]model.Category, error) {
	var rows []categoryRow
	if err := r.db.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]model.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, model.Category{CategoryID: row.ID, Name: row.Name})
	}
	return categories, nil
}

// GetCategoryByName looks up a category by its unique name
func (r *GormRepo) GetCategoryByName(name string) (model.Category, error) {
	var row categoryRow
	if err := r.db.First(&row, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Category{}, fmt.Errorf("get category %s: %w", name, auctionerrors.ErrCategoryNotFound)
		}
		return model.Category{}, fmt.Errorf("get category %s: %w", name, err)
	}
	return model.Category{CategoryID: row.ID, Name: row.Name}, nil
}
