package main

import (
	"fmt"
	"os"

	auction "auction-house/internal/auctionService"
	comment "auction-house/internal/commentService"
	"auction-house/internal/config"
	listing "auction-house/internal/listingService"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	watchlist "auction-house/internal/watchlistService"
	"auction-house/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	utils.SetLevel(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	repo, err := openRepo(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open store: %v\n", err)
		os.Exit(1)
	}

	if err := seedCategories(repo); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed categories: %v\n", err)
		os.Exit(1)
	}

	auctionSvc := auction.NewAuctionService(repo)
	listingSvc := listing.NewListingService(repo)
	watchlistSvc := watchlist.NewWatchlistService(repo)
	commentSvc := comment.NewCommentService(repo)

	router := server.SetupRouter(auctionSvc, listingSvc, watchlistSvc, commentSvc)

	addr := ":" + cfg.Port
	fmt.Printf("Starting auction server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// openRepo selects the Postgres store when DB_DSN is set, otherwise the
// in-memory store
func openRepo(cfg *config.Config) (repository.AuctionDB, error) {
	if cfg.DBDSN == "" {
		utils.Info("using in-memory store", nil)
		return repository.NewMemoryRepo(), nil
	}
	utils.Info("using postgres store", nil)
	return repository.NewGormRepo(cfg.DBDSN)
}

// seedCategories installs the browsing categories
func seedCategories(repo repository.AuctionDB) error {
	names := []string{"Electronics", "Fashion", "Home", "Sports", "Toys"}

	for _, name := range names {
		if _, err := repo.GetCategoryByName(name); err == nil {
			continue
		}
		category := models.Category{CategoryID: utils.GenerateID(), Name: name}
		if err := repo.AddCategory(category); err != nil {
			return err
		}
	}
	return nil
}
