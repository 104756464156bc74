package server

import (
	auction "auction-house/internal/auctionService"
	comment "auction-house/internal/commentService"
	listing "auction-house/internal/listingService"
	watchlist "auction-house/internal/watchlistService"
	handler "auction-house/services/auctions/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(
	auctionService *auction.AuctionService,
	listingService *listing.ListingService,
	watchlistService *watchlist.WatchlistService,
	commentService *comment.CommentService,
) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(auctionService)
	listingHandler := handler.NewListingHandler(listingService)
	watchlistHandler := handler.NewWatchlistHandler(watchlistService)
	commentHandler := handler.NewCommentHandler(commentService)

	bids := router.Group("/bids")
	{
		bids.POST("", auctionHandler.PlaceBidHandler)
	}

	listings := router.Group("/listings")
	{
		listings.POST("", listingHandler.CreateListingHandler)
		listings.GET("", listingHandler.ActiveListingsHandler)
		listings.GET("/:listing_id", listingHandler.GetListingHandler)
		listings.GET("/:listing_id/price", auctionHandler.GetCurrentPriceHandler)
		listings.GET("/:listing_id/bids", auctionHandler.GetBidsByListingHandler)
		listings.GET("/:listing_id/winning", auctionHandler.GetWinningBidHandler)
		listings.POST("/:listing_id/close", auctionHandler.CloseAuctionHandler)
		listings.POST("/:listing_id/watch", watchlistHandler.ToggleWatchHandler)
		listings.POST("/:listing_id/comments", commentHandler.AddCommentHandler)
		listings.GET("/:listing_id/comments", commentHandler.GetCommentsHandler)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", listingHandler.ListCategoriesHandler)
		categories.GET("/:name/listings", listingHandler.ListingsByCategoryHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/watchlist", watchlistHandler.GetWatchlistHandler)
	}

	return router
}
