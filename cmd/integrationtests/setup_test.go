package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	auction "auction-house/internal/auctionService"
	comment "auction-house/internal/commentService"
	listing "auction-house/internal/listingService"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	watchlist "auction-house/internal/watchlistService"

	"github.com/gin-gonic/gin"
)

// SetupTestRouter initializes the full router backed by an in-memory
// repository and returns both for seeding and inspection.
func SetupTestRouter(t *testing.T) (*gin.Engine, *repository.MemoryRepo) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	repo := repository.NewMemoryRepo()

	auctionSvc := auction.NewAuctionService(repo)
	listingSvc := listing.NewListingService(repo)
	watchlistSvc := watchlist.NewWatchlistService(repo)
	commentSvc := comment.NewCommentService(repo)

	router := server.SetupRouter(auctionSvc, listingSvc, watchlistSvc, commentSvc)
	return router, repo
}

// SeedCategories installs named categories on the repo and returns them
func SeedCategories(t *testing.T, repo *repository.MemoryRepo, names ...string) []model.Category {
	t.Helper()

	categories := make([]model.Category, 0, len(names))
	for i, name := range names {
		c := model.Category{CategoryID: names[i] + "-id", Name: name}
		if err := repo.AddCategory(c); err != nil {
			t.Fatalf("failed to seed category %s: %v", name, err)
		}
		categories = append(categories, c)
	}
	return categories
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// parses the JSON envelope response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// CreateListingViaAPI creates a listing through the HTTP surface and returns
// its listing_id
func CreateListingViaAPI(t *testing.T, router *gin.Engine, ownerID, title string, price float64, categoryID string) string {
	t.Helper()

	body := map[string]any{
		"owner_id":       ownerID,
		"title":          title,
		"starting_price": price,
	}
	if categoryID != "" {
		body["category_id"] = categoryID
	}

	resp, w := ExecuteRequestAndParse(t, router, "POST", "/listings", body)
	if w.Code != 201 {
		t.Fatalf("failed to create listing %q: status %d, body %s", title, w.Code, w.Body.String())
	}
	data := resp["data"].(map[string]any)
	return data["listing_id"].(string)
}
