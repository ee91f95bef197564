package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/adityakhanna/shopwise/internal/application/services"
	"github.com/adityakhanna/shopwise/internal/domain/entities"
)

// BrowseService defines the catalog browse operations used by the handler.
type BrowseService interface {
	Brands(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
	ProductsByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error)
	Product(ctx context.Context, id string) (*entities.Product, error)
	TopRated(ctx context.Context, minReviews, limit int) ([]services.RatedProduct, error)
}

// SimilarityService finds alternatives to a given product.
type SimilarityService interface {
	FindSimilar(ctx context.Context, productID string, limit int) ([]*entities.Product, error)
}

// BrowseHandler serves the catalog browse endpoints.
type BrowseHandler struct {
	browse  BrowseService
	similar SimilarityService
}

// NewBrowseHandler creates a new browse handler.
func NewBrowseHandler(browse BrowseService, similar SimilarityService) *BrowseHandler {
	return &BrowseHandler{browse: browse, similar: similar}
}

// ListBrands handles GET /api/brands
func (h *BrowseHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.browse.Brands(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list brands")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"brands": brands,
		"count":  len(brands),
	})
}

// ListCategories handles GET /api/categories
func (h *BrowseHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.browse.Categories(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// ListProducts handles GET /api/products?category=...&limit=...
func (h *BrowseHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		respondWithError(w, http.StatusBadRequest, "category query parameter is required")
		return
	}

	products, err := h.browse.ProductsByCategory(r.Context(), category, parseLimit(r, 20))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct handles GET /api/products/{id}
func (h *BrowseHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "product id is required")
		return
	}

	product, err := h.browse.Product(r.Context(), id)
	if err != nil {
		respondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

// GetSimilarProducts handles GET /api/products/{id}/similar
func (h *BrowseHandler) GetSimilarProducts(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "product id is required")
		return
	}

	products, err := h.similar.FindSimilar(r.Context(), id, parseLimit(r, 5))
	if err != nil {
		respondWithError(w, http.StatusNotFound, "product not found")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}

// GetTopRated handles GET /api/products/top-rated?min_reviews=...&limit=...
func (h *BrowseHandler) GetTopRated(w http.ResponseWriter, r *http.Request) {
	minReviews := 1
	if raw := r.URL.Query().Get("min_reviews"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(w, http.StatusBadRequest, "min_reviews must be a non-negative integer")
			return
		}
		minReviews = parsed
	}

	rated, err := h.browse.TopRated(r.Context(), minReviews, parseLimit(r, 10))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to rank products")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": rated,
		"count":    len(rated),
	})
}

func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 100 {
		return fallback
	}
	return limit
}
