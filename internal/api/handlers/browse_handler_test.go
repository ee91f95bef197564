package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityakhanna/shopwise/internal/api/handlers"
	"github.com/adityakhanna/shopwise/internal/application/services"
	"github.com/adityakhanna/shopwise/internal/domain/entities"
)

type stubBrowseService struct {
	brands     []string
	categories []string
	products   []*entities.Product
}

func (s *stubBrowseService) Brands(ctx context.Context) ([]string, error) {
	return s.brands, nil
}

func (s *stubBrowseService) Categories(ctx context.Context) ([]string, error) {
	return s.categories, nil
}

func (s *stubBrowseService) ProductsByCategory(ctx context.Context, category string, limit int) ([]*entities.Product, error) {
	var out []*entities.Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *stubBrowseService) Product(ctx context.Context, id string) (*entities.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("product %s not found", id)
}

func (s *stubBrowseService) TopRated(ctx context.Context, minReviews, limit int) ([]services.RatedProduct, error) {
	var rated []services.RatedProduct
	for _, p := range s.products {
		sentiment := entities.SummarizeReviews(p.ID, p.Reviews)
		if sentiment.ReviewCount >= minReviews {
			rated = append(rated, services.RatedProduct{Product: p, Sentiment: sentiment})
		}
	}
	return rated, nil
}

type stubSimilarityService struct {
	products []*entities.Product
	err      error
}

func (s *stubSimilarityService) FindSimilar(ctx context.Context, productID string, limit int) ([]*entities.Product, error) {
	return s.products, s.err
}

func browseFixture() *stubBrowseService {
	return &stubBrowseService{
		brands:     []string{"Apple", "Samsung"},
		categories: []string{"Laptops", "Smartphones"},
		products: []*entities.Product{
			{ID: "p1", Name: "Galaxy S24", Brand: "Samsung", Category: "Smartphones", Price: 75000,
				Reviews: []entities.Review{{Rating: 4.5, Text: "great phone"}}},
			{ID: "p2", Name: "MacBook Air M2", Brand: "Apple", Category: "Laptops", Price: 99000},
		},
	}
}

func TestBrowseHandler_ListBrands(t *testing.T) {
	handler := handlers.NewBrowseHandler(browseFixture(), &stubSimilarityService{})

	req := httptest.NewRequest("GET", "/api/brands", nil)
	w := httptest.NewRecorder()
	handler.ListBrands(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, float64(2), response["count"])
	assert.Equal(t, []interface{}{"Apple", "Samsung"}, response["brands"])
}

func TestBrowseHandler_ListProducts_RequiresCategory(t *testing.T) {
	handler := handlers.NewBrowseHandler(browseFixture(), &stubSimilarityService{})

	req := httptest.NewRequest("GET", "/api/products", nil)
	w := httptest.NewRecorder()
	handler.ListProducts(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBrowseHandler_ListProducts_ByCategory(t *testing.T) {
	handler := handlers.NewBrowseHandler(browseFixture(), &stubSimilarityService{})

	req := httptest.NewRequest("GET", "/api/products?category=Smartphones", nil)
	w := httptest.NewRecorder()
	handler.ListProducts(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, float64(1), response["count"])
}

func TestBrowseHandler_GetProduct_NotFound(t *testing.T) {
	handler := handlers.NewBrowseHandler(browseFixture(), &stubSimilarityService{})

	req := httptest.NewRequest("GET", "/api/products/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	handler.GetProduct(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBrowseHandler_GetProduct(t *testing.T) {
	handler := handlers.NewBrowseHandler(browseFixture(), &stubSimilarityService{})

	req := httptest.NewRequest("GET", "/api/products/p1", nil)
	req.SetPathValue("id", "p1")
	w := httptest.NewRecorder()
	handler.GetProduct(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var product entities.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&product))
	assert.Equal(t, "Galaxy S24", product.Name)
}

func TestBrowseHandler_GetTopRated_FiltersByReviewCount(t *testing.T) {
	handler := handlers.NewBrowseHandler(browseFixture(), &stubSimilarityService{})

	req := httptest.NewRequest("GET", "/api/products/top-rated?min_reviews=1", nil)
	w := httptest.NewRecorder()
	handler.GetTopRated(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, float64(1), response["count"])
}

func TestBrowseHandler_GetSimilarProducts(t *testing.T) {
	similar := &stubSimilarityService{products: []*entities.Product{
		{ID: "p3", Name: "Pixel 8", Brand: "Google", Category: "Smartphones", Price: 70000},
	}}
	handler := handlers.NewBrowseHandler(browseFixture(), similar)

	req := httptest.NewRequest("GET", "/api/products/p1/similar", nil)
	req.SetPathValue("id", "p1")
	w := httptest.NewRecorder()
	handler.GetSimilarProducts(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, float64(1), response["count"])
}
