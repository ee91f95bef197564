package services

import (
	"github.com/adityakhanna/shopwise/internal/domain/entities"
)

// Context is the per-query mutable bag handed between specialists within a
// single request. Currently only product IDs flow through it: the filter
// specialist writes them and the review specialist reads them on the
// complex-search path. Brand and category let a caller pre-pin filters.
type Context struct {
	ProductIDs []string
	Brand      string
	Category   string
}

// CatalogResultType identifies the shape of a catalog specialist result
type CatalogResultType string

// Catalog result shapes
const (
	ResultProducts       CatalogResultType = "products"
	ResultCount          CatalogResultType = "count"
	ResultList           CatalogResultType = "list"
	ResultProductDetails CatalogResultType = "product_details"
)

// CountResult carries the payload of a counting query
type CountResult struct {
	Type       string              `json:"type"`
	Category   string              `json:"category,omitempty"`
	Count      int                 `json:"count"`
	Brands     []string            `json:"brands,omitempty"`
	Categories []string            `json:"categories,omitempty"`
	Products   []*entities.Product `json:"products,omitempty"`
}

// ListResult carries a brand or category enumeration
type ListResult struct {
	Brands     []string `json:"brands,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// CatalogResult is the outcome of the catalog specialist
type CatalogResult struct {
	ResultType CatalogResultType
	Products   []*entities.Product
	Count      *CountResult
	List       *ListResult
	Detail     *entities.Product
	Trace      []string
	Success    bool
}

// FilterResult is the outcome of the filter specialist. Products are ordered
// by price ascending. Success is false on an empty result, with the attempted
// constraints kept for the "no matches" message.
type FilterResult struct {
	Products    []*entities.Product
	Constraints entities.ConstraintSet
	Trace       []string
	Success     bool
}

// ReviewItem pairs a product with its sentiment and optional review excerpts
type ReviewItem struct {
	Product         *entities.Product         `json:"product"`
	Sentiment       entities.SentimentSummary `json:"sentiment"`
	RelevantReviews []entities.Review         `json:"relevant_reviews,omitempty"`
}

// ReviewResult is the outcome of the review specialist
type ReviewResult struct {
	Items   []ReviewItem
	Trace   []string
	Success bool
}

// CompareResult is the outcome of the compare specialist. Failure leaves
// Comparison and Recommendation nil and sets Err to a user-presentable cause.
type CompareResult struct {
	Comparison     *entities.Comparison
	Recommendation *entities.Recommendation
	Trace          []string
	Success        bool
	Err            string
}
