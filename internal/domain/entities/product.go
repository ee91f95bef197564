package entities

import (
	"time"
)

// Product represents a catalog product with its open-ended specifications
type Product struct {
	ID        string            `json:"id" db:"id"`
	Name      string            `json:"name" db:"name"`
	Brand     string            `json:"brand" db:"brand"`
	Category  string            `json:"category" db:"category"`
	Price     float64           `json:"price" db:"price"`
	Specs     map[string]string `json:"specs,omitempty" db:"-"`
	Reviews   []Review          `json:"reviews,omitempty" db:"-"`
	Tags      []string          `json:"tags,omitempty" db:"-"`
	IsActive  bool              `json:"is_active" db:"is_active"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

// Review represents a single customer review of a product
type Review struct {
	Rating float64 `json:"rating" db:"rating"`
	Text   string  `json:"text" db:"text"`
}

// AverageRating returns the mean rating over the product's reviews, 0 when none exist
func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return sum / float64(len(p.Reviews))
}
