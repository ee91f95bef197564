package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laptopCatalog() *stubCatalog {
	return newStubCatalog(
		demoProduct("l1", "Dell Inspiron 15", "Dell", "Laptops", 55000, 4),
		demoProduct("l2", "HP Pavilion 14", "HP", "Laptops", 62000, 4.5),
		demoProduct("l3", "Apple MacBook Air M2", "Apple", "Laptops", 99000, 5),
		demoProduct("l4", "Lenovo IdeaPad 3", "Lenovo", "Laptops", 38000, 3.5),
		demoProduct("p1", "Galaxy S24", "Samsung", "Smartphones", 75000, 4.6),
	)
}

func TestExtractConstraintsUnder(t *testing.T) {
	specialist := NewFilterSpecialist(laptopCatalog())

	constraints, err := specialist.ExtractConstraints(context.Background(), "Find me laptops under ₹50,000", nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, constraints.MinPrice)
	assert.Equal(t, 50000.0, constraints.MaxPrice)
	assert.Equal(t, "Laptops", constraints.Category)
}

func TestExtractConstraintsBetween(t *testing.T) {
	specialist := NewFilterSpecialist(laptopCatalog())

	constraints, err := specialist.ExtractConstraints(context.Background(), "phones between ₹20,000 and ₹40,000", nil)
	require.NoError(t, err)

	assert.Equal(t, 20000.0, constraints.MinPrice)
	assert.Equal(t, 40000.0, constraints.MaxPrice)
	assert.Equal(t, "Smartphones", constraints.Category)
}

func TestExtractConstraintsAround(t *testing.T) {
	specialist := NewFilterSpecialist(laptopCatalog())

	constraints, err := specialist.ExtractConstraints(context.Background(), "something around ₹10,000", nil)
	require.NoError(t, err)

	assert.InDelta(t, 8000.0, constraints.MinPrice, 0.001)
	assert.InDelta(t, 12000.0, constraints.MaxPrice, 0.001)
}

func TestExtractConstraintsDefaultsUnbounded(t *testing.T) {
	specialist := NewFilterSpecialist(laptopCatalog())

	constraints, err := specialist.ExtractConstraints(context.Background(), "show laptops", nil)
	require.NoError(t, err)

	assert.Equal(t, 0.0, constraints.MinPrice)
	assert.True(t, math.IsInf(constraints.MaxPrice, 1))
}

func TestExtractConstraintsBrandAndContextPrecedence(t *testing.T) {
	specialist := NewFilterSpecialist(laptopCatalog())

	constraints, err := specialist.ExtractConstraints(context.Background(), "dell laptops under ₹60000", nil)
	require.NoError(t, err)
	assert.Equal(t, "Dell", constraints.Brand)

	// Context-supplied brand wins over the one in the text
	constraints, err = specialist.ExtractConstraints(context.Background(), "dell laptops under ₹60000", &Context{Brand: "HP"})
	require.NoError(t, err)
	assert.Equal(t, "HP", constraints.Brand)
}

func TestFilterProcessSortsAscendingWithinBudget(t *testing.T) {
	specialist := NewFilterSpecialist(laptopCatalog())

	result, err := specialist.Process(context.Background(), "Find me laptops under ₹80000", nil)
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, result.Products, 3)
	for i, p := range result.Products {
		assert.LessOrEqual(t, p.Price, 80000.0)
		if i > 0 {
			assert.GreaterOrEqual(t, p.Price, result.Products[i-1].Price)
		}
	}
	assert.Equal(t, "Laptops", result.Constraints.Category)
	assert.Equal(t, 80000.0, result.Constraints.MaxPrice)
}

func TestFilterProcessIsIdempotent(t *testing.T) {
	specialist := NewFilterSpecialist(laptopCatalog())

	first, err := specialist.Process(context.Background(), "laptops under ₹70,000", nil)
	require.NoError(t, err)
	second, err := specialist.Process(context.Background(), "laptops under ₹70,000", nil)
	require.NoError(t, err)

	require.Len(t, second.Products, len(first.Products))
	for i := range first.Products {
		assert.Equal(t, first.Products[i].ID, second.Products[i].ID)
	}
}

func TestFilterProcessEmptyResultEchoesBounds(t *testing.T) {
	specialist := NewFilterSpecialist(laptopCatalog())

	result, err := specialist.Process(context.Background(), "laptops under ₹10,000", nil)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Empty(t, result.Products)
	assert.Equal(t, 10000.0, result.Constraints.MaxPrice)

	answer := FormatFilterAnswer(result)
	assert.Contains(t, answer, "No products found")
}
