package entities

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecFilterMatchesNumericInFreeText(t *testing.T) {
	filter := SpecFilter{Name: "RAM", Operator: OpGreaterEqual, Value: "8GB"}

	assert.True(t, filter.Matches("8GB LPDDR5"))
	assert.True(t, filter.Matches("16 GB"))
	assert.False(t, filter.Matches("6GB"))
	assert.False(t, filter.Matches("expandable"))
}

func TestSpecFilterOperators(t *testing.T) {
	assert.True(t, SpecFilter{Operator: OpGreater, Value: "8"}.Matches("12GB"))
	assert.False(t, SpecFilter{Operator: OpGreater, Value: "8"}.Matches("8GB"))
	assert.True(t, SpecFilter{Operator: OpLess, Value: "15"}.Matches("13.6 inch"))
	assert.True(t, SpecFilter{Operator: OpEqual, Value: "256GB"}.Matches("256gb"))
	assert.True(t, SpecFilter{Operator: OpContains, Value: "amoled"}.Matches("6.2 inch AMOLED"))
	assert.False(t, SpecFilter{Operator: OpContains, Value: "oled"}.Matches("6.2 inch LCD"))
}

func TestConstraintSetDefaultsUnbounded(t *testing.T) {
	c := NewConstraintSet()

	assert.Equal(t, 0.0, c.MinPrice)
	assert.True(t, math.IsInf(c.MaxPrice, 1))
	assert.False(t, c.HasPriceBound())

	c.MaxPrice = 50000
	assert.True(t, c.HasPriceBound())
}

func TestPriceRangeString(t *testing.T) {
	c := NewConstraintSet()
	c.MinPrice = 20000
	assert.Equal(t, "above ₹20000", c.PriceRangeString())

	c.MaxPrice = 40000
	assert.Equal(t, "₹20000 - ₹40000", c.PriceRangeString())
}
