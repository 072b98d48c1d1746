package service_test

import (
	"math"
	"testing"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	service "github.com/aaravmahajanofficial/grocery-storefront/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shippingFee = decimal.RequireFromString("5.00")

func product(id, price string) models.Product {
	return models.Product{
		ID:    models.ID(id),
		Name:  "Product " + id,
		Price: decimal.RequireFromString(price),
	}
}

func TestCartAdd(t *testing.T) {
	t.Run("same product merges into one line", func(t *testing.T) {
		// Arrange
		cart := service.NewCart(shippingFee)
		apple := product("1", "10.00")

		// Act
		for range 4 {
			cart.Add(apple)
		}

		// Assert
		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 4, lines[0].Quantity)
		assert.Equal(t, 4, cart.Quantity("1"))
	})

	t.Run("new products append in insertion order", func(t *testing.T) {
		// Arrange
		cart := service.NewCart(shippingFee)

		// Act
		cart.Add(product("3", "1.00"))
		cart.Add(product("1", "1.00"))
		cart.Add(product("2", "1.00"))
		cart.Add(product("3", "1.00"))

		// Assert
		lines := cart.Lines()
		require.Len(t, lines, 3)
		assert.Equal(t, models.ID("3"), lines[0].Product.ID)
		assert.Equal(t, models.ID("1"), lines[1].Product.ID)
		assert.Equal(t, models.ID("2"), lines[2].Product.ID)
		assert.Equal(t, 2, lines[0].Quantity)
	})
}

func TestCartTotals(t *testing.T) {
	// Arrange
	cart := service.NewCart(shippingFee)

	// Act
	cart.Add(product("1", "10.00"))
	cart.Add(product("1", "10.00"))
	cart.Add(product("2", "5.00"))

	// Assert
	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, models.ID("1"), lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, models.ID("2"), lines[1].Product.ID)
	assert.Equal(t, 1, lines[1].Quantity)

	assert.Equal(t, "25.00", cart.Subtotal().StringFixed(2))
	assert.Equal(t, "5.00", cart.Shipping().StringFixed(2))
	assert.Equal(t, "30.00", cart.Total().StringFixed(2))
}

func TestCartTotalsRecomputed(t *testing.T) {
	// Arrange
	cart := service.NewCart(shippingFee)
	cart.Add(product("1", "0.10"))
	cart.Add(product("2", "0.20"))
	require.Equal(t, "0.30", cart.Subtotal().StringFixed(2))

	// Act
	cart.UpdateQuantity("2", 2)
	cart.Remove("1")

	// Assert
	assert.Equal(t, "0.60", cart.Subtotal().StringFixed(2))
	assert.Equal(t, "5.60", cart.Total().StringFixed(2))
}

func TestCartUpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		delta     int
		wantLines int
		wantQty   int
	}{
		{name: "increment", start: 1, delta: 2, wantLines: 1, wantQty: 3},
		{name: "decrement", start: 3, delta: -1, wantLines: 1, wantQty: 2},
		{name: "to zero removes line", start: 1, delta: -1, wantLines: 0, wantQty: 0},
		{name: "below zero removes line", start: 2, delta: -5, wantLines: 0, wantQty: 0},
		{name: "zero delta", start: 2, delta: 0, wantLines: 1, wantQty: 2},
		{name: "huge increment saturates", start: 1, delta: math.MaxInt, wantLines: 1, wantQty: math.MaxInt},
		{name: "huge decrement removes line", start: 1, delta: math.MinInt, wantLines: 0, wantQty: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			cart := service.NewCart(shippingFee)
			for range tt.start {
				cart.Add(product("1", "10.00"))
			}

			// Act
			cart.UpdateQuantity("1", tt.delta)

			// Assert
			assert.Equal(t, tt.wantLines, cart.Len())
			assert.Equal(t, tt.wantQty, cart.Quantity("1"))
		})
	}

	t.Run("unknown id is a no-op", func(t *testing.T) {
		// Arrange
		cart := service.NewCart(shippingFee)
		cart.Add(product("1", "10.00"))

		// Act
		cart.UpdateQuantity("99", 5)

		// Assert
		assert.Equal(t, 1, cart.Len())
		assert.Equal(t, 0, cart.Quantity("99"))
	})

	t.Run("removing last unit matches Remove", func(t *testing.T) {
		// Arrange
		viaUpdate := service.NewCart(shippingFee)
		viaRemove := service.NewCart(shippingFee)
		for _, c := range []*service.Cart{viaUpdate, viaRemove} {
			c.Add(product("1", "10.00"))
			c.Add(product("2", "5.00"))
		}

		// Act
		viaUpdate.UpdateQuantity("1", -1)
		viaRemove.Remove("1")

		// Assert
		assert.Equal(t, viaRemove.Lines(), viaUpdate.Lines())
		assert.True(t, viaRemove.Total().Equal(viaUpdate.Total()))
	})
}

func TestCartRemoveAndClear(t *testing.T) {
	// Arrange
	cart := service.NewCart(shippingFee)
	cart.Add(product("1", "10.00"))
	cart.Add(product("2", "5.00"))

	// Act
	cart.Remove("99")
	cart.Remove("1")

	// Assert
	require.Equal(t, 1, cart.Len())
	assert.Equal(t, models.ID("2"), cart.Lines()[0].Product.ID)

	// Act
	cart.Clear()

	// Assert
	assert.Empty(t, cart.Lines())
	assert.Equal(t, 0, cart.Len())
	assert.True(t, cart.Subtotal().IsZero())
	assert.Equal(t, "5.00", cart.Total().StringFixed(2))
}

func TestCartLinesIsSnapshot(t *testing.T) {
	// Arrange
	cart := service.NewCart(shippingFee)
	cart.Add(product("1", "10.00"))

	// Act
	lines := cart.Lines()
	lines[0].Quantity = 50

	// Assert
	assert.Equal(t, 1, cart.Quantity("1"))
}
