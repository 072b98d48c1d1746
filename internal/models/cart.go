package models

import (
	"github.com/shopspring/decimal"
)

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

func (l CartLine) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// RemoteCartLine is a cart entry as stored by the backend.
type RemoteCartLine struct {
	ProductID ID  `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type AddCartItemRequest struct {
	ProductID ID  `json:"product_id" validate:"required"`
	Quantity  int `json:"quantity"   validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
