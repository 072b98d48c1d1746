package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/api"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/utils"
)

// ProductLookup resolves a product id to the cached catalog record.
type ProductLookup func(id models.ID) (models.Product, bool)

// CartService fronts a Cart. With a nil CartAPI every operation is local only;
// otherwise each mutation is sent to the backend first and applied locally
// once acknowledged.
type CartService struct {
	cart   *Cart
	remote api.CartAPI
}

func NewCartService(cart *Cart, remote api.CartAPI) *CartService {
	return &CartService{cart: cart, remote: remote}
}

func (s *CartService) Cart() *Cart {
	return s.cart
}

func (s *CartService) Synced() bool {
	return s.remote != nil
}

func (s *CartService) Add(ctx context.Context, product models.Product) error {

	if s.remote != nil {
		var err error

		if current := s.cart.Quantity(product.ID); current > 0 {
			err = s.updateRemote(ctx, product.ID, current+1)
		} else {
			req := &models.AddCartItemRequest{ProductID: product.ID, Quantity: 1}
			if err = utils.ValidateStruct(req); err == nil {
				err = s.remote.AddCartItem(ctx, req)
			}
		}

		if err != nil {
			middleware.LoggerFromContext(ctx).Error("Failed to add cart item",
				slog.String("product_id", product.ID.String()),
				slog.String("error", err.Error()),
			)
			return err
		}
	}

	s.cart.Add(product)

	return nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, id models.ID, delta int) error {

	current := s.cart.Quantity(id)
	if current == 0 || delta == 0 {
		return nil
	}

	if s.remote != nil {
		var err error

		if next := addQuantity(current, delta); next <= 0 {
			err = s.remote.RemoveCartItem(ctx, id)
		} else {
			err = s.updateRemote(ctx, id, next)
		}

		if err != nil {
			middleware.LoggerFromContext(ctx).Error("Failed to update cart item",
				slog.String("product_id", id.String()),
				slog.Int("delta", delta),
				slog.String("error", err.Error()),
			)
			return err
		}
	}

	s.cart.UpdateQuantity(id, delta)

	return nil
}

func (s *CartService) updateRemote(ctx context.Context, id models.ID, quantity int) error {
	req := &models.UpdateCartItemRequest{Quantity: quantity}
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}

	return s.remote.UpdateCartItem(ctx, id, req)
}

func (s *CartService) Remove(ctx context.Context, id models.ID) error {

	if s.cart.Quantity(id) == 0 {
		return nil
	}

	if s.remote != nil {
		if err := s.remote.RemoveCartItem(ctx, id); err != nil {
			middleware.LoggerFromContext(ctx).Error("Failed to remove cart item",
				slog.String("product_id", id.String()),
				slog.String("error", err.Error()),
			)
			return err
		}
	}

	s.cart.Remove(id)

	return nil
}

// Clear empties the local cart only. A synced backend cart survives logout so
// it can be picked up again on another device.
func (s *CartService) Clear() {
	s.cart.Clear()
}

// Empty removes every line, including the backend copy when synced. Lines the
// backend refused to delete stay in the local cart.
func (s *CartService) Empty(ctx context.Context) error {

	if s.remote == nil {
		s.cart.Clear()
		return nil
	}

	for _, line := range s.cart.Lines() {
		if err := s.remote.RemoveCartItem(ctx, line.Product.ID); err != nil {
			middleware.LoggerFromContext(ctx).Error("Failed to empty cart",
				slog.String("product_id", line.Product.ID.String()),
				slog.String("error", err.Error()),
			)
			return err
		}
		s.cart.Remove(line.Product.ID)
	}

	return nil
}

// Refresh rebuilds the local cart from the backend copy. Entries whose product
// is not in the catalog are skipped; duplicate ids are merged.
func (s *CartService) Refresh(ctx context.Context, lookup ProductLookup) error {

	if s.remote == nil {
		return nil
	}

	remote, err := s.remote.GetCart(ctx)
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Failed to fetch cart", slog.String("error", err.Error()))
		return err
	}

	lines := make([]models.CartLine, 0, len(remote))
	index := make(map[models.ID]int, len(remote))

	for _, entry := range remote {
		if entry.Quantity <= 0 {
			continue
		}

		if i, ok := index[entry.ProductID]; ok {
			lines[i].Quantity = addQuantity(lines[i].Quantity, entry.Quantity)
			continue
		}

		product, ok := lookup(entry.ProductID)
		if !ok {
			middleware.LoggerFromContext(ctx).Warn("Skipping cart item for unknown product",
				slog.String("product_id", entry.ProductID.String()),
			)
			continue
		}

		index[entry.ProductID] = len(lines)
		lines = append(lines, models.CartLine{Product: product, Quantity: entry.Quantity})
	}

	s.cart.replace(lines)

	return nil
}
