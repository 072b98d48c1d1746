package api

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
)

// The cart endpoints are session-implicit on the backend and carry no token.

func (c *Client) GetCart(ctx context.Context) ([]models.RemoteCartLine, error) {

	var lines []models.RemoteCartLine

	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("cart"), nil, false, &lines); err != nil {
		return nil, err
	}

	return lines, nil
}

func (c *Client) AddCartItem(ctx context.Context, req *models.AddCartItemRequest) error {
	return c.doJSON(ctx, http.MethodPost, c.endpoint("cart"), req, false, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, productID models.ID, req *models.UpdateCartItemRequest) error {
	endpoint, err := c.itemEndpoint("cart", productID)
	if err != nil {
		return err
	}

	return c.doJSON(ctx, http.MethodPut, endpoint, req, false, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, productID models.ID) error {
	endpoint, err := c.itemEndpoint("cart", productID)
	if err != nil {
		return err
	}

	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, false, nil)
}
