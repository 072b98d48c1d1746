package api

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
)

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {

	var products []models.Product

	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("products"), nil, true, &products); err != nil {
		return nil, err
	}

	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, draft *models.ProductDraft) (*models.Product, error) {

	var product models.Product

	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("products"), draft, true, &product); err != nil {
		return nil, err
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id models.ID, draft *models.ProductDraft) (*models.Product, error) {

	endpoint, err := c.itemEndpoint("products", id)
	if err != nil {
		return nil, err
	}

	var product models.Product

	if err := c.doJSON(ctx, http.MethodPut, endpoint, draft, true, &product); err != nil {
		return nil, err
	}

	// some backends answer an update with only the changed fields
	if product.ID == "" {
		product.ID = id
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id models.ID) error {
	endpoint, err := c.itemEndpoint("products", id)
	if err != nil {
		return err
	}

	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, true, nil)
}
