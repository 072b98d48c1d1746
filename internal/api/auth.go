package api

import (
	"context"
	"net/http"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/errors"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
)

func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	var resp models.LoginResponse

	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("auth", "login"), req, false, &resp); err != nil {
		return nil, err
	}

	if resp.Token == "" {
		return nil, errors.AuthError("Login response did not include a token")
	}

	return &resp, nil
}

func (c *Client) AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (*models.AdminLoginResponse, error) {

	var resp models.AdminLoginResponse

	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("admin", "login"), req, false, &resp); err != nil {
		return nil, err
	}

	if resp.Token == "" {
		return nil, errors.AuthError("Admin login response did not include a token")
	}

	return &resp, nil
}

func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, c.endpoint("auth", "register"), req, false, nil)
}
