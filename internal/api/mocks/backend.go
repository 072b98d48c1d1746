package mocks

import (
	"context"
	"io"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type AuthAPI struct {
	mock.Mock
}

func (m *AuthAPI) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.LoginResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthAPI) AdminLogin(ctx context.Context, req *models.AdminLoginRequest) (*models.AdminLoginResponse, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.AdminLoginResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AuthAPI) Register(ctx context.Context, req *models.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type ProductAPI struct {
	mock.Mock
}

func (m *ProductAPI) ListProducts(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if products := args.Get(0); products != nil {
		return products.([]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProductAPI) CreateProduct(ctx context.Context, draft *models.ProductDraft) (*models.Product, error) {
	args := m.Called(ctx, draft)
	if product := args.Get(0); product != nil {
		return product.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProductAPI) UpdateProduct(ctx context.Context, id models.ID, draft *models.ProductDraft) (*models.Product, error) {
	args := m.Called(ctx, id, draft)
	if product := args.Get(0); product != nil {
		return product.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProductAPI) DeleteProduct(ctx context.Context, id models.ID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type CartAPI struct {
	mock.Mock
}

func (m *CartAPI) GetCart(ctx context.Context) ([]models.RemoteCartLine, error) {
	args := m.Called(ctx)
	if lines := args.Get(0); lines != nil {
		return lines.([]models.RemoteCartLine), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CartAPI) AddCartItem(ctx context.Context, req *models.AddCartItemRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *CartAPI) UpdateCartItem(ctx context.Context, productID models.ID, req *models.UpdateCartItemRequest) error {
	args := m.Called(ctx, productID, req)
	return args.Error(0)
}

func (m *CartAPI) RemoveCartItem(ctx context.Context, productID models.ID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type UploadAPI struct {
	mock.Mock
}

func (m *UploadAPI) Upload(ctx context.Context, filename string, content io.Reader) (*models.UploadResponse, error) {
	args := m.Called(ctx, filename, content)
	if resp := args.Get(0); resp != nil {
		return resp.(*models.UploadResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UploadAPI) ImageURL(filename string) string {
	args := m.Called(filename)
	return args.String(0)
}
