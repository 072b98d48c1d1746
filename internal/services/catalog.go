package service

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/api"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/errors"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	"github.com/aaravmahajanofficial/grocery-storefront/internal/utils"
)

// Identity is the part of the session the catalog needs.
type Identity interface {
	IsAdmin() bool
	Expire(ctx context.Context)
}

// ConfirmFunc is asked before a destructive action is dispatched.
type ConfirmFunc func(product models.Product) bool

// CatalogService caches the backend's product list.
type CatalogService struct {
	products api.ProductAPI
	uploads  api.UploadAPI
	identity Identity

	mu    sync.RWMutex
	items []models.Product
}

func NewCatalogService(products api.ProductAPI, uploads api.UploadAPI, identity Identity) *CatalogService {
	return &CatalogService{
		products: products,
		uploads:  uploads,
		identity: identity,
	}
}

// List fetches the product set and replaces the cache wholesale.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, s.failed(ctx, "Failed to fetch products", err)
	}

	s.mu.Lock()
	s.items = slices.Clone(products)
	s.mu.Unlock()

	return products, nil
}

func (s *CatalogService) Create(ctx context.Context, draft *models.ProductDraft) (*models.Product, error) {

	if err := s.requireAdmin(); err != nil {
		return nil, err
	}

	clean, err := prepareDraft(draft)
	if err != nil {
		return nil, err
	}

	product, err := s.products.CreateProduct(ctx, clean)
	if err != nil {
		return nil, s.failed(ctx, "Failed to create product", err)
	}

	s.mu.Lock()
	s.items = append(s.items, *product)
	s.mu.Unlock()

	return product, nil
}

// Update replaces the cached product with the backend's representation, or
// appends it if the cache did not hold it.
func (s *CatalogService) Update(ctx context.Context, id models.ID, draft *models.ProductDraft) (*models.Product, error) {

	if err := s.requireAdmin(); err != nil {
		return nil, err
	}

	if id == "" {
		return nil, errors.AddValidationError("id", "is required")
	}

	clean, err := prepareDraft(draft)
	if err != nil {
		return nil, err
	}

	product, err := s.products.UpdateProduct(ctx, id, clean)
	if err != nil {
		return nil, s.failed(ctx, "Failed to update product", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		s.items[i] = *product
	} else {
		s.items = append(s.items, *product)
	}

	return product, nil
}

// Delete asks confirm before dispatching and drops the product from the cache
// only after the backend acknowledges.
func (s *CatalogService) Delete(ctx context.Context, id models.ID, confirm ConfirmFunc) error {

	if err := s.requireAdmin(); err != nil {
		return err
	}

	product, ok := s.Find(id)
	if !ok {
		return errors.NotFoundError("Product not found").WithDetail("id " + id.String())
	}

	if confirm == nil || !confirm(product) {
		return errors.CancelledError("Delete cancelled")
	}

	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return s.failed(ctx, "Failed to delete product", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
	}

	return nil
}

// UploadImage stores an image on the backend and returns its public URL.
func (s *CatalogService) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {

	if err := s.requireAdmin(); err != nil {
		return "", err
	}

	if s.uploads == nil {
		return "", errors.InternalError("Image uploads are not configured")
	}

	resp, err := s.uploads.Upload(ctx, filename, content)
	if err != nil {
		return "", s.failed(ctx, "Failed to upload image", err)
	}

	return s.uploads.ImageURL(resp.Filename), nil
}

// Products returns a snapshot of the cache.
func (s *CatalogService) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.items)
}

func (s *CatalogService) Find(id models.ID) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}

	return models.Product{}, false
}

func (s *CatalogService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
}

func (s *CatalogService) indexOf(id models.ID) int {
	return slices.IndexFunc(s.items, func(p models.Product) bool {
		return p.ID == id
	})
}

// requireAdmin rejects admin operations locally; the backend still has the
// final say.
func (s *CatalogService) requireAdmin() error {
	if s.identity == nil || !s.identity.IsAdmin() {
		return errors.AuthorizationError("Admin privileges required")
	}

	return nil
}

// failed logs err and ends the session when the backend rejected the token.
func (s *CatalogService) failed(ctx context.Context, msg string, err error) error {

	middleware.LoggerFromContext(ctx).Error(msg, slog.String("error", err.Error()))

	if errors.HasCode(err, errors.ErrCodeAuth) && s.identity != nil {
		s.identity.Expire(ctx)
	}

	return err
}

func prepareDraft(draft *models.ProductDraft) (*models.ProductDraft, error) {

	if draft == nil {
		return nil, errors.ValidationError("Product details are required")
	}

	clean := *draft
	clean.Name = utils.SanitizeText(clean.Name)

	if err := utils.ValidateStruct(&clean); err != nil {
		return nil, err
	}

	if clean.Price.IsNegative() {
		return nil, errors.AddValidationError("price", "must not be negative")
	}

	return &clean, nil
}
