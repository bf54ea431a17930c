package service

import (
	"context"

	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/models"
	"github.com/ImprimirComandas/imprimircomandas-sub001/internal/repository"
)

// CatalogService manages products and neighborhoods.
type CatalogService struct {
	productRepo repository.ProductRepository
	bairroRepo  repository.BairroRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	productRepo repository.ProductRepository,
	bairroRepo repository.BairroRepository,
) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		bairroRepo:  bairroRepo,
	}
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := ValidateProduct(p); err != nil {
		return err
	}
	return s.productRepo.Create(ctx, p)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *models.Product) error {
	if err := ValidateProduct(p); err != nil {
		return err
	}
	return s.productRepo.Update(ctx, p)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *CatalogService) ListProducts(ctx context.Context, search string, limit, offset int) ([]*models.Product, int, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.productRepo.List(ctx, search, limit, offset)
}

func (s *CatalogService) CreateBairro(ctx context.Context, b *models.Bairro) error {
	if err := ValidateBairro(b); err != nil {
		return err
	}
	return s.bairroRepo.Create(ctx, b)
}

func (s *CatalogService) UpdateBairro(ctx context.Context, b *models.Bairro) error {
	if err := ValidateBairro(b); err != nil {
		return err
	}
	return s.bairroRepo.Update(ctx, b)
}

func (s *CatalogService) DeleteBairro(ctx context.Context, id string) error {
	return s.bairroRepo.Delete(ctx, id)
}

func (s *CatalogService) ListBairros(ctx context.Context) ([]*models.Bairro, error) {
	return s.bairroRepo.List(ctx)
}

// GetBairro resolves a neighborhood and its delivery fee by name.
func (s *CatalogService) GetBairro(ctx context.Context, nome string) (*models.Bairro, error) {
	return s.bairroRepo.GetByNome(ctx, nome)
}
