package service

import (
	"context"
	"fmt"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"

	"github.com/google/uuid"
)

type catalogService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

func NewCatalogService(productRepo repository.ProductRepository, userRepo repository.UserRepository) CatalogService {
	return &catalogService{productRepo: productRepo, userRepo: userRepo}
}

func (s *catalogService) AddProduct(ctx context.Context, vendorID string, product *domain.Product, variants []domain.Variant) (*domain.Product, error) {
	vendor, err := s.userRepo.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor.Role != domain.UserRoleVendor {
		return nil, domain.ErrUnauthorized
	}
	if len(variants) == 0 {
		return nil, fmt.Errorf("a product needs at least one variant")
	}
	for i := range variants {
		if variants[i].StockQuantity < 0 {
			return nil, fmt.Errorf("variant %s: stock must not be negative", variants[i].SKU)
		}
		if variants[i].DailyPriceCents <= 0 {
			return nil, fmt.Errorf("variant %s: daily price must be positive", variants[i].SKU)
		}
	}

	product.ID = uuid.NewString()
	product.VendorID = vendorID
	if product.Status == "" {
		product.Status = domain.ProductStatusActive
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	for i := range variants {
		variants[i].ID = uuid.NewString()
		variants[i].ProductID = product.ID
		if err := s.productRepo.CreateVariant(ctx, &variants[i]); err != nil {
			return nil, err
		}
	}
	return product, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*domain.Product, []domain.Variant, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	variants, err := s.productRepo.ListVariants(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return product, variants, nil
}

func (s *catalogService) UpdateVariant(ctx context.Context, vendorID string, variant *domain.Variant) error {
	existing, err := s.productRepo.GetVariantByID(ctx, variant.ID)
	if err != nil {
		return err
	}
	product, err := s.productRepo.GetByID(ctx, existing.ProductID)
	if err != nil {
		return err
	}
	if product.VendorID != vendorID {
		return domain.ErrUnauthorized
	}
	variant.ProductID = existing.ProductID
	return s.productRepo.UpdateVariant(ctx, variant)
}

func (s *catalogService) SearchProducts(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Product, int32, error) {
	return s.productRepo.Search(ctx, query, category, page, pageSize)
}

func (s *catalogService) ListVendorProducts(ctx context.Context, vendorID string, page, pageSize int32) ([]domain.Product, int32, error) {
	return s.productRepo.ListByVendor(ctx, vendorID, page, pageSize)
}
