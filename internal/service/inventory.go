package service

import (
	"context"
	"time"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/repository"
)

type inventoryService struct {
	lockRepo    repository.InventoryLockRepository
	productRepo repository.ProductRepository
}

func NewInventoryService(lockRepo repository.InventoryLockRepository, productRepo repository.ProductRepository) InventoryService {
	return &inventoryService{lockRepo: lockRepo, productRepo: productRepo}
}

// IsAvailable is advisory: a false answer is a clean "no", a true answer can
// still lose to a concurrent reservation. The binding check happens under
// the variant row lock inside Reserve.
func (s *inventoryService) IsAvailable(ctx context.Context, variantID string, start, end time.Time, quantity int32) (bool, error) {
	if !end.After(start) {
		return false, domain.ErrInvalidPeriod
	}
	variant, err := s.productRepo.GetVariantByID(ctx, variantID)
	if err != nil {
		return false, err
	}
	overlapping, err := s.lockRepo.CountOverlapping(ctx, variantID, start, end)
	if err != nil {
		return false, err
	}
	return variant.StockQuantity-overlapping >= quantity, nil
}

func (s *inventoryService) ReleaseByOrderID(ctx context.Context, orderID string) error {
	_, err := s.lockRepo.ReleaseByOrderID(ctx, orderID)
	return err
}

func (s *inventoryService) ListLocks(ctx context.Context, orderID string) ([]domain.InventoryLock, error) {
	return s.lockRepo.ListByOrderID(ctx, orderID)
}
