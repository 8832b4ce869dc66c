package postgres

import (
	"database/sql"

	"renthub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.ProductRepository
	repository.PeriodRepository
	repository.InventoryLockRepository
	repository.OrderRepository
	repository.PaymentRepository
	repository.RefundRepository
	repository.NotificationRepository
	repository.InterventionRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		UserRepository:          NewUserRepository(db),
		ProductRepository:       NewProductRepository(db),
		PeriodRepository:        NewPeriodRepository(db),
		InventoryLockRepository: NewInventoryLockRepository(db),
		OrderRepository:         NewOrderRepository(db),
		PaymentRepository:       NewPaymentRepository(db),
		RefundRepository:        NewRefundRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
		InterventionRepository:  NewInterventionRepository(db),
	}
}
