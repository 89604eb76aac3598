package persistence

import (
	"context"

	"gorm.io/gorm"

	appinv "github.com/ordena/backend/internal/application/inventory"
	"github.com/ordena/backend/internal/domain/inventory"
)

// GormTransactionScope implements the stock TransactionScope using GORM
// transactions. A quantity update and its ledger row commit or roll back
// together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// StockRecords returns the stock record repository scoped to the current transaction
func (r *gormTransactionalRepositories) StockRecords() inventory.StockRecordRepository {
	return NewGormStockRecordRepository(r.tx)
}

// Movements returns the movement repository scoped to the current transaction
func (r *gormTransactionalRepositories) Movements() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var _ appinv.TransactionScope = (*GormTransactionScope)(nil)
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
