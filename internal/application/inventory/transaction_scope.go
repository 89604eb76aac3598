package inventory

import (
	"context"

	"github.com/ordena/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to stock repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the stock repositories within
// a transaction. All repositories returned share the same underlying database
// transaction, so a quantity update and its movement row cannot be persisted
// independently of each other.
type TransactionalRepositories interface {
	// StockRecords returns the stock record repository scoped to the current transaction
	StockRecords() inventory.StockRecordRepository
	// Movements returns the movement repository scoped to the current transaction
	Movements() inventory.StockMovementRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for tests.
type NoOpTransactionScope struct {
	recordRepo   inventory.StockRecordRepository
	movementRepo inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(recordRepo inventory.StockRecordRepository, movementRepo inventory.StockMovementRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		recordRepo:   recordRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockRecords returns the stock record repository
func (s *NoOpTransactionScope) StockRecords() inventory.StockRecordRepository {
	return s.recordRepo
}

// Movements returns the movement repository
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
