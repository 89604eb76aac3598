package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ordena/backend/internal/domain/inventory"
	"github.com/ordena/backend/internal/domain/shared"
)

// StockReconciler is the single mutation path for stock quantities.
// Every quantity change in the system, whatever its origin, goes through
// Reconcile: it applies the change and appends the matching movement row in
// one database transaction, holding a row-level lock on the record so that
// concurrent changes to the same product-location serialize.
type StockReconciler struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewStockReconciler creates a new StockReconciler
func NewStockReconciler(scope TransactionScope, logger *zap.Logger) *StockReconciler {
	return &StockReconciler{
		scope:  scope,
		logger: logger,
	}
}

// SetEventPublisher sets the publisher for domain events raised during reconciliation
func (r *StockReconciler) SetEventPublisher(publisher shared.EventPublisher) {
	r.eventPublisher = publisher
}

// Reconcile applies one stock change and records it.
//
// The command either carries a relative Delta or an absolute TargetQuantity;
// the effective delta is computed against the current quantity under lock.
// An effective delta of zero is a successful no-op: the record is returned
// unchanged and no movement is written. A delta that would drive the
// quantity negative fails with ErrInsufficientStock and writes nothing.
func (r *StockReconciler) Reconcile(ctx context.Context, cmd ReconcileCommand) (*ReconcileResult, error) {
	if err := validateReconcileCommand(cmd); err != nil {
		return nil, err
	}

	var (
		record   *inventory.StockRecord
		movement *inventory.StockMovement
	)

	err := r.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		record, movement, err = r.applyOne(ctx, repos, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Events go out only after the transaction committed; a failing
	// subscriber must never undo a stock change.
	r.publishDomainEvents(ctx, record)

	result := &ReconcileResult{Record: ToStockRecordResponse(record)}
	if movement != nil {
		m := ToMovementResponse(movement)
		result.Movement = &m
	}
	return result, nil
}

// ReconcileAll applies several stock changes in one transaction. Either every
// command lands, with its movement row, or none do. Used for multi-line
// operations like dispatching an order.
func (r *StockReconciler) ReconcileAll(ctx context.Context, cmds []ReconcileCommand) ([]ReconcileResult, error) {
	if len(cmds) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one stock change is required")
	}
	for _, cmd := range cmds {
		if err := validateReconcileCommand(cmd); err != nil {
			return nil, err
		}
	}

	records := make([]*inventory.StockRecord, len(cmds))
	movements := make([]*inventory.StockMovement, len(cmds))

	err := r.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for i, cmd := range cmds {
			record, movement, err := r.applyOne(ctx, repos, cmd)
			if err != nil {
				return err
			}
			records[i] = record
			movements[i] = movement
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	results := make([]ReconcileResult, len(cmds))
	for i, record := range records {
		r.publishDomainEvents(ctx, record)
		results[i] = ReconcileResult{Record: ToStockRecordResponse(record)}
		if movements[i] != nil {
			m := ToMovementResponse(movements[i])
			results[i].Movement = &m
		}
	}
	return results, nil
}

// applyOne runs one command against transaction-scoped repositories. The
// caller owns the transaction boundary.
func (r *StockReconciler) applyOne(ctx context.Context, repos TransactionalRepositories, cmd ReconcileCommand) (*inventory.StockRecord, *inventory.StockMovement, error) {
	// Ensure the record exists, then re-read it under a row lock so
	// the delta computation and the write are one critical section.
	if _, err := repos.StockRecords().GetOrCreate(ctx, cmd.ProductID, cmd.Location); err != nil {
		return nil, nil, err
	}

	record, err := repos.StockRecords().FindByProductAndLocationForUpdate(ctx, cmd.ProductID, cmd.Location)
	if err != nil {
		return nil, nil, err
	}

	delta := effectiveDelta(cmd, record)
	if delta.IsZero() {
		return record, nil, nil
	}

	before := record.Quantity
	if err := record.ApplyDelta(delta); err != nil {
		return nil, nil, err
	}
	if err := repos.StockRecords().SaveWithLock(ctx, record); err != nil {
		return nil, nil, err
	}

	movement, err := inventory.NewStockMovement(record, delta, before, record.Quantity,
		cmd.UserID, cmd.Reason, cmd.SourceType, cmd.SourceID)
	if err != nil {
		return nil, nil, err
	}
	if err := repos.Movements().Create(ctx, movement); err != nil {
		return nil, nil, err
	}
	return record, movement, nil
}

func (r *StockReconciler) publishDomainEvents(ctx context.Context, record *inventory.StockRecord) {
	events := record.GetDomainEvents()
	if r.eventPublisher != nil && len(events) > 0 {
		if err := r.eventPublisher.Publish(ctx, events...); err != nil {
			r.logger.Error("failed to publish stock events",
				zap.String("stock_record_id", record.ID.String()),
				zap.Error(err),
			)
		}
	}
	record.ClearDomainEvents()
}

func effectiveDelta(cmd ReconcileCommand, record *inventory.StockRecord) decimal.Decimal {
	if cmd.Delta != nil {
		return *cmd.Delta
	}
	return cmd.TargetQuantity.Sub(record.Quantity)
}

func validateReconcileCommand(cmd ReconcileCommand) error {
	if cmd.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if err := cmd.Location.Validate(); err != nil {
		return err
	}
	if (cmd.Delta == nil) == (cmd.TargetQuantity == nil) {
		return shared.NewDomainError("INVALID_INPUT", "Exactly one of delta and target quantity must be set")
	}
	if cmd.TargetQuantity != nil && cmd.TargetQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Target quantity cannot be negative")
	}
	if cmd.UserID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "Acting user is required")
	}
	if cmd.Reason == "" {
		return shared.NewDomainError("INVALID_REASON", "A reason is required for every stock change")
	}
	if !cmd.SourceType.IsValid() {
		return shared.NewDomainError("INVALID_SOURCE", "Unknown movement source type")
	}
	return nil
}
