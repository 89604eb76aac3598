package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ordena/backend/internal/domain/inventory"
	"github.com/ordena/backend/internal/domain/shared"
)

// newMockStockRecordRepository creates a GormStockRecordRepository with a mocked SQL connection
func newMockStockRecordRepository(t *testing.T) (*GormStockRecordRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormStockRecordRepository(gormDB), mock, mockDB
}

func stockRecordRows(record *inventory.StockRecord) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "created_at", "updated_at", "version",
		"product_id", "location_kind", "location_id",
		"quantity", "min_quantity", "max_quantity", "supplier_id",
	}).AddRow(
		record.ID, record.CreatedAt, record.UpdatedAt, record.Version,
		record.ProductID, record.Location.Kind, record.Location.ID,
		record.Quantity, record.MinQuantity, record.MaxQuantity, record.SupplierID,
	)
}

func TestGormStockRecordRepository_FindByID(t *testing.T) {
	t.Run("finds existing record", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		record, err := inventory.NewStockRecord(uuid.New(), inventory.NewWarehouseRef(uuid.New()))
		require.NoError(t, err)
		record.Quantity = decimal.NewFromInt(42)

		mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE id = \$1`).
			WithArgs(record.ID, 1).
			WillReturnRows(stockRecordRows(record))

		found, err := repo.FindByID(context.Background(), record.ID)

		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, record.ID, found.ID)
		assert.Equal(t, record.ProductID, found.ProductID)
		assert.True(t, found.Quantity.Equal(decimal.NewFromInt(42)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when record does not exist", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE id = \$1`).
			WithArgs(id, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		found, err := repo.FindByID(context.Background(), id)

		assert.Nil(t, found)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRecordRepository_FindByProductAndLocation(t *testing.T) {
	t.Run("matches on the full composite key", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		location := inventory.NewBranchRef(uuid.New())
		record, err := inventory.NewStockRecord(productID, location)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE product_id = \$1 AND location_kind = \$2 AND location_id = \$3`).
			WithArgs(productID, location.Kind, location.ID, 1).
			WillReturnRows(stockRecordRows(record))

		found, err := repo.FindByProductAndLocation(context.Background(), productID, location)

		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, inventory.LocationKindBranch, found.Location.Kind)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRecordRepository_FindByProductAndLocationForUpdate(t *testing.T) {
	t.Run("acquires a row lock", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		location := inventory.NewWarehouseRef(uuid.New())
		record, err := inventory.NewStockRecord(productID, location)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "stock_records" .* FOR UPDATE`).
			WithArgs(productID, location.Kind, location.ID, 1).
			WillReturnRows(stockRecordRows(record))

		found, err := repo.FindByProductAndLocationForUpdate(context.Background(), productID, location)

		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRecordRepository_GetOrCreate(t *testing.T) {
	t.Run("returns existing record without inserting", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		location := inventory.NewWarehouseRef(uuid.New())
		record, err := inventory.NewStockRecord(productID, location)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "stock_records" WHERE product_id = \$1 AND location_kind = \$2 AND location_id = \$3`).
			WithArgs(productID, location.Kind, location.ID, 1).
			WillReturnRows(stockRecordRows(record))

		found, err := repo.GetOrCreate(context.Background(), productID, location)

		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, record.ID, found.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("creates zero-quantity record when missing", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		location := inventory.NewBranchRef(uuid.New())

		mock.ExpectQuery(`SELECT \* FROM "stock_records"`).
			WithArgs(productID, location.Kind, location.ID, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectExec(`INSERT INTO "stock_records" .* ON CONFLICT \("product_id","location_kind","location_id"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		found, err := repo.GetOrCreate(context.Background(), productID, location)

		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, productID, found.ProductID)
		assert.True(t, found.Quantity.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("re-reads the row after losing the creation race", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		location := inventory.NewWarehouseRef(uuid.New())
		winner, err := inventory.NewStockRecord(productID, location)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "stock_records"`).
			WithArgs(productID, location.Kind, location.ID, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectExec(`INSERT INTO "stock_records" .* DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT \* FROM "stock_records"`).
			WithArgs(productID, location.Kind, location.ID, 1).
			WillReturnRows(stockRecordRows(winner))

		found, err := repo.GetOrCreate(context.Background(), productID, location)

		assert.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, winner.ID, found.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRecordRepository_SaveWithLock(t *testing.T) {
	t.Run("updates row at the previous version", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		record, err := inventory.NewStockRecord(uuid.New(), inventory.NewWarehouseRef(uuid.New()))
		require.NoError(t, err)
		require.NoError(t, record.ApplyDelta(decimal.NewFromInt(5)))

		mock.ExpectExec(`UPDATE "stock_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.SaveWithLock(context.Background(), record)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrConcurrencyConflict when no row matches the version", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		record, err := inventory.NewStockRecord(uuid.New(), inventory.NewWarehouseRef(uuid.New()))
		require.NoError(t, err)
		require.NoError(t, record.ApplyDelta(decimal.NewFromInt(5)))

		mock.ExpectExec(`UPDATE "stock_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.SaveWithLock(context.Background(), record)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormStockRecordRepository_SumQuantityByProduct(t *testing.T) {
	t.Run("sums on-hand quantity across locations", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) as total FROM "stock_records" WHERE product_id = \$1`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(decimal.NewFromInt(73)))

		total, err := repo.SumQuantityByProduct(context.Background(), productID)

		assert.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(73)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero for a product with no records", func(t *testing.T) {
		repo, mock, mockDB := newMockStockRecordRepository(t)
		defer mockDB.Close()

		productID := uuid.New()
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) as total`).
			WithArgs(productID).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(decimal.Zero))

		total, err := repo.SumQuantityByProduct(context.Background(), productID)

		assert.NoError(t, err)
		assert.True(t, total.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.False(t, isUniqueViolation(gorm.ErrRecordNotFound))
	assert.False(t, isUniqueViolation(assert.AnError))
	assert.True(t, isUniqueViolation(errDuplicateKeyText()))
}

func errDuplicateKeyText() error {
	return &textError{msg: `pq: duplicate key value violates unique constraint "idx_stock_record_product_location"`}
}

type textError struct{ msg string }

func (e *textError) Error() string { return e.msg }
