package csvimport

import (
	"io"

	"github.com/shopspring/decimal"
)

// Delivery manifest columns. internal_code and quantity are mandatory;
// name and description only matter for products seen for the first time.
const (
	ColumnInternalCode = "internal_code"
	ColumnName         = "name"
	ColumnQuantity     = "quantity"
	ColumnDescription  = "description"
)

// DeliveryLine is one parsed manifest row
type DeliveryLine struct {
	LineNumber   int
	InternalCode string
	Name         string
	Quantity     decimal.Decimal
	Description  string
}

// DeliveryManifest is the parsed content of a supplier delivery CSV
type DeliveryManifest struct {
	Lines     []DeliveryLine
	RowCount  int
	ErrorRows int
	Errors    []RowError
	Truncated bool
}

// IsValid returns true when every row parsed cleanly
func (m *DeliveryManifest) IsValid() bool {
	return m.ErrorRows == 0
}

func deliveryRules() []FieldRule {
	return []FieldRule{
		Field(ColumnInternalCode).Required().MaxLength(50).Unique().Build(),
		Field(ColumnName).MaxLength(200).Build(),
		Field(ColumnQuantity).Required().Decimal().Positive().Build(),
		Field(ColumnDescription).MaxLength(500).Build(),
	}
}

// ParseDeliveryManifest parses a supplier delivery CSV. Structural problems
// (bad encoding, missing header) fail outright; row-level problems are
// collected on the manifest so the caller can report them all at once.
func ParseDeliveryManifest(r io.Reader, maxErrors int) (*DeliveryManifest, error) {
	parser, err := NewCSVParser(r)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := parser.ValidateHeaders([]string{ColumnInternalCode, ColumnQuantity}); len(missing) > 0 {
		return nil, ErrMissingHeader
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}

	validator := NewFieldValidator(deliveryRules(), maxErrors)
	manifest := &DeliveryManifest{RowCount: len(rows)}

	for _, row := range rows {
		if !validator.ValidateRow(row) {
			manifest.ErrorRows++
			continue
		}
		quantity, _ := decimal.NewFromString(row.Get(ColumnQuantity))
		manifest.Lines = append(manifest.Lines, DeliveryLine{
			LineNumber:   row.LineNumber,
			InternalCode: row.Get(ColumnInternalCode),
			Name:         row.Get(ColumnName),
			Quantity:     quantity,
			Description:  row.Get(ColumnDescription),
		})
	}

	errs := validator.Errors()
	manifest.Errors = errs.Errors()
	manifest.Truncated = errs.IsTruncated()

	return manifest, nil
}
