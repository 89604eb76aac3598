package csvimport

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldRuleBuilder(t *testing.T) {
	rule := Field("quantity").
		Required().
		Decimal().
		Positive().
		MinValue(decimal.NewFromInt(1)).
		MaxValue(decimal.NewFromInt(1000)).
		Build()

	assert.Equal(t, "quantity", rule.Column)
	assert.Equal(t, TypeDecimal, rule.Type)
	assert.True(t, rule.Required)
	assert.True(t, rule.Positive)
	require.NotNil(t, rule.MinValue)
	require.NotNil(t, rule.MaxValue)
}

func testRow(line int, data map[string]string) *Row {
	return &Row{LineNumber: line, Data: data}
}

func TestFieldValidator_ValidateRow(t *testing.T) {
	t.Run("Required field missing", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("code").Required().Build()}, 0)

		ok := v.ValidateRow(testRow(2, map[string]string{"code": ""}))

		assert.False(t, ok)
		require.Equal(t, 1, v.Errors().Count())
		assert.Equal(t, ErrCodeImportRequiredField, v.Errors().Errors()[0].Code)
	})

	t.Run("Empty optional field skipped", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("name").MaxLength(5).Build()}, 0)

		ok := v.ValidateRow(testRow(2, map[string]string{"name": ""}))

		assert.True(t, ok)
		assert.False(t, v.Errors().HasErrors())
	})

	t.Run("Type mismatch", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("quantity").Decimal().Build()}, 0)

		ok := v.ValidateRow(testRow(3, map[string]string{"quantity": "lots"}))

		assert.False(t, ok)
		assert.Equal(t, ErrCodeImportInvalidType, v.Errors().Errors()[0].Code)
	})

	t.Run("Max length", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("code").MaxLength(3).Build()}, 0)

		ok := v.ValidateRow(testRow(2, map[string]string{"code": "ABCD"}))

		assert.False(t, ok)
		assert.Equal(t, ErrCodeImportInvalidLength, v.Errors().Errors()[0].Code)
	})

	t.Run("Positive rejects zero and negatives", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("quantity").Decimal().Positive().Build()}, 0)

		assert.False(t, v.ValidateRow(testRow(2, map[string]string{"quantity": "0"})))
		assert.False(t, v.ValidateRow(testRow(3, map[string]string{"quantity": "-1"})))
		assert.True(t, v.ValidateRow(testRow(4, map[string]string{"quantity": "0.5"})))
		assert.Equal(t, 2, v.Errors().Count())
	})

	t.Run("Min and max value", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{
			Field("quantity").Decimal().
				MinValue(decimal.NewFromInt(1)).
				MaxValue(decimal.NewFromInt(10)).
				Build(),
		}, 0)

		assert.False(t, v.ValidateRow(testRow(2, map[string]string{"quantity": "0.5"})))
		assert.False(t, v.ValidateRow(testRow(3, map[string]string{"quantity": "11"})))
		assert.True(t, v.ValidateRow(testRow(4, map[string]string{"quantity": "10"})))
	})

	t.Run("Pattern", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{
			Field("code").Pattern(`^SKU-\d+$`, "SKU-<number>").Build(),
		}, 0)

		assert.True(t, v.ValidateRow(testRow(2, map[string]string{"code": "SKU-42"})))
		assert.False(t, v.ValidateRow(testRow(3, map[string]string{"code": "sku42"})))
		assert.Equal(t, ErrCodeImportPatternMismatch, v.Errors().Errors()[0].Code)
	})

	t.Run("Unique within file", func(t *testing.T) {
		v := NewFieldValidator([]FieldRule{Field("code").Unique().Build()}, 0)

		assert.True(t, v.ValidateRow(testRow(2, map[string]string{"code": "A"})))
		assert.True(t, v.ValidateRow(testRow(3, map[string]string{"code": "B"})))
		assert.False(t, v.ValidateRow(testRow(4, map[string]string{"code": "A"})))

		errs := v.Errors().Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, ErrCodeImportDuplicateInFile, errs[0].Code)
		assert.Contains(t, errs[0].Message, "first seen in row 2")
	})
}
