package csvimport

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCSVParser(t *testing.T) {
	t.Run("Valid UTF-8 CSV", func(t *testing.T) {
		csv := "internal_code,quantity\nSKU-1,10\nSKU-2,5"
		parser, err := NewCSVParser(strings.NewReader(csv))

		require.NoError(t, err)
		require.NotNil(t, parser)
	})

	t.Run("UTF-8 BOM is stripped", func(t *testing.T) {
		csv := "\xEF\xBB\xBFinternal_code,quantity\nSKU-1,10"
		parser, err := NewCSVParser(strings.NewReader(csv))
		require.NoError(t, err)

		require.NoError(t, parser.ParseHeader())
		assert.True(t, parser.HasHeader("internal_code"))
	})

	t.Run("Empty file", func(t *testing.T) {
		_, err := NewCSVParser(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("Invalid encoding", func(t *testing.T) {
		_, err := NewCSVParser(strings.NewReader("internal_code\n\xFF\xFE"))
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("Custom delimiter", func(t *testing.T) {
		csv := "internal_code;quantity\nSKU-1;10"
		parser, err := NewCSVParser(strings.NewReader(csv), WithDelimiter(';'))
		require.NoError(t, err)

		require.NoError(t, parser.ParseHeader())
		assert.Equal(t, []string{"internal_code", "quantity"}, parser.Headers())
	})
}

func TestCSVParser_ParseHeader(t *testing.T) {
	t.Run("Headers are lowercased and trimmed", func(t *testing.T) {
		csv := " Internal_Code , QUANTITY \nSKU-1,10"
		parser, err := NewCSVParser(strings.NewReader(csv))
		require.NoError(t, err)

		require.NoError(t, parser.ParseHeader())
		assert.True(t, parser.HasHeader("internal_code"))
		assert.True(t, parser.HasHeader("quantity"))
	})

	t.Run("Missing required headers reported", func(t *testing.T) {
		csv := "internal_code,name\nSKU-1,Widget"
		parser, err := NewCSVParser(strings.NewReader(csv))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		missing := parser.ValidateHeaders([]string{"internal_code", "quantity"})
		assert.Equal(t, []string{"quantity"}, missing)
	})
}

func TestCSVParser_ReadRow(t *testing.T) {
	csv := "internal_code,quantity,name\nSKU-1,10,Widget\nSKU-2,5,"
	parser, err := NewCSVParser(strings.NewReader(csv))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	row, err := parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, 2, row.LineNumber)
	assert.Equal(t, "SKU-1", row.Get("internal_code"))
	assert.Equal(t, "10", row.Get("quantity"))
	assert.Equal(t, "Widget", row.Get("name"))

	row, err = parser.ReadRow()
	require.NoError(t, err)
	assert.Equal(t, "SKU-2", row.Get("internal_code"))
	assert.Equal(t, "", row.Get("name"))

	_, err = parser.ReadRow()
	assert.Equal(t, io.EOF, err)
}

func TestCSVParser_ReadAllRows(t *testing.T) {
	t.Run("Skips empty rows", func(t *testing.T) {
		csv := "internal_code,quantity\nSKU-1,10\n,\nSKU-2,5\n"
		parser, err := NewCSVParser(strings.NewReader(csv))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("Short rows padded with empty fields", func(t *testing.T) {
		csv := "internal_code,quantity,name\nSKU-1,10"
		parser, err := NewCSVParser(strings.NewReader(csv))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "", rows[0].Get("name"))
	})
}

func TestRow_IsEmpty(t *testing.T) {
	empty := &Row{Data: map[string]string{"a": "", "b": ""}}
	assert.True(t, empty.IsEmpty())

	nonEmpty := &Row{Data: map[string]string{"a": "", "b": "x"}}
	assert.False(t, nonEmpty.IsEmpty())
}
