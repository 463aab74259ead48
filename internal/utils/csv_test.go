package utils

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteQuotedCSV(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{
		{"Date", "Description"},
		{"2024-01-02", `Rent "March", unit 4`},
		{"2024-01-03", ""},
	}
	require.NoError(t, WriteQuotedCSV(&buf, rows))

	assert.Equal(t, "\"Date\",\"Description\"\r\n"+
		"\"2024-01-02\",\"Rent \"\"March\"\", unit 4\"\r\n"+
		"\"2024-01-03\",\"\"\r\n", buf.String())

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, rows, parsed)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "500.00", FormatMoney(decimal.NewFromInt(500)))
	assert.Equal(t, "12.35", FormatWithPrecision(decimal.RequireFromString("12.3456"), 2))
}
