package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-kasir-pos.git/internal/pos"
)

func TestSalesWorkbook(t *testing.T) {
	created := time.Date(2023, 10, 27, 9, 30, 0, 0, time.UTC)
	orders := []pos.Order{
		{
			ID:              1,
			TransactionCode: "TRX-20231027-0001",
			TotalCents:      17050,
			TaxCents:        1550,
			PaymentMethod:   "cash",
			Status:          pos.StatusPaid,
			CreatedAt:       created,
		},
		{
			ID:              2,
			TransactionCode: "TRX-20231027-0002",
			TotalCents:      5500,
			TaxCents:        500,
			PaymentMethod:   "card",
			Status:          pos.StatusVoid,
			CreatedAt:       created.Add(time.Hour),
		},
	}

	f, err := SalesWorkbook(orders)
	require.NoError(t, err)

	header, err := f.GetCellValue(SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	code, err := f.GetCellValue(SheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "TRX-20231027-0001", code)

	total, err := f.GetCellValue(SheetName, "D2")
	require.NoError(t, err)
	assert.Equal(t, "17050", total)

	status, err := f.GetCellValue(SheetName, "G3")
	require.NoError(t, err)
	assert.Equal(t, "void", status)
}

func TestSalesWorkbookEmpty(t *testing.T) {
	f, err := SalesWorkbook(nil)
	require.NoError(t, err)

	v, err := f.GetCellValue(SheetName, "G1")
	require.NoError(t, err)
	assert.Equal(t, "Status", v)

	v, err = f.GetCellValue(SheetName, "A2")
	require.NoError(t, err)
	assert.Empty(t, v)
}
