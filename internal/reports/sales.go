// Package reports builds tabular exports over committed orders. Pure
// projection: it never writes back.
package reports

import (
	"github.com/xuri/excelize/v2"

	"github.com/ariefcatur/go-kasir-pos.git/internal/pos"
)

const SheetName = "Sales Report"

var headers = []string{"ID", "Transaction Code", "Date", "Total", "Tax", "Payment", "Status"}

// SalesWorkbook renders one header row plus one row per order, newest first
// in whatever order the caller passed.
func SalesWorkbook(orders []pos.Order) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for r, o := range orders {
		values := []any{
			o.ID,
			o.TransactionCode,
			o.CreatedAt.Format("2006-01-02 15:04:05"),
			o.TotalCents,
			o.TaxCents,
			o.PaymentMethod,
			string(o.Status),
		}
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
