package billing

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Transactions"

var exportHeaders = []string{
	"ID", "Patient ID", "Type", "Status", "Amount", "Currency",
	"Related Entity", "Gateway Ref", "Paid At", "Created At",
}

// ExportTransactions renders a transaction list as an Excel workbook for
// the finance team.
func ExportTransactions(items []*Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, t := range items {
		related := ""
		if t.RelatedEntityType != nil && t.RelatedEntityID != nil {
			related = fmt.Sprintf("%s/%s", *t.RelatedEntityType, t.RelatedEntityID)
		}
		gatewayRef := ""
		if t.GatewayRef != nil {
			gatewayRef = *t.GatewayRef
		}
		paidAt := ""
		if t.PaidAt != nil {
			paidAt = t.PaidAt.Format(time.RFC3339)
		}
		values := []interface{}{
			t.ID.String(), t.PatientID.String(), t.Type, t.Status, t.Amount, t.Currency,
			related, gatewayRef, paidAt, t.CreatedAt.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}
