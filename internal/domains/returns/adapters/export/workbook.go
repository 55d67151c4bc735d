package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

// ContentType is the media type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName names the single worksheet.
const SheetName = "Returns"

const dateLayout = "2006-01-02 15:04:05"

var header = []string{
	"RMA Number", "Order Number", "Status", "Reason", "Method", "Items",
	"Tracking Number", "Requested", "Processed", "Completed", "Notes",
}

// WriteReturns renders one row per return request into an XLSX workbook.
func WriteReturns(w io.Writer, requests []*domain.ReturnRequest) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}
	if err := setRow(f, 1, toCells(header)); err != nil {
		return err
	}
	for i, request := range requests {
		if request == nil {
			continue
		}
		if err := setRow(f, i+2, row(request)); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SheetName, "A", "K", 18); err != nil {
		return err
	}
	return f.Write(w)
}

func row(request *domain.ReturnRequest) []any {
	var quantity int32
	for _, item := range request.Items {
		quantity += item.Quantity
	}
	return []any{
		request.RMANumber,
		request.OrderNumber,
		string(request.Status),
		request.Reason.Label(),
		request.Method.Label(),
		quantity,
		request.TrackingNumber,
		request.RequestedDate.Format(dateLayout),
		formatOptional(request.ProcessedDate),
		formatOptional(request.CompletedDate),
		request.Notes,
	}
}

func setRow(f *excelize.File, rowNumber int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", rowNumber, err)
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
