package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/origen-app/origen-server/internal/entity"
	"github.com/origen-app/origen-server/internal/repository"
)

// Service is a tiny façade over the receipt repository that produces XLSX
// bytes for exports.
type Service struct {
	receipts repository.ReceiptRepository
	logger   *slog.Logger
}

func NewService(receipts repository.ReceiptRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{receipts: receipts, logger: logger}
}

// maxExportPage bounds a single export; one page of this size covers any
// plausible personal receipt history.
const maxExportPage = 10000

// ExportReceiptsXLSX returns an XLSX workbook for the user's receipts in the
// given purchase-date window (either bound optional), one row per line item.
func (s *Service) ExportReceiptsXLSX(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	params := &repository.ListReceiptsParams{
		Page:      1,
		Limit:     maxExportPage,
		SortBy:    "purchaseDate",
		SortOrder: "asc",
		StartDate: from,
		EndDate:   to,
	}
	recs, _, err := s.receipts.List(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Receipts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Purchase Date",
		"Merchant",
		"Item",
		"Quantity",
		"Unit Price",
		"Line Total",
		"Currency",
		"Source",
		"Notes",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	rows := 0
	for _, rec := range recs {
		items := rec.Items
		if len(items) == 0 {
			// still export the receipt itself
			items = []*entity.LineItem{{Description: "-", Quantity: 0}}
		}
		for _, it := range items {
			write := func(col int, v any) {
				cell, _ := excelize.CoordinatesToCellName(col, row)
				_ = f.SetCellValue(sheet, cell, v)
			}

			if rec.PurchaseDate != nil {
				write(1, rec.PurchaseDate.Format("2006-01-02"))
			} else {
				write(1, "")
			}
			write(2, strOrEmpty(rec.Merchant))
			write(3, it.Description)
			if it.Quantity > 0 {
				write(4, it.Quantity)
				write(5, it.UnitPrice)
				write(6, it.Total)
			}
			write(7, strOrEmpty(rec.Currency))
			write(8, rec.SourceType)
			write(9, truncate(strOrEmpty(rec.Notes), 140))

			row++
			rows++
		}
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 14) // date
	_ = f.SetColWidth(sheet, "B", "B", 28) // merchant
	_ = f.SetColWidth(sheet, "C", "C", 36) // item
	_ = f.SetColWidth(sheet, "D", "F", 12) // quantity / amounts
	_ = f.SetColWidth(sheet, "I", "I", 48) // notes

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"user_id", userID.String(),
		"receipts", len(recs),
		"rows", rows,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
