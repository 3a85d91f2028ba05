package export

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/origen-app/origen-server/internal/entity"
	"github.com/origen-app/origen-server/internal/repository"
)

type stubRepo struct {
	receipts []*entity.Receipt
	lastList *repository.ListReceiptsParams
}

func (s *stubRepo) Create(context.Context, *repository.CreateReceiptParams) (*entity.Receipt, error) {
	panic("not used")
}

func (s *stubRepo) Get(context.Context, uuid.UUID, uuid.UUID) (*entity.Receipt, error) {
	panic("not used")
}

func (s *stubRepo) Update(context.Context, uuid.UUID, uuid.UUID, *repository.UpdateReceiptParams) (*entity.Receipt, error) {
	panic("not used")
}

func (s *stubRepo) List(_ context.Context, _ uuid.UUID, params *repository.ListReceiptsParams) ([]*entity.Receipt, int, error) {
	s.lastList = params
	return s.receipts, len(s.receipts), nil
}

func strp(s string) *string { return &s }

func TestExportOneRowPerLineItem(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	repo := &stubRepo{receipts: []*entity.Receipt{
		{
			ID:           uuid.New(),
			SourceType:   "MANUAL",
			Merchant:     strp("Woolworths"),
			PurchaseDate: &date,
			Currency:     strp("ZAR"),
			Items: []*entity.LineItem{
				{Description: "Milk", Quantity: 2, UnitPrice: 10, Total: 20},
				{Description: "Eggs", Quantity: 1, UnitPrice: 5.5, Total: 5.5},
			},
		},
		{
			ID:         uuid.New(),
			SourceType: "OCR",
			Merchant:   strp("Cafe"),
			Items: []*entity.LineItem{
				{Description: "Coffee", Quantity: 1, UnitPrice: 3, Total: 3},
			},
		},
	}}
	svc := NewService(repo, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	data, err := svc.ExportReceiptsXLSX(context.Background(), uuid.New(), nil, nil)
	if err != nil {
		t.Fatalf("ExportReceiptsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Receipts")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// header + one row per line item
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if rows[0][0] != "Purchase Date" || rows[0][2] != "Item" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "Woolworths" || rows[1][2] != "Milk" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][2] != "Eggs" || rows[3][2] != "Coffee" {
		t.Errorf("rows = %v / %v", rows[2], rows[3])
	}

	if repo.lastList.SortBy != "purchaseDate" || repo.lastList.SortOrder != "asc" {
		t.Errorf("list params = %+v, want chronological order", repo.lastList)
	}
}

func TestExportPassesDateWindow(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, slog.New(slog.NewTextHandler(os.Stderr, nil)))

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	if _, err := svc.ExportReceiptsXLSX(context.Background(), uuid.New(), &from, &to); err != nil {
		t.Fatalf("ExportReceiptsXLSX: %v", err)
	}
	if repo.lastList.StartDate == nil || !repo.lastList.StartDate.Equal(from) {
		t.Errorf("startDate = %v", repo.lastList.StartDate)
	}
	if repo.lastList.EndDate == nil || !repo.lastList.EndDate.Equal(to) {
		t.Errorf("endDate = %v", repo.lastList.EndDate)
	}
}
