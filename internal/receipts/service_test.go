package receipts

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/origen-app/origen-server/constants"
	"github.com/origen-app/origen-server/internal/common"
	"github.com/origen-app/origen-server/internal/entity"
	"github.com/origen-app/origen-server/internal/repository"
	"github.com/origen-app/origen-server/internal/storage"
)

// fakeRepo records the params it was called with and returns canned data.
type fakeRepo struct {
	lastCreate *repository.CreateReceiptParams
	lastUpdate *repository.UpdateReceiptParams
	lastList   *repository.ListReceiptsParams
	listTotal  int
}

func (f *fakeRepo) Create(_ context.Context, params *repository.CreateReceiptParams) (*entity.Receipt, error) {
	f.lastCreate = params
	return &entity.Receipt{ID: uuid.New(), UserID: params.UserID, SourceType: string(params.SourceType)}, nil
}

func (f *fakeRepo) Get(_ context.Context, id, userID uuid.UUID) (*entity.Receipt, error) {
	return nil, common.NotFoundError("receipt")
}

func (f *fakeRepo) Update(_ context.Context, id, userID uuid.UUID, params *repository.UpdateReceiptParams) (*entity.Receipt, error) {
	f.lastUpdate = params
	return &entity.Receipt{ID: id, UserID: userID}, nil
}

func (f *fakeRepo) List(_ context.Context, userID uuid.UUID, params *repository.ListReceiptsParams) ([]*entity.Receipt, int, error) {
	f.lastList = params
	return []*entity.Receipt{}, f.listTotal, nil
}

func testService(t *testing.T) (*Service, *fakeRepo) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store, err := storage.NewStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	repo := &fakeRepo{}
	return NewService(repo, store, logger), repo
}

func TestCreateManualParamsReachRepository(t *testing.T) {
	svc, repo := testService(t)
	userID := uuid.New()

	if _, err := svc.CreateManual(context.Background(), userID, []byte(validCreate)); err != nil {
		t.Fatalf("CreateManual: %v", err)
	}

	p := repo.lastCreate
	if p == nil {
		t.Fatal("repository not called")
	}
	if p.UserID != userID || p.SourceType != constants.SourceManual {
		t.Errorf("params = %+v", p)
	}
	if p.Merchant == nil || *p.Merchant != "Woolworths" {
		t.Errorf("merchant = %v", p.Merchant)
	}
	if p.PurchaseDate == nil || p.PurchaseDate.Format("2006-01-02") != "2024-05-01" {
		t.Errorf("purchaseDate = %v", p.PurchaseDate)
	}
	if len(p.Items) != 2 || p.Items[1].Total != 5.50 {
		t.Errorf("items = %+v", p.Items)
	}
}

func TestCreateManualRejectsInvalidPayload(t *testing.T) {
	svc, repo := testService(t)
	_, err := svc.CreateManual(context.Background(), uuid.New(), []byte(`{"merchant":""}`))
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if repo.lastCreate != nil {
		t.Error("repository called for invalid payload")
	}
}

func TestCreateManualRejectsBadDate(t *testing.T) {
	svc, _ := testService(t)
	payload := strings.Replace(validCreate, "2024-05-01T00:00:00Z", "yesterdayish", 1)
	_, err := svc.CreateManual(context.Background(), uuid.New(), []byte(payload))
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestUploadCreatesPlaceholderReceipt(t *testing.T) {
	svc, repo := testService(t)
	userID := uuid.New()

	rec, err := svc.Upload(context.Background(), userID, "slip.jpg", strings.NewReader("jpegbytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if rec.SourceType != string(constants.SourceOCR) {
		t.Errorf("sourceType = %q", rec.SourceType)
	}

	p := repo.lastCreate
	if p.SourceType != constants.SourceOCR || p.FilePath == nil || *p.FilePath == "" {
		t.Errorf("params = %+v", p)
	}
	if p.Merchant == nil || *p.Merchant != "Extracted Merchant" {
		t.Errorf("merchant = %v", p.Merchant)
	}
	if len(p.Items) != 1 || p.Items[0].Total != 25.99 {
		t.Errorf("items = %+v", p.Items)
	}
	var mock ocrPlaceholder
	if err := json.Unmarshal(p.OCRData, &mock); err != nil || mock.Confidence != 0.85 {
		t.Errorf("ocr payload = %s (err %v)", p.OCRData, err)
	}
}

func TestUpdateItemReplacementFlag(t *testing.T) {
	svc, repo := testService(t)

	if _, err := svc.Update(context.Background(), uuid.New(), uuid.New(), []byte(`{"merchant":"New"}`)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if repo.lastUpdate.ReplaceItems {
		t.Error("patch without items must not replace them")
	}

	payload := `{"items":[{"description":"Only","quantity":1,"unitPrice":9.99,"total":9.99}]}`
	if _, err := svc.Update(context.Background(), uuid.New(), uuid.New(), []byte(payload)); err != nil {
		t.Fatalf("Update with items: %v", err)
	}
	if !repo.lastUpdate.ReplaceItems || len(repo.lastUpdate.Items) != 1 {
		t.Errorf("params = %+v", repo.lastUpdate)
	}
}

func TestListDefaultsAndPagination(t *testing.T) {
	svc, repo := testService(t)
	repo.listTotal = 25

	page, err := svc.List(context.Background(), uuid.New(), entity.ListReceiptsQuery{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Pagination.TotalPages != 3 || page.Pagination.Total != 25 {
		t.Errorf("pagination = %+v", page.Pagination)
	}
	if repo.lastList.Page != 2 || repo.lastList.Limit != 10 {
		t.Errorf("params = %+v", repo.lastList)
	}

	// defaults and caps
	if _, err := svc.List(context.Background(), uuid.New(), entity.ListReceiptsQuery{Limit: 500}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.lastList.Page != 1 || repo.lastList.Limit != 100 {
		t.Errorf("clamped params = %+v", repo.lastList)
	}
}

func TestListInclusiveEndDate(t *testing.T) {
	svc, repo := testService(t)
	end := "2024-05-01"
	if _, err := svc.List(context.Background(), uuid.New(), entity.ListReceiptsQuery{EndDate: &end}); err != nil {
		t.Fatalf("List: %v", err)
	}
	got := repo.lastList.EndDate
	if got == nil || got.Format("2006-01-02 15:04:05") != "2024-05-01 23:59:59" {
		t.Errorf("endDate = %v, want end of day", got)
	}
}
