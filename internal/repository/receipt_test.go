package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/origen-app/origen-server/constants"
	"github.com/origen-app/origen-server/gen/ent"
	"github.com/origen-app/origen-server/gen/ent/enttest"
	"github.com/origen-app/origen-server/internal/common"
)

func testClient(t *testing.T) *ent.Client {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	client := enttest.Open(t, "sqlite3", dsn)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func seedUser(t *testing.T, client *ent.Client) uuid.UUID {
	t.Helper()
	u, err := client.User.Create().
		SetName("Test User").
		SetEmail(fmt.Sprintf("%s@example.com", strings.ToLower(strings.ReplaceAll(t.Name(), "/", "-")))).
		SetPasswordHash("x").
		Save(context.Background())
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u.ID
}

func strp(s string) *string { return &s }

func timep(t time.Time) *time.Time { return &t }

func TestCreateRecomputesTotalAndOrdersItems(t *testing.T) {
	client := testClient(t)
	repo := NewReceiptRepository(client, testLogger())
	userID := seedUser(t, client)

	rec, err := repo.Create(context.Background(), &CreateReceiptParams{
		UserID:     userID,
		SourceType: constants.SourceManual,
		Merchant:   strp("Woolworths"),
		Currency:   strp("ZAR"),
		Items: []ItemParams{
			{Description: "Milk", Quantity: 2, UnitPrice: 10.00, Total: 20.00},
			{Description: "Eggs", Quantity: 1, UnitPrice: 5.50, Total: 5.50},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Total == nil || *rec.Total != 25.50 {
		t.Errorf("total = %v, want 25.50", rec.Total)
	}
	if len(rec.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(rec.Items))
	}
	if rec.Items[0].Description != "Milk" || rec.Items[1].Description != "Eggs" {
		t.Errorf("item order = %q, %q", rec.Items[0].Description, rec.Items[1].Description)
	}
	if rec.SourceType != "MANUAL" {
		t.Errorf("sourceType = %q", rec.SourceType)
	}
}

func TestGetEnforcesOwnership(t *testing.T) {
	client := testClient(t)
	repo := NewReceiptRepository(client, testLogger())
	userID := seedUser(t, client)

	rec, err := repo.Create(context.Background(), &CreateReceiptParams{
		UserID:     userID,
		SourceType: constants.SourceManual,
		Items:      []ItemParams{{Description: "x", Quantity: 1, UnitPrice: 1, Total: 1}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.Get(context.Background(), rec.ID, userID); err != nil {
		t.Errorf("owner Get: %v", err)
	}
	if _, err := repo.Get(context.Background(), rec.ID, uuid.New()); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("stranger Get err = %v, want ErrNotFound", err)
	}
	if _, err := repo.Get(context.Background(), uuid.New(), userID); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("missing Get err = %v, want ErrNotFound", err)
	}
}

func TestUpdateReplacesItemsWholesale(t *testing.T) {
	client := testClient(t)
	repo := NewReceiptRepository(client, testLogger())
	userID := seedUser(t, client)
	ctx := context.Background()

	rec, err := repo.Create(ctx, &CreateReceiptParams{
		UserID:     userID,
		SourceType: constants.SourceManual,
		Items: []ItemParams{
			{Description: "Old A", Quantity: 1, UnitPrice: 10, Total: 10},
			{Description: "Old B", Quantity: 1, UnitPrice: 20, Total: 20},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := repo.Update(ctx, rec.ID, userID, &UpdateReceiptParams{
		ReplaceItems: true,
		Items:        []ItemParams{{Description: "New only", Quantity: 3, UnitPrice: 3, Total: 9}},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(updated.Items) != 1 || updated.Items[0].Description != "New only" {
		t.Errorf("items = %+v, want single replacement", updated.Items)
	}
	if updated.Total == nil || *updated.Total != 9 {
		t.Errorf("total = %v, want 9 (recomputed)", updated.Total)
	}

	count, err := client.LineItem.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count items: %v", err)
	}
	if count != 1 {
		t.Errorf("line item rows = %d, want 1 (old rows removed)", count)
	}
}

func TestUpdateWithoutItemsPatchesFields(t *testing.T) {
	client := testClient(t)
	repo := NewReceiptRepository(client, testLogger())
	userID := seedUser(t, client)
	ctx := context.Background()

	rec, err := repo.Create(ctx, &CreateReceiptParams{
		UserID:     userID,
		SourceType: constants.SourceManual,
		Merchant:   strp("Before"),
		Items:      []ItemParams{{Description: "x", Quantity: 1, UnitPrice: 1, Total: 1}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	total := 42.00
	updated, err := repo.Update(ctx, rec.ID, userID, &UpdateReceiptParams{
		Merchant: strp("After"),
		Total:    &total,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Merchant == nil || *updated.Merchant != "After" {
		t.Errorf("merchant = %v", updated.Merchant)
	}
	if updated.Total == nil || *updated.Total != 42.00 {
		t.Errorf("total = %v, want 42.00", updated.Total)
	}
	if len(updated.Items) != 1 {
		t.Errorf("items = %d, want untouched single item", len(updated.Items))
	}
}

func TestUpdateOwnershipMissIsNotFound(t *testing.T) {
	client := testClient(t)
	repo := NewReceiptRepository(client, testLogger())
	userID := seedUser(t, client)
	ctx := context.Background()

	rec, err := repo.Create(ctx, &CreateReceiptParams{
		UserID:     userID,
		SourceType: constants.SourceManual,
		Items:      []ItemParams{{Description: "x", Quantity: 1, UnitPrice: 1, Total: 1}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = repo.Update(ctx, rec.ID, uuid.New(), &UpdateReceiptParams{Merchant: strp("hijack")})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	got, err := repo.Get(ctx, rec.ID, userID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Merchant != nil {
		t.Errorf("merchant = %v, want unchanged nil", got.Merchant)
	}
}

func TestListFiltersSortsAndPaginates(t *testing.T) {
	client := testClient(t)
	repo := NewReceiptRepository(client, testLogger())
	userID := seedUser(t, client)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		merchant := fmt.Sprintf("Shop %02d", i)
		if i%5 == 0 {
			merchant = fmt.Sprintf("Cafe %02d", i)
		}
		date := base.AddDate(0, 0, i)
		_, err := repo.Create(ctx, &CreateReceiptParams{
			UserID:       userID,
			SourceType:   constants.SourceManual,
			Merchant:     &merchant,
			PurchaseDate: timep(date),
			Currency:     strp("USD"),
			Items:        []ItemParams{{Description: "x", Quantity: 1, UnitPrice: float64(i + 1), Total: float64(i + 1)}},
		})
		if err != nil {
			t.Fatalf("seed receipt %d: %v", i, err)
		}
	}

	recs, total, err := repo.List(ctx, userID, &ListReceiptsParams{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 25 || len(recs) != 10 {
		t.Errorf("total = %d, page size = %d, want 25 and 10", total, len(recs))
	}

	recs, total, err = repo.List(ctx, userID, &ListReceiptsParams{Page: 1, Limit: 10, Merchant: "cafe"})
	if err != nil {
		t.Fatalf("List merchant filter: %v", err)
	}
	if total != 5 {
		t.Errorf("merchant filter total = %d, want 5", total)
	}
	for _, rec := range recs {
		if !strings.HasPrefix(*rec.Merchant, "Cafe") {
			t.Errorf("unexpected merchant %q", *rec.Merchant)
		}
	}

	start := base.AddDate(0, 0, 20)
	recs, total, err = repo.List(ctx, userID, &ListReceiptsParams{
		Page: 1, Limit: 10,
		StartDate: &start,
		SortBy:    "total",
		SortOrder: "asc",
	})
	if err != nil {
		t.Fatalf("List date filter: %v", err)
	}
	if total != 5 {
		t.Errorf("date filter total = %d, want 5", total)
	}
	if len(recs) >= 2 && *recs[0].Total > *recs[1].Total {
		t.Errorf("sort asc violated: %v then %v", *recs[0].Total, *recs[1].Total)
	}

	// a stranger sees nothing
	_, total, err = repo.List(ctx, uuid.New(), &ListReceiptsParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List stranger: %v", err)
	}
	if total != 0 {
		t.Errorf("stranger total = %d, want 0", total)
	}
}
