package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/origen-app/origen-server/constants"
	"github.com/origen-app/origen-server/gen/ent"
	"github.com/origen-app/origen-server/gen/ent/lineitem"
	"github.com/origen-app/origen-server/gen/ent/receipt"
	"github.com/origen-app/origen-server/internal/common"
	"github.com/origen-app/origen-server/internal/entity"
	"github.com/origen-app/origen-server/internal/money"
	"github.com/origen-app/origen-server/internal/utils"
)

// ItemParams is one line item to persist, already validated and numeric.
type ItemParams struct {
	Description string
	Quantity    int
	UnitPrice   float64
	Total       float64
}

// CreateReceiptParams wraps parameters for creating a receipt with its items.
type CreateReceiptParams struct {
	UserID       uuid.UUID
	SourceType   constants.SourceType
	Merchant     *string
	PurchaseDate *time.Time
	Currency     *string
	Tax          *float64
	Notes        *string
	OCRData      json.RawMessage
	FilePath     *string
	Items        []ItemParams
}

// UpdateReceiptParams is a partial receipt patch. Nil fields are untouched.
// When ReplaceItems is set the whole item collection is swapped for Items and
// the total is recomputed from them; otherwise Total is applied as given.
type UpdateReceiptParams struct {
	Merchant     *string
	PurchaseDate *time.Time
	Currency     *string
	Total        *float64
	Tax          *float64
	Notes        *string
	ReplaceItems bool
	Items        []ItemParams
}

// ListReceiptsParams carries normalized listing filters. Page and Limit are
// already clamped by the caller.
type ListReceiptsParams struct {
	Page       int
	Limit      int
	Merchant   string
	SourceType string
	Currency   string
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

type ReceiptRepository interface {
	Create(ctx context.Context, params *CreateReceiptParams) (*entity.Receipt, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*entity.Receipt, error)
	Update(ctx context.Context, id, userID uuid.UUID, params *UpdateReceiptParams) (*entity.Receipt, error)
	List(ctx context.Context, userID uuid.UUID, params *ListReceiptsParams) ([]*entity.Receipt, int, error)
}

type receiptRepository struct {
	client *ent.Client
	logger *slog.Logger
}

func NewReceiptRepository(client *ent.Client, logger *slog.Logger) ReceiptRepository {
	return &receiptRepository{
		client: client,
		logger: logger,
	}
}

// Create persists the receipt and its items in one transaction. The stored
// total is always recomputed from the item totals; whatever the client sent
// at the top level never reaches this layer.
func (r *receiptRepository) Create(ctx context.Context, params *CreateReceiptParams) (*entity.Receipt, error) {
	var created *entity.Receipt
	err := WithTx(ctx, r.client, func(tx *ent.Tx) error {
		builder := tx.Receipt.Create().
			SetUserID(params.UserID).
			SetSourceType(string(params.SourceType)).
			SetNillableMerchant(params.Merchant).
			SetNillablePurchaseDate(params.PurchaseDate).
			SetNillableCurrency(params.Currency).
			SetNillableTax(params.Tax).
			SetNillableNotes(params.Notes).
			SetNillableFilePath(params.FilePath)
		if len(params.Items) > 0 {
			builder = builder.SetTotal(sumTotals(params.Items))
		}
		if params.OCRData != nil {
			builder = builder.SetOcrData(params.OCRData)
		}
		rec, err := builder.Save(ctx)
		if err != nil {
			return err
		}
		if err := insertItems(ctx, tx, rec.ID, params.Items); err != nil {
			return err
		}
		created, err = loadReceipt(ctx, tx.Client(), rec.ID, params.UserID)
		return err
	})
	if err != nil {
		r.logger.Error("failed to create receipt", "user_id", params.UserID, "error", err)
		return nil, common.DatabaseError("create receipt", err)
	}
	return created, nil
}

func (r *receiptRepository) Get(ctx context.Context, id, userID uuid.UUID) (*entity.Receipt, error) {
	rec, err := loadReceipt(ctx, r.client, id, userID)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, common.NotFoundError("receipt")
		}
		r.logger.Error("failed to get receipt", "receipt_id", id, "error", err)
		return nil, common.DatabaseError("get receipt", err)
	}
	return rec, nil
}

// Update patches a receipt owned by userID. Supplying items replaces the
// whole collection: prior rows are deleted, the new set inserted, and the
// total recomputed, all inside one transaction so no reader ever observes
// the receipt without its items.
func (r *receiptRepository) Update(ctx context.Context, id, userID uuid.UUID, params *UpdateReceiptParams) (*entity.Receipt, error) {
	var updated *entity.Receipt
	err := WithTx(ctx, r.client, func(tx *ent.Tx) error {
		// ownership check; a miss is indistinguishable from absence
		_, err := tx.Receipt.Query().
			Where(receipt.ID(id), receipt.UserID(userID)).
			Only(ctx)
		if err != nil {
			return err
		}

		builder := tx.Receipt.UpdateOneID(id).
			SetNillableMerchant(params.Merchant).
			SetNillablePurchaseDate(params.PurchaseDate).
			SetNillableCurrency(params.Currency).
			SetNillableTax(params.Tax).
			SetNillableNotes(params.Notes)

		if params.ReplaceItems {
			if _, err := tx.LineItem.Delete().
				Where(lineitem.ReceiptID(id)).
				Exec(ctx); err != nil {
				return err
			}
			if err := insertItems(ctx, tx, id, params.Items); err != nil {
				return err
			}
			builder = builder.SetTotal(sumTotals(params.Items))
		} else if params.Total != nil {
			builder = builder.SetTotal(*params.Total)
		}

		if _, err := builder.Save(ctx); err != nil {
			return err
		}
		updated, err = loadReceipt(ctx, tx.Client(), id, userID)
		return err
	})
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, common.NotFoundError("receipt")
		}
		r.logger.Error("failed to update receipt", "receipt_id", id, "error", err)
		return nil, common.DatabaseError("update receipt", err)
	}
	return updated, nil
}

func (r *receiptRepository) List(ctx context.Context, userID uuid.UUID, params *ListReceiptsParams) ([]*entity.Receipt, int, error) {
	q := r.client.Receipt.Query().Where(receipt.UserID(userID))
	if params.Merchant != "" {
		q = q.Where(receipt.MerchantContainsFold(params.Merchant))
	}
	if params.SourceType != "" {
		q = q.Where(receipt.SourceType(params.SourceType))
	}
	if params.Currency != "" {
		q = q.Where(receipt.Currency(params.Currency))
	}
	if params.StartDate != nil {
		q = q.Where(receipt.PurchaseDateGTE(*params.StartDate))
	}
	if params.EndDate != nil {
		q = q.Where(receipt.PurchaseDateLTE(*params.EndDate))
	}

	total, err := q.Clone().Count(ctx)
	if err != nil {
		r.logger.Error("failed to count receipts", "user_id", userID, "error", err)
		return nil, 0, common.DatabaseError("count receipts", err)
	}

	recs, err := q.
		Order(orderTerm(params.SortBy, params.SortOrder)).
		Offset((params.Page - 1) * params.Limit).
		Limit(params.Limit).
		WithItems(orderedItems).
		All(ctx)
	if err != nil {
		r.logger.Error("failed to list receipts", "user_id", userID, "error", err)
		return nil, 0, common.DatabaseError("list receipts", err)
	}

	result := make([]*entity.Receipt, len(recs))
	for i, rec := range recs {
		result[i] = utils.ToReceipt(rec)
	}
	return result, total, nil
}

func loadReceipt(ctx context.Context, client *ent.Client, id, userID uuid.UUID) (*entity.Receipt, error) {
	rec, err := client.Receipt.Query().
		Where(receipt.ID(id), receipt.UserID(userID)).
		WithItems(orderedItems).
		Only(ctx)
	if err != nil {
		return nil, err
	}
	return utils.ToReceipt(rec), nil
}

func insertItems(ctx context.Context, tx *ent.Tx, receiptID uuid.UUID, items []ItemParams) error {
	if len(items) == 0 {
		return nil
	}
	builders := make([]*ent.LineItemCreate, len(items))
	for i, it := range items {
		builders[i] = tx.LineItem.Create().
			SetReceiptID(receiptID).
			SetDescription(it.Description).
			SetQuantity(it.Quantity).
			SetUnitPrice(it.UnitPrice).
			SetTotal(it.Total).
			SetPosition(i)
	}
	_, err := tx.LineItem.CreateBulk(builders...).Save(ctx)
	return err
}

func sumTotals(items []ItemParams) float64 {
	totals := make([]float64, len(items))
	for i, it := range items {
		totals[i] = it.Total
	}
	return money.Sum(totals...)
}

func orderedItems(q *ent.LineItemQuery) {
	q.Order(lineitem.ByPosition())
}

func orderTerm(sortBy, sortOrder string) receipt.OrderOption {
	var opts []entsql.OrderTermOption
	if sortOrder != "asc" {
		opts = append(opts, entsql.OrderDesc())
	}
	switch sortBy {
	case "purchaseDate":
		return receipt.ByPurchaseDate(opts...)
	case "total":
		return receipt.ByTotal(opts...)
	case "merchant":
		return receipt.ByMerchant(opts...)
	default:
		return receipt.ByCreatedAt(opts...)
	}
}
