// Package receipts orchestrates receipt submission, retrieval, and listing
// on top of the repository layer. It owns request validation; the HTTP layer
// hands it raw payloads and gets transfer structs back.
package receipts

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/origen-app/origen-server/constants"
	"github.com/origen-app/origen-server/internal/common"
	"github.com/origen-app/origen-server/internal/entity"
	"github.com/origen-app/origen-server/internal/repository"
	"github.com/origen-app/origen-server/internal/storage"
	"github.com/origen-app/origen-server/internal/utils"
)

type Service struct {
	repo   repository.ReceiptRepository
	store  *storage.Store
	logger *slog.Logger
}

func NewService(repo repository.ReceiptRepository, store *storage.Store, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  store,
		logger: logger,
	}
}

// CreateManual validates a draft submission and persists it as a MANUAL
// receipt. The authoritative total is recomputed server-side from the items.
func (s *Service) CreateManual(ctx context.Context, userID uuid.UUID, payload []byte) (*entity.Receipt, error) {
	if err := validatePayload(createSchema, payload); err != nil {
		return nil, err
	}
	var req entity.CreateReceiptRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, common.WrapError(err, "decoding create request")
	}

	purchaseDate, err := utils.ParseDateTime(req.PurchaseDate)
	if err != nil {
		return nil, &common.ValidationFailure{Fields: []common.FieldError{
			{Field: "purchaseDate", Message: "purchaseDate must be a valid date-time"},
		}}
	}

	currency := req.Currency
	params := &repository.CreateReceiptParams{
		UserID:       userID,
		SourceType:   constants.SourceManual,
		Merchant:     &req.Merchant,
		PurchaseDate: &purchaseDate,
		Currency:     &currency,
		Tax:          req.Tax,
		Notes:        req.Notes,
		Items:        toItemParams(req.Items),
	}

	rec, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	s.logger.Info("receipt created", "receipt_id", rec.ID, "user_id", userID, "items", len(rec.Items))
	return rec, nil
}

// ocrPlaceholder is the fixed stand-in for the unimplemented OCR extractor.
type ocrPlaceholder struct {
	Merchant   string             `json:"merchant"`
	Total      float64            `json:"total"`
	Date       string             `json:"date"`
	Items      []entity.ItemInput `json:"items"`
	Confidence float64            `json:"confidence"`
}

func placeholderOCR(now time.Time) ocrPlaceholder {
	return ocrPlaceholder{
		Merchant: "Extracted Merchant",
		Total:    25.99,
		Date:     now.UTC().Format(time.RFC3339),
		Items: []entity.ItemInput{
			{Description: "Extracted Item", Quantity: 1, UnitPrice: 25.99, Total: 25.99},
		},
		Confidence: 0.85,
	}
}

// Upload stores the file and creates an OCR receipt from the placeholder
// extraction result, keeping the raw payload on the receipt for later
// reprocessing.
func (s *Service) Upload(ctx context.Context, userID uuid.UUID, filename string, file io.Reader) (*entity.Receipt, error) {
	path, err := s.store.Save(filename, file)
	if err != nil {
		return nil, err
	}

	mock := placeholderOCR(time.Now())
	raw, err := json.Marshal(mock)
	if err != nil {
		return nil, common.WrapError(err, "encoding ocr payload")
	}
	purchaseDate, _ := utils.ParseDateTime(mock.Date)
	currency := string(constants.DefaultCurrency)

	params := &repository.CreateReceiptParams{
		UserID:       userID,
		SourceType:   constants.SourceOCR,
		Merchant:     &mock.Merchant,
		PurchaseDate: &purchaseDate,
		Currency:     &currency,
		OCRData:      raw,
		FilePath:     &path,
		Items:        toItemParams(mock.Items),
	}

	rec, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}
	s.logger.Info("upload receipt created", "receipt_id", rec.ID, "user_id", userID, "file", path)
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*entity.Receipt, error) {
	return s.repo.Get(ctx, id, userID)
}

// Update applies a partial patch. A supplied items array replaces the whole
// collection and forces a total recompute; without items, fields (including
// total) are patched as given.
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, payload []byte) (*entity.Receipt, error) {
	if err := validatePayload(updateSchema, payload); err != nil {
		return nil, err
	}
	var req entity.UpdateReceiptRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, common.WrapError(err, "decoding update request")
	}

	params := &repository.UpdateReceiptParams{
		Merchant: req.Merchant,
		Currency: req.Currency,
		Total:    req.Total,
		Tax:      req.Tax,
		Notes:    req.Notes,
	}
	if req.PurchaseDate != nil {
		t, err := utils.ParseDateTime(*req.PurchaseDate)
		if err != nil {
			return nil, &common.ValidationFailure{Fields: []common.FieldError{
				{Field: "purchaseDate", Message: "purchaseDate must be a valid date-time"},
			}}
		}
		params.PurchaseDate = &t
	}
	if req.Items != nil {
		params.ReplaceItems = true
		params.Items = toItemParams(req.Items)
	}

	rec, err := s.repo.Update(ctx, id, userID, params)
	if err != nil {
		return nil, err
	}
	s.logger.Info("receipt updated", "receipt_id", id, "user_id", userID, "items_replaced", params.ReplaceItems)
	return rec, nil
}

// List serves the read side: filter, sort, paginate. Defaults are page 1,
// limit 20 (capped at 100), newest created first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, q entity.ListReceiptsQuery) (*entity.ReceiptPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	params := &repository.ListReceiptsParams{
		Page:       page,
		Limit:      limit,
		Merchant:   q.Merchant,
		SourceType: q.SourceType,
		Currency:   q.Currency,
		SortBy:     q.SortBy,
		SortOrder:  q.SortOrder,
	}
	var err error
	if params.StartDate, err = parseBound(q.StartDate, false); err != nil {
		return nil, &common.ValidationFailure{Fields: []common.FieldError{
			{Field: "startDate", Message: "startDate must be a valid date or date-time"},
		}}
	}
	if params.EndDate, err = parseBound(q.EndDate, true); err != nil {
		return nil, &common.ValidationFailure{Fields: []common.FieldError{
			{Field: "endDate", Message: "endDate must be a valid date or date-time"},
		}}
	}

	recs, total, err := s.repo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	return &entity.ReceiptPage{
		Data: recs,
		Pagination: entity.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

// parseBound parses an optional range bound. A bare end date is pushed to
// the end of its day so the range stays inclusive.
func parseBound(s *string, end bool) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := utils.ParseDateTime(*s)
	if err != nil {
		return nil, err
	}
	if end && len(*s) == len("2006-01-02") {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func toItemParams(items []entity.ItemInput) []repository.ItemParams {
	out := make([]repository.ItemParams, len(items))
	for i, it := range items {
		out[i] = repository.ItemParams{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		}
	}
	return out
}
