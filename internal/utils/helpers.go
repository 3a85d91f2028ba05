package utils

import (
	"time"

	"github.com/origen-app/origen-server/gen/ent"
	"github.com/origen-app/origen-server/internal/entity"
)

func ToUser(e *ent.User) *entity.User {
	return &entity.User{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToReceipt maps an ent row to the transfer struct. Items come along when
// the query eager-loaded them.
func ToReceipt(e *ent.Receipt) *entity.Receipt {
	r := &entity.Receipt{
		ID:           e.ID,
		UserID:       e.UserID,
		SourceType:   e.SourceType,
		Merchant:     e.Merchant,
		PurchaseDate: e.PurchaseDate,
		Currency:     e.Currency,
		Total:        e.Total,
		Tax:          e.Tax,
		Notes:        e.Notes,
		OCRData:      e.OcrData,
		FilePath:     e.FilePath,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
		Items:        []*entity.LineItem{},
	}
	for _, it := range e.Edges.Items {
		r.Items = append(r.Items, ToLineItem(it))
	}
	return r
}

func ToLineItem(e *ent.LineItem) *entity.LineItem {
	return &entity.LineItem{
		ID:          e.ID,
		ReceiptID:   e.ReceiptID,
		Description: e.Description,
		Quantity:    e.Quantity,
		UnitPrice:   e.UnitPrice,
		Total:       e.Total,
	}
}

// ParseYMD parses a date-only value at midnight UTC to match DATE semantics.
func ParseYMD(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParseDateTime accepts an RFC 3339 date-time or a bare YYYY-MM-DD date.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return ParseYMD(s)
}
