package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Receipt represents a persisted receipt for data transfer between layers.
type Receipt struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"userId"`
	SourceType   string          `json:"sourceType"`
	Merchant     *string         `json:"merchant"`
	PurchaseDate *time.Time      `json:"purchaseDate"`
	Currency     *string         `json:"currency"`
	Total        *float64        `json:"total"`
	Tax          *float64        `json:"tax"`
	Notes        *string         `json:"notes"`
	OCRData      json.RawMessage `json:"ocrData,omitempty"`
	FilePath     *string         `json:"fileUrl"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	Items        []*LineItem     `json:"items"`
}

// LineItem represents a persisted line item belonging to one receipt.
type LineItem struct {
	ID          uuid.UUID `json:"id"`
	ReceiptID   uuid.UUID `json:"receiptId"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unitPrice"`
	Total       float64   `json:"total"`
}
