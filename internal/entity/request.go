package entity

// ItemInput is one line item as submitted by a client.
type ItemInput struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// CreateReceiptRequest is the payload for creating a manual receipt.
// The top-level total is intentionally absent: the server recomputes it
// from the items and never trusts the client for it.
type CreateReceiptRequest struct {
	Merchant     string      `json:"merchant"`
	PurchaseDate string      `json:"purchaseDate"`
	Currency     string      `json:"currency"`
	Tax          *float64    `json:"tax,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
	Items        []ItemInput `json:"items"`
}

// UpdateReceiptRequest is a partial patch of a receipt. A nil Items slice
// leaves the item set alone; a non-nil slice (including an empty one)
// replaces it wholesale.
type UpdateReceiptRequest struct {
	Merchant     *string     `json:"merchant,omitempty"`
	PurchaseDate *string     `json:"purchaseDate,omitempty"`
	Currency     *string     `json:"currency,omitempty"`
	Total        *float64    `json:"total,omitempty"`
	Tax          *float64    `json:"tax,omitempty"`
	Notes        *string     `json:"notes,omitempty"`
	Items        []ItemInput `json:"items,omitempty"`
}

// ListReceiptsQuery carries validated listing parameters.
type ListReceiptsQuery struct {
	Page       int
	Limit      int
	Merchant   string
	SourceType string
	Currency   string
	StartDate  *string
	EndDate    *string
	SortBy     string
	SortOrder  string
}

// Pagination is the listing metadata block.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// ReceiptPage is one page of listing results.
type ReceiptPage struct {
	Data       []*Receipt `json:"data"`
	Pagination Pagination `json:"pagination"`
}
