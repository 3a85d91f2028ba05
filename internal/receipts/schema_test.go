package receipts

import (
	"errors"
	"testing"

	"github.com/origen-app/origen-server/internal/common"
)

const validCreate = `{
	"merchant": "Woolworths",
	"purchaseDate": "2024-05-01T00:00:00Z",
	"currency": "ZAR",
	"tax": 3.75,
	"notes": "weekly shop",
	"items": [
		{"description": "Milk", "quantity": 2, "unitPrice": 10.00, "total": 20.00},
		{"description": "Eggs", "quantity": 1, "unitPrice": 5.50, "total": 5.50}
	]
}`

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var vf *common.ValidationFailure
	if !errors.As(err, &vf) {
		t.Fatalf("err = %v, want *ValidationFailure", err)
	}
	return vf.FieldMap()
}

func TestValidateCreatePayload(t *testing.T) {
	if err := validatePayload(createSchema, []byte(validCreate)); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	tests := []struct {
		name      string
		payload   string
		wantField string
	}{
		{"not json", `{`, "body"},
		{"missing merchant", `{"purchaseDate":"2024-05-01T00:00:00Z","currency":"USD","items":[{"description":"x","quantity":1,"unitPrice":1,"total":1}]}`, "body"},
		{"empty merchant", `{"merchant":"","purchaseDate":"2024-05-01T00:00:00Z","currency":"USD","items":[{"description":"x","quantity":1,"unitPrice":1,"total":1}]}`, "merchant"},
		{"bad currency", `{"merchant":"m","purchaseDate":"2024-05-01T00:00:00Z","currency":"JPY","items":[{"description":"x","quantity":1,"unitPrice":1,"total":1}]}`, "currency"},
		{"no items", `{"merchant":"m","purchaseDate":"2024-05-01T00:00:00Z","currency":"USD","items":[]}`, "items"},
		{"zero quantity", `{"merchant":"m","purchaseDate":"2024-05-01T00:00:00Z","currency":"USD","items":[{"description":"x","quantity":0,"unitPrice":1,"total":1}]}`, "items.0.quantity"},
		{"fractional quantity", `{"merchant":"m","purchaseDate":"2024-05-01T00:00:00Z","currency":"USD","items":[{"description":"x","quantity":1.5,"unitPrice":1,"total":1}]}`, "items.0.quantity"},
		{"zero unit price", `{"merchant":"m","purchaseDate":"2024-05-01T00:00:00Z","currency":"USD","items":[{"description":"x","quantity":1,"unitPrice":0,"total":1}]}`, "items.0.unitPrice"},
		{"negative tax", `{"merchant":"m","purchaseDate":"2024-05-01T00:00:00Z","currency":"USD","tax":-1,"items":[{"description":"x","quantity":1,"unitPrice":1,"total":1}]}`, "tax"},
		{"blank item description", `{"merchant":"m","purchaseDate":"2024-05-01T00:00:00Z","currency":"USD","items":[{"description":"","quantity":1,"unitPrice":1,"total":1}]}`, "items.0.description"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePayload(createSchema, []byte(tt.payload))
			if err == nil {
				t.Fatal("payload accepted")
			}
			if !errors.Is(err, common.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
			if _, ok := fieldsOf(t, err)[tt.wantField]; !ok {
				t.Errorf("fields = %v, want %q present", fieldsOf(t, err), tt.wantField)
			}
		})
	}
}

func TestValidateUpdatePayload(t *testing.T) {
	valid := []string{
		`{}`,
		`{"merchant":"New name"}`,
		`{"total": 99.90}`,
		`{"items":[{"description":"x","quantity":1,"unitPrice":1,"total":1}]}`,
	}
	for _, p := range valid {
		if err := validatePayload(updateSchema, []byte(p)); err != nil {
			t.Errorf("valid patch %s rejected: %v", p, err)
		}
	}

	invalid := []string{
		`{"items":[]}`,
		`{"currency":"XXX"}`,
		`{"total": -1}`,
		`{"unknown": true}`,
	}
	for _, p := range invalid {
		if err := validatePayload(updateSchema, []byte(p)); !errors.Is(err, common.ErrValidation) {
			t.Errorf("invalid patch %s: err = %v, want ErrValidation", p, err)
		}
	}
}

func TestFieldPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "body"},
		{"/merchant", "merchant"},
		{"/items/0/quantity", "items.0.quantity"},
	}
	for _, tt := range tests {
		if got := fieldPath(tt.in); got != tt.want {
			t.Errorf("fieldPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
