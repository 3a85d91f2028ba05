package httpapi

import (
	"errors"
	"net/url"
	"testing"

	"github.com/origen-app/origen-server/internal/common"
)

func TestParseListQueryValid(t *testing.T) {
	values := url.Values{
		"page":       {"2"},
		"limit":      {"50"},
		"merchant":   {"wool"},
		"sourceType": {"MANUAL"},
		"currency":   {"ZAR"},
		"sortBy":     {"purchaseDate"},
		"sortOrder":  {"asc"},
		"startDate":  {"2024-01-01"},
		"endDate":    {"2024-12-31"},
	}
	q, err := parseListQuery(values)
	if err != nil {
		t.Fatalf("parseListQuery: %v", err)
	}
	if q.Page != 2 || q.Limit != 50 || q.Merchant != "wool" {
		t.Errorf("query = %+v", q)
	}
	if q.SourceType != "MANUAL" || q.Currency != "ZAR" {
		t.Errorf("query = %+v", q)
	}
	if q.SortBy != "purchaseDate" || q.SortOrder != "asc" {
		t.Errorf("query = %+v", q)
	}
	if q.StartDate == nil || *q.StartDate != "2024-01-01" {
		t.Errorf("startDate = %v", q.StartDate)
	}
}

func TestParseListQueryEmpty(t *testing.T) {
	q, err := parseListQuery(url.Values{})
	if err != nil {
		t.Fatalf("parseListQuery: %v", err)
	}
	if q.Page != 0 || q.Limit != 0 || q.SortBy != "" || q.StartDate != nil {
		t.Errorf("query = %+v, want zero values", q)
	}
}

func TestParseListQueryRejectsBadValues(t *testing.T) {
	tests := []struct {
		name      string
		key, val  string
		wantField string
	}{
		{"non-numeric page", "page", "two", "page"},
		{"zero page", "page", "0", "page"},
		{"negative limit", "limit", "-5", "limit"},
		{"unknown source", "sourceType", "SCAN", "sourceType"},
		{"unknown currency", "currency", "JPY", "currency"},
		{"unknown sort field", "sortBy", "id", "sortBy"},
		{"bad sort order", "sortOrder", "up", "sortOrder"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseListQuery(url.Values{tt.key: {tt.val}})
			if err == nil {
				t.Fatal("bad value accepted")
			}
			var vf *common.ValidationFailure
			if !errors.As(err, &vf) {
				t.Fatalf("err = %v, want *ValidationFailure", err)
			}
			if _, ok := vf.FieldMap()[tt.wantField]; !ok {
				t.Errorf("fields = %v, want %q present", vf.FieldMap(), tt.wantField)
			}
		})
	}
}
