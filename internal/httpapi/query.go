package httpapi

import (
	"net/url"
	"strconv"

	"github.com/origen-app/origen-server/constants"
	"github.com/origen-app/origen-server/internal/common"
	"github.com/origen-app/origen-server/internal/entity"
)

var sortFields = map[string]bool{
	"createdAt":    true,
	"purchaseDate": true,
	"total":        true,
	"merchant":     true,
}

// parseListQuery validates listing query parameters. Unknown sort fields,
// bad enums, and non-numeric page/limit all fail fast rather than being
// silently ignored.
func parseListQuery(values url.Values) (entity.ListReceiptsQuery, error) {
	q := entity.ListReceiptsQuery{
		Merchant: values.Get("merchant"),
	}
	var fields []common.FieldError

	if v := values.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fields = append(fields, common.FieldError{Field: "page", Message: "page must be a positive integer"})
		} else {
			q.Page = n
		}
	}
	if v := values.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fields = append(fields, common.FieldError{Field: "limit", Message: "limit must be a positive integer"})
		} else {
			q.Limit = n
		}
	}

	if v := values.Get("sourceType"); v != "" {
		if !constants.IsSourceType(v) {
			fields = append(fields, common.FieldError{Field: "sourceType", Message: "sourceType must be MANUAL or OCR"})
		} else {
			q.SourceType = v
		}
	}
	if v := values.Get("currency"); v != "" {
		if !constants.IsCurrency(v) {
			fields = append(fields, common.FieldError{Field: "currency", Message: "currency must be one of USD, EUR, ZAR, GBP"})
		} else {
			q.Currency = v
		}
	}

	if v := values.Get("sortBy"); v != "" {
		if !sortFields[v] {
			fields = append(fields, common.FieldError{Field: "sortBy", Message: "sortBy must be one of createdAt, purchaseDate, total, merchant"})
		} else {
			q.SortBy = v
		}
	}
	if v := values.Get("sortOrder"); v != "" {
		if v != "asc" && v != "desc" {
			fields = append(fields, common.FieldError{Field: "sortOrder", Message: "sortOrder must be asc or desc"})
		} else {
			q.SortOrder = v
		}
	}

	if v := values.Get("startDate"); v != "" {
		q.StartDate = &v
	}
	if v := values.Get("endDate"); v != "" {
		q.EndDate = &v
	}

	if len(fields) > 0 {
		return entity.ListReceiptsQuery{}, &common.ValidationFailure{Fields: fields}
	}
	return q, nil
}
