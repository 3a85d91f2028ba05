package entry

import (
	"testing"
)

func strp(s string) *string   { return &s }
func intp(i int) *int         { return &i }
func f64p(f float64) *float64 { return &f }

func validDetails(m Machine) Machine {
	m = Reduce(m, UpdateMerchant{Merchant: "Woolworths"})
	m = Reduce(m, UpdatePurchaseDate{PurchaseDate: "2024-05-01"})
	return m
}

func validItem() Item {
	return Item{Description: "Milk", Quantity: 2, UnitPrice: "10.00", Total: 20.00}
}

// advance walks a fresh machine to the requested state with a valid draft.
func advance(t *testing.T, target State) Machine {
	t.Helper()
	m := NewMachine()
	if target == StateEnteringDetails {
		return m
	}
	m = validDetails(m)
	m = Reduce(m, NextStep{})
	if target == StateEnteringItems {
		return m
	}
	m = Reduce(m, AddItem{Item: validItem()})
	m = Reduce(m, NextStep{})
	if target == StateReviewing {
		return m
	}
	m = Reduce(m, Submit{})
	if target == StateSaving {
		return m
	}
	switch target {
	case StateDone:
		m = Reduce(m, SubmitSuccess{})
	case StateError:
		m = Reduce(m, SubmitError{})
	}
	if m.State != target {
		t.Fatalf("advance: got state %q, want %q", m.State, target)
	}
	return m
}

func TestNewMachine(t *testing.T) {
	m := NewMachine()
	if m.State != StateEnteringDetails {
		t.Errorf("initial state = %q, want %q", m.State, StateEnteringDetails)
	}
	d := m.Draft
	if d.Merchant != "" || d.PurchaseDate != "" || d.Currency != "USD" ||
		d.Tax != nil || d.Notes != "" || len(d.Items) != 0 ||
		len(d.Errors) != 0 || d.IsSubmitting {
		t.Errorf("initial draft not empty defaults: %+v", d)
	}
}

func TestDetailsFieldUpdates(t *testing.T) {
	m := NewMachine()
	m = Reduce(m, UpdateMerchant{Merchant: "Checkers"})
	m = Reduce(m, UpdatePurchaseDate{PurchaseDate: "2024-03-15"})
	m = Reduce(m, UpdateCurrency{Currency: "ZAR"})
	m = Reduce(m, UpdateTax{Tax: 4.50})
	m = Reduce(m, UpdateNotes{Notes: "groceries"})

	d := m.Draft
	if d.Merchant != "Checkers" || d.PurchaseDate != "2024-03-15" || d.Currency != "ZAR" {
		t.Errorf("details not applied: %+v", d)
	}
	if d.Tax == nil || *d.Tax != 4.50 {
		t.Errorf("tax = %v, want 4.50", d.Tax)
	}
	if d.Notes != "groceries" {
		t.Errorf("notes = %q", d.Notes)
	}
	if m.State != StateEnteringDetails {
		t.Errorf("field updates must not change state, got %q", m.State)
	}
}

func TestDetailsNextStepGuard(t *testing.T) {
	tests := []struct {
		name     string
		merchant string
		date     string
		want     State
	}{
		{"both empty", "", "", StateEnteringDetails},
		{"merchant only", "Spar", "", StateEnteringDetails},
		{"date only", "", "2024-05-01", StateEnteringDetails},
		{"whitespace merchant", "   ", "2024-05-01", StateEnteringDetails},
		{"both present", "Spar", "2024-05-01", StateEnteringItems},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine()
			m = Reduce(m, UpdateMerchant{Merchant: tt.merchant})
			m = Reduce(m, UpdatePurchaseDate{PurchaseDate: tt.date})
			m = Reduce(m, NextStep{})
			if m.State != tt.want {
				t.Errorf("state = %q, want %q", m.State, tt.want)
			}
		})
	}
}

func TestAddUpdateRemoveItem(t *testing.T) {
	m := advance(t, StateEnteringItems)

	m = Reduce(m, AddItem{Item: Item{Description: "Bread", Quantity: 1, UnitPrice: "15.00", Total: 15.00}})
	m = Reduce(m, AddItem{Item: Item{Description: "Butter", Quantity: 1, UnitPrice: "30.00", Total: 30.00}})
	if len(m.Draft.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(m.Draft.Items))
	}

	m = Reduce(m, UpdateItem{Index: 1, Patch: ItemPatch{Description: strp("Salted butter")}})
	if m.Draft.Items[1].Description != "Salted butter" {
		t.Errorf("description not patched: %+v", m.Draft.Items[1])
	}
	// other fields untouched by partial patch
	if m.Draft.Items[1].Quantity != 1 || m.Draft.Items[1].Total != 30.00 {
		t.Errorf("partial patch altered unrelated fields: %+v", m.Draft.Items[1])
	}

	m = Reduce(m, RemoveItem{Index: 0})
	if len(m.Draft.Items) != 1 || m.Draft.Items[0].Description != "Salted butter" {
		t.Errorf("remove kept wrong item: %+v", m.Draft.Items)
	}

	// out-of-range indexes are safe no-ops
	before := len(m.Draft.Items)
	m = Reduce(m, RemoveItem{Index: 5})
	m = Reduce(m, UpdateItem{Index: -1, Patch: ItemPatch{Description: strp("x")}})
	if len(m.Draft.Items) != before {
		t.Errorf("out-of-range events mutated items")
	}
}

func TestUpdateItemRecomputesTotal(t *testing.T) {
	tests := []struct {
		name  string
		patch ItemPatch
		want  float64
	}{
		{"quantity change", ItemPatch{Quantity: intp(3)}, 30.00},
		{"unit price change", ItemPatch{UnitPrice: strp("5.50")}, 11.00},
		{"both change", ItemPatch{Quantity: intp(4), UnitPrice: strp("2.25")}, 9.00},
		{"partial decimal coerces to zero", ItemPatch{UnitPrice: strp("abc")}, 0},
		{"empty price coerces to zero", ItemPatch{UnitPrice: strp("")}, 0},
		{"rounded to two decimals", ItemPatch{Quantity: intp(3), UnitPrice: strp("3.333")}, 10.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := advance(t, StateEnteringItems)
			m = Reduce(m, AddItem{Item: Item{Description: "Milk", Quantity: 2, UnitPrice: "10.00", Total: 20.00}})
			m = Reduce(m, UpdateItem{Index: 0, Patch: tt.patch})
			if got := m.Draft.Items[0].Total; got != tt.want {
				t.Errorf("total = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirectTotalOverride(t *testing.T) {
	m := advance(t, StateEnteringItems)
	m = Reduce(m, AddItem{Item: Item{Description: "Milk", Quantity: 2, UnitPrice: "10.00", Total: 20.00}})

	// a direct total edit sticks and leaves quantity/price alone
	m = Reduce(m, UpdateItem{Index: 0, Patch: ItemPatch{Total: f64p(18.00)}})
	it := m.Draft.Items[0]
	if it.Total != 18.00 || it.Quantity != 2 || it.UnitPrice != "10.00" {
		t.Errorf("override changed more than total: %+v", it)
	}

	// the next quantity/price edit overwrites the override
	m = Reduce(m, UpdateItem{Index: 0, Patch: ItemPatch{Quantity: intp(3)}})
	if got := m.Draft.Items[0].Total; got != 30.00 {
		t.Errorf("total after quantity edit = %v, want 30.00", got)
	}
}

func TestItemsNextStepGuard(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  State
	}{
		{"no items", nil, StateEnteringItems},
		{"blank description", []Item{{Description: "  ", Quantity: 1, UnitPrice: "5", Total: 5}}, StateEnteringItems},
		{"zero quantity", []Item{{Description: "Milk", Quantity: 0, UnitPrice: "5", Total: 5}}, StateEnteringItems},
		{"zero price", []Item{{Description: "Milk", Quantity: 1, UnitPrice: "0", Total: 5}}, StateEnteringItems},
		{"unparseable price", []Item{{Description: "Milk", Quantity: 1, UnitPrice: "x", Total: 5}}, StateEnteringItems},
		{"zero total", []Item{{Description: "Milk", Quantity: 1, UnitPrice: "5", Total: 0}}, StateEnteringItems},
		{"one bad of two", []Item{validItem(), {Description: "", Quantity: 1, UnitPrice: "5", Total: 5}}, StateEnteringItems},
		{"all valid", []Item{validItem(), {Description: "Bread", Quantity: 1, UnitPrice: "15", Total: 15}}, StateReviewing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := advance(t, StateEnteringItems)
			for _, it := range tt.items {
				m = Reduce(m, AddItem{Item: it})
			}
			m = Reduce(m, NextStep{})
			if m.State != tt.want {
				t.Errorf("state = %q, want %q", m.State, tt.want)
			}
		})
	}
}

func TestPreviousStepFromItems(t *testing.T) {
	m := advance(t, StateEnteringItems)
	m = Reduce(m, PreviousStep{})
	if m.State != StateEnteringDetails {
		t.Errorf("state = %q, want %q", m.State, StateEnteringDetails)
	}
}

func TestSubmitLifecycle(t *testing.T) {
	m := advance(t, StateReviewing)
	if m.Draft.IsSubmitting {
		t.Fatal("isSubmitting set before Submit")
	}

	m = Reduce(m, Submit{})
	if m.State != StateSaving || !m.Draft.IsSubmitting {
		t.Fatalf("after Submit: state=%q isSubmitting=%v", m.State, m.Draft.IsSubmitting)
	}

	ok := Reduce(m, SubmitSuccess{})
	if ok.State != StateDone || ok.Draft.IsSubmitting {
		t.Errorf("after SubmitSuccess: state=%q isSubmitting=%v", ok.State, ok.Draft.IsSubmitting)
	}

	failed := Reduce(m, SubmitError{})
	if failed.State != StateError || failed.Draft.IsSubmitting {
		t.Errorf("after SubmitError: state=%q isSubmitting=%v", failed.State, failed.Draft.IsSubmitting)
	}
}

func TestSavingIgnoresOtherEvents(t *testing.T) {
	m := advance(t, StateSaving)
	for _, e := range []Event{NextStep{}, PreviousStep{}, Submit{}, Reset{}, AddItem{Item: validItem()}} {
		next := Reduce(m, e)
		if next.State != StateSaving {
			t.Errorf("%T moved saving to %q", e, next.State)
		}
	}
}

func TestResetFromTerminalStates(t *testing.T) {
	for _, start := range []State{StateDone, StateError} {
		t.Run(string(start), func(t *testing.T) {
			m := advance(t, start)
			m = Reduce(m, Reset{})
			if m.State != StateEnteringDetails {
				t.Fatalf("state = %q, want %q", m.State, StateEnteringDetails)
			}
			d := m.Draft
			if d.Merchant != "" || d.PurchaseDate != "" || d.Currency != "USD" ||
				d.Tax != nil || len(d.Items) != 0 || len(d.Errors) != 0 || d.IsSubmitting {
				t.Errorf("reset draft not empty defaults: %+v", d)
			}
		})
	}
}

func TestErrorRetryKeepsDraft(t *testing.T) {
	m := advance(t, StateError)
	m = Reduce(m, PreviousStep{})
	if m.State != StateReviewing {
		t.Fatalf("state = %q, want %q", m.State, StateReviewing)
	}
	if m.Draft.Merchant != "Woolworths" || len(m.Draft.Items) != 1 {
		t.Errorf("retry lost draft data: %+v", m.Draft)
	}
}

func TestFieldErrors(t *testing.T) {
	m := NewMachine()
	m = Reduce(m, SetError{Field: "merchant", Message: "Merchant name is required"})
	m = Reduce(m, SetError{Field: "purchaseDate", Message: "Purchase date is required"})
	if len(m.Draft.Errors) != 2 || m.Draft.Errors["merchant"] == "" {
		t.Errorf("errors = %v", m.Draft.Errors)
	}
	m = Reduce(m, ClearErrors{})
	if len(m.Draft.Errors) != 0 {
		t.Errorf("errors after clear = %v", m.Draft.Errors)
	}
}

func TestReduceIsPure(t *testing.T) {
	m := advance(t, StateEnteringItems)
	m = Reduce(m, AddItem{Item: validItem()})
	before := m

	_ = Reduce(m, UpdateItem{Index: 0, Patch: ItemPatch{Quantity: intp(9)}})
	_ = Reduce(m, RemoveItem{Index: 0})
	_ = Reduce(m, SetError{Field: "x", Message: "y"})

	if before.Draft.Items[0].Quantity != 2 {
		t.Errorf("prior machine value mutated: %+v", before.Draft.Items[0])
	}
	if len(before.Draft.Items) != 1 {
		t.Errorf("prior item slice mutated: %v", before.Draft.Items)
	}
	if len(before.Draft.Errors) != 0 {
		t.Errorf("prior error map mutated: %v", before.Draft.Errors)
	}
	_ = m
}

func TestDraftRequest(t *testing.T) {
	m := advance(t, StateEnteringItems)
	m = Reduce(m, AddItem{Item: Item{Description: "Milk", Quantity: 2, UnitPrice: "10.00", Total: 20.00}})
	m = Reduce(m, AddItem{Item: Item{Description: "Eggs", Quantity: 1, UnitPrice: "oops", Total: 5.50}})

	req := DraftRequest(m.Draft)
	if req.Merchant != "Woolworths" {
		t.Errorf("merchant = %q", req.Merchant)
	}
	if req.PurchaseDate != "2024-05-01T00:00:00Z" {
		t.Errorf("purchaseDate = %q, want RFC 3339 midnight UTC", req.PurchaseDate)
	}
	if len(req.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(req.Items))
	}
	if req.Items[0].UnitPrice != 10.00 {
		t.Errorf("unit price = %v, want 10.00", req.Items[0].UnitPrice)
	}
	// unparseable raw text coerces to zero, totals pass through
	if req.Items[1].UnitPrice != 0 || req.Items[1].Total != 5.50 {
		t.Errorf("coerced item = %+v", req.Items[1])
	}
}
