// Package entry implements the multi-step receipt entry workflow as a pure
// state machine: the caller owns a Machine value and threads it through
// Reduce for every UI event. The machine performs no I/O; submission is
// driven externally and reported back via SubmitSuccess / SubmitError.
package entry

import (
	"strings"
	"time"

	"github.com/origen-app/origen-server/constants"
	"github.com/origen-app/origen-server/internal/entity"
	"github.com/origen-app/origen-server/internal/money"
)

// State is the single active workflow state.
type State string

const (
	StateEnteringDetails State = "enteringDetails"
	StateEnteringItems   State = "enteringItems"
	StateReviewing       State = "reviewing"
	StateSaving          State = "saving"
	StateDone            State = "done"
	StateError           State = "error"
)

// Item is a draft line item. UnitPrice is kept as the raw text the user
// typed so partial decimals survive editing; it is coerced to a number only
// when deriving the total or assembling the submission payload.
type Item struct {
	Description string
	Quantity    int
	UnitPrice   string
	Total       float64
}

// Draft is the client-held receipt being assembled.
type Draft struct {
	Merchant     string
	PurchaseDate string
	Currency     string
	Tax          *float64
	Notes        string
	Items        []Item
	Errors       map[string]string
	IsSubmitting bool
}

// Machine pairs the active state with the draft it governs.
type Machine struct {
	State State
	Draft Draft
}

// NewMachine returns the initial machine: entering details over an empty
// draft with the default currency.
func NewMachine() Machine {
	return Machine{
		State: StateEnteringDetails,
		Draft: emptyDraft(),
	}
}

func emptyDraft() Draft {
	return Draft{
		Currency: string(constants.DefaultCurrency),
		Items:    nil,
		Errors:   map[string]string{},
	}
}

// Event is a UI-dispatched workflow event.
type Event interface{ event() }

type (
	// UpdateMerchant sets the merchant name on the draft.
	UpdateMerchant struct{ Merchant string }
	// UpdatePurchaseDate sets the purchase date (as entered, unparsed).
	UpdatePurchaseDate struct{ PurchaseDate string }
	// UpdateCurrency sets the draft currency.
	UpdateCurrency struct{ Currency string }
	// UpdateTax sets the optional tax amount.
	UpdateTax struct{ Tax float64 }
	// UpdateNotes sets the free-form notes.
	UpdateNotes struct{ Notes string }

	// AddItem appends a line item.
	AddItem struct{ Item Item }
	// UpdateItem merges a partial patch into the item at Index.
	UpdateItem struct {
		Index int
		Patch ItemPatch
	}
	// RemoveItem deletes the item at Index.
	RemoveItem struct{ Index int }

	// NextStep advances the workflow when the current step's guard passes;
	// otherwise it is a no-op.
	NextStep struct{}
	// PreviousStep moves back one step. From the error state it returns to
	// reviewing so a failed submission can be retried.
	PreviousStep struct{}
	// Submit begins the saving phase. The actual network call is the
	// caller's job.
	Submit struct{}
	// SubmitSuccess reports that the external submission committed.
	SubmitSuccess struct{}
	// SubmitError reports that the external submission failed.
	SubmitError struct{}
	// Reset reinitializes the draft from a terminal state.
	Reset struct{}

	// SetError records a field-level validation message for the UI.
	SetError struct{ Field, Message string }
	// ClearErrors drops all field-level messages.
	ClearErrors struct{}
)

// ItemPatch is a partial line-item update. Nil fields are left untouched.
type ItemPatch struct {
	Description *string
	Quantity    *int
	UnitPrice   *string
	Total       *float64
}

func (UpdateMerchant) event()     {}
func (UpdatePurchaseDate) event() {}
func (UpdateCurrency) event()     {}
func (UpdateTax) event()          {}
func (UpdateNotes) event()        {}
func (AddItem) event()            {}
func (UpdateItem) event()         {}
func (RemoveItem) event()         {}
func (NextStep) event()           {}
func (PreviousStep) event()       {}
func (Submit) event()             {}
func (SubmitSuccess) event()      {}
func (SubmitError) event()        {}
func (Reset) event()              {}
func (SetError) event()           {}
func (ClearErrors) event()        {}

// DetailsComplete is the guard for leaving enteringDetails. The UI uses the
// same predicate to disable its Next control, but the machine is the
// authority.
func DetailsComplete(d Draft) bool {
	return strings.TrimSpace(d.Merchant) != "" && d.PurchaseDate != ""
}

// ItemsComplete is the guard for leaving enteringItems: at least one item,
// and every item fully filled in with positive amounts.
func ItemsComplete(d Draft) bool {
	if len(d.Items) == 0 {
		return false
	}
	for _, it := range d.Items {
		if !itemValid(it) {
			return false
		}
	}
	return true
}

func itemValid(it Item) bool {
	return strings.TrimSpace(it.Description) != "" &&
		it.Quantity > 0 &&
		money.ParseAmount(it.UnitPrice) > 0 &&
		it.Total > 0
}

// Reduce applies one event and returns the next machine value. Events that
// are not handled in the current state, including guarded transitions whose
// guard fails, leave the machine unchanged.
func Reduce(m Machine, e Event) Machine {
	switch m.State {
	case StateEnteringDetails:
		return reduceDetails(m, e)
	case StateEnteringItems:
		return reduceItems(m, e)
	case StateReviewing:
		return reduceReviewing(m, e)
	case StateSaving:
		return reduceSaving(m, e)
	case StateDone:
		return reduceDone(m, e)
	case StateError:
		return reduceError(m, e)
	}
	return m
}

func reduceDetails(m Machine, e Event) Machine {
	switch ev := e.(type) {
	case UpdateMerchant:
		m.Draft.Merchant = ev.Merchant
	case UpdatePurchaseDate:
		m.Draft.PurchaseDate = ev.PurchaseDate
	case UpdateCurrency:
		m.Draft.Currency = ev.Currency
	case UpdateTax:
		tax := ev.Tax
		m.Draft.Tax = &tax
	case UpdateNotes:
		m.Draft.Notes = ev.Notes
	case NextStep:
		if DetailsComplete(m.Draft) {
			m.State = StateEnteringItems
		}
	case SetError:
		m.Draft.Errors = withError(m.Draft.Errors, ev.Field, ev.Message)
	case ClearErrors:
		m.Draft.Errors = map[string]string{}
	}
	return m
}

func reduceItems(m Machine, e Event) Machine {
	switch ev := e.(type) {
	case AddItem:
		items := make([]Item, len(m.Draft.Items), len(m.Draft.Items)+1)
		copy(items, m.Draft.Items)
		m.Draft.Items = append(items, ev.Item)
	case UpdateItem:
		m.Draft.Items = patchItem(m.Draft.Items, ev.Index, ev.Patch)
	case RemoveItem:
		if ev.Index >= 0 && ev.Index < len(m.Draft.Items) {
			items := make([]Item, 0, len(m.Draft.Items)-1)
			items = append(items, m.Draft.Items[:ev.Index]...)
			items = append(items, m.Draft.Items[ev.Index+1:]...)
			m.Draft.Items = items
		}
	case PreviousStep:
		m.State = StateEnteringDetails
	case NextStep:
		if ItemsComplete(m.Draft) {
			m.State = StateReviewing
		}
	case SetError:
		m.Draft.Errors = withError(m.Draft.Errors, ev.Field, ev.Message)
	case ClearErrors:
		m.Draft.Errors = map[string]string{}
	}
	return m
}

func reduceReviewing(m Machine, e Event) Machine {
	switch e.(type) {
	case PreviousStep:
		m.State = StateEnteringItems
	case Submit:
		m.State = StateSaving
		m.Draft.IsSubmitting = true
	}
	return m
}

func reduceSaving(m Machine, e Event) Machine {
	switch e.(type) {
	case SubmitSuccess:
		m.State = StateDone
		m.Draft.IsSubmitting = false
	case SubmitError:
		m.State = StateError
		m.Draft.IsSubmitting = false
	}
	return m
}

func reduceDone(m Machine, e Event) Machine {
	if _, ok := e.(Reset); ok {
		return NewMachine()
	}
	return m
}

func reduceError(m Machine, e Event) Machine {
	switch e.(type) {
	case Reset:
		return NewMachine()
	case PreviousStep:
		m.State = StateReviewing
	}
	return m
}

// patchItem merges a partial update into items[index], copying the slice so
// the previous machine value stays untouched. Editing quantity or unit
// price rederives the total, overwriting any direct total override; a direct
// total edit alone sticks until the next such rederivation.
func patchItem(items []Item, index int, p ItemPatch) []Item {
	if index < 0 || index >= len(items) {
		return items
	}
	next := make([]Item, len(items))
	copy(next, items)
	it := next[index]

	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.Quantity != nil {
		it.Quantity = *p.Quantity
	}
	if p.UnitPrice != nil {
		it.UnitPrice = *p.UnitPrice
	}
	switch {
	case p.Quantity != nil || p.UnitPrice != nil:
		it.Total = money.ItemTotal(it.Quantity, money.ParseAmount(it.UnitPrice))
	case p.Total != nil:
		it.Total = *p.Total
	}

	next[index] = it
	return next
}

func withError(errs map[string]string, field, message string) map[string]string {
	next := make(map[string]string, len(errs)+1)
	for k, v := range errs {
		next[k] = v
	}
	next[field] = message
	return next
}

// DraftRequest assembles the submission payload from a draft, coercing raw
// unit-price text to numbers. Date-only purchase dates are normalized to
// RFC 3339 at midnight UTC.
func DraftRequest(d Draft) entity.CreateReceiptRequest {
	items := make([]entity.ItemInput, len(d.Items))
	for i, it := range d.Items {
		items[i] = entity.ItemInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   money.ParseAmount(it.UnitPrice),
			Total:       it.Total,
		}
	}

	purchaseDate := d.PurchaseDate
	if t, err := time.ParseInLocation("2006-01-02", purchaseDate, time.UTC); err == nil {
		purchaseDate = t.Format(time.RFC3339)
	}

	var notes *string
	if d.Notes != "" {
		n := d.Notes
		notes = &n
	}

	return entity.CreateReceiptRequest{
		Merchant:     d.Merchant,
		PurchaseDate: purchaseDate,
		Currency:     d.Currency,
		Tax:          d.Tax,
		Notes:        notes,
		Items:        items,
	}
}
