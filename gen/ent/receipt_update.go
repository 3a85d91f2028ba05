// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/dialect/sql/sqljson"
	"entgo.io/ent/schema/field"
	"github.com/google/uuid"
	"github.com/origen-app/origen-server/gen/ent/lineitem"
	"github.com/origen-app/origen-server/gen/ent/predicate"
	"github.com/origen-app/origen-server/gen/ent/receipt"
	"github.com/origen-app/origen-server/gen/ent/user"
)

// ReceiptUpdate is the builder for updating Receipt entities.
type ReceiptUpdate struct {
	config
	hooks    []Hook
	mutation *ReceiptMutation
}

// Where appends a list predicates to the ReceiptUpdate builder.
func (_u *ReceiptUpdate) Where(ps ...predicate.Receipt) *ReceiptUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetUserID sets the "user_id" field.
func (_u *ReceiptUpdate) SetUserID(v uuid.UUID) *ReceiptUpdate {
	_u.mutation.SetUserID(v)
	return _u
}

// SetNillableUserID sets the "user_id" field if the given value is not nil.
func (_u *ReceiptUpdate) SetNillableUserID(v *uuid.UUID) *ReceiptUpdate {
	if v != nil {
		_u.SetUserID(*v)
	}
	return _u
}

// SetSourceType sets the "source_type" field.
func (_u *ReceiptUpdate) SetSourceType(v string) *ReceiptUpdate {
	_u.mutation.SetSourceType(v)
	return _u
}

// SetNillableSourceType sets the "source_type" field if the given value is not nil.
func (_u *ReceiptUpdate) SetNillableSourceType(v *string) *ReceiptUpdate {
	if v != nil {
		_u.SetSourceType(*v)
	}
	return _u
}

// SetMerchant sets the "merchant" field.
func (_u *ReceiptUpdate) SetMerchant(v string) *ReceiptUpdate {
	_u.mutation.SetMerchant(v)
	return _u
}

// SetNillableMerchant sets the "merchant" field if the given value is not nil.
func (_u *ReceiptUpdate) SetNillableMerchant(v *string) *ReceiptUpdate {
	if v != nil {
		_u.SetMerchant(*v)
	}
	return _u
}

// ClearMerchant clears the value of the "merchant" field.
func (_u *ReceiptUpdate) ClearMerchant() *ReceiptUpdate {
	_u.mutation.ClearMerchant()
	return _u
}

// SetPurchaseDate sets the "purchase_date" field.
func (_u *ReceiptUpdate) SetPurchaseDate(v time.Time) *ReceiptUpdate {
	_u.mutation.SetPurchaseDate(v)
	return _u
}

// SetNillablePurchaseDate sets the "purchase_date" field if the given value is not nil.
func (_u *ReceiptUpdate) SetNillablePurchaseDate(v *time.Time) *ReceiptUpdate {
	if v != nil {
		_u.SetPurchaseDate(*v)
	}
	return _u
}

// ClearPurchaseDate clears the value of the "purchase_date" field.
func (_u *ReceiptUpdate) ClearPurchaseDate() *ReceiptUpdate {
	_u.mutation.ClearPurchaseDate()
	return _u
}

// SetCurrency sets the "currency" field.
func (_u *ReceiptUpdate) SetCurrency(v string) *ReceiptUpdate {
	_u.mutation.SetCurrency(v)
	return _u
}

// SetNillableCurrency sets the "currency" field if the given value is not nil.
func (_u *ReceiptUpdate) SetNillableCurrency(v *string) *ReceiptUpdate {
	if v != nil {
		_u.SetCurrency(*v)
	}
	return _u
}

// ClearCurrency clears the value of the "currency" field.
func (_u *ReceiptUpdate) ClearCurrency() *ReceiptUpdate {
	_u.mutation.ClearCurrency()
	return _u
}

// SetTotal sets the "total" field.
func (_u *ReceiptUpdate) SetTotal(v float64) *ReceiptUpdate {
	_u.mutation.ResetTotal()
	_u.mutation.SetTotal(v)
	return _u
}

// SetNillableTotal sets the "total" field if the given value is not nil.
func (_u *ReceiptUpdate) SetNillableTotal(v *float64) *ReceiptUpdate {
	if v != nil {
		_u.SetTotal(*v)
	}
	return _u
}

// AddTotal adds value to the "total" field.
func (_u *ReceiptUpdate) AddTotal(v float64) *ReceiptUpdate {
	_u.mutation.AddTotal(v)
	return _u
}

// ClearTotal clears the value of the "total" field.
func (_u *ReceiptUpdate) ClearTotal() *ReceiptUpdate {
	_u.mutation.ClearTotal()
	return _u
}

// SetTax sets the "tax" field.
func (_u *ReceiptUpdate) SetTax(v float64) *ReceiptUpdate {
	_u.mutation.ResetTax()
	_u.mutation.SetTax(v)
	return _u
}

// SetNillableTax sets the "tax" field if the given value is not nil.
func (_u *ReceiptUpdate) SetNillableTax(v *float64) *ReceiptUpdate {
	if v != nil {
		_u.SetTax(*v)
	}
	return _u
}

// AddTax adds value to the "tax" field.
func (_u *ReceiptUpdate) AddTax(v float64) *ReceiptUpdate {
	_u.mutation.AddTax(v)
	return _u
}

// ClearTax clears the value of the "tax" field.
func (_u *ReceiptUpdate) ClearTax() *ReceiptUpdate {
	_u.mutation.ClearTax()
	return _u
}

// SetNotes sets the "notes" field.
func (_u *ReceiptUpdate) SetNotes(v string) *ReceiptUpdate {
	_u.mutation.SetNotes(v)
	return _u
}

// SetNillableNotes sets the "notes" field if the given value is not nil.
func (_u *ReceiptUpdate) SetNillableNotes(v *string) *ReceiptUpdate {
	if v != nil {
		_u.SetNotes(*v)
	}
	return _u
}

// ClearNotes clears the value of the "notes" field.
func (_u *ReceiptUpdate) ClearNotes() *ReceiptUpdate {
	_u.mutation.ClearNotes()
	return _u
}

// SetOcrData sets the "ocr_data" field.
func (_u *ReceiptUpdate) SetOcrData(v json.RawMessage) *ReceiptUpdate {
	_u.mutation.SetOcrData(v)
	return _u
}

// AppendOcrData appends value to the "ocr_data" field.
func (_u *ReceiptUpdate) AppendOcrData(v json.RawMessage) *ReceiptUpdate {
	_u.mutation.AppendOcrData(v)
	return _u
}

// ClearOcrData clears the value of the "ocr_data" field.
func (_u *ReceiptUpdate) ClearOcrData() *ReceiptUpdate {
	_u.mutation.ClearOcrData()
	return _u
}

// SetFilePath sets the "file_path" field.
func (_u *ReceiptUpdate) SetFilePath(v string) *ReceiptUpdate {
	_u.mutation.SetFilePath(v)
	return _u
}

// SetNillableFilePath sets the "file_path" field if the given value is not nil.
func (_u *ReceiptUpdate) SetNillableFilePath(v *string) *ReceiptUpdate {
	if v != nil {
		_u.SetFilePath(*v)
	}
	return _u
}

// ClearFilePath clears the value of the "file_path" field.
func (_u *ReceiptUpdate) ClearFilePath() *ReceiptUpdate {
	_u.mutation.ClearFilePath()
	return _u
}

// SetCreatedAt sets the "created_at" field.
func (_u *ReceiptUpdate) SetCreatedAt(v time.Time) *ReceiptUpdate {
	_u.mutation.SetCreatedAt(v)
	return _u
}

// SetNillableCreatedAt sets the "created_at" field if the given value is not nil.
func (_u *ReceiptUpdate) SetNillableCreatedAt(v *time.Time) *ReceiptUpdate {
	if v != nil {
		_u.SetCreatedAt(*v)
	}
	return _u
}

// SetUpdatedAt sets the "updated_at" field.
func (_u *ReceiptUpdate) SetUpdatedAt(v time.Time) *ReceiptUpdate {
	_u.mutation.SetUpdatedAt(v)
	return _u
}

// SetUser sets the "user" edge to the User entity.
func (_u *ReceiptUpdate) SetUser(v *User) *ReceiptUpdate {
	return _u.SetUserID(v.ID)
}

// AddItemIDs adds the "items" edge to the LineItem entity by IDs.
func (_u *ReceiptUpdate) AddItemIDs(ids ...uuid.UUID) *ReceiptUpdate {
	_u.mutation.AddItemIDs(ids...)
	return _u
}

// AddItems adds the "items" edges to the LineItem entity.
func (_u *ReceiptUpdate) AddItems(v ...*LineItem) *ReceiptUpdate {
	ids := make([]uuid.UUID, len(v))
	for i := range v {
		ids[i] = v[i].ID
	}
	return _u.AddItemIDs(ids...)
}

// Mutation returns the ReceiptMutation object of the builder.
func (_u *ReceiptUpdate) Mutation() *ReceiptMutation {
	return _u.mutation
}

// ClearUser clears the "user" edge to the User entity.
func (_u *ReceiptUpdate) ClearUser() *ReceiptUpdate {
	_u.mutation.ClearUser()
	return _u
}

// ClearItems clears all "items" edges to the LineItem entity.
func (_u *ReceiptUpdate) ClearItems() *ReceiptUpdate {
	_u.mutation.ClearItems()
	return _u
}

// RemoveItemIDs removes the "items" edge to LineItem entities by IDs.
func (_u *ReceiptUpdate) RemoveItemIDs(ids ...uuid.UUID) *ReceiptUpdate {
	_u.mutation.RemoveItemIDs(ids...)
	return _u
}

// RemoveItems removes "items" edges to LineItem entities.
func (_u *ReceiptUpdate) RemoveItems(v ...*LineItem) *ReceiptUpdate {
	ids := make([]uuid.UUID, len(v))
	for i := range v {
		ids[i] = v[i].ID
	}
	return _u.RemoveItemIDs(ids...)
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *ReceiptUpdate) Save(ctx context.Context) (int, error) {
	_u.defaults()
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *ReceiptUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *ReceiptUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *ReceiptUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_u *ReceiptUpdate) defaults() {
	if _, ok := _u.mutation.UpdatedAt(); !ok {
		v := receipt.UpdateDefaultUpdatedAt()
		_u.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *ReceiptUpdate) check() error {
	if v, ok := _u.mutation.SourceType(); ok {
		if err := receipt.SourceTypeValidator(v); err != nil {
			return &ValidationError{Name: "source_type", err: fmt.Errorf(`ent: validator failed for field "Receipt.source_type": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Currency(); ok {
		if err := receipt.CurrencyValidator(v); err != nil {
			return &ValidationError{Name: "currency", err: fmt.Errorf(`ent: validator failed for field "Receipt.currency": %w`, err)}
		}
	}
	if _u.mutation.UserCleared() && len(_u.mutation.UserIDs()) > 0 {
		return errors.New(`ent: clearing a required unique edge "Receipt.user"`)
	}
	return nil
}

func (_u *ReceiptUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(receipt.Table, receipt.Columns, sqlgraph.NewFieldSpec(receipt.FieldID, field.TypeUUID))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SourceType(); ok {
		_spec.SetField(receipt.FieldSourceType, field.TypeString, value)
	}
	if value, ok := _u.mutation.Merchant(); ok {
		_spec.SetField(receipt.FieldMerchant, field.TypeString, value)
	}
	if _u.mutation.MerchantCleared() {
		_spec.ClearField(receipt.FieldMerchant, field.TypeString)
	}
	if value, ok := _u.mutation.PurchaseDate(); ok {
		_spec.SetField(receipt.FieldPurchaseDate, field.TypeTime, value)
	}
	if _u.mutation.PurchaseDateCleared() {
		_spec.ClearField(receipt.FieldPurchaseDate, field.TypeTime)
	}
	if value, ok := _u.mutation.Currency(); ok {
		_spec.SetField(receipt.FieldCurrency, field.TypeString, value)
	}
	if _u.mutation.CurrencyCleared() {
		_spec.ClearField(receipt.FieldCurrency, field.TypeString)
	}
	if value, ok := _u.mutation.Total(); ok {
		_spec.SetField(receipt.FieldTotal, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedTotal(); ok {
		_spec.AddField(receipt.FieldTotal, field.TypeFloat64, value)
	}
	if _u.mutation.TotalCleared() {
		_spec.ClearField(receipt.FieldTotal, field.TypeFloat64)
	}
	if value, ok := _u.mutation.Tax(); ok {
		_spec.SetField(receipt.FieldTax, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedTax(); ok {
		_spec.AddField(receipt.FieldTax, field.TypeFloat64, value)
	}
	if _u.mutation.TaxCleared() {
		_spec.ClearField(receipt.FieldTax, field.TypeFloat64)
	}
	if value, ok := _u.mutation.Notes(); ok {
		_spec.SetField(receipt.FieldNotes, field.TypeString, value)
	}
	if _u.mutation.NotesCleared() {
		_spec.ClearField(receipt.FieldNotes, field.TypeString)
	}
	if value, ok := _u.mutation.OcrData(); ok {
		_spec.SetField(receipt.FieldOcrData, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedOcrData(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, receipt.FieldOcrData, value)
		})
	}
	if _u.mutation.OcrDataCleared() {
		_spec.ClearField(receipt.FieldOcrData, field.TypeJSON)
	}
	if value, ok := _u.mutation.FilePath(); ok {
		_spec.SetField(receipt.FieldFilePath, field.TypeString, value)
	}
	if _u.mutation.FilePathCleared() {
		_spec.ClearField(receipt.FieldFilePath, field.TypeString)
	}
	if value, ok := _u.mutation.CreatedAt(); ok {
		_spec.SetField(receipt.FieldCreatedAt, field.TypeTime, value)
	}
	if value, ok := _u.mutation.UpdatedAt(); ok {
		_spec.SetField(receipt.FieldUpdatedAt, field.TypeTime, value)
	}
	if _u.mutation.UserCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.M2O,
			Inverse: true,
			Table:   receipt.UserTable,
			Columns: []string{receipt.UserColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(user.FieldID, field.TypeUUID),
			},
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.UserIDs(); len(nodes) > 0 {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.M2O,
			Inverse: true,
			Table:   receipt.UserTable,
			Columns: []string{receipt.UserColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(user.FieldID, field.TypeUUID),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Add = append(_spec.Edges.Add, edge)
	}
	if _u.mutation.ItemsCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   receipt.ItemsTable,
			Columns: []string{receipt.ItemsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(lineitem.FieldID, field.TypeUUID),
			},
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.RemovedItemsIDs(); len(nodes) > 0 && !_u.mutation.ItemsCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   receipt.ItemsTable,
			Columns: []string{receipt.ItemsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(lineitem.FieldID, field.TypeUUID),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.ItemsIDs(); len(nodes) > 0 {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   receipt.ItemsTable,
			Columns: []string{receipt.ItemsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(lineitem.FieldID, field.TypeUUID),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Add = append(_spec.Edges.Add, edge)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{receipt.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// ReceiptUpdateOne is the builder for updating a single Receipt entity.
type ReceiptUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *ReceiptMutation
}

// SetUserID sets the "user_id" field.
func (_u *ReceiptUpdateOne) SetUserID(v uuid.UUID) *ReceiptUpdateOne {
	_u.mutation.SetUserID(v)
	return _u
}

// SetNillableUserID sets the "user_id" field if the given value is not nil.
func (_u *ReceiptUpdateOne) SetNillableUserID(v *uuid.UUID) *ReceiptUpdateOne {
	if v != nil {
		_u.SetUserID(*v)
	}
	return _u
}

// SetSourceType sets the "source_type" field.
func (_u *ReceiptUpdateOne) SetSourceType(v string) *ReceiptUpdateOne {
	_u.mutation.SetSourceType(v)
	return _u
}

// SetNillableSourceType sets the "source_type" field if the given value is not nil.
func (_u *ReceiptUpdateOne) SetNillableSourceType(v *string) *ReceiptUpdateOne {
	if v != nil {
		_u.SetSourceType(*v)
	}
	return _u
}

// SetMerchant sets the "merchant" field.
func (_u *ReceiptUpdateOne) SetMerchant(v string) *ReceiptUpdateOne {
	_u.mutation.SetMerchant(v)
	return _u
}

// SetNillableMerchant sets the "merchant" field if the given value is not nil.
func (_u *ReceiptUpdateOne) SetNillableMerchant(v *string) *ReceiptUpdateOne {
	if v != nil {
		_u.SetMerchant(*v)
	}
	return _u
}

// ClearMerchant clears the value of the "merchant" field.
func (_u *ReceiptUpdateOne) ClearMerchant() *ReceiptUpdateOne {
	_u.mutation.ClearMerchant()
	return _u
}

// SetPurchaseDate sets the "purchase_date" field.
func (_u *ReceiptUpdateOne) SetPurchaseDate(v time.Time) *ReceiptUpdateOne {
	_u.mutation.SetPurchaseDate(v)
	return _u
}

// SetNillablePurchaseDate sets the "purchase_date" field if the given value is not nil.
func (_u *ReceiptUpdateOne) SetNillablePurchaseDate(v *time.Time) *ReceiptUpdateOne {
	if v != nil {
		_u.SetPurchaseDate(*v)
	}
	return _u
}

// ClearPurchaseDate clears the value of the "purchase_date" field.
func (_u *ReceiptUpdateOne) ClearPurchaseDate() *ReceiptUpdateOne {
	_u.mutation.ClearPurchaseDate()
	return _u
}

// SetCurrency sets the "currency" field.
func (_u *ReceiptUpdateOne) SetCurrency(v string) *ReceiptUpdateOne {
	_u.mutation.SetCurrency(v)
	return _u
}

// SetNillableCurrency sets the "currency" field if the given value is not nil.
func (_u *ReceiptUpdateOne) SetNillableCurrency(v *string) *ReceiptUpdateOne {
	if v != nil {
		_u.SetCurrency(*v)
	}
	return _u
}

// ClearCurrency clears the value of the "currency" field.
func (_u *ReceiptUpdateOne) ClearCurrency() *ReceiptUpdateOne {
	_u.mutation.ClearCurrency()
	return _u
}

// SetTotal sets the "total" field.
func (_u *ReceiptUpdateOne) SetTotal(v float64) *ReceiptUpdateOne {
	_u.mutation.ResetTotal()
	_u.mutation.SetTotal(v)
	return _u
}

// SetNillableTotal sets the "total" field if the given value is not nil.
func (_u *ReceiptUpdateOne) SetNillableTotal(v *float64) *ReceiptUpdateOne {
	if v != nil {
		_u.SetTotal(*v)
	}
	return _u
}

// AddTotal adds value to the "total" field.
func (_u *ReceiptUpdateOne) AddTotal(v float64) *ReceiptUpdateOne {
	_u.mutation.AddTotal(v)
	return _u
}

// ClearTotal clears the value of the "total" field.
func (_u *ReceiptUpdateOne) ClearTotal() *ReceiptUpdateOne {
	_u.mutation.ClearTotal()
	return _u
}

// SetTax sets the "tax" field.
func (_u *ReceiptUpdateOne) SetTax(v float64) *ReceiptUpdateOne {
	_u.mutation.ResetTax()
	_u.mutation.SetTax(v)
	return _u
}

// SetNillableTax sets the "tax" field if the given value is not nil.
func (_u *ReceiptUpdateOne) SetNillableTax(v *float64) *ReceiptUpdateOne {
	if v != nil {
		_u.SetTax(*v)
	}
	return _u
}

// AddTax adds value to the "tax" field.
func (_u *ReceiptUpdateOne) AddTax(v float64) *ReceiptUpdateOne {
	_u.mutation.AddTax(v)
	return _u
}

// ClearTax clears the value of the "tax" field.
func (_u *ReceiptUpdateOne) ClearTax() *ReceiptUpdateOne {
	_u.mutation.ClearTax()
	return _u
}

// SetNotes sets the "notes" field.
func (_u *ReceiptUpdateOne) SetNotes(v string) *ReceiptUpdateOne {
	_u.mutation.SetNotes(v)
	return _u
}

// SetNillableNotes sets the "notes" field if the given value is not nil.
func (_u *ReceiptUpdateOne) SetNillableNotes(v *string) *ReceiptUpdateOne {
	if v != nil {
		_u.SetNotes(*v)
	}
	return _u
}

// ClearNotes clears the value of the "notes" field.
func (_u *ReceiptUpdateOne) ClearNotes() *ReceiptUpdateOne {
	_u.mutation.ClearNotes()
	return _u
}

// SetOcrData sets the "ocr_data" field.
func (_u *ReceiptUpdateOne) SetOcrData(v json.RawMessage) *ReceiptUpdateOne {
	_u.mutation.SetOcrData(v)
	return _u
}

// AppendOcrData appends value to the "ocr_data" field.
func (_u *ReceiptUpdateOne) AppendOcrData(v json.RawMessage) *ReceiptUpdateOne {
	_u.mutation.AppendOcrData(v)
	return _u
}

// ClearOcrData clears the value of the "ocr_data" field.
func (_u *ReceiptUpdateOne) ClearOcrData() *ReceiptUpdateOne {
	_u.mutation.ClearOcrData()
	return _u
}

// SetFilePath sets the "file_path" field.
func (_u *ReceiptUpdateOne) SetFilePath(v string) *ReceiptUpdateOne {
	_u.mutation.SetFilePath(v)
	return _u
}

// SetNillableFilePath sets the "file_path" field if the given value is not nil.
func (_u *ReceiptUpdateOne) SetNillableFilePath(v *string) *ReceiptUpdateOne {
	if v != nil {
		_u.SetFilePath(*v)
	}
	return _u
}

// ClearFilePath clears the value of the "file_path" field.
func (_u *ReceiptUpdateOne) ClearFilePath() *ReceiptUpdateOne {
	_u.mutation.ClearFilePath()
	return _u
}

// SetCreatedAt sets the "created_at" field.
func (_u *ReceiptUpdateOne) SetCreatedAt(v time.Time) *ReceiptUpdateOne {
	_u.mutation.SetCreatedAt(v)
	return _u
}

// SetNillableCreatedAt sets the "created_at" field if the given value is not nil.
func (_u *ReceiptUpdateOne) SetNillableCreatedAt(v *time.Time) *ReceiptUpdateOne {
	if v != nil {
		_u.SetCreatedAt(*v)
	}
	return _u
}

// SetUpdatedAt sets the "updated_at" field.
func (_u *ReceiptUpdateOne) SetUpdatedAt(v time.Time) *ReceiptUpdateOne {
	_u.mutation.SetUpdatedAt(v)
	return _u
}

// SetUser sets the "user" edge to the User entity.
func (_u *ReceiptUpdateOne) SetUser(v *User) *ReceiptUpdateOne {
	return _u.SetUserID(v.ID)
}

// AddItemIDs adds the "items" edge to the LineItem entity by IDs.
func (_u *ReceiptUpdateOne) AddItemIDs(ids ...uuid.UUID) *ReceiptUpdateOne {
	_u.mutation.AddItemIDs(ids...)
	return _u
}

// AddItems adds the "items" edges to the LineItem entity.
func (_u *ReceiptUpdateOne) AddItems(v ...*LineItem) *ReceiptUpdateOne {
	ids := make([]uuid.UUID, len(v))
	for i := range v {
		ids[i] = v[i].ID
	}
	return _u.AddItemIDs(ids...)
}

// Mutation returns the ReceiptMutation object of the builder.
func (_u *ReceiptUpdateOne) Mutation() *ReceiptMutation {
	return _u.mutation
}

// ClearUser clears the "user" edge to the User entity.
func (_u *ReceiptUpdateOne) ClearUser() *ReceiptUpdateOne {
	_u.mutation.ClearUser()
	return _u
}

// ClearItems clears all "items" edges to the LineItem entity.
func (_u *ReceiptUpdateOne) ClearItems() *ReceiptUpdateOne {
	_u.mutation.ClearItems()
	return _u
}

// RemoveItemIDs removes the "items" edge to LineItem entities by IDs.
func (_u *ReceiptUpdateOne) RemoveItemIDs(ids ...uuid.UUID) *ReceiptUpdateOne {
	_u.mutation.RemoveItemIDs(ids...)
	return _u
}

// RemoveItems removes "items" edges to LineItem entities.
func (_u *ReceiptUpdateOne) RemoveItems(v ...*LineItem) *ReceiptUpdateOne {
	ids := make([]uuid.UUID, len(v))
	for i := range v {
		ids[i] = v[i].ID
	}
	return _u.RemoveItemIDs(ids...)
}

// Where appends a list predicates to the ReceiptUpdate builder.
func (_u *ReceiptUpdateOne) Where(ps ...predicate.Receipt) *ReceiptUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *ReceiptUpdateOne) Select(field string, fields ...string) *ReceiptUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated Receipt entity.
func (_u *ReceiptUpdateOne) Save(ctx context.Context) (*Receipt, error) {
	_u.defaults()
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *ReceiptUpdateOne) SaveX(ctx context.Context) *Receipt {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *ReceiptUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *ReceiptUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_u *ReceiptUpdateOne) defaults() {
	if _, ok := _u.mutation.UpdatedAt(); !ok {
		v := receipt.UpdateDefaultUpdatedAt()
		_u.mutation.SetUpdatedAt(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *ReceiptUpdateOne) check() error {
	if v, ok := _u.mutation.SourceType(); ok {
		if err := receipt.SourceTypeValidator(v); err != nil {
			return &ValidationError{Name: "source_type", err: fmt.Errorf(`ent: validator failed for field "Receipt.source_type": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Currency(); ok {
		if err := receipt.CurrencyValidator(v); err != nil {
			return &ValidationError{Name: "currency", err: fmt.Errorf(`ent: validator failed for field "Receipt.currency": %w`, err)}
		}
	}
	if _u.mutation.UserCleared() && len(_u.mutation.UserIDs()) > 0 {
		return errors.New(`ent: clearing a required unique edge "Receipt.user"`)
	}
	return nil
}

func (_u *ReceiptUpdateOne) sqlSave(ctx context.Context) (_node *Receipt, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(receipt.Table, receipt.Columns, sqlgraph.NewFieldSpec(receipt.FieldID, field.TypeUUID))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "Receipt.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, receipt.FieldID)
		for _, f := range fields {
			if !receipt.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != receipt.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.SourceType(); ok {
		_spec.SetField(receipt.FieldSourceType, field.TypeString, value)
	}
	if value, ok := _u.mutation.Merchant(); ok {
		_spec.SetField(receipt.FieldMerchant, field.TypeString, value)
	}
	if _u.mutation.MerchantCleared() {
		_spec.ClearField(receipt.FieldMerchant, field.TypeString)
	}
	if value, ok := _u.mutation.PurchaseDate(); ok {
		_spec.SetField(receipt.FieldPurchaseDate, field.TypeTime, value)
	}
	if _u.mutation.PurchaseDateCleared() {
		_spec.ClearField(receipt.FieldPurchaseDate, field.TypeTime)
	}
	if value, ok := _u.mutation.Currency(); ok {
		_spec.SetField(receipt.FieldCurrency, field.TypeString, value)
	}
	if _u.mutation.CurrencyCleared() {
		_spec.ClearField(receipt.FieldCurrency, field.TypeString)
	}
	if value, ok := _u.mutation.Total(); ok {
		_spec.SetField(receipt.FieldTotal, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedTotal(); ok {
		_spec.AddField(receipt.FieldTotal, field.TypeFloat64, value)
	}
	if _u.mutation.TotalCleared() {
		_spec.ClearField(receipt.FieldTotal, field.TypeFloat64)
	}
	if value, ok := _u.mutation.Tax(); ok {
		_spec.SetField(receipt.FieldTax, field.TypeFloat64, value)
	}
	if value, ok := _u.mutation.AddedTax(); ok {
		_spec.AddField(receipt.FieldTax, field.TypeFloat64, value)
	}
	if _u.mutation.TaxCleared() {
		_spec.ClearField(receipt.FieldTax, field.TypeFloat64)
	}
	if value, ok := _u.mutation.Notes(); ok {
		_spec.SetField(receipt.FieldNotes, field.TypeString, value)
	}
	if _u.mutation.NotesCleared() {
		_spec.ClearField(receipt.FieldNotes, field.TypeString)
	}
	if value, ok := _u.mutation.OcrData(); ok {
		_spec.SetField(receipt.FieldOcrData, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedOcrData(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, receipt.FieldOcrData, value)
		})
	}
	if _u.mutation.OcrDataCleared() {
		_spec.ClearField(receipt.FieldOcrData, field.TypeJSON)
	}
	if value, ok := _u.mutation.FilePath(); ok {
		_spec.SetField(receipt.FieldFilePath, field.TypeString, value)
	}
	if _u.mutation.FilePathCleared() {
		_spec.ClearField(receipt.FieldFilePath, field.TypeString)
	}
	if value, ok := _u.mutation.CreatedAt(); ok {
		_spec.SetField(receipt.FieldCreatedAt, field.TypeTime, value)
	}
	if value, ok := _u.mutation.UpdatedAt(); ok {
		_spec.SetField(receipt.FieldUpdatedAt, field.TypeTime, value)
	}
	if _u.mutation.UserCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.M2O,
			Inverse: true,
			Table:   receipt.UserTable,
			Columns: []string{receipt.UserColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(user.FieldID, field.TypeUUID),
			},
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.UserIDs(); len(nodes) > 0 {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.M2O,
			Inverse: true,
			Table:   receipt.UserTable,
			Columns: []string{receipt.UserColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(user.FieldID, field.TypeUUID),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Add = append(_spec.Edges.Add, edge)
	}
	if _u.mutation.ItemsCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   receipt.ItemsTable,
			Columns: []string{receipt.ItemsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(lineitem.FieldID, field.TypeUUID),
			},
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.RemovedItemsIDs(); len(nodes) > 0 && !_u.mutation.ItemsCleared() {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   receipt.ItemsTable,
			Columns: []string{receipt.ItemsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(lineitem.FieldID, field.TypeUUID),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Clear = append(_spec.Edges.Clear, edge)
	}
	if nodes := _u.mutation.ItemsIDs(); len(nodes) > 0 {
		edge := &sqlgraph.EdgeSpec{
			Rel:     sqlgraph.O2M,
			Inverse: false,
			Table:   receipt.ItemsTable,
			Columns: []string{receipt.ItemsColumn},
			Bidi:    false,
			Target: &sqlgraph.EdgeTarget{
				IDSpec: sqlgraph.NewFieldSpec(lineitem.FieldID, field.TypeUUID),
			},
		}
		for _, k := range nodes {
			edge.Target.Nodes = append(edge.Target.Nodes, k)
		}
		_spec.Edges.Add = append(_spec.Edges.Add, edge)
	}
	_node = &Receipt{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{receipt.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
