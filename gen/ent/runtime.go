// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/google/uuid"
	"github.com/origen-app/origen-server/db/ent/schema"
	"github.com/origen-app/origen-server/gen/ent/lineitem"
	"github.com/origen-app/origen-server/gen/ent/receipt"
	"github.com/origen-app/origen-server/gen/ent/user"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	lineitemFields := schema.LineItem{}.Fields()
	_ = lineitemFields
	// lineitemDescDescription is the schema descriptor for description field.
	lineitemDescDescription := lineitemFields[2].Descriptor()
	// lineitem.DescriptionValidator is a validator for the "description" field. It is called by the builders before save.
	lineitem.DescriptionValidator = lineitemDescDescription.Validators[0].(func(string) error)
	// lineitemDescQuantity is the schema descriptor for quantity field.
	lineitemDescQuantity := lineitemFields[3].Descriptor()
	// lineitem.QuantityValidator is a validator for the "quantity" field. It is called by the builders before save.
	lineitem.QuantityValidator = lineitemDescQuantity.Validators[0].(func(int) error)
	// lineitemDescUnitPrice is the schema descriptor for unit_price field.
	lineitemDescUnitPrice := lineitemFields[4].Descriptor()
	// lineitem.UnitPriceValidator is a validator for the "unit_price" field. It is called by the builders before save.
	lineitem.UnitPriceValidator = lineitemDescUnitPrice.Validators[0].(func(float64) error)
	// lineitemDescPosition is the schema descriptor for position field.
	lineitemDescPosition := lineitemFields[6].Descriptor()
	// lineitem.DefaultPosition holds the default value on creation for the position field.
	lineitem.DefaultPosition = lineitemDescPosition.Default.(int)
	// lineitem.PositionValidator is a validator for the "position" field. It is called by the builders before save.
	lineitem.PositionValidator = lineitemDescPosition.Validators[0].(func(int) error)
	// lineitemDescID is the schema descriptor for id field.
	lineitemDescID := lineitemFields[0].Descriptor()
	// lineitem.DefaultID holds the default value on creation for the id field.
	lineitem.DefaultID = lineitemDescID.Default.(func() uuid.UUID)
	receiptFields := schema.Receipt{}.Fields()
	_ = receiptFields
	// receiptDescSourceType is the schema descriptor for source_type field.
	receiptDescSourceType := receiptFields[2].Descriptor()
	// receipt.SourceTypeValidator is a validator for the "source_type" field. It is called by the builders before save.
	receipt.SourceTypeValidator = func() func(string) error {
		validators := receiptDescSourceType.Validators
		fns := [...]func(string) error{
			validators[0].(func(string) error),
			validators[1].(func(string) error),
		}
		return func(source_type string) error {
			for _, fn := range fns {
				if err := fn(source_type); err != nil {
					return err
				}
			}
			return nil
		}
	}()
	// receiptDescCurrency is the schema descriptor for currency field.
	receiptDescCurrency := receiptFields[5].Descriptor()
	// receipt.CurrencyValidator is a validator for the "currency" field. It is called by the builders before save.
	receipt.CurrencyValidator = func() func(string) error {
		validators := receiptDescCurrency.Validators
		fns := [...]func(string) error{
			validators[0].(func(string) error),
			validators[1].(func(string) error),
			validators[2].(func(string) error),
		}
		return func(currency string) error {
			for _, fn := range fns {
				if err := fn(currency); err != nil {
					return err
				}
			}
			return nil
		}
	}()
	// receiptDescCreatedAt is the schema descriptor for created_at field.
	receiptDescCreatedAt := receiptFields[11].Descriptor()
	// receipt.DefaultCreatedAt holds the default value on creation for the created_at field.
	receipt.DefaultCreatedAt = receiptDescCreatedAt.Default.(func() time.Time)
	// receiptDescUpdatedAt is the schema descriptor for updated_at field.
	receiptDescUpdatedAt := receiptFields[12].Descriptor()
	// receipt.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	receipt.DefaultUpdatedAt = receiptDescUpdatedAt.Default.(func() time.Time)
	// receipt.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	receipt.UpdateDefaultUpdatedAt = receiptDescUpdatedAt.UpdateDefault.(func() time.Time)
	// receiptDescID is the schema descriptor for id field.
	receiptDescID := receiptFields[0].Descriptor()
	// receipt.DefaultID holds the default value on creation for the id field.
	receipt.DefaultID = receiptDescID.Default.(func() uuid.UUID)
	userFields := schema.User{}.Fields()
	_ = userFields
	// userDescName is the schema descriptor for name field.
	userDescName := userFields[1].Descriptor()
	// user.NameValidator is a validator for the "name" field. It is called by the builders before save.
	user.NameValidator = userDescName.Validators[0].(func(string) error)
	// userDescEmail is the schema descriptor for email field.
	userDescEmail := userFields[2].Descriptor()
	// user.EmailValidator is a validator for the "email" field. It is called by the builders before save.
	user.EmailValidator = userDescEmail.Validators[0].(func(string) error)
	// userDescPasswordHash is the schema descriptor for password_hash field.
	userDescPasswordHash := userFields[3].Descriptor()
	// user.PasswordHashValidator is a validator for the "password_hash" field. It is called by the builders before save.
	user.PasswordHashValidator = userDescPasswordHash.Validators[0].(func(string) error)
	// userDescCreatedAt is the schema descriptor for created_at field.
	userDescCreatedAt := userFields[4].Descriptor()
	// user.DefaultCreatedAt holds the default value on creation for the created_at field.
	user.DefaultCreatedAt = userDescCreatedAt.Default.(func() time.Time)
	// userDescUpdatedAt is the schema descriptor for updated_at field.
	userDescUpdatedAt := userFields[5].Descriptor()
	// user.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	user.DefaultUpdatedAt = userDescUpdatedAt.Default.(func() time.Time)
	// user.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	user.UpdateDefaultUpdatedAt = userDescUpdatedAt.UpdateDefault.(func() time.Time)
	// userDescID is the schema descriptor for id field.
	userDescID := userFields[0].Descriptor()
	// user.DefaultID holds the default value on creation for the id field.
	user.DefaultID = userDescID.Default.(func() uuid.UUID)
}
