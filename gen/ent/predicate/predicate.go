// Code generated by ent, DO NOT EDIT.

package predicate

import (
	"entgo.io/ent/dialect/sql"
)

// LineItem is the predicate function for lineitem builders.
type LineItem func(*sql.Selector)

// Receipt is the predicate function for receipt builders.
type Receipt func(*sql.Selector)

// User is the predicate function for user builders.
type User func(*sql.Selector)
