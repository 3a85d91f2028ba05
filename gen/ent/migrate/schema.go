// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// LineItemsColumns holds the columns for the "line_items" table.
	LineItemsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "description", Type: field.TypeString},
		{Name: "quantity", Type: field.TypeInt},
		{Name: "unit_price", Type: field.TypeFloat64, SchemaType: map[string]string{"postgres": "numeric(12,2)"}},
		{Name: "total", Type: field.TypeFloat64, SchemaType: map[string]string{"postgres": "numeric(12,2)"}},
		{Name: "position", Type: field.TypeInt, Default: 0},
		{Name: "receipt_id", Type: field.TypeUUID},
	}
	// LineItemsTable holds the schema information for the "line_items" table.
	LineItemsTable = &schema.Table{
		Name:       "line_items",
		Columns:    LineItemsColumns,
		PrimaryKey: []*schema.Column{LineItemsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "line_items_receipts_items",
				Columns:    []*schema.Column{LineItemsColumns[6]},
				RefColumns: []*schema.Column{ReceiptsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "lineitem_receipt_id_position",
				Unique:  false,
				Columns: []*schema.Column{LineItemsColumns[6], LineItemsColumns[5]},
			},
		},
	}
	// ReceiptsColumns holds the columns for the "receipts" table.
	ReceiptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "source_type", Type: field.TypeString},
		{Name: "merchant", Type: field.TypeString, Nullable: true},
		{Name: "purchase_date", Type: field.TypeTime, Nullable: true},
		{Name: "currency", Type: field.TypeString, Nullable: true, Size: 3, SchemaType: map[string]string{"postgres": "char(3)"}},
		{Name: "total", Type: field.TypeFloat64, Nullable: true, SchemaType: map[string]string{"postgres": "numeric(12,2)"}},
		{Name: "tax", Type: field.TypeFloat64, Nullable: true, SchemaType: map[string]string{"postgres": "numeric(12,2)"}},
		{Name: "notes", Type: field.TypeString, Nullable: true, SchemaType: map[string]string{"postgres": "text"}},
		{Name: "ocr_data", Type: field.TypeJSON, Nullable: true},
		{Name: "file_path", Type: field.TypeString, Nullable: true},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
		{Name: "user_id", Type: field.TypeUUID},
	}
	// ReceiptsTable holds the schema information for the "receipts" table.
	ReceiptsTable = &schema.Table{
		Name:       "receipts",
		Columns:    ReceiptsColumns,
		PrimaryKey: []*schema.Column{ReceiptsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "receipts_users_receipts",
				Columns:    []*schema.Column{ReceiptsColumns[12]},
				RefColumns: []*schema.Column{UsersColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "receipt_user_id_created_at",
				Unique:  false,
				Columns: []*schema.Column{ReceiptsColumns[12], ReceiptsColumns[10]},
			},
			{
				Name:    "receipt_user_id_purchase_date",
				Unique:  false,
				Columns: []*schema.Column{ReceiptsColumns[12], ReceiptsColumns[3]},
			},
		},
	}
	// UsersColumns holds the columns for the "users" table.
	UsersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeUUID},
		{Name: "name", Type: field.TypeString},
		{Name: "email", Type: field.TypeString, Unique: true, SchemaType: map[string]string{"postgres": "text"}},
		{Name: "password_hash", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// UsersTable holds the schema information for the "users" table.
	UsersTable = &schema.Table{
		Name:       "users",
		Columns:    UsersColumns,
		PrimaryKey: []*schema.Column{UsersColumns[0]},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		LineItemsTable,
		ReceiptsTable,
		UsersTable,
	}
)

func init() {
	LineItemsTable.ForeignKeys[0].RefTable = ReceiptsTable
	LineItemsTable.Annotation = &entsql.Annotation{
		Table: "line_items",
	}
	ReceiptsTable.ForeignKeys[0].RefTable = UsersTable
	ReceiptsTable.Annotation = &entsql.Annotation{
		Table: "receipts",
	}
	UsersTable.Annotation = &entsql.Annotation{
		Table: "users",
	}
}
