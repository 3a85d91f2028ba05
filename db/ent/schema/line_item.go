package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/google/uuid"
)

type LineItem struct{ ent.Schema }

func (LineItem) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "line_items"},
	}
}

func (LineItem) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		field.UUID("receipt_id", uuid.UUID{}),
		field.String("description").NotEmpty(),
		field.Int("quantity").Positive(),
		field.Float("unit_price").Min(0).
			SchemaType(map[string]string{dialect.Postgres: "numeric(12,2)"}),
		field.Float("total").
			SchemaType(map[string]string{dialect.Postgres: "numeric(12,2)"}),
		// display order within the receipt; rows are replaced as a set,
		// never reordered in place
		field.Int("position").NonNegative().Default(0),
	}
}

func (LineItem) Edges() []ent.Edge {
	return []ent.Edge{
		// MANY items -> ONE receipt (FK: line_items.receipt_id)
		edge.From("receipt", Receipt.Type).
			Ref("items").
			Field("receipt_id").
			Required().
			Unique(),
	}
}

func (LineItem) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("receipt_id", "position"),
	}
}
