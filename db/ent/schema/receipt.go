package schema

import (
	"encoding/json"
	"time"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/google/uuid"
	"github.com/origen-app/origen-server/constants"
	"github.com/origen-app/origen-server/db/ent/schema/utils"
)

type Receipt struct{ ent.Schema }

func (Receipt) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "receipts"},
	}
}

func (Receipt) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Default(uuid.New).
			Immutable().
			StorageKey("id"),
		// explicit FK so queries can filter on it directly
		field.UUID("user_id", uuid.UUID{}),
		field.String("source_type").NotEmpty().
			Validate(utils.EnumValidator(constants.SourceTypes()...)),
		// OCR receipts may land with fields the extractor could not fill,
		// so everything below the source type is nullable.
		field.String("merchant").Optional().Nillable(),
		field.Time("purchase_date").Optional().Nillable(),
		field.String("currency").Optional().Nillable().MinLen(3).MaxLen(3).
			Validate(utils.EnumValidator(constants.Currencies()...)).
			SchemaType(map[string]string{dialect.Postgres: "char(3)"}),
		field.Float("total").
			Optional().Nillable().
			SchemaType(map[string]string{dialect.Postgres: "numeric(12,2)"}),
		field.Float("tax").
			Optional().Nillable().
			SchemaType(map[string]string{dialect.Postgres: "numeric(12,2)"}),
		field.String("notes").Optional().Nillable().
			SchemaType(map[string]string{dialect.Postgres: "text"}),
		field.JSON("ocr_data", json.RawMessage{}).
			Optional(),
		field.String("file_path").Optional().Nillable(),
		field.Time("created_at").Default(time.Now),
		field.Time("updated_at").Default(time.Now).UpdateDefault(time.Now),
	}
}

func (Receipt) Edges() []ent.Edge {
	return []ent.Edge{
		// MANY receipts -> ONE user (FK: receipts.user_id)
		edge.From("user", User.Type).
			Ref("receipts").
			Field("user_id").
			Required().
			Unique(),
		// ONE receipt -> MANY line items
		edge.To("items", LineItem.Type),
	}
}

func (Receipt) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "created_at"),
		index.Fields("user_id", "purchase_date"),
	}
}
