// Regenerates the Ent client into gen/ent from the schemas in db/ent/schema.
// Run from the repository root: go run db/ent/generate.go
package main

import (
	"log"

	"entgo.io/ent/entc"
	"entgo.io/ent/entc/gen"
)

func main() {
	err := entc.Generate(
		"./db/ent/schema",
		&gen.Config{
			Target:  "gen/ent",
			Package: "github.com/origen-app/origen-server/gen/ent",
		},
	)
	if err != nil {
		log.Fatal(err)
	}
}
