package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/mattsolo1/grove-forge/cmd"
	"github.com/mattsolo1/grove-forge/pkg/scenario"
)

func main() {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&cmd.ForgeConfig{})
	schema.Title = "Grove Forge Configuration"
	schema.Description = "Schema for the 'forge' extension in grove.yml."

	// Make all fields optional - Grove configs should not require any fields
	schema.Required = nil

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}
	if err := os.WriteFile("forge.schema.json", data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}
	log.Printf("Successfully generated forge schema at forge.schema.json")

	// Scenario catalogue files are fully specified, so required fields stay.
	catSchema := r.Reflect(&scenario.CatalogueFile{})
	catSchema.Title = "Grove Forge Scenario Catalogue"
	catSchema.Description = "Schema for scenario catalogue files loaded with --catalogue."

	catData, err := json.MarshalIndent(catSchema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling catalogue schema: %v", err)
	}
	if err := os.WriteFile("forge-catalogue.schema.json", catData, 0644); err != nil {
		log.Fatalf("Error writing catalogue schema file: %v", err)
	}
	log.Printf("Successfully generated catalogue schema at forge-catalogue.schema.json")
}
