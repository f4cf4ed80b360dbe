// Package schemas holds the JSON schemas used to check the responses returned by the petly API
// before they are decoded into the types in internal/ui/types.
//
// The schemas are embedded in the binary and compiled once, when the package is loaded.
// Only the fields the UI depends on are required, and unknown fields are allowed.
package schemas

import (
	"bytes"
	"embed"
	"fmt"
	"path"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// BaseURL is the base of the $id of every embedded schema
const BaseURL = "https://petly.app/schemas/"

//go:embed json/*.json
var files embed.FS

// compiled schemas, one per response type
var (
	AuthResponse *jsonschema.Schema
	User         *jsonschema.Schema
	UserList     *jsonschema.Schema
	Pet          *jsonschema.Schema
	PetList      *jsonschema.Schema
	Event        *jsonschema.Schema
	EventList    *jsonschema.Schema
	Adoption     *jsonschema.Schema
	AdoptionList *jsonschema.Schema
	Report       *jsonschema.Schema
	ReportList   *jsonschema.Schema
	Message      *jsonschema.Schema
)

func init() {
	compiler, err := newCompiler()
	if err != nil {
		panic(err)
	}

	targets := map[string]**jsonschema.Schema{
		"auth_response.json": &AuthResponse,
		"user.json":          &User,
		"user_list.json":     &UserList,
		"pet.json":           &Pet,
		"pet_list.json":      &PetList,
		"event.json":         &Event,
		"event_list.json":    &EventList,
		"adoption.json":      &Adoption,
		"adoption_list.json": &AdoptionList,
		"report.json":        &Report,
		"report_list.json":   &ReportList,
		"message.json":       &Message,
	}
	for name, target := range targets {
		schema, err := compiler.Compile(BaseURL + name)
		if err != nil {
			panic(fmt.Sprintf("schemas: could not compile %s: %v", name, err))
		}
		*target = schema
	}
}

// newCompiler registers every embedded schema as a resource so that $refs between them resolve
// without network access
func newCompiler() (*jsonschema.Compiler, error) {
	entries, err := files.ReadDir("json")
	if err != nil {
		return nil, fmt.Errorf("schemas: reading embedded schemas: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	for _, entry := range entries {
		content, err := files.ReadFile(path.Join("json", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("schemas: reading %s: %w", entry.Name(), err)
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(content))
		if err != nil {
			return nil, fmt.Errorf("schemas: %s is not valid JSON: %w", entry.Name(), err)
		}

		if err := compiler.AddResource(BaseURL+entry.Name(), doc); err != nil {
			return nil, fmt.Errorf("schemas: adding %s: %w", entry.Name(), err)
		}
	}
	return compiler, nil
}

// Validate checks a raw JSON document against schema
func Validate(schema *jsonschema.Schema, raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
