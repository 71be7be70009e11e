package ledger

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/davidahmann/steward/pkg/types"
)

//go:embed schema.json
var recordSchemaJSON string

var (
	schemaOnce     sync.Once
	recordSchema   *jsonschema.Schema
	schemaCompile  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("judgment_record.schema.json", strings.NewReader(recordSchemaJSON)); err != nil {
			schemaCompile = fmt.Errorf("add schema resource: %w", err)
			return
		}
		recordSchema, schemaCompile = compiler.Compile("judgment_record.schema.json")
	})
	return recordSchema, schemaCompile
}

// ValidateDocument applies the judgment record schema to an untyped document,
// such as a record read back from disk by the publisher.
func ValidateDocument(doc any) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	// Round-trip through JSON so YAML-decoded scalars take the value kinds
	// the schema validator expects.
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return err
	}
	return schema.Validate(payload)
}

// ValidateRecord applies both the typed contract checks and the schema gate.
// Every record passes through here before any write.
func ValidateRecord(record types.JudgmentRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}
	return ValidateDocument(record)
}
