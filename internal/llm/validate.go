package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds one *jsonschema.Schema per Schema.Name. Schemas are
// package-level values, so a name always maps to the same definition.
var compiled sync.Map

// checkReply decodes a model reply and checks it against schema. A nil
// schema accepts any reply. Failures are *ErrInvalidResponse carrying the
// reply, so the caller can log what the model actually sent.
func checkReply(schema *Schema, reply json.RawMessage) error {
	if schema == nil {
		return nil
	}
	if len(bytes.TrimSpace(reply)) == 0 {
		return &ErrInvalidResponse{Content: reply, Err: errors.New("empty reply")}
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(reply))
	if err != nil {
		return &ErrInvalidResponse{Content: reply, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := compile(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: reply, Err: err}
	}
	if err := sch.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: reply, Err: fmt.Errorf("reply does not match %s: %w", schema.Name, err)}
	}
	return nil
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(schema.Name); ok {
		return s.(*jsonschema.Schema), nil
	}

	// Definitions are Go maps; the compiler wants decoded JSON values.
	raw, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("encode schema %s: %w", schema.Name, err)
	}
	def, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", schema.Name, err)
	}

	url := "mem://taodethi/" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("load schema %s: %w", schema.Name, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", schema.Name, err)
	}

	actual, _ := compiled.LoadOrStore(schema.Name, s)
	return actual.(*jsonschema.Schema), nil
}
