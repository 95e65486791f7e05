package manifest

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/fuel.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Issue is a single schema violation.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("fuel.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("fuel.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks raw manifest bytes against the schema. A nil slice with a
// nil error means the document is valid.
func Validate(data []byte) ([]Issue, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return []Issue{{Message: fmt.Sprintf("invalid JSON: %v", err)}}, nil
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []Issue
	collectIssues(validationErr, &issues)
	if len(issues) == 0 {
		issues = []Issue{{Message: validationErr.Error()}}
	}
	return issues, nil
}

func collectIssues(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) == 0 {
		if ve.ErrorKind == nil {
			return
		}
		kw := ve.ErrorKind.KeywordPath()
		if len(kw) > 0 && (kw[len(kw)-1] == "$ref" || kw[len(kw)-1] == "allOf") {
			return
		}
		path := ""
		if len(ve.InstanceLocation) > 0 {
			path = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*issues = append(*issues, Issue{Path: path, Message: ve.ErrorKind.LocalizedString(printer)})
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}
