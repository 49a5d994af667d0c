package todo

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/taskdash/internal/utils"
)

// SchemaVersion is the only task file version this package reads.
const SchemaVersion = 1

//go:embed task-file.schema.json
var embeddedSchemaJSON string

const embeddedSchemaURL = "https://taskdash.local/task-file.schema.json"

var compileEmbeddedSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(embeddedSchemaURL, strings.NewReader(embeddedSchemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile(embeddedSchemaURL)
})

// File represents the task file structure.
type File struct {
	SchemaVersion int    `json:"schema_version"`
	Tasks         []Task `json:"tasks"`
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is the path to an external JSON Schema file.
	// If empty, the embedded schema is used.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// Load reads and parses a task file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a task file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	return &f, nil
}

// Save writes the task file to path with 2-space indentation.
func (f *File) Save(path string) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}

// GetTask returns a task by ID, or nil if not found.
func (f *File) GetTask(id string) *Task {
	if i := IndexOf(f.Tasks, id); i >= 0 {
		return &f.Tasks[i]
	}
	return nil
}

// Validate validates the task file.
func (f *File) Validate(opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	schema, warning := loadSchema(opts.SchemaPath)
	if warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}
	if schema != nil {
		result.UsedSchema = true
		validateWithSchema(f, schema, result)
	} else {
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
		f.validateMinimal(result)
	}

	f.validateInvariants(result)
	return result
}

// loadSchema compiles the external schema at path, or the embedded schema
// when path is empty. A nil schema with a warning means the caller should
// fall back to minimal checks.
func loadSchema(path string) (*jsonschema.Schema, string) {
	if path == "" {
		schema, err := compileEmbeddedSchema()
		if err != nil {
			return nil, fmt.Sprintf("invalid embedded schema: %v", err)
		}
		return schema, ""
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema path: %v", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Sprintf("schema file not found: %s", absPath)
		}
		return nil, fmt.Sprintf("failed to read schema file: %v", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Sprintf("invalid schema file: %v", err)
	}
	return schema, ""
}

func validateWithSchema(f *File, schema *jsonschema.Schema, result *ValidationResult) {
	// Round-trip through JSON so the validator sees the wire shape.
	data, err := json.Marshal(f)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("failed to marshal file for validation: %w", err),
		})
		return
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Err: fmt.Errorf("failed to unmarshal file for validation: %w", err),
		})
		return
	}

	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// validateMinimal performs minimal validation without JSON Schema.
func (f *File) validateMinimal(result *ValidationResult) {
	if f.SchemaVersion != SchemaVersion {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "schema_version",
			Err:  fmt.Errorf("expected %d, got %d", SchemaVersion, f.SchemaVersion),
		})
	}

	if f.Tasks == nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{
			Path: "tasks",
			Err:  errors.New("missing required field"),
		})
		return
	}

	for i, task := range f.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		if task.ID == "" {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".id",
				Err:  errors.New("missing required field"),
			})
		}
		if !task.Status.Valid() {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".status",
				Err:  fmt.Errorf("invalid status %q, must be one of: pending, in-progress, completed", task.Status),
			})
		}
		for _, fieldErr := range ValidateInput(Input{Title: task.Title, Description: task.Description}) {
			result.Valid = false
			fieldErr.Path = path + "." + fieldErr.Path
			result.Errors = append(result.Errors, fieldErr)
		}
	}
}

// validateInvariants checks rules JSON Schema cannot express.
func (f *File) validateInvariants(result *ValidationResult) {
	seen := make(map[string]int, len(f.Tasks))
	for i, task := range f.Tasks {
		path := fmt.Sprintf("tasks[%d]", i)
		if task.ID != "" {
			if first, dup := seen[task.ID]; dup {
				result.Valid = false
				result.Errors = append(result.Errors, &ValidationError{
					Path: path + ".id",
					Err:  fmt.Errorf("duplicate id %q (first used by tasks[%d])", task.ID, first),
				})
			} else {
				seen[task.ID] = i
			}
		}
		if task.UpdatedAt.Before(task.CreatedAt) {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: path + ".updatedAt",
				Err:  errors.New("must not be earlier than createdAt"),
			})
		}
	}
}
