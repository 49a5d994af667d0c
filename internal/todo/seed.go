package todo

import (
	_ "embed"
	"fmt"
)

//go:embed seed.json
var seedJSON []byte

// SeedTasks returns a fresh copy of the built-in sample tasks.
func SeedTasks() []Task {
	f, err := Parse(seedJSON)
	if err != nil {
		// The seed is compiled in; a parse failure is a build defect.
		panic(fmt.Sprintf("todo: embedded seed: %v", err))
	}
	return f.Tasks
}

// LoadSeed reads and validates a task file for use as seed data. An empty
// path returns the built-in sample tasks.
func LoadSeed(path string, opts ValidationOptions) ([]Task, error) {
	if path == "" {
		return SeedTasks(), nil
	}
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	result := f.Validate(opts)
	if !result.Valid {
		return nil, fmt.Errorf("invalid seed file %s: %w", path, result.Errors[0])
	}
	return f.Tasks, nil
}
