// Package todo defines tasks and the pure operations over them: validation,
// filtering, sorting, statistics, and the task file format used for seed and
// import data.
//
// The task file format follows the embedded task-file.schema.json:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {
//	      "id": "task-001",
//	      "title": "Task title",
//	      "description": "Optional description",
//	      "status": "pending",
//	      "createdAt": "2024-01-01T00:00:00Z",
//	      "updatedAt": "2024-01-01T00:00:00Z"
//	    }
//	  ]
//	}
//
// # Validation
//
// Files are validated against JSON Schema draft-2020-12, using either an
// external schema (ValidationOptions.SchemaPath) or the embedded one. When an
// external schema cannot be read or compiled, minimal structural checks are
// used instead. Both modes also check id uniqueness and that updatedAt never
// precedes createdAt.
//
// Form input is checked with ValidateTitle and ValidateDescription:
//
//   - title: required, 3 to 100 characters after trimming
//   - description: optional, at most 500 characters
//
// # Task Status Values
//
//   - "pending": not started
//   - "in-progress": being worked on
//   - "completed": done
//
// Status rank (used for sorting) is pending < in-progress < completed.
//
// # File Format
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Stable key ordering (via JSON marshaling)
package todo
