package api

import "github.com/nibzard/taskdash/internal/todo"

// Result is the tagged outcome of a facade call. Success=false carries a
// domain failure in Message; it is never reported through the error return.
type Result[T any] struct {
	Data    T      `json:"data"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Ack is the outcome of a call with no payload.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// BulkUpdate is one entry of a bulk update request.
type BulkUpdate struct {
	ID    string     `json:"id"`
	Patch todo.Patch `json:"data"`
}

// BulkDeleteResult reports which ids a bulk delete removed.
type BulkDeleteResult struct {
	DeletedCount int      `json:"deletedCount"`
	DeletedIDs   []string `json:"deletedIds"`
}

// Facade messages.
const (
	MsgListed   = "Tasks loaded"
	MsgFound    = "Task found"
	MsgNotFound = "Task not found"
	MsgCreated  = "Task created"
	MsgUpdated  = "Task updated"
	MsgDeleted  = "Task deleted"
)

func ok[T any](data T, msg string) Result[T] {
	return Result[T]{Data: data, Success: true, Message: msg}
}

func fail[T any](msg string) Result[T] {
	var zero T
	return Result[T]{Data: zero, Success: false, Message: msg}
}
