package api

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/taskdash/internal/todo"
)

// fakeClock advances one second on every reading.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestFacade(t *testing.T) *Facade {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	n := 0
	return New(todo.SeedTasks(),
		WithLatency(NoLatency()),
		WithClock(clock.Now),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("new-%d", n)
		}),
	)
}

func TestFacade_List(t *testing.T) {
	f := newTestFacade(t)

	res, err := f.List(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Len(t, res.Data, len(todo.SeedTasks()))
}

func TestFacade_ListReturnsCopies(t *testing.T) {
	f := newTestFacade(t)
	ctx := context.Background()

	res, err := f.List(ctx)
	require.NoError(t, err)
	res.Data[0].Title = "mutated by caller"

	again, err := f.List(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated by caller", again.Data[0].Title)
}

func TestFacade_Get(t *testing.T) {
	f := newTestFacade(t)
	ctx := context.Background()

	res, err := f.Get(ctx, "task-003")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "Implement filtering", res.Data.Title)

	missing, err := f.Get(ctx, "bogus")
	require.NoError(t, err)
	assert.False(t, missing.Success)
	assert.Equal(t, "Task not found", missing.Message)
}

func TestFacade_CreatePrepends(t *testing.T) {
	f := newTestFacade(t)
	ctx := context.Background()

	res, err := f.Create(ctx, todo.Input{Title: "Brand new"})
	require.NoError(t, err)
	require.True(t, res.Success)

	created := res.Data
	assert.Equal(t, "new-1", created.ID)
	assert.Equal(t, todo.StatusPending, created.Status)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt), "createdAt must equal updatedAt at creation")

	list, err := f.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Data, len(todo.SeedTasks())+1)
	assert.Equal(t, created.ID, list.Data[0].ID)
}

func TestFacade_UpdateMergesAndTouches(t *testing.T) {
	f := newTestFacade(t)
	ctx := context.Background()

	before, err := f.Get(ctx, "task-001")
	require.NoError(t, err)

	title := "Renamed"
	res, err := f.Update(ctx, "task-001", todo.Patch{Title: &title})
	require.NoError(t, err)
	require.True(t, res.Success)

	after := res.Data
	assert.Equal(t, "Renamed", after.Title)
	assert.Equal(t, before.Data.Description, after.Description)
	assert.Equal(t, before.Data.Status, after.Status)
	assert.True(t, after.CreatedAt.Equal(before.Data.CreatedAt))
	assert.True(t, after.UpdatedAt.After(before.Data.UpdatedAt))
}

func TestFacade_UpdateNotFound(t *testing.T) {
	f := newTestFacade(t)

	res, err := f.Update(context.Background(), "bogus", todo.StatusPatch(todo.StatusCompleted))
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, MsgNotFound, res.Message)
}

func TestFacade_Delete(t *testing.T) {
	f := newTestFacade(t)
	ctx := context.Background()
	size := f.Len()

	ack, err := f.Delete(ctx, "task-002")
	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Equal(t, size-1, f.Len())

	ack, err = f.Delete(ctx, "task-002")
	require.NoError(t, err)
	assert.False(t, ack.Success)
	assert.Equal(t, "Task not found", ack.Message)
	assert.Equal(t, size-1, f.Len(), "failed delete must leave the collection unchanged")
}

func TestFacade_BulkUpdateSkipsUnknown(t *testing.T) {
	f := newTestFacade(t)

	res, err := f.BulkUpdate(context.Background(), []BulkUpdate{
		{ID: "task-003", Patch: todo.StatusPatch(todo.StatusCompleted)},
		{ID: "bogus", Patch: todo.StatusPatch(todo.StatusCompleted)},
		{ID: "task-004", Patch: todo.StatusPatch(todo.StatusInProgress)},
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, res.Data, 2)
	assert.Equal(t, todo.StatusCompleted, res.Data[0].Status)
	assert.Equal(t, todo.StatusInProgress, res.Data[1].Status)
	assert.Equal(t, "Updated 2 tasks", res.Message)
}

func TestFacade_BulkUpdateNothingMatchedStillSucceeds(t *testing.T) {
	f := newTestFacade(t)

	res, err := f.BulkUpdate(context.Background(), []BulkUpdate{{ID: "bogus"}})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Data)
}

func TestFacade_BulkDelete(t *testing.T) {
	f := newTestFacade(t)
	size := f.Len()

	res, err := f.BulkDelete(context.Background(), []string{"task-001", "bogus"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 1, res.Data.DeletedCount)
	assert.Equal(t, []string{"task-001"}, res.Data.DeletedIDs)
	assert.Equal(t, size-1, f.Len())
}

func TestFacade_Search(t *testing.T) {
	f := newTestFacade(t)

	res, err := f.Search(context.Background(), "THEME")
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "task-005", res.Data[0].ID)
	assert.Equal(t, `Found 1 tasks matching "THEME"`, res.Message)
}

func TestFacade_Reset(t *testing.T) {
	f := newTestFacade(t)
	ctx := context.Background()

	_, err := f.Create(ctx, todo.Input{Title: "Extra"})
	require.NoError(t, err)
	_, err = f.Delete(ctx, "task-001")
	require.NoError(t, err)
	_, err = f.Delete(ctx, "task-002")
	require.NoError(t, err)

	f.Reset()

	res, err := f.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, todo.SeedTasks(), res.Data)
}

func TestFacade_CancelledContextIsAFault(t *testing.T) {
	f := New(todo.SeedTasks(), WithLatency(DefaultLatency()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = f.Create(ctx, todo.Input{Title: "never"})
	require.Error(t, err)
	assert.Equal(t, len(todo.SeedTasks()), f.Len(), "a faulted create must not apply")
}

func TestFacade_LatencyIsApplied(t *testing.T) {
	f := New(todo.SeedTasks(), WithLatency(Latency{List: 30 * time.Millisecond}))

	start := time.Now()
	_, err := f.List(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestLatencyScale(t *testing.T) {
	l := DefaultLatency().Scale(0.5)
	assert.Equal(t, 250*time.Millisecond, l.List)
	assert.Equal(t, 500*time.Millisecond, l.BulkUpdate)
	assert.Equal(t, NoLatency(), DefaultLatency().Scale(0))
}

func TestFacade_UniqueIDs(t *testing.T) {
	f := New(nil, WithLatency(NoLatency()))
	ctx := context.Background()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		res, err := f.Create(ctx, todo.Input{Title: "Repeat"})
		require.NoError(t, err)
		require.False(t, seen[res.Data.ID], "duplicate id %s", res.Data.ID)
		seen[res.Data.ID] = true
	}
}
