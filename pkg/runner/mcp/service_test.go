package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

var now = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.Local)

func newService(t *testing.T) (*Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	n := 0
	a := &app.Service{
		Persistence: store.New(mem, "", nil),
		Clock:       timeutil.Fixed(now),
		NewID: func() string {
			n++
			return fmt.Sprintf("mcp-%d", n)
		},
	}
	a.Open(context.Background())
	return NewService(a, timeutil.Fixed(now)), mem
}

func call(t *testing.T, svc *Service, tool string, args map[string]any) (string, bool) {
	t.Helper()
	srv := NewServer(svc, "planner", "test")
	st := srv.GetTool(tool)
	require.NotNil(t, st, "tool %s is not registered", tool)

	req := mcp.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args
	res, err := st.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func decode[T any](t *testing.T, text string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(text), &v))
	return v
}

func TestAddItemDefaultsToToday(t *testing.T) {
	svc, _ := newService(t)

	dto, err := svc.AddItem(context.Background(), AddItemOptions{Kind: "todo", Patch: app.Patch{Title: app.String("Write tests")}})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", dto.Date)
	assert.True(t, dto.Changed)
	assert.Equal(t, "mcp-1", dto.Item.ID)
	assert.Equal(t, "Write tests", dto.Item.Title)
	assert.Equal(t, entry.KindTodo, dto.Item.Kind)
}

func TestAddItemRejectsBadInput(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.AddItem(context.Background(), AddItemOptions{Kind: "chore"})
	assert.Error(t, err)
	_, err = svc.AddItem(context.Background(), AddItemOptions{Kind: "todo", Date: "2024-13-01"})
	assert.Error(t, err)
}

func TestMutationsRequireKnownID(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.ToggleComplete(ctx, "nope")
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = svc.DeleteItem(ctx, "nope")
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = svc.MoveItem(ctx, "nope", "tomorrow")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestToggleCompleteAndSubtasks(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	todo, err := svc.AddItem(ctx, AddItemOptions{Kind: "todo"})
	require.NoError(t, err)

	dto, err := svc.ToggleComplete(ctx, todo.Item.ID)
	require.NoError(t, err)
	assert.True(t, dto.Item.Completed())

	dto, err = svc.AddSubtask(ctx, todo.Item.ID, "first")
	require.NoError(t, err)
	require.Len(t, dto.Item.Todo.Subtasks, 1)
	sub := dto.Item.Todo.Subtasks[0].ID

	dto, err = svc.ToggleSubtask(ctx, todo.Item.ID, sub)
	require.NoError(t, err)
	assert.True(t, dto.Item.Todo.Subtasks[0].Completed)

	_, err = svc.AddSubtask(ctx, todo.Item.ID, "  ")
	assert.Error(t, err)
}

func TestToggleCompleteOnNoteIsUnchanged(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	note, err := svc.AddItem(ctx, AddItemOptions{Kind: "note"})
	require.NoError(t, err)

	dto, err := svc.ToggleComplete(ctx, note.Item.ID)
	require.NoError(t, err)
	assert.False(t, dto.Changed)
	assert.Equal(t, note.Item.ID, dto.Item.ID)
}

func TestMoveAndDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	ev, err := svc.AddItem(ctx, AddItemOptions{Kind: "event"})
	require.NoError(t, err)

	dto, err := svc.MoveItem(ctx, ev.Item.ID, "tomorrow")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", dto.Date)

	day, err := svc.Day("2024-03-05")
	require.NoError(t, err)
	require.Len(t, day.Items, 1)

	dto, err = svc.DeleteItem(ctx, ev.Item.ID)
	require.NoError(t, err)
	assert.True(t, dto.Changed)
	day, err = svc.Day("2024-03-05")
	require.NoError(t, err)
	assert.Empty(t, day.Items)
}

func TestReorderItems(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	for range 3 {
		_, err := svc.AddItem(ctx, AddItemOptions{Kind: "note"})
		require.NoError(t, err)
	}

	day, changed, err := svc.ReorderItems(ctx, "today", 0, 2)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"mcp-2", "mcp-3", "mcp-1"}, ids(day.Items))

	_, _, err = svc.ReorderItems(ctx, "today", 0, 3)
	assert.Error(t, err)
}

func TestListItemsRange(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, AddItemOptions{Kind: "todo", Date: "2024-03-05"})
	require.NoError(t, err)

	days, err := svc.ListItems("2024-03-04", "2024-03-06")
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Empty(t, days[0].Items)
	assert.Len(t, days[1].Items, 1)

	_, err = svc.ListItems("2024-03-06", "2024-03-04")
	assert.Error(t, err)
	_, err = svc.ListItems("2024-01-01", "2025-12-31")
	assert.Error(t, err)
}

func TestToolsRoundTrip(t *testing.T) {
	svc, mem := newService(t)

	text, isErr := call(t, svc, "add_item", map[string]any{
		"kind":      "event",
		"date":      "2024-03-06",
		"title":     "Standup",
		"startTime": "09:00",
		"endTime":   "09:15",
	})
	require.False(t, isErr, text)
	added := decode[ItemDTO](t, text)
	assert.Equal(t, "09:00 - 09:15", added.Item.TimeLabel())

	text, isErr = call(t, svc, "update_item", map[string]any{"id": added.Item.ID, "title": "Sync"})
	require.False(t, isErr, text)
	assert.Equal(t, "Sync", decode[ItemDTO](t, text).Item.Title)

	text, isErr = call(t, svc, "list_items", map[string]any{"from": "2024-03-06"})
	require.False(t, isErr, text)
	listed := decode[struct {
		Days  []entry.Day `json:"days"`
		Count int         `json:"count"`
	}](t, text)
	assert.Equal(t, 1, listed.Count)

	// the change reached the backend
	data, err := mem.Read(context.Background(), store.DefaultKey)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Sync")
}

func TestToolErrorsAreResults(t *testing.T) {
	svc, _ := newService(t)

	text, isErr := call(t, svc, "delete_item", map[string]any{})
	assert.True(t, isErr)
	assert.NotEmpty(t, text)

	text, isErr = call(t, svc, "update_item", map[string]any{"id": "x"})
	assert.True(t, isErr)
	assert.Equal(t, "nothing to update", text)

	text, isErr = call(t, svc, "reorder_items", map[string]any{"date": "today", "from": 0.0, "to": 1.0})
	assert.True(t, isErr, text)
}

func TestGetStats(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	todo, err := svc.AddItem(ctx, AddItemOptions{Kind: "todo"})
	require.NoError(t, err)
	_, err = svc.ToggleComplete(ctx, todo.Item.ID)
	require.NoError(t, err)

	text, isErr := call(t, svc, "get_stats", map[string]any{"last": "1w"})
	require.False(t, isErr, text)
	assert.Contains(t, text, `"label":"1w"`)
	assert.Contains(t, text, `"completedTodos":1`)
}

func TestDayResource(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.AddItem(context.Background(), AddItemOptions{Kind: "note"})
	require.NoError(t, err)

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "planner://days/2024-03-04"
	req.Params.Arguments = map[string]any{"date": []string{"2024-03-04"}}
	contents, err := readDay(svc)(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text := contents[0].(mcp.TextResourceContents)
	assert.Equal(t, req.Params.URI, text.URI)
	assert.Contains(t, text.Text, `"count":1`)
}

func ids(items []entry.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
