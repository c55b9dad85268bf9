package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/timeutil"
)

var now = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.Local)

func newServer(t *testing.T) (*Server, *app.Service) {
	t.Helper()
	n := 0
	svc := &app.Service{
		Persistence: store.New(store.NewMemory(), "", nil),
		Clock:       timeutil.Fixed(now),
		NewID: func() string {
			n++
			return fmt.Sprintf("api-%d", n)
		},
	}
	svc.Open(context.Background())
	return NewServer(Config{LogOutput: io.Discard}, svc, timeutil.Fixed(now)), svc
}

func do(t *testing.T, srv *Server, method, path, body string) (int, map[string]json.RawMessage) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]json.RawMessage{}
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(b) > 0 && b[0] == '{' {
		require.NoError(t, json.Unmarshal(b, &out))
	}
	return resp.StatusCode, out
}

func result(t *testing.T, raw json.RawMessage) app.Result {
	t.Helper()
	var res app.Result
	require.NoError(t, json.Unmarshal(raw, &res))
	return res
}

func TestAddAndGetDay(t *testing.T) {
	srv, _ := newServer(t)

	code, body := do(t, srv, http.MethodPost, "/api/days/2024-03-04/items", `{"kind":"todo","title":"Ship it"}`)
	require.Equal(t, http.StatusCreated, code)
	res := result(t, body["data"])
	require.NotNil(t, res.Item)
	assert.Equal(t, "api-1", res.Item.ID)
	assert.Equal(t, "Ship it", res.Item.Title)

	code, body = do(t, srv, http.MethodGet, "/api/days/today", "")
	require.Equal(t, http.StatusOK, code)
	var day entry.Day
	require.NoError(t, json.Unmarshal(body["data"], &day))
	assert.Equal(t, "2024-03-04", day.Date)
	require.Len(t, day.Items, 1)
}

func TestBadInput(t *testing.T) {
	srv, _ := newServer(t)

	code, _ := do(t, srv, http.MethodGet, "/api/days/03-04-2024", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := do(t, srv, http.MethodPost, "/api/days/2024-03-04/items", `{"kind":"chore"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(body["error"]), "chore")

	code, _ = do(t, srv, http.MethodDelete, "/api/days/2024-03-04/items/missing", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, srv, http.MethodPost, "/api/items/missing/move", `{"to":"2024-03-05"}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUpdateDeleteMove(t *testing.T) {
	srv, svc := newServer(t)
	ctx := context.Background()
	_, err := svc.Add(ctx, "2024-03-04", entry.KindEvent, app.Patch{})
	require.NoError(t, err)

	code, body := do(t, srv, http.MethodPut, "/api/days/2024-03-04/items/api-1", `{"startTime":"09:00","endTime":"10:00"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "09:00 - 10:00", result(t, body["data"]).Item.TimeLabel())

	code, body = do(t, srv, http.MethodPost, "/api/items/api-1/move", `{"to":"2024-03-05"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2024-03-05", result(t, body["data"]).Date)
	assert.Empty(t, svc.Snapshot().Items("2024-03-04"))

	code, _ = do(t, srv, http.MethodDelete, "/api/days/2024-03-05/items/api-1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, svc.Snapshot().Items("2024-03-05"))
}

func TestReorderAndRange(t *testing.T) {
	srv, svc := newServer(t)
	ctx := context.Background()
	for range 3 {
		_, err := svc.Add(ctx, "2024-03-04", entry.KindNote, app.Patch{})
		require.NoError(t, err)
	}

	code, _ := do(t, srv, http.MethodPost, "/api/days/2024-03-04/reorder", `{"from":2,"to":0}`)
	require.Equal(t, http.StatusOK, code)
	items := svc.Snapshot().Items("2024-03-04")
	assert.Equal(t, "api-3", items[0].ID)

	code, _ = do(t, srv, http.MethodPost, "/api/days/2024-03-04/reorder", `{"from":0,"to":7}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body := do(t, srv, http.MethodGet, "/api/range?from=2024-03-03&to=2024-03-05", "")
	require.Equal(t, http.StatusOK, code)
	var days []entry.Day
	require.NoError(t, json.Unmarshal(body["data"], &days))
	require.Len(t, days, 3)
	assert.Len(t, days[1].Items, 3)

	code, _ = do(t, srv, http.MethodGet, "/api/range?from=2024-03-05&to=2024-03-03", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStatsAndExport(t *testing.T) {
	srv, svc := newServer(t)
	ctx := context.Background()
	res, err := svc.Add(ctx, "2024-03-04", entry.KindTodo, app.Patch{Completed: app.Bool(true)})
	require.NoError(t, err)
	require.True(t, res.Item.Completed())
	_, err = svc.Add(ctx, "2024-03-04", entry.KindEvent, app.Patch{StartTime: app.String("09:00")})
	require.NoError(t, err)

	code, body := do(t, srv, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(body["data"]), `"completedTodos":1`)

	code, body = do(t, srv, http.MethodGet, "/api/stats?last=2x", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, body["error"])

	req := httptest.NewRequest(http.MethodGet, "/api/export?format=ics", nil)
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/calendar")
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "BEGIN:VEVENT")

	code, body = do(t, srv, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "2024-03-04")
}
