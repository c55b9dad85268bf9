package planner

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/planner/pkg/entry"
)

const (
	monday  = "2024-03-04"
	tuesday = "2024-03-05"
)

func ids(items []entry.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func sorted(v []string) []string {
	out := append([]string(nil), v...)
	sort.Strings(out)
	return out
}

// seed builds a store with n items spread over the given dates.
func seed(t *testing.T, n int, dates ...string) Store {
	t.Helper()
	s := Empty()
	kinds := entry.Kinds()
	for i := 0; i < n; i++ {
		var it entry.Item
		s, it = s.AddItem(dates[i%len(dates)], kinds[i%len(kinds)], fmt.Sprintf("id-%02d", i), entry.Millis(i))
		require.False(t, it.IsZero())
	}
	return s
}

func TestAddItemToEmptyStore(t *testing.T) {
	s, it := Empty().AddItem(monday, entry.KindTodo, "x", 1)

	items := s.Items(monday)
	require.Len(t, items, 1)
	assert.Equal(t, entry.KindTodo, items[0].Kind)
	assert.False(t, items[0].Completed())
	assert.Empty(t, items[0].Todo.Subtasks)
	assert.Equal(t, it, items[0])
	assert.Equal(t, monday, s.Day(monday).Date)
}

func TestAddItemGrowsByOneWithUniqueID(t *testing.T) {
	s := seed(t, 12, monday, tuesday, "2024-03-06")
	for i, date := range []string{monday, "2024-04-01", tuesday} {
		before := len(s.Items(date))
		id := fmt.Sprintf("new-%d", i)
		next, _ := s.AddItem(date, entry.KindNote, id, 0)
		assert.Len(t, next.Items(date), before+1)
		assert.Equal(t, id, next.Items(date)[before].ID)

		count := 0
		for _, it := range next.All() {
			if it.ID == id {
				count++
			}
		}
		assert.Equal(t, 1, count)
		s = next
	}
}

func TestAddItemRejectsDuplicateID(t *testing.T) {
	s, _ := Empty().AddItem(monday, entry.KindTodo, "dup", 0)
	next, it := s.AddItem(tuesday, entry.KindNote, "dup", 0)
	assert.True(t, it.IsZero())
	assert.Empty(t, next.Items(tuesday))
	assert.Equal(t, 1, next.Len())
}

func TestOperationsDoNotMutateReceiver(t *testing.T) {
	s := seed(t, 6, monday, tuesday)
	snapshot := s.Days()

	s.AddItem(monday, entry.KindMood, "new", 0)
	s.DeleteItem(monday, "id-00")
	s.ReorderItems(monday, 0, 2)
	s.MoveItem("id-01", tuesday, monday)
	s.MapItem(monday, "id-00", entry.Item.ToggleCompleted)

	items := s.Items(monday)
	items[0].Title = "changed through snapshot"

	assert.Equal(t, snapshot, s.Days())
}

func TestUpdateItemPreservesOrder(t *testing.T) {
	s := seed(t, 3, monday)
	it := s.Items(monday)[1].WithTitle("renamed")
	next := s.UpdateItem(monday, it)
	assert.Equal(t, ids(s.Items(monday)), ids(next.Items(monday)))
	assert.Equal(t, "renamed", next.Items(monday)[1].Title)
}

func TestUpdateItemMissesAreNoops(t *testing.T) {
	s := seed(t, 3, monday)
	it := s.Items(monday)[0]

	assert.Equal(t, s.Days(), s.UpdateItem(tuesday, it).Days(), "wrong date")

	ghost := it.WithTitle("ghost")
	ghost.ID = "ghost"
	assert.Equal(t, s.Days(), s.UpdateItem(monday, ghost).Days(), "unknown id")

	changed := entry.New(it.ID, entry.KindEvent, it.CreatedAt)
	assert.Equal(t, s.Days(), s.UpdateItem(monday, changed).Days(), "kind change")
}

func TestDeleteItem(t *testing.T) {
	s := seed(t, 3, monday)
	next := s.DeleteItem(monday, "id-01")
	assert.Equal(t, []string{"id-00", "id-02"}, ids(next.Items(monday)))
	assert.Equal(t, s.Days(), s.DeleteItem(monday, "nope").Days())
	assert.Equal(t, s.Days(), s.DeleteItem(tuesday, "id-01").Days())
}

func TestReorderItems(t *testing.T) {
	s := seed(t, 4, monday)
	assert.Equal(t, []string{"id-01", "id-02", "id-00", "id-03"}, ids(s.ReorderItems(monday, 0, 2).Items(monday)))
	assert.Equal(t, []string{"id-03", "id-00", "id-01", "id-02"}, ids(s.ReorderItems(monday, 3, 0).Items(monday)))

	for _, tc := range [][2]int{{1, 1}, {-1, 0}, {0, 4}, {9, 0}} {
		assert.Equal(t, s.Days(), s.ReorderItems(monday, tc[0], tc[1]).Days(), "%v", tc)
	}
}

func TestReorderIsPermutation(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	s := seed(t, 9, monday)
	want := sorted(ids(s.Items(monday)))
	for i := 0; i < 200; i++ {
		s = s.ReorderItems(monday, r.Intn(11)-1, r.Intn(11)-1)
		require.Equal(t, want, sorted(ids(s.Items(monday))))
	}
}

func TestMoveItemAppendsToTarget(t *testing.T) {
	s := seed(t, 4, monday, tuesday)
	next := s.MoveItem("id-00", monday, tuesday)

	assert.NotContains(t, ids(next.Items(monday)), "id-00")
	target := next.Items(tuesday)
	assert.Equal(t, "id-00", target[len(target)-1].ID)
	assert.Equal(t, s.Len(), next.Len())
}

func TestMoveItemCreatesTargetDay(t *testing.T) {
	s := seed(t, 1, monday)
	next := s.MoveItem("id-00", monday, "2024-12-31")
	assert.Contains(t, next.Dates(), "2024-12-31")
	assert.Equal(t, "2024-12-31", next.Day("2024-12-31").Date)
}

func TestMoveItemNoops(t *testing.T) {
	s := seed(t, 4, monday, tuesday)
	assert.Equal(t, s.Days(), s.MoveItem("id-00", monday, monday).Days())
	assert.Equal(t, s.Days(), s.MoveItem("id-01", monday, tuesday).Days(), "item lives on tuesday")
	assert.Equal(t, s.Days(), s.MoveItem("missing", monday, tuesday).Days())
}

func TestMoveThereAndBackRestoresMembership(t *testing.T) {
	s := seed(t, 6, monday, tuesday)
	back := s.MoveItem("id-02", monday, tuesday).MoveItem("id-02", tuesday, monday)

	assert.Equal(t, sorted(ids(s.Items(monday))), sorted(ids(back.Items(monday))))
	assert.Equal(t, sorted(ids(s.Items(tuesday))), sorted(ids(back.Items(tuesday))))
	// Membership is restored, position is not.
	assert.Equal(t, "id-02", back.Items(monday)[len(back.Items(monday))-1].ID)
}

func TestFind(t *testing.T) {
	s := seed(t, 4, monday, tuesday)
	date, it, ok := s.Find("id-03")
	require.True(t, ok)
	assert.Equal(t, tuesday, date)
	assert.Equal(t, "id-03", it.ID)
	assert.Equal(t, 1, s.Index(tuesday, "id-03"))

	_, _, ok = s.Find("nope")
	assert.False(t, ok)
}

func TestFromDaysRepairsDateField(t *testing.T) {
	s := FromDays(map[string]entry.Day{
		monday: {Date: "1999-01-01", Items: []entry.Item{entry.New("a", entry.KindNote, 0)}},
	})
	assert.Equal(t, monday, s.Days()[monday].Date)
}

func TestZeroStoreIsUsable(t *testing.T) {
	var s Store
	assert.Empty(t, s.Items(monday))
	next, it := s.AddItem(monday, entry.KindEvent, "e", 0)
	assert.False(t, it.IsZero())
	assert.Equal(t, 1, next.Len())
}
