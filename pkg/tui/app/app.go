// Package teaui hosts the Bubble Tea program for the planner TUI.
package teaui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/planner/pkg/app"
	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/store"
	"tableflip.dev/planner/pkg/tui/components/help"
	"tableflip.dev/planner/pkg/tui/theme"
)

type mode int

const (
	modeNormal mode = iota
	modeKind
	modeMood
	modeInput
	modeHelp
)

type action int

const (
	actionNone action = iota
	actionAdd
	actionRename
	actionContent
	actionTime
	actionSubtask
)

// Messages
type errMsg struct{ err error }

type changedMsg struct{ ev store.Event }

type watchClosedMsg struct{}

// Model is the planner TUI. It reads through the service snapshot and keeps
// navigation in an app.Session.
type Model struct {
	ctx     context.Context
	svc     *app.Service
	session *app.Session
	drag    *app.Drag
	events  <-chan store.Event

	theme     theme.Theme
	helpStyle string
	help      *help.Model

	mode        mode
	action      action
	pendingKind entry.Kind
	input       textinput.Model
	focus       int
	status      string
	err         error

	termWidth  int
	termHeight int
}

// Option configures a Model.
type Option func(*Model)

// WithContext sets the context passed to service mutations.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithTheme swaps the styles and the glamour style used by help.
func WithTheme(th theme.Theme, glamourStyle string) Option {
	return func(m *Model) {
		m.theme = th
		m.helpStyle = glamourStyle
	}
}

// WithEvents makes the model reload whenever the store changes underneath it.
func WithEvents(ch <-chan store.Event) Option {
	return func(m *Model) { m.events = ch }
}

// New creates a model bound to svc, starting on today in week view.
func New(svc *app.Service, opts ...Option) *Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 200

	m := &Model{
		ctx:       context.Background(),
		svc:       svc,
		session:   app.NewSession(svc.Clock),
		drag:      svc.NewDrag(),
		theme:     theme.Default(),
		helpStyle: "dark",
		input:     ti,
		status:    "? for help",
	}
	for _, opt := range opts {
		opt(m)
	}
	m.help = help.New(80, 24, m.helpStyle)
	return m
}

// Init starts listening for store changes when a feed was provided.
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.events
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return changedMsg{ev: ev}
	}
}

// Update handles Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.help.SetSize(msg.Width-4, msg.Height-4)
	case errMsg:
		m.err = msg.err
	case changedMsg:
		reloaded := m.svc.Reload(m.ctx)
		m.clampFocus()
		switch {
		case !reloaded:
			m.status = "Stored planner unreadable, keeping the current view"
		case msg.ev.Type == store.EventWatchError:
			m.status = "Reloaded after a watch error"
		}
		cmds = append(cmds, m.waitForChange())
	case watchClosedMsg:
		m.events = nil
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(msg))
	default:
		if m.mode == modeInput {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}
	switch m.mode {
	case modeHelp:
		switch key {
		case "?", "esc", "q":
			m.mode = modeNormal
			return nil
		}
		return m.help.Update(msg)
	case modeKind:
		return m.handleKindKey(key)
	case modeMood:
		return m.handleMoodKey(key)
	case modeInput:
		switch key {
		case "enter":
			return m.commitInput()
		case "esc":
			m.resetInput()
			m.status = "Cancelled"
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return m.handleNormalKey(key)
}

func (m *Model) handleNormalKey(key string) tea.Cmd {
	m.err = nil
	switch key {
	case "q":
		return tea.Quit
	case "?":
		m.mode = modeHelp
	case "esc":
		if m.drag.Active() {
			m.drag.Cancel()
			m.status = "Put it back"
		}

	// navigation
	case "h", "left":
		m.step(-1)
	case "l", "right":
		m.step(1)
	case "k", "up":
		m.step(-m.rowLength())
	case "j", "down":
		m.step(m.rowLength())
	case "[":
		m.session.Prev()
		m.selectPageStart()
	case "]":
		m.session.Next()
		m.selectPageStart()
	case "t":
		m.session.JumpToToday()
		m.focus = 0
	case "v":
		m.session.ToggleView()
		m.session.Step(0)
	case "tab":
		m.moveFocus(1)
	case "shift+tab":
		m.moveFocus(-1)

	// items
	case "a":
		m.mode = modeKind
	case "e":
		if it, ok := m.focused(); ok {
			m.beginInput(actionRename, "Title", it.Title)
			return textinput.Blink
		}
	case "c":
		if it, ok := m.focused(); ok && (it.Note != nil || it.Mood != nil) {
			m.beginInput(actionContent, "Text", it.Content())
			return textinput.Blink
		}
	case "T":
		if it, ok := m.focused(); ok && it.Event != nil {
			m.beginInput(actionTime, "09:00-10:30", timeRange(it.Event))
			return textinput.Blink
		}
	case "s":
		if it, ok := m.focused(); ok && it.Todo != nil {
			m.beginInput(actionSubtask, "Subtask", "")
			return textinput.Blink
		}
	case "S":
		return m.toggleOpenSubtask()
	case "m":
		if it, ok := m.focused(); ok && it.Mood != nil {
			m.mode = modeMood
		}
	case "space", " ":
		if it, ok := m.focused(); ok {
			return m.apply("Toggled", func() (app.Result, error) {
				return m.svc.ToggleComplete(m.ctx, m.session.Selected, it.ID)
			})
		}
	case "enter":
		if it, ok := m.focused(); ok {
			return m.apply("", func() (app.Result, error) {
				return m.svc.ToggleExpanded(m.ctx, m.session.Selected, it.ID)
			})
		}
	case "x":
		if it, ok := m.focused(); ok {
			cmd := m.apply("Deleted "+it.Title, func() (app.Result, error) {
				return m.svc.Delete(m.ctx, m.session.Selected, it.ID)
			})
			m.clampFocus()
			return cmd
		}
	case "J":
		return m.reorderFocused(1)
	case "K":
		return m.reorderFocused(-1)

	// drag
	case "g":
		if it, ok := m.focused(); ok && m.drag.Begin(it.ID) {
			m.status = fmt.Sprintf("Carrying %q, select a day and press p", it.Title)
		}
	case "p":
		return m.drop()
	}
	return nil
}

func (m *Model) handleKindKey(key string) tea.Cmd {
	kinds := entry.Kinds()
	switch key {
	case "1", "2", "3", "4":
		m.pendingKind = kinds[int(key[0]-'1')]
		m.beginInput(actionAdd, m.pendingKind.DefaultTitle(), "")
		return textinput.Blink
	case "esc", "q":
		m.mode = modeNormal
		m.status = "Add cancelled"
	}
	return nil
}

func (m *Model) handleMoodKey(key string) tea.Cmd {
	if key == "esc" || key == "q" {
		m.mode = modeNormal
		return nil
	}
	idx := moodIndex(key)
	if idx < 0 {
		return nil
	}
	m.mode = modeNormal
	it, ok := m.focused()
	if !ok {
		return nil
	}
	mood := entry.Moods[idx]
	return m.apply("Mood "+mood, func() (app.Result, error) {
		return m.svc.SetMood(m.ctx, m.session.Selected, it.ID, mood)
	})
}

// moodIndex maps the number row to the palette, 1 through 9 then 0.
func moodIndex(key string) int {
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return -1
	}
	idx := int(key[0]-'0') - 1
	if idx < 0 {
		idx = 9
	}
	if idx >= len(entry.Moods) {
		return -1
	}
	return idx
}

func (m *Model) beginInput(a action, placeholder, value string) {
	m.mode = modeInput
	m.action = a
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m *Model) resetInput() {
	m.mode = modeNormal
	m.action = actionNone
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) commitInput() tea.Cmd {
	value := strings.TrimSpace(m.input.Value())
	a := m.action
	m.resetInput()

	date := m.session.Selected
	if a == actionAdd {
		var patch app.Patch
		if value != "" {
			patch.Title = app.String(value)
		}
		kind := m.pendingKind
		cmd := m.apply("Added", func() (app.Result, error) {
			return m.svc.Add(m.ctx, date, kind, patch)
		})
		m.focus = len(m.items()) - 1
		return cmd
	}

	it, ok := m.focused()
	if !ok {
		return nil
	}
	switch a {
	case actionRename:
		if value == "" {
			return nil
		}
		return m.apply("Renamed", func() (app.Result, error) {
			return m.svc.Edit(m.ctx, date, it.ID, app.Patch{Title: app.String(value)})
		})
	case actionContent:
		return m.apply("Saved", func() (app.Result, error) {
			return m.svc.Edit(m.ctx, date, it.ID, app.Patch{Content: app.String(value)})
		})
	case actionTime:
		start, end, err := parseTimeRange(value)
		if err != nil {
			return errCmd(err)
		}
		return m.apply("Time set", func() (app.Result, error) {
			return m.svc.Edit(m.ctx, date, it.ID, app.Patch{StartTime: app.String(start), EndTime: app.String(end)})
		})
	case actionSubtask:
		if value == "" {
			return nil
		}
		return m.apply("Subtask added", func() (app.Result, error) {
			return m.svc.AddSubtask(m.ctx, date, it.ID, value)
		})
	}
	return nil
}

func (m *Model) toggleOpenSubtask() tea.Cmd {
	it, ok := m.focused()
	if !ok || it.Todo == nil {
		return nil
	}
	for _, st := range it.Todo.Subtasks {
		if !st.Completed {
			return m.apply("Subtask done", func() (app.Result, error) {
				return m.svc.ToggleSubtask(m.ctx, m.session.Selected, it.ID, st.ID)
			})
		}
	}
	m.status = "No open subtasks"
	return nil
}

func (m *Model) reorderFocused(delta int) tea.Cmd {
	n := len(m.items())
	from, to := m.focus, m.focus+delta
	if n == 0 || to < 0 || to >= n {
		return nil
	}
	cmd := m.apply("", func() (app.Result, error) {
		return m.svc.Reorder(m.ctx, m.session.Selected, from, to)
	})
	m.focus = to
	return cmd
}

func (m *Model) drop() tea.Cmd {
	if !m.drag.Active() {
		m.status = "Nothing to drop, press g on an item first"
		return nil
	}
	_, carried := m.drag.Item()
	zone := app.DateZone(m.session.Selected)
	if it, ok := m.focused(); ok && it.ID != carried.ID {
		zone = app.ItemZone(it.ID)
	}
	cmd := m.apply("Dropped "+carried.Title, func() (app.Result, error) {
		return m.drag.End(m.ctx, zone)
	})
	if idx := m.svc.Snapshot().Index(m.session.Selected, carried.ID); idx >= 0 {
		m.focus = idx
	}
	return cmd
}

// apply runs one service mutation and records the outcome in the footer.
func (m *Model) apply(done string, fn func() (app.Result, error)) tea.Cmd {
	res, err := fn()
	if err != nil {
		return errCmd(err)
	}
	m.err = nil
	switch {
	case !res.Changed:
		m.status = "No change"
	case done != "":
		m.status = done
	}
	return nil
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return errMsg{err} }
}

func (m *Model) step(days int) {
	m.session.Step(days)
	m.focus = 0
}

func (m *Model) selectPageStart() {
	first := m.session.VisibleDates()[0]
	if m.session.Mode == app.ViewMonth {
		first = firstOfMonth(m.session)
	}
	_ = m.session.Select(dateKey(first))
	m.focus = 0
}

func (m *Model) rowLength() int {
	if m.session.Mode == app.ViewMonth {
		return 7
	}
	return 3
}

func (m *Model) items() []entry.Item {
	return m.svc.Snapshot().Items(m.session.Selected)
}

func (m *Model) focused() (entry.Item, bool) {
	items := m.items()
	if m.focus < 0 || m.focus >= len(items) {
		return entry.Item{}, false
	}
	return items[m.focus], true
}

func (m *Model) moveFocus(delta int) {
	n := len(m.items())
	if n == 0 {
		m.focus = 0
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
}

func (m *Model) clampFocus() {
	n := len(m.items())
	if m.focus >= n {
		m.focus = n - 1
	}
	if m.focus < 0 {
		m.focus = 0
	}
}

func timeRange(ev *entry.Event) string {
	switch {
	case ev.StartTime == "" && ev.EndTime == "":
		return ""
	case ev.EndTime == "":
		return ev.StartTime
	}
	return ev.StartTime + "-" + ev.EndTime
}

// parseTimeRange reads "HH:MM", "HH:MM-HH:MM" or "" (clears both).
func parseTimeRange(v string) (string, string, error) {
	if v == "" {
		return "", "", nil
	}
	start, end, _ := strings.Cut(v, "-")
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	for _, t := range []string{start, end} {
		if t == "" {
			continue
		}
		if _, err := time.Parse("15:04", t); err != nil {
			return "", "", fmt.Errorf("invalid time %q, expected HH:MM", t)
		}
	}
	return start, end, nil
}
