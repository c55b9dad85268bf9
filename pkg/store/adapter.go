// Package store persists the planner as a single JSON blob and watches it for
// outside changes.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"tableflip.dev/planner/pkg/entry"
	"tableflip.dev/planner/pkg/logging"
	"tableflip.dev/planner/pkg/planner"
	"tableflip.dev/planner/pkg/timeutil"
)

// Adapter loads and saves a planner.Store through a Backend. Failures are
// logged and never returned as errors: a bad read yields an empty store
// flagged as not ok, and a failed write leaves the in-memory state
// authoritative.
type Adapter struct {
	backend Backend
	key     string
	log     logging.Logger
}

// New wraps backend. An empty key means DefaultKey.
func New(backend Backend, key string, log logging.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{backend: backend, key: key, log: logging.OrDiscard(log).With("component", "store")}
}

// Open builds an Adapter from cfg, falling back to an in-memory backend when
// the configured one cannot be opened.
func Open(ctx context.Context, cfg Config, log logging.Logger) *Adapter {
	log = logging.OrDiscard(log)
	backend, err := OpenBackend(cfg)
	if err != nil {
		log.Error(ctx, "storage unavailable, changes will not persist", "backend", cfg.Backend(), "err", err)
		backend = NewMemory()
	}
	return New(backend, cfg.Key(), log)
}

// Location is the file the blob lives in, or "" when not file backed.
func (a *Adapter) Location() string { return a.backend.Location(a.key) }

// Close releases the backend.
func (a *Adapter) Close() error { return a.backend.Close() }

// Load reads the stored planner. A missing blob is an empty store. An
// unreadable or corrupt blob also yields an empty store, and ok is false so
// callers holding good state can keep it.
func (a *Adapter) Load(ctx context.Context) (s planner.Store, ok bool) {
	data, err := a.backend.Read(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		return planner.Empty(), true
	}
	if err != nil {
		a.log.Error(ctx, "read failed", "key", a.key, "err", err)
		return planner.Empty(), false
	}
	s, repaired, err := Decode(data)
	if err != nil {
		a.log.Error(ctx, "discarding stored planner", "key", a.key, "err", err)
		return planner.Empty(), false
	}
	for _, date := range repaired {
		a.log.Warn(ctx, "repaired day whose date did not match its key", "date", date)
	}
	a.log.Debug(ctx, "loaded", "days", len(s.Dates()), "items", s.Len())
	return s, true
}

// Save writes s and reports whether the write succeeded.
func (a *Adapter) Save(ctx context.Context, s planner.Store) bool {
	data, err := Encode(s)
	if err != nil {
		a.log.Error(ctx, "encode failed", "err", err)
		return false
	}
	if err := a.backend.Write(ctx, a.key, data); err != nil {
		a.log.Error(ctx, "write failed, keeping in-memory state", "key", a.key, "err", err)
		return false
	}
	return true
}

type dayWire struct {
	Date   *string       `json:"date"`
	Items  *[]entry.Item `json:"items"`
	Blocks *[]entry.Item `json:"blocks"`
}

// Decode parses a persisted blob. It returns the dates whose embedded date
// field disagreed with their key. Every failure wraps ErrCorrupt.
func Decode(data []byte) (planner.Store, []string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return planner.Store{}, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if raw == nil {
		return planner.Store{}, nil, fmt.Errorf("%w: not an object", ErrCorrupt)
	}

	days := make(map[string]entry.Day, len(raw))
	seen := make(map[string]string)
	var repaired []string
	for key, msg := range raw {
		if !timeutil.ValidKey(key) {
			return planner.Store{}, nil, fmt.Errorf("%w: invalid date key %q", ErrCorrupt, key)
		}
		var w dayWire
		if err := json.Unmarshal(msg, &w); err != nil {
			return planner.Store{}, nil, fmt.Errorf("%w: day %s: %v", ErrCorrupt, key, err)
		}
		items := w.Items
		if items == nil {
			items = w.Blocks
		}
		if items == nil {
			return planner.Store{}, nil, fmt.Errorf("%w: day %s has no items", ErrCorrupt, key)
		}
		for _, it := range *items {
			if other, dup := seen[it.ID]; dup {
				return planner.Store{}, nil, fmt.Errorf("%w: item %s on both %s and %s", ErrCorrupt, it.ID, other, key)
			}
			seen[it.ID] = key
		}
		if w.Date == nil || *w.Date != key {
			repaired = append(repaired, key)
		}
		days[key] = entry.Day{Date: key, Items: *items}
	}
	slices.Sort(repaired)
	return planner.FromDays(days), repaired, nil
}

// Encode renders s in the persisted layout: an object keyed by date.
func Encode(s planner.Store) ([]byte, error) {
	return json.Marshal(s.Days())
}

// NewID returns a fresh, time-ordered item id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
