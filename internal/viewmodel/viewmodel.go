// SPDX-License-Identifier: MIT

// Package viewmodel keeps an in-memory mirror of the catalog for
// presentation code. Its operations never return errors: failures are
// recorded in a single message slot and a safe default is returned.
package viewmodel

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/thatcatcamp/palettekitty/internal/catalog"
	"github.com/thatcatcamp/palettekitty/internal/models"
)

// Repository is the catalog surface the model drives. *catalog.Repository
// implements it.
type Repository interface {
	Snapshot() ([]models.Palette, error)
	Create(d models.Draft) (string, error)
	Update(id string, patch models.Patch) (bool, error)
	Delete(id string) (bool, error)
	GetByID(id string) (models.Palette, bool)
	Duplicate(id string) (string, error)
	Search(query string) []models.Palette
	FilterByCategory(category models.Category) []models.Palette
	ExportAll() string
	ImportAll(data string) (catalog.ImportResult, error)
	ClearAll()
	Stats() catalog.Stats
}

// State is the load state of the mirror
type State int

const (
	Loading State = iota
	Ready
	ReadyWithError
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case ReadyWithError:
		return "ready-with-error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const msgNotFound = "palette not found"

// Snapshot is what observers receive after every change
type Snapshot struct {
	State    State
	Palettes []models.Palette
	Err      string
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the logger failures are reported to
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// Model mirrors the catalog and records the last failure
type Model struct {
	mu       sync.Mutex
	repo     Repository
	logger   *slog.Logger
	state    State
	palettes []models.Palette
	lastErr  string

	nextSub     int
	subscribers map[int]func(Snapshot)
}

// New returns a model in the Loading state. Call Load to populate it;
// writes made before then reach the catalog but not the mirror.
func New(repo Repository, opts ...Option) *Model {
	m := &Model{
		repo:        repo,
		logger:      slog.Default(),
		state:       Loading,
		palettes:    []models.Palette{},
		subscribers: make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe registers fn to be called after every state change. The
// returned function removes it.
func (m *Model) Subscribe(fn func(Snapshot)) (cancel func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subscribers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subscribers, id)
			m.mu.Unlock()
		})
	}
}

// State returns the current load state
func (m *Model) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the last failure message, or "" after a success
func (m *Model) Err() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Palettes returns a copy of the mirror
func (m *Model) Palettes() []models.Palette {
	m.mu.Lock()
	defer m.mu.Unlock()
	return clonePalettes(m.palettes)
}

// Snapshot returns the current state, mirror and error slot
func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Model) snapshotLocked() Snapshot {
	return Snapshot{State: m.state, Palettes: clonePalettes(m.palettes), Err: m.lastErr}
}

// change runs fn under the lock and then notifies subscribers outside it,
// so observers may call back into the model
func (m *Model) change(fn func()) {
	m.mu.Lock()
	fn()
	snap := m.snapshotLocked()
	subs := make([]func(Snapshot), 0, len(m.subscribers))
	for _, s := range m.subscribers {
		subs = append(subs, s)
	}
	m.mu.Unlock()

	for _, s := range subs {
		s(snap)
	}
}

// fail records msg; callers hold the lock
func (m *Model) fail(op string, msg string) {
	m.lastErr = msg
	m.logger.Warn("catalog operation failed", "op", op, "error", msg)
}

// Load performs the initial read. On failure the model becomes
// ReadyWithError with an empty mirror.
func (m *Model) Load() {
	m.reload("load")
}

// Refresh unconditionally reloads the mirror from the repository
func (m *Model) Refresh() {
	m.reload("refresh")
}

func (m *Model) reload(op string) {
	items, err := m.repo.Snapshot()
	m.change(func() {
		if err != nil {
			m.palettes = []models.Palette{}
			m.state = ReadyWithError
			m.fail(op, err.Error())
			return
		}
		m.palettes = items
		m.state = Ready
		m.lastErr = ""
	})
}

// Create adds a palette and appends it to the mirror. It returns "" on
// failure.
func (m *Model) Create(d models.Draft) string {
	id, err := m.repo.Create(d)
	if err != nil {
		m.change(func() { m.fail("create", err.Error()) })
		return ""
	}
	m.appendCreated(id)
	return id
}

// Duplicate copies the palette with id and appends the copy to the mirror.
// It returns "" on failure.
func (m *Model) Duplicate(id string) string {
	newID, err := m.repo.Duplicate(id)
	if err != nil {
		m.change(func() { m.fail("duplicate", err.Error()) })
		return ""
	}
	if newID == "" {
		m.change(func() { m.fail("duplicate", msgNotFound) })
		return ""
	}
	m.appendCreated(newID)
	return newID
}

// appendCreated mirrors a new palette unless a reload already brought it in.
// Before the first Load the mirror is left alone; Load reads it whole.
func (m *Model) appendCreated(id string) {
	p, ok := m.repo.GetByID(id)
	m.change(func() {
		if ok && m.state != Loading && indexOf(m.palettes, id) < 0 {
			m.palettes = append(m.palettes, p)
		}
		m.markReady()
	})
}

// markReady clears the error slot after a successful operation. It never
// leaves Loading; only a completed load does that.
func (m *Model) markReady() {
	m.lastErr = ""
	if m.state == ReadyWithError {
		m.state = Ready
	}
}

// Update applies patch and replaces the mirrored palette in place
func (m *Model) Update(id string, patch models.Patch) bool {
	ok, err := m.repo.Update(id, patch)
	if err != nil {
		m.change(func() { m.fail("update", err.Error()) })
		return false
	}
	if !ok {
		m.change(func() { m.fail("update", msgNotFound) })
		return false
	}

	// a palette deleted since the repository call stays out of the mirror
	p, found := m.repo.GetByID(id)
	m.change(func() {
		if i := indexOf(m.palettes, id); found && i >= 0 {
			m.palettes[i] = p
		}
		m.markReady()
	})
	return true
}

// Delete removes the palette from the catalog and the mirror
func (m *Model) Delete(id string) bool {
	ok, err := m.repo.Delete(id)
	if err != nil {
		m.change(func() { m.fail("delete", err.Error()) })
		return false
	}
	if !ok {
		m.change(func() { m.fail("delete", msgNotFound) })
		return false
	}

	m.change(func() {
		if i := indexOf(m.palettes, id); i >= 0 {
			m.palettes = append(m.palettes[:i:i], m.palettes[i+1:]...)
		}
		m.markReady()
	})
	return true
}

// GetByID looks the palette up in the repository
func (m *Model) GetByID(id string) (models.Palette, bool) {
	return m.repo.GetByID(id)
}

// Search returns the palettes matching query
func (m *Model) Search(query string) []models.Palette {
	return m.repo.Search(query)
}

// FilterByCategory returns the palettes in category
func (m *Model) FilterByCategory(category models.Category) []models.Palette {
	return m.repo.FilterByCategory(category)
}

// Export returns the catalog as indented JSON
func (m *Model) Export() string {
	return m.repo.ExportAll()
}

// Stats describes the stored catalog
func (m *Model) Stats() catalog.Stats {
	return m.repo.Stats()
}

// Import appends the palettes in data and reloads the mirror when any were
// inserted. Rejected records are summarised in the error slot.
func (m *Model) Import(data string) catalog.ImportResult {
	res, err := m.repo.ImportAll(data)
	if err != nil {
		m.change(func() { m.fail("import", err.Error()) })
		if res.Errors == nil {
			res.Errors = []string{}
		}
		return catalog.ImportResult{Errors: res.Errors}
	}

	var (
		items   []models.Palette
		loadErr error
	)
	if res.Inserted > 0 {
		items, loadErr = m.repo.Snapshot()
	}

	m.change(func() {
		if res.Inserted > 0 {
			if loadErr != nil {
				m.palettes = []models.Palette{}
				m.state = ReadyWithError
				m.fail("import", loadErr.Error())
				return
			}
			m.palettes = items
			m.state = Ready
		}

		switch len(res.Errors) {
		case 0:
			m.markReady()
		case 1:
			m.fail("import", res.Errors[0])
		default:
			m.fail("import", fmt.Sprintf("%s (and %d more)", res.Errors[0], len(res.Errors)-1))
		}
	})
	return res
}

// Clear removes the whole catalog and empties the mirror
func (m *Model) Clear() {
	m.repo.ClearAll()
	m.change(func() {
		m.palettes = []models.Palette{}
		m.markReady()
	})
}

func indexOf(items []models.Palette, id string) int {
	for i, p := range items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clonePalettes(in []models.Palette) []models.Palette {
	out := make([]models.Palette, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
