// SPDX-License-Identifier: MIT

// Package catalog is the palette repository: the only code that reads or
// writes the catalog key of the substrate.
package catalog

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/thatcatcamp/palettekitty/internal/idx"
	"github.com/thatcatcamp/palettekitty/internal/kv"
	"github.com/thatcatcamp/palettekitty/internal/models"
)

// DefaultKey is the substrate key holding the catalog
const DefaultKey = "palettes"

// Option configures a Repository
type Option func(*Repository)

// WithKey stores the catalog under key instead of DefaultKey
func WithKey(key string) Option {
	return func(r *Repository) { r.key = key }
}

// WithLogger sets the logger used for degraded reads
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) { r.logger = logger }
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// WithIDFunc replaces the ID generator
func WithIDFunc(newID func(time.Time) string) Option {
	return func(r *Repository) { r.newID = newID }
}

// Repository owns the palette collection. Every mutation reads the whole
// collection, changes it and writes the whole collection back, holding the
// repository lock for the duration so calls never interleave.
type Repository struct {
	mu     sync.Mutex
	sub    kv.Substrate
	key    string
	logger *slog.Logger
	now    func() time.Time
	newID  func(time.Time) string

	// last value seen on the substrate and its parsed form
	cachedRaw string
	cached    *collection
}

// New creates a repository persisting into sub
func New(sub kv.Substrate, opts ...Option) *Repository {
	r := &Repository{
		sub:    sub,
		key:    DefaultKey,
		logger: slog.Default(),
		now:    time.Now,
		newID:  idx.NewAt,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the substrate key the catalog lives under
func (r *Repository) Key() string {
	return r.key
}

func (r *Repository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

// load returns the stored collection. The result is shared with the cache
// and must be cloned before being modified.
func (r *Repository) load() (*collection, error) {
	raw, ok, err := r.sub.Read(r.key)
	if err != nil {
		return nil, &PersistenceError{Op: "read", Key: r.key, Err: err}
	}
	if !ok {
		r.cached = nil
		return newCollection(nil), nil
	}
	if r.cached != nil && raw == r.cachedRaw {
		return r.cached, nil
	}

	items, err := decode(raw)
	if err != nil {
		r.cached = nil
		return nil, &PersistenceError{Op: "decode", Key: r.key, Err: err}
	}

	r.cachedRaw = raw
	r.cached = newCollection(items)
	return r.cached, nil
}

// loadOrEmpty is load for read paths: failures are logged and read as an
// empty catalog
func (r *Repository) loadOrEmpty(op string) *collection {
	c, err := r.load()
	if err != nil {
		r.logger.Warn("catalog unreadable, treating as empty", "op", op, "key", r.key, "error", err)
		return newCollection(nil)
	}
	return c
}

func (r *Repository) store(c *collection) error {
	raw, err := encode(c.items, "")
	if err != nil {
		return &PersistenceError{Op: "encode", Key: r.key, Err: err}
	}
	if err := r.sub.Write(r.key, raw); err != nil {
		return &PersistenceError{Op: "write", Key: r.key, Err: err}
	}
	r.cachedRaw = raw
	r.cached = c
	return nil
}

// uniqueID mints an ID not already present in c
func (r *Repository) uniqueID(c *collection, at time.Time) string {
	for {
		id := r.newID(at)
		if !c.has(id) {
			return id
		}
	}
}

// List returns every palette in insertion order. An absent or unreadable
// catalog reads as empty.
func (r *Repository) List() []models.Palette {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadOrEmpty("list").snapshot()
}

// Snapshot is List without the fallback: read and parse failures are
// returned as a *PersistenceError
func (r *Repository) Snapshot() ([]models.Palette, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, err := r.load()
	if err != nil {
		return []models.Palette{}, err
	}
	return c.snapshot(), nil
}

func validateDraft(d models.Draft) error {
	if strings.TrimSpace(d.Name) == "" {
		return &ValidationError{Index: -1, Reason: "name is required"}
	}
	if d.Category != "" && !d.Category.Valid() {
		return &ValidationError{Index: -1, Name: d.Name, Reason: "unknown category " + string(d.Category)}
	}
	return nil
}

// Create adds a palette built from d and returns its new ID
func (r *Repository) Create(d models.Draft) (string, error) {
	if err := validateDraft(d); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.load()
	if err != nil {
		return "", err
	}

	now := r.timestamp()
	category := d.Category
	if category == "" {
		category = models.CategoryCustom
	}

	p := models.Palette{
		ID:          r.uniqueID(current, now),
		Name:        d.Name,
		Description: d.Description,
		Colors:      models.CloneColors(d.Colors),
		ColorTheory: d.ColorTheory,
		UseCases:    models.CloneStrings(d.UseCases),
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	next := current.clone()
	next.append(p)
	if err := r.store(next); err != nil {
		return "", err
	}
	return p.ID, nil
}

// Update merges patch into the palette with id. It reports false when no
// such palette exists.
func (r *Repository) Update(id string, patch models.Patch) (bool, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return false, &ValidationError{Index: -1, Reason: "name is required"}
	}
	if patch.Category != nil && !patch.Category.Valid() {
		return false, &ValidationError{Index: -1, Reason: "unknown category " + string(*patch.Category)}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.load()
	if err != nil {
		return false, err
	}

	existing, ok := current.get(id)
	if !ok {
		return false, nil
	}

	updated := existing.Clone()
	updated.Apply(patch)
	updated.UpdatedAt = latest(r.timestamp(), existing.UpdatedAt, existing.CreatedAt)

	next := current.clone()
	next.replace(updated)
	if err := r.store(next); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the palette with id. It reports false, and leaves the
// substrate untouched, when no such palette exists.
func (r *Repository) Delete(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.load()
	if err != nil {
		return false, err
	}
	if !current.has(id) {
		return false, nil
	}

	next := current.clone()
	next.remove(id)
	if err := r.store(next); err != nil {
		return false, err
	}
	return true, nil
}

// GetByID returns the palette with id
func (r *Repository) GetByID(id string) (models.Palette, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.loadOrEmpty("get").get(id)
	if !ok {
		return models.Palette{}, false
	}
	return p.Clone(), true
}

// Duplicate copies the palette with id under a "(copy)" name. It returns ""
// with a nil error when no such palette exists.
func (r *Repository) Duplicate(id string) (string, error) {
	src, ok := r.GetByID(id)
	if !ok {
		return "", nil
	}
	d := src.Draft()
	d.Name = src.Name + " (copy)"
	return r.Create(d)
}

// Search returns palettes whose name, description, color theory, or any
// color name or hex contains query, ignoring case. The empty query matches
// everything.
func (r *Repository) Search(query string) []models.Palette {
	r.mu.Lock()
	defer r.mu.Unlock()

	q := strings.ToLower(query)
	return r.loadOrEmpty("search").filter(func(p models.Palette) bool {
		return matches(p, q)
	})
}

func matches(p models.Palette, q string) bool {
	contains := func(s string) bool {
		return strings.Contains(strings.ToLower(s), q)
	}

	if contains(p.Name) || contains(p.Description) || contains(p.ColorTheory) {
		return true
	}
	for _, c := range p.Colors {
		if contains(c.Name) || contains(c.Hex) {
			return true
		}
	}
	return false
}

// FilterByCategory returns the palettes in category, in catalog order
func (r *Repository) FilterByCategory(category models.Category) []models.Palette {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.loadOrEmpty("filter").filter(func(p models.Palette) bool {
		return p.Category == category
	})
}

// ClearAll removes the catalog key. Failures are logged, not returned.
func (r *Repository) ClearAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cached = nil
	if err := r.sub.Remove(r.key); err != nil {
		r.logger.Warn("failed to clear catalog", "key", r.key, "error", err)
	}
}

func latest(times ...time.Time) time.Time {
	var out time.Time
	for _, t := range times {
		if t.After(out) {
			out = t
		}
	}
	return out
}
