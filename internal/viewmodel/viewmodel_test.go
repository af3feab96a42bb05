// SPDX-License-Identifier: MIT
package viewmodel

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thatcatcamp/palettekitty/internal/catalog"
	"github.com/thatcatcamp/palettekitty/internal/kv"
	"github.com/thatcatcamp/palettekitty/internal/models"
)

var quiet = slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

type rejectWrites struct {
	*kv.Memory
}

func (rejectWrites) Write(string, string) error { return kv.ErrQuotaExceeded }

// toggleWrites accepts writes until reject is set
type toggleWrites struct {
	*kv.Memory
	reject bool
}

func (s *toggleWrites) Write(key, value string) error {
	if s.reject {
		return kv.ErrQuotaExceeded
	}
	return s.Memory.Write(key, value)
}

// hookedRepo runs onGet before every GetByID, standing in for a call that
// lands between a write and the mirror update
type hookedRepo struct {
	*catalog.Repository
	onGet func(id string)
}

func (r *hookedRepo) GetByID(id string) (models.Palette, bool) {
	if hook := r.onGet; hook != nil {
		r.onGet = nil
		hook(id)
	}
	return r.Repository.GetByID(id)
}

func newHookedModel(t *testing.T) (*Model, *hookedRepo) {
	t.Helper()
	repo := &hookedRepo{Repository: catalog.New(kv.NewMemory(0), catalog.WithLogger(quiet))}
	return New(repo, WithLogger(quiet)), repo
}

func newModel(t *testing.T, sub kv.Substrate) (*Model, *catalog.Repository) {
	t.Helper()
	if sub == nil {
		sub = kv.NewMemory(0)
	}
	repo := catalog.New(sub, catalog.WithLogger(quiet))
	m := New(repo, WithLogger(quiet))
	return m, repo
}

func draft(name string) models.Draft {
	return models.Draft{
		Name:     name,
		Colors:   []models.Color{{Hex: "#336699", Name: "Blue", Role: "primary"}},
		Category: models.CategoryModern,
	}
}

func TestLoad(t *testing.T) {
	m, repo := newModel(t, nil)
	require.Equal(t, Loading, m.State())

	_, err := repo.Create(draft("First"))
	require.NoError(t, err)

	m.Load()
	require.Equal(t, Ready, m.State())
	require.Empty(t, m.Err())
	require.Len(t, m.Palettes(), 1)
}

func TestLoadFailure(t *testing.T) {
	mem := kv.NewMemory(0)
	require.NoError(t, mem.Write(catalog.DefaultKey, "not json"))

	m, _ := newModel(t, mem)
	m.Load()

	require.Equal(t, ReadyWithError, m.State())
	require.NotEmpty(t, m.Err())
	require.NotNil(t, m.Palettes())
	require.Empty(t, m.Palettes())
}

func TestCreateAppendsToMirror(t *testing.T) {
	m, _ := newModel(t, nil)
	m.Load()

	a := m.Create(draft("A"))
	b := m.Create(draft("B"))
	require.NotEmpty(t, a)
	require.NotEmpty(t, b)

	got := m.Palettes()
	require.Len(t, got, 2)
	require.Equal(t, a, got[0].ID)
	require.Equal(t, b, got[1].ID)
	require.Empty(t, m.Err())
}

func TestCreateFailureSetsError(t *testing.T) {
	m, _ := newModel(t, rejectWrites{kv.NewMemory(0)})
	m.Load()

	id := m.Create(draft("A"))
	require.Empty(t, id)
	require.Contains(t, m.Err(), "quota")
	require.Empty(t, m.Palettes())

	id = m.Create(models.Draft{})
	require.Empty(t, id)
	require.Contains(t, m.Err(), "name is required")
}

func TestErrorClearedBySuccess(t *testing.T) {
	m, _ := newModel(t, nil)
	m.Load()

	require.False(t, m.Delete("missing"))
	require.Equal(t, "palette not found", m.Err())

	require.NotEmpty(t, m.Create(draft("A")))
	require.Empty(t, m.Err())
}

func TestUpdatePatchesInPlace(t *testing.T) {
	m, _ := newModel(t, nil)
	m.Load()
	a := m.Create(draft("A"))
	b := m.Create(draft("B"))

	name := "Renamed"
	require.True(t, m.Update(a, models.Patch{Name: &name}))

	got := m.Palettes()
	require.Len(t, got, 2)
	require.Equal(t, a, got[0].ID)
	require.Equal(t, "Renamed", got[0].Name)
	require.Equal(t, b, got[1].ID)

	require.False(t, m.Update("missing", models.Patch{Name: &name}))
	require.Equal(t, "palette not found", m.Err())
}

func TestDeleteRemovesInPlace(t *testing.T) {
	m, _ := newModel(t, nil)
	m.Load()
	a := m.Create(draft("A"))
	b := m.Create(draft("B"))
	c := m.Create(draft("C"))

	require.True(t, m.Delete(b))
	got := m.Palettes()
	require.Len(t, got, 2)
	require.Equal(t, a, got[0].ID)
	require.Equal(t, c, got[1].ID)
}

func TestUpdateFailureKeepsMirror(t *testing.T) {
	sub := &toggleWrites{Memory: kv.NewMemory(0)}
	m, _ := newModel(t, sub)
	m.Load()
	id := m.Create(draft("A"))
	before := m.Palettes()

	sub.reject = true
	name := "Renamed"
	require.False(t, m.Update(id, models.Patch{Name: &name}))
	require.Contains(t, m.Err(), "quota")
	require.Equal(t, before, m.Palettes())
}

func TestDeleteFailureKeepsMirror(t *testing.T) {
	sub := &toggleWrites{Memory: kv.NewMemory(0)}
	m, _ := newModel(t, sub)
	m.Load()
	id := m.Create(draft("A"))
	before := m.Palettes()

	sub.reject = true
	require.False(t, m.Delete(id))
	require.Contains(t, m.Err(), "quota")
	require.Equal(t, before, m.Palettes())
}

func TestUpdateRacingDeleteDoesNotResurrect(t *testing.T) {
	m, repo := newHookedModel(t)
	m.Load()
	id := m.Create(draft("A"))

	repo.onGet = func(id string) { require.True(t, m.Delete(id)) }
	name := "Renamed"
	require.True(t, m.Update(id, models.Patch{Name: &name}))

	require.Empty(t, repo.List())
	require.Empty(t, m.Palettes())
}

func TestCreateRacingRefreshDoesNotDuplicate(t *testing.T) {
	m, repo := newHookedModel(t)
	m.Load()

	repo.onGet = func(string) { m.Refresh() }
	id := m.Create(draft("A"))
	require.NotEmpty(t, id)

	got := m.Palettes()
	require.Len(t, got, 1)
	require.Equal(t, id, got[0].ID)
	require.Len(t, repo.List(), 1)
}

func TestWritesBeforeLoad(t *testing.T) {
	m, repo := newModel(t, nil)

	id := m.Create(draft("A"))
	require.NotEmpty(t, id)
	require.Equal(t, Loading, m.State())
	require.Empty(t, m.Palettes())

	_, err := repo.Create(draft("B"))
	require.NoError(t, err)

	m.Load()
	require.Equal(t, Ready, m.State())
	got := m.Palettes()
	require.Len(t, got, 2)
	require.Equal(t, id, got[0].ID)
}

func TestDuplicate(t *testing.T) {
	m, _ := newModel(t, nil)
	m.Load()
	a := m.Create(draft("A"))

	copyID := m.Duplicate(a)
	require.NotEmpty(t, copyID)
	got := m.Palettes()
	require.Len(t, got, 2)
	require.Equal(t, "A (copy)", got[1].Name)

	require.Empty(t, m.Duplicate("missing"))
	require.Equal(t, "palette not found", m.Err())
}

func TestImportReloads(t *testing.T) {
	m, repo := newModel(t, nil)
	m.Load()

	// written behind the model's back
	_, err := repo.Create(draft("External"))
	require.NoError(t, err)

	res := m.Import(`[{"name":"Imported","colors":[]}, {"colors":[]}]`)
	require.Equal(t, 1, res.Inserted)
	require.Len(t, res.Errors, 1)

	got := m.Palettes()
	require.Len(t, got, 2)
	require.Equal(t, "External", got[0].Name)
	require.Equal(t, "Imported", got[1].Name)
	require.Contains(t, m.Err(), "unnamed")
}

func TestImportNothingKeepsMirror(t *testing.T) {
	m, repo := newModel(t, nil)
	m.Load()
	_, err := repo.Create(draft("External"))
	require.NoError(t, err)

	res := m.Import(`[]`)
	require.Equal(t, 0, res.Inserted)
	require.Empty(t, m.Palettes())
	require.Empty(t, m.Err())
}

func TestImportWriteFailure(t *testing.T) {
	m, _ := newModel(t, rejectWrites{kv.NewMemory(0)})
	m.Load()

	res := m.Import(`[{"name":"A","colors":[]}]`)
	require.Equal(t, 0, res.Inserted)
	require.NotNil(t, res.Errors)
	require.NotEmpty(t, m.Err())
}

func TestRefreshPicksUpExternalChanges(t *testing.T) {
	m, repo := newModel(t, nil)
	m.Load()
	_, err := repo.Create(draft("External"))
	require.NoError(t, err)
	require.Empty(t, m.Palettes())

	m.Refresh()
	require.Len(t, m.Palettes(), 1)
}

func TestClear(t *testing.T) {
	m, _ := newModel(t, nil)
	m.Load()
	m.Create(draft("A"))

	m.Clear()
	require.Empty(t, m.Palettes())

	stats := m.Stats()
	require.Equal(t, 0, stats.TotalCount)
	require.Equal(t, 2, stats.TotalSizeBytes)
	require.Empty(t, stats.CountsByCategory)
}

func TestReadOperations(t *testing.T) {
	m, _ := newModel(t, nil)
	m.Load()
	id := m.Create(draft("Ocean Breeze"))

	p, ok := m.GetByID(id)
	require.True(t, ok)
	require.Equal(t, "Ocean Breeze", p.Name)

	require.Len(t, m.Search("breeze"), 1)
	require.Len(t, m.FilterByCategory(models.CategoryModern), 1)
	require.Empty(t, m.FilterByCategory(models.CategoryBrand))
	require.Contains(t, m.Export(), `"name": "Ocean Breeze"`)
}

func TestSubscribe(t *testing.T) {
	m, _ := newModel(t, nil)

	var (
		mu    sync.Mutex
		snaps []Snapshot
	)
	cancel := m.Subscribe(func(s Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		snaps = append(snaps, s)
	})

	m.Load()
	m.Create(draft("A"))
	m.Delete("missing")

	mu.Lock()
	require.Len(t, snaps, 3)
	require.Equal(t, Ready, snaps[0].State)
	require.Len(t, snaps[1].Palettes, 1)
	require.Equal(t, "palette not found", snaps[2].Err)
	mu.Unlock()

	cancel()
	cancel()
	m.Create(draft("B"))

	mu.Lock()
	require.Len(t, snaps, 3)
	mu.Unlock()
}

func TestSubscriberMayCallBack(t *testing.T) {
	m, _ := newModel(t, nil)

	var seen int
	m.Subscribe(func(Snapshot) {
		seen = len(m.Palettes())
	})

	m.Load()
	m.Create(draft("A"))
	require.Equal(t, 1, seen)
}

func TestStateString(t *testing.T) {
	require.Equal(t, "loading", Loading.String())
	require.Equal(t, "ready", Ready.String())
	require.Equal(t, "ready-with-error", ReadyWithError.String())
}
