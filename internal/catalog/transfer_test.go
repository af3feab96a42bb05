// SPDX-License-Identifier: MIT
package catalog

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thatcatcamp/palettekitty/internal/kv"
	"github.com/thatcatcamp/palettekitty/internal/models"
)

func seedCatalog(t *testing.T, repo *Repository) {
	t.Helper()
	drafts := []models.Draft{
		sunset(),
		{
			Name:        "Corporate Calm",
			Description: "Trustworthy <blue> & grey",
			Colors: []models.Color{
				{Hex: "#1E3A8A", Name: "Navy", Role: "primary"},
				{Hex: "#9CA3AF", Name: "Grey", Role: "secondary"},
			},
			ColorTheory: "Monochromatic with neutral accent",
			UseCases:    []string{"dashboards", "reports"},
			Category:    models.CategoryBrand,
		},
		{Name: "Winter", Colors: []models.Color{}, Category: models.CategorySeasonal},
	}
	for _, d := range drafts {
		_, err := repo.Create(d)
		require.NoError(t, err)
	}
}

func TestExportAllFormat(t *testing.T) {
	repo := newTestRepo(t, nil)
	require.Equal(t, "[]", repo.ExportAll())

	seedCatalog(t, repo)
	out := repo.ExportAll()

	require.True(t, strings.HasPrefix(out, "[\n  {\n    \"id\": "))
	require.Contains(t, out, "<blue> & grey", "export should not escape HTML")
	require.False(t, strings.HasSuffix(out, "\n"))

	var decoded []models.Palette
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Equal(t, repo.List(), decoded)
}

func TestRoundTrip(t *testing.T) {
	src := newTestRepo(t, nil)
	seedCatalog(t, src)
	original := src.List()

	dst := newTestRepo(t, nil)
	res, err := dst.ImportAll(src.ExportAll())
	require.NoError(t, err)
	require.Equal(t, len(original), res.Inserted)
	require.Empty(t, res.Errors)

	imported := dst.List()
	require.Len(t, imported, len(original))
	for i := range original {
		a, b := original[i], imported[i]
		require.NotEqual(t, a.ID, b.ID)
		require.Equal(t, a.Name, b.Name)
		require.Equal(t, a.Description, b.Description)
		require.Equal(t, a.Colors, b.Colors)
		require.Equal(t, a.ColorTheory, b.ColorTheory)
		require.Equal(t, a.UseCases, b.UseCases)
		require.Equal(t, a.Category, b.Category)
		require.True(t, a.CreatedAt.Equal(b.CreatedAt))
	}
}

func TestImportWithOneBadRecord(t *testing.T) {
	repo := newTestRepo(t, nil)

	res, err := repo.ImportAll(`[{"name":"Good", "colors":[]}, {"colors":[]}]`)
	require.NoError(t, err)
	require.Equal(t, 1, res.Inserted)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0], "unnamed")
	require.Contains(t, res.Errors[0], "record 2")

	got := repo.List()
	require.Len(t, got, 1)
	require.Equal(t, "Good", got[0].Name)
}

func TestImportDefaults(t *testing.T) {
	repo := newTestRepo(t, nil)

	res, err := repo.ImportAll(`[{"name":"Minimal","colors":[{"hex":"#fff"}]}]`)
	require.NoError(t, err)
	require.Equal(t, 1, res.Inserted)

	p := repo.List()[0]
	require.Equal(t, "", p.Description)
	require.Equal(t, "", p.ColorTheory)
	require.Equal(t, []string{}, p.UseCases)
	require.Equal(t, models.CategoryCustom, p.Category)
	require.Equal(t, p.CreatedAt, p.UpdatedAt)
}

func TestImportTimestamps(t *testing.T) {
	repo := newTestRepo(t, nil)

	res, err := repo.ImportAll(`[
		{"id":"keep-me-not","name":"Old","colors":[],"createdAt":"2020-01-02T03:04:05.678Z","updatedAt":"2020-01-02T03:04:05.678Z"},
		{"name":"Bad date","colors":[],"createdAt":"yesterday"},
		{"name":"Future","colors":[],"createdAt":"2099-01-01T00:00:00Z"}
	]`)
	require.NoError(t, err)
	require.Equal(t, 3, res.Inserted)

	got := repo.List()
	old := got[0]
	require.NotEqual(t, "keep-me-not", old.ID)
	require.True(t, old.CreatedAt.Equal(time.Date(2020, 1, 2, 3, 4, 5, 678000000, time.UTC)))
	require.True(t, old.UpdatedAt.After(old.CreatedAt))

	require.Equal(t, got[1].CreatedAt, got[1].UpdatedAt)

	future := got[2]
	require.False(t, future.UpdatedAt.Before(future.CreatedAt))
}

func TestImportRejections(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		reason string
	}{
		{"not json", `[{"name":`, "invalid import data"},
		{"empty", ``, "invalid import data"},
		{"object", `{"name":"x","colors":[]}`, "must be a JSON array"},
		{"null", `null`, "must be a JSON array"},
		{"string", `"palettes"`, "must be a JSON array"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mem := kv.NewMemory(0)
			repo := newTestRepo(t, mem)

			res, err := repo.ImportAll(tc.input)
			require.NoError(t, err)
			require.Equal(t, 0, res.Inserted)
			require.Len(t, res.Errors, 1)
			require.Contains(t, res.Errors[0], tc.reason)

			_, ok, _ := mem.Read(DefaultKey)
			require.False(t, ok, "nothing should be written")
		})
	}
}

func TestImportPerRecordValidation(t *testing.T) {
	repo := newTestRepo(t, nil)

	res, err := repo.ImportAll(`[
		42,
		{"name":"","colors":[]},
		{"name":7,"colors":[]},
		{"name":"No colors"},
		{"name":"Colors object","colors":{"hex":"#000"}},
		{"name":"Wrong type","colors":[],"description":5},
		{"name":"Odd category","colors":[],"category":"vaporwave"},
		{"name":"Fine","colors":[],"category":"classic","useCases":["print"]}
	]`)
	require.NoError(t, err)
	require.Equal(t, 2, res.Inserted)
	require.Len(t, res.Errors, 6)
	require.Contains(t, res.Errors[0], "not an object")
	require.Contains(t, res.Errors[1], "missing name")
	require.Contains(t, res.Errors[2], "missing name")
	require.Contains(t, res.Errors[3], `"No colors"`)
	require.Contains(t, res.Errors[4], "colors must be an array")
	require.Contains(t, res.Errors[5], `"Wrong type"`)
	require.Contains(t, res.Errors[5], "description must be a string")

	got := repo.List()
	require.Equal(t, models.CategoryCustom, got[0].Category)
	require.Equal(t, models.CategoryClassic, got[1].Category)
	require.Equal(t, []string{"print"}, got[1].UseCases)
}

func TestImportWrongTypeMessages(t *testing.T) {
	repo := newTestRepo(t, nil)

	res, err := repo.ImportAll(`[
		{"name":"Numbers","colors":[1,2]},
		{"name":"Bad hex","colors":[{"hex":5}]},
		{"name":"Cases","colors":[],"useCases":"web"},
		{"name":"Theory","colors":[],"colorTheory":["a"]}
	]`)
	require.NoError(t, err)
	require.Equal(t, 0, res.Inserted)
	require.Len(t, res.Errors, 4)
	require.Contains(t, res.Errors[0], "colors must be an array of {hex,name,role} objects")
	require.Contains(t, res.Errors[1], "colors must be an array of {hex,name,role} objects")
	require.Contains(t, res.Errors[2], "useCases must be an array of strings")
	require.Contains(t, res.Errors[3], "colorTheory must be a string")
	for _, msg := range res.Errors {
		require.NotContains(t, msg, "json:")
		require.NotContains(t, msg, "importRecord")
	}
}

func TestImportAppendsAfterExisting(t *testing.T) {
	repo := newTestRepo(t, nil)
	id, _ := repo.Create(sunset())

	res, err := repo.ImportAll(`[{"name":"Second","colors":[]}]`)
	require.NoError(t, err)
	require.Equal(t, 1, res.Inserted)

	got := repo.List()
	require.Len(t, got, 2)
	require.Equal(t, id, got[0].ID)
	require.Equal(t, "Second", got[1].Name)
}

func TestImportNothingAcceptedDoesNotWrite(t *testing.T) {
	repo := newTestRepo(t, failingWrites{kv.NewMemory(0)})

	res, err := repo.ImportAll(`[{"colors":[]}]`)
	require.NoError(t, err)
	require.Equal(t, 0, res.Inserted)
	require.Len(t, res.Errors, 1)
}

func TestImportWriteFailure(t *testing.T) {
	repo := newTestRepo(t, failingWrites{kv.NewMemory(0)})

	res, err := repo.ImportAll(`[{"name":"A","colors":[]}]`)
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, 0, res.Inserted)
	require.NotEmpty(t, res.Errors)
	require.Empty(t, repo.List())
}

func TestStats(t *testing.T) {
	mem := kv.NewMemory(0)
	repo := newTestRepo(t, mem)
	seedCatalog(t, repo)

	stats := repo.Stats()
	require.Equal(t, 3, stats.TotalCount)
	require.Equal(t, map[models.Category]int{
		models.CategoryNature:   1,
		models.CategoryBrand:    1,
		models.CategorySeasonal: 1,
	}, stats.CountsByCategory)

	raw, _, _ := mem.Read(DefaultKey)
	require.Equal(t, len(raw), stats.TotalSizeBytes)
}

func TestStatsAfterClear(t *testing.T) {
	repo := newTestRepo(t, nil)
	seedCatalog(t, repo)

	repo.ClearAll()
	stats := repo.Stats()

	require.Equal(t, 0, stats.TotalCount)
	require.Equal(t, len("[]"), stats.TotalSizeBytes)
	require.NotNil(t, stats.CountsByCategory)
	require.Empty(t, stats.CountsByCategory)
}
