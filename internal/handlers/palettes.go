// SPDX-License-Identifier: MIT
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thatcatcamp/palettekitty/internal/catalog"
	"github.com/thatcatcamp/palettekitty/internal/kv"
	"github.com/thatcatcamp/palettekitty/internal/logging"
	"github.com/thatcatcamp/palettekitty/internal/models"
	"github.com/thatcatcamp/palettekitty/internal/themes"
)

// maxImportBytes bounds an import request body
const maxImportBytes = 8 << 20

// errorStatus maps catalog errors to HTTP statuses
func errorStatus(err error) int {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, kv.ErrQuotaExceeded):
		return http.StatusInsufficientStorage
	case errors.Is(err, kv.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status >= 500 {
		logging.FromContext(c.Request.Context()).Error("catalog request failed", "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func refreshPaletteGauge(repo *catalog.Repository) {
	MetricPalettes.Set(float64(repo.Stats().TotalCount))
}

// ListPalettesHandler lists the catalog, narrowed by ?q= and ?category=
func ListPalettesHandler(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		categoryParam := c.Query("category")

		var category models.Category
		if categoryParam != "" {
			var ok bool
			if category, ok = models.ParseCategory(categoryParam); !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
				return
			}
		}

		var palettes []models.Palette
		switch {
		case q != "":
			palettes = repo.Search(q)
		case category != "":
			palettes = repo.FilterByCategory(category)
		default:
			palettes = repo.List()
		}

		if q != "" && category != "" {
			filtered := palettes[:0]
			for _, p := range palettes {
				if p.Category == category {
					filtered = append(filtered, p)
				}
			}
			palettes = filtered
		}

		c.JSON(http.StatusOK, palettes)
	}
}

// GetPaletteHandler returns one palette
func GetPaletteHandler(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := repo.GetByID(c.Param("id"))
		if !ok {
			respondError(c, catalog.ErrNotFound)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// CreatePaletteHandler creates a palette from a JSON draft
func CreatePaletteHandler(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var draft models.Draft
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid palette: " + err.Error()})
			return
		}

		id, err := repo.Create(sanitizeDraft(draft))
		observeOp("create", err)
		if err != nil {
			respondError(c, err)
			return
		}
		refreshPaletteGauge(repo)

		p, _ := repo.GetByID(id)
		c.JSON(http.StatusCreated, p)
	}
}

// UpdatePaletteHandler applies a partial update
func UpdatePaletteHandler(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch models.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch: " + err.Error()})
			return
		}

		id := c.Param("id")
		ok, err := repo.Update(id, sanitizePatch(patch))
		observeOp("update", err)
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			respondError(c, catalog.ErrNotFound)
			return
		}

		p, _ := repo.GetByID(id)
		c.JSON(http.StatusOK, p)
	}
}

// DeletePaletteHandler removes a palette
func DeletePaletteHandler(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := repo.Delete(c.Param("id"))
		observeOp("delete", err)
		if err != nil {
			respondError(c, err)
			return
		}
		if !ok {
			respondError(c, catalog.ErrNotFound)
			return
		}
		refreshPaletteGauge(repo)
		c.Status(http.StatusNoContent)
	}
}

// DuplicatePaletteHandler copies a palette under a new id
func DuplicatePaletteHandler(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := repo.Duplicate(c.Param("id"))
		observeOp("duplicate", err)
		if err != nil {
			respondError(c, err)
			return
		}
		if id == "" {
			respondError(c, catalog.ErrNotFound)
			return
		}
		refreshPaletteGauge(repo)

		p, _ := repo.GetByID(id)
		c.JSON(http.StatusCreated, p)
	}
}

// PaletteCSSHandler renders a palette as CSS custom properties; ?dark=1
// selects the dark variant
func PaletteCSSHandler(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := repo.GetByID(c.Param("id"))
		if !ok {
			respondError(c, catalog.ErrNotFound)
			return
		}

		dark := c.Query("dark") == "1" || c.Query("dark") == "true"
		css := themes.GenerateCSS(themes.GenerateColors(p, dark))
		c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(css))
	}
}

// ExportHandler downloads the catalog as indented JSON
func ExportHandler(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Disposition", "attachment; filename=palettes.json")
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(repo.ExportAll()))
	}
}

// ImportHandler appends the palettes in the request body
func ImportHandler(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes))
		if err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "import body too large"})
			return
		}

		res, err := repo.ImportAll(string(body))
		observeOp("import", err)
		MetricImported.WithLabelValues("inserted").Add(float64(res.Inserted))
		MetricImported.WithLabelValues("rejected").Add(float64(len(res.Errors)))
		if err != nil {
			c.JSON(errorStatus(err), res)
			return
		}
		if res.Inserted > 0 {
			refreshPaletteGauge(repo)
		}

		status := http.StatusOK
		if res.Inserted == 0 && len(res.Errors) > 0 {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, res)
	}
}

// ClearHandler deletes the whole catalog. It requires ?confirm=yes.
func ClearHandler(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("confirm") != "yes" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "add ?confirm=yes to delete every palette"})
			return
		}
		repo.ClearAll()
		observeOp("clear", nil)
		MetricPalettes.Set(0)
		c.Status(http.StatusNoContent)
	}
}

// StatsHandler reports catalog statistics
func StatsHandler(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := repo.Stats()
		MetricPalettes.Set(float64(stats.TotalCount))
		c.JSON(http.StatusOK, stats)
	}
}

// generateRequest is the body of POST /api/generate
type generateRequest struct {
	Prompt string `json:"prompt"`
	Base   string `json:"base"`
	Scheme string `json:"scheme"`
	Count  int    `json:"count"`
	Save   bool   `json:"save"`
}

// GenerateHandler builds a palette with gen and optionally saves it
func GenerateHandler(repo *catalog.Repository, gen themes.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req generateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		draft, err := gen.Generate(c.Request.Context(), themes.Request{
			Prompt: cleanText(req.Prompt),
			Base:   req.Base,
			Scheme: themes.Scheme(req.Scheme),
			Count:  req.Count,
		})
		observeOp("generate", err)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !req.Save {
			c.JSON(http.StatusOK, draft)
			return
		}

		id, err := repo.Create(draft)
		observeOp("create", err)
		if err != nil {
			respondError(c, err)
			return
		}
		refreshPaletteGauge(repo)

		p, _ := repo.GetByID(id)
		c.JSON(http.StatusCreated, p)
	}
}
