// SPDX-License-Identifier: MIT
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thatcatcamp/palettekitty/internal/models"
)

// ImportResult summarises an ImportAll call
type ImportResult struct {
	Inserted int      `json:"insertedCount"`
	Errors   []string `json:"errors"`
}

// importRecord is the accepted shape of one imported palette. Only name and
// colors are required; CreatedAt stays a string so a malformed timestamp
// does not reject the whole record.
type importRecord struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Colors      []models.Color `json:"colors"`
	ColorTheory string         `json:"colorTheory"`
	UseCases    []string       `json:"useCases"`
	Category    string         `json:"category"`
	CreatedAt   string         `json:"createdAt"`
}

// ExportAll returns the catalog as an indented JSON array
func (r *Repository) ExportAll() string {
	items := r.List()
	out, err := encode(items, "  ")
	if err != nil {
		// palettes are plain strings and times; encoding cannot fail
		r.logger.Error("failed to encode catalog for export", "error", err)
		return "[]"
	}
	return out
}

// ImportAll appends the palettes in data, a JSON array as produced by
// ExportAll. Each record is checked on its own; bad records are reported in
// the result and skipped. Accepted records get fresh IDs. The catalog is
// written once, and only if something was accepted.
func (r *Repository) ImportAll(data string) (ImportResult, error) {
	result := ImportResult{Errors: []string{}}

	trimmed := bytes.TrimSpace([]byte(data))
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			result.Errors = append(result.Errors, "import data must be a JSON array of palettes")
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("invalid import data: %v", err))
		}
		return result, nil
	}
	if bytes.Equal(trimmed, []byte("null")) {
		result.Errors = append(result.Errors, "import data must be a JSON array of palettes")
		return result, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, err := r.load()
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result, err
	}

	now := r.timestamp()
	next := current.clone()
	inserted := 0

	for i, raw := range items {
		rec, verr := parseRecord(i, raw)
		if verr != nil {
			result.Errors = append(result.Errors, verr.Error())
			continue
		}

		category, ok := models.ParseCategory(rec.Category)
		if !ok {
			category = models.CategoryCustom
		}

		createdAt := now
		if rec.CreatedAt != "" {
			if t, err := time.Parse(time.RFC3339Nano, rec.CreatedAt); err == nil {
				createdAt = t.UTC()
			}
		}

		next.append(models.Palette{
			ID:          r.uniqueID(next, now),
			Name:        rec.Name,
			Description: rec.Description,
			Colors:      models.CloneColors(rec.Colors),
			ColorTheory: rec.ColorTheory,
			UseCases:    models.CloneStrings(rec.UseCases),
			Category:    category,
			CreatedAt:   createdAt,
			UpdatedAt:   latest(now, createdAt),
		})
		inserted++
	}

	if inserted == 0 {
		return result, nil
	}

	if err := r.store(next); err != nil {
		result.Errors = append(result.Errors, err.Error())
		return result, err
	}

	result.Inserted = inserted
	return result, nil
}

// parseRecord applies the minimum-shape checks to one import element
func parseRecord(i int, raw json.RawMessage) (importRecord, *ValidationError) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return importRecord{}, &ValidationError{Index: i, Reason: "not an object"}
	}

	var name string
	if rawName, ok := fields["name"]; ok {
		_ = json.Unmarshal(rawName, &name)
	}
	if strings.TrimSpace(name) == "" {
		return importRecord{}, &ValidationError{Index: i, Reason: "missing name"}
	}

	rawColors, ok := fields["colors"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(rawColors), []byte("[")) {
		return importRecord{}, &ValidationError{Index: i, Name: name, Reason: "colors must be an array"}
	}

	var rec importRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return importRecord{}, &ValidationError{Index: i, Name: name, Reason: decodeReason(err)}
	}
	return rec, nil
}

// decodeReason turns a decode failure into a message naming the field
func decodeReason(err error) string {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		return "malformed record"
	}

	field, _, _ := strings.Cut(typeErr.Field, ".")
	switch field {
	case "colors":
		return "colors must be an array of {hex,name,role} objects"
	case "useCases":
		return "useCases must be an array of strings"
	case "description", "colorTheory", "category", "createdAt":
		return field + " must be a string"
	default:
		return field + " has the wrong type"
	}
}
