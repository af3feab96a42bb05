// SPDX-License-Identifier: MIT
package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/thatcatcamp/palettekitty/internal/models"
)

// encode serializes palettes the way they are stored: compact, with HTML
// characters left as-is so sizes match what a browser would store
func encode(items []models.Palette, indent string) (string, error) {
	if items == nil {
		items = []models.Palette{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(items); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func decode(raw string) ([]models.Palette, error) {
	var items []models.Palette
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].Colors == nil {
			items[i].Colors = []models.Color{}
		}
		if items[i].UseCases == nil {
			items[i].UseCases = []string{}
		}
	}
	return items, nil
}
