// SPDX-License-Identifier: MIT
package themes

import (
	"fmt"
	"strings"
)

// GenerateCSS generates CSS with color variables from colors struct
func GenerateCSS(colors *Colors) string {
	var b strings.Builder

	b.WriteString(":root {\n")
	vars := []struct{ name, value string }{
		{"primary", colors.Primary},
		{"primary-contrast", colors.PrimaryContrast},
		{"secondary", colors.Secondary},
		{"accent", colors.Accent},
		{"bg", colors.Background},
		{"surface", colors.Surface},
		{"text", colors.Text},
		{"text-muted", colors.TextMuted},
		{"border", colors.Border},
		{"success", colors.Success},
		{"error", colors.Error},
		{"warning", colors.Warning},
	}
	for _, v := range vars {
		fmt.Fprintf(&b, "  --color-%s: %s;\n", v.name, v.value)
	}
	for i, hex := range colors.Swatches {
		fmt.Fprintf(&b, "  --palette-%d: %s;\n", i+1, hex)
	}
	b.WriteString("}\n")

	b.WriteString(baseStyles)
	return b.String()
}

const baseStyles = `
body {
  background-color: var(--color-bg);
  color: var(--color-text);
}

a {
  color: var(--color-primary);
}

button, .btn {
  background-color: var(--color-primary);
  color: var(--color-primary-contrast);
  border: none;
  border-radius: 4px;
}

.badge, .highlight {
  background-color: var(--color-accent);
}

.card, .surface {
  background-color: var(--color-surface);
  border: 1px solid var(--color-border);
  border-radius: 8px;
}

input, textarea, select {
  border: 1px solid var(--color-border);
  background-color: var(--color-surface);
  color: var(--color-text);
}

input:focus, textarea:focus, select:focus {
  border-color: var(--color-secondary);
}

.text-muted, .muted {
  color: var(--color-text-muted);
}

.success { color: var(--color-success); }
.error, .danger { color: var(--color-error); }
.warning { color: var(--color-warning); }
`
