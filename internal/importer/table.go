package importer

import (
	"fmt"
	"regexp"
	"strings"
)

// ── Table ───────────────────────────────────────────────────
// Common intermediate shape for parsed datasheets. Every source
// emits Tables; the mapping/sanitize/validate stages consume them.

// Table is one named grid of raw string cells with a header.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

var (
	spaceRe  = regexp.MustCompile(`\s+`)
	symbolRe = regexp.MustCompile(`[^\w]`)
)

// Slugify turns an arbitrary string into a safe SQLite table name:
// "Product Specs 2025!" → "product_specs_2025".
func Slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = spaceRe.ReplaceAllString(name, "_")
	name = symbolRe.ReplaceAllString(name, "")
	if name == "" {
		return "table"
	}
	return name
}

// NormalizeColumns slugifies header names, substituting col_N for
// blank ones.
func NormalizeColumns(columns []string) []string {
	normalized := make([]string, len(columns))
	for i, col := range columns {
		if strings.TrimSpace(col) == "" {
			normalized[i] = fmt.Sprintf("col_%d", i+1)
			continue
		}
		normalized[i] = Slugify(col)
	}
	return normalized
}

// DisambiguateNames slugifies every table name and resolves collisions
// with a numeric suffix, in table order.
func DisambiguateNames(tables []Table) {
	seen := make(map[string]bool, len(tables))
	for i := range tables {
		name := Slugify(tables[i].Name)
		if seen[name] {
			n := 2
			for seen[fmt.Sprintf("%s_%d", name, n)] {
				n++
			}
			name = fmt.Sprintf("%s_%d", name, n)
		}
		seen[name] = true
		tables[i].Name = name
	}
}
