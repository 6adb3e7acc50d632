package importer_test

import (
	"testing"

	"inventory/internal/importer"
)

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Product Specs 2025!", "product_specs_2025"},
		{"  Already_fine  ", "already_fine"},
		{"---", "table"},
		{"", "table"},
	}
	for _, c := range cases {
		if got := importer.Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeColumns(t *testing.T) {
	got := importer.NormalizeColumns([]string{"Unit Price", "", "  "})
	want := []string{"unit_price", "col_2", "col_3"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDisambiguateNames(t *testing.T) {
	tables := []importer.Table{
		{Name: "Sheet 1"},
		{Name: "sheet_1"},
		{Name: "Sheet 1"},
	}
	importer.DisambiguateNames(tables)

	if tables[0].Name != "sheet_1" {
		t.Errorf("first table = %q", tables[0].Name)
	}
	if tables[1].Name != "sheet_1_2" {
		t.Errorf("second table = %q", tables[1].Name)
	}
	if tables[2].Name != "sheet_1_3" {
		t.Errorf("third table = %q", tables[2].Name)
	}
}
