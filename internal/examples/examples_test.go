package examples

import "testing"

func TestCatalogNamesMatchScenarios(t *testing.T) {
	want := []string{
		"overflow", "division", "loop", "array", "shadowing", "enum-mismatch",
		"conditional", "conditional-mismatch", "match", "compound", "binding",
	}
	for _, name := range want {
		build, ok := Catalog[name]
		if !ok {
			t.Errorf("Catalog missing %q", name)
			continue
		}
		program := build()
		if len(program.Statements) == 0 {
			t.Errorf("%s: program has no statements", name)
		}
	}
	if len(Catalog) != len(want) {
		t.Errorf("Catalog has %d entries, want %d", len(Catalog), len(want))
	}
}
