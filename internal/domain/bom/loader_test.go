package bom

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRecipes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.yaml")
	data := `recipes:
  - name: Test Balm
    components:
      - raw_material_name: ghee
        quantity: 1
      - raw_material_name: Kapoor
        quantity: 0.35
      - raw_material_name: Mom
        quantity: plenty
  - name: Broken
    components:
      - raw_material_name: ""
        quantity: 5
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	table, err := LoadRecipes(path)
	if err != nil {
		t.Fatalf("LoadRecipes: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("got %d raw recipes, want 2", len(table))
	}

	r := newTestRegistry(table)
	if got := r.Names(); len(got) != 1 || got[0] != "Test Balm" {
		t.Fatalf("Names() = %v", got)
	}
	balm, _ := r.Recipe("Test Balm")
	if len(balm.Components) != 2 {
		t.Fatalf("components = %+v", balm.Components)
	}
	if balm.Components[0].RawMaterialName != "Cow Ghee" {
		t.Fatalf("ghee resolved to %q", balm.Components[0].RawMaterialName)
	}
}

func TestLoadRecipesMissingFile(t *testing.T) {
	if _, err := LoadRecipes(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
