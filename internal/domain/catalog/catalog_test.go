package catalog

import (
	"strings"
	"testing"
)

func TestParseSkipsBadLines(t *testing.T) {
	in := "Kanda powder\t10\n\nno tab here\n\t5\nPerfume\tabc\n  Joss Powder \t 2.5 \n"
	got, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Entry{
		{Name: "Kanda powder", Quantity: 10},
		{Name: "Perfume", Quantity: 0},
		{Name: "Joss Powder", Quantity: 2.5},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestLookup(t *testing.T) {
	c := New([]Entry{
		{Name: "KNO3 (Potassium Nitrate)"},
		{Name: "Lakdi Powder  (Saw Dust Powder) for black agarbathi"},
		{Name: "Kala Namak"},
		{Name: "kala namak"},
	})

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"kno3 (potassium nitrate)", "KNO3 (Potassium Nitrate)", true},
		{"KNO3 (POTASSIUM NITRATE)", "KNO3 (Potassium Nitrate)", true},
		{"Lakdi Powder (Saw Dust Powder) for black agarbathi", "Lakdi Powder  (Saw Dust Powder) for black agarbathi", true},
		{"KALA NAMAK", "Kala Namak", true},
		{"KNO3", "", false},
		{"Lakdi", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := c.Lookup(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("Lookup(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
	if c.Len() != 3 {
		t.Fatalf("Len = %d, want 3", c.Len())
	}
	if n := len(c.Entries()); n != 4 {
		t.Fatalf("Entries has %d items, want 4", n)
	}
}

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	for _, name := range []string{"Kanda powder", "Joss Powder", "KNO3 (Potassium Nitrate)", "Perfume", "Raw Loban"} {
		if got, ok := c.Lookup(name); !ok || got != name {
			t.Errorf("Lookup(%q) = %q, %v", name, got, ok)
		}
	}
	if c.Len() >= len(c.Entries()) {
		t.Errorf("expected the embedded list to contain duplicates, Len=%d Entries=%d", c.Len(), len(c.Entries()))
	}
}

func TestClassify(t *testing.T) {
	tests := map[string]Category{
		"Hingvati Sticker":         CatPackaging,
		"Til Oil":                  CatChemicals,
		"Perfume":                  CatChemicals,
		"Amla Powder":              CatHerbs,
		"Cow Ghee":                 CatFood,
		"Soap Base - Rose":         CatSoapMaking,
		"Kala Namak":               CatSalts,
		"Whole Jira":               CatSpices,
		"Raw Loban":                CatIncense,
		"Multani Mitti":            CatClays,
		"KNO3 (Potassium Nitrate)": CatDefault,
	}
	for name, want := range tests {
		if got := Classify(name); got != want {
			t.Errorf("Classify(%q) = %q, want %q", name, got, want)
		}
	}
}
