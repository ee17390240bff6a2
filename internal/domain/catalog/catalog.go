package catalog

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

//go:embed materials.tsv
var materialsTSV string

// Catalog is the fixed list of known raw-material names.
// It is read-only after construction and safe for concurrent use.
type Catalog struct {
	entries []Entry
	byKey   map[string]string
}

// New builds a catalog from seed entries. When two entries fold to the same
// key, the first spelling is kept as canonical.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byKey:   make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		c.entries = append(c.entries, e)
		k := Key(e.Name)
		if _, ok := c.byKey[k]; !ok {
			c.byKey[k] = e.Name
		}
	}
	return c
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	entries, err := Parse(strings.NewReader(materialsTSV))
	if err != nil {
		// embedded data is fixed at build time
		panic(fmt.Sprintf("catalog: embedded materials: %v", err))
	}
	return New(entries)
}

// Parse reads "name<TAB>quantity" lines. Lines without a tab or with an empty
// name are skipped, an unparsable quantity reads as zero.
func Parse(r io.Reader) ([]Entry, error) {
	var out []Entry
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		parts := strings.Split(strings.TrimSpace(sc.Text()), "\t")
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		if name == "" {
			continue
		}
		qty, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			qty = 0
		}
		out = append(out, Entry{Name: name, Quantity: qty})
	}
	return out, sc.Err()
}

// Entries returns the seed rows in file order, duplicates included.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Lookup finds the canonical spelling of name, ignoring case and repeated
// whitespace. Nothing else is normalized: "Lakdi" never matches "Lakdi Powder".
func (c *Catalog) Lookup(name string) (string, bool) {
	n, ok := c.byKey[Key(name)]
	return n, ok
}

// Len is the number of distinct names.
func (c *Catalog) Len() int { return len(c.byKey) }

// Key is the comparison form of a name: case-folded with whitespace runs
// collapsed to one space.
func Key(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}
