package bom

import (
	"log/slog"

	"github.com/Spok95/herb-stock/internal/domain/catalog"
)

// Resolution is the outcome of canonicalizing one ingredient name.
type Resolution struct {
	Input  string // name as written in the recipe
	Mapped string // after alias substitution, equal to Input when no alias applied
	Name   string // catalog spelling, empty unless Found
	Found  bool
}

// OrInput returns the canonical name, or the original input when the name is
// not in the catalog. Unresolved names then match only a record spelled the
// same way, which in practice reads as zero stock.
func (r Resolution) OrInput() string {
	if r.Found {
		return r.Name
	}
	return r.Input
}

// Canonicalizer maps free-text ingredient names onto catalog names.
type Canonicalizer struct {
	catalog *catalog.Catalog
	aliases map[string]string
	log     *slog.Logger
}

func NewCanonicalizer(cat *catalog.Catalog, aliases map[string]string, log *slog.Logger) *Canonicalizer {
	if log == nil {
		log = slog.Default()
	}
	a := make(map[string]string, len(aliases))
	for k, v := range aliases {
		a[catalog.Key(k)] = v
	}
	return &Canonicalizer{catalog: cat, aliases: a, log: log}
}

// Resolve applies the alias table, then an exact catalog match. Both compare
// names by catalog.Key. There is no partial matching.
func (c *Canonicalizer) Resolve(name string) Resolution {
	res := Resolution{Input: name, Mapped: name}
	if full, ok := c.aliases[catalog.Key(name)]; ok {
		res.Mapped = full
	}
	if n, ok := c.catalog.Lookup(res.Mapped); ok {
		res.Name = n
		res.Found = true
		return res
	}
	c.log.Warn("raw material not in catalog",
		"name", name,
		"mapped", res.Mapped,
	)
	return res
}
