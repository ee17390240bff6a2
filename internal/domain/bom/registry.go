package bom

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/spf13/cast"
)

var (
	ErrMissingName      = errors.New("component has no raw material name")
	ErrBadQuantity      = errors.New("component quantity is not a number")
	ErrNegativeQuantity = errors.New("component quantity is negative")
	ErrNoRecipes        = errors.New("recipe table produced no usable recipes")
)

// Registry owns the finished-good → recipe mapping. The table is processed
// once, on first access, and the result is never modified afterwards.
type Registry struct {
	canon *Canonicalizer
	table []RawRecipe
	log   *slog.Logger

	once    sync.Once
	names   []string
	recipes map[string]*Recipe
}

func NewRegistry(canon *Canonicalizer, table []RawRecipe, log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{canon: canon, table: table, log: log}
}

// Build forces processing of the recipe table. It is safe to call repeatedly;
// only the first call does any work.
func (r *Registry) Build() error {
	r.once.Do(r.build)
	if len(r.recipes) == 0 {
		return ErrNoRecipes
	}
	return nil
}

// Names lists finished goods with a usable recipe, in table order.
func (r *Registry) Names() []string {
	r.once.Do(r.build)
	return append([]string(nil), r.names...)
}

// Recipe returns the recipe for an exact finished-good name.
// The returned value is shared and must not be modified.
func (r *Registry) Recipe(name string) (*Recipe, bool) {
	r.once.Do(r.build)
	rec, ok := r.recipes[name]
	return rec, ok
}

func (r *Registry) build() {
	r.recipes = make(map[string]*Recipe, len(r.table))
	for _, raw := range r.table {
		if _, dup := r.recipes[raw.Name]; dup {
			r.log.Warn("duplicate recipe, keeping the first", "product", raw.Name)
			continue
		}
		comps := make([]Component, 0, len(raw.Components))
		for i, rc := range raw.Components {
			c, err := ValidateComponent(rc)
			if err != nil {
				r.log.Warn("invalid recipe component dropped",
					"product", raw.Name,
					"index", i,
					"err", err,
				)
				continue
			}
			c.RawMaterialName = r.canon.Resolve(c.RawMaterialName).OrInput()
			comps = append(comps, c)
		}
		if len(comps) == 0 {
			r.log.Warn("recipe has no valid components, skipped", "product", raw.Name)
			continue
		}
		r.recipes[raw.Name] = &Recipe{Name: raw.Name, Components: comps}
		r.names = append(r.names, raw.Name)
	}
	r.log.Debug("recipes built", "count", len(r.names))
}

// ValidateComponent checks a raw row and converts it into a Component.
// The name is trimmed but not canonicalized.
func ValidateComponent(rc RawComponent) (Component, error) {
	name := strings.TrimSpace(rc.RawMaterialName)
	if name == "" {
		return Component{}, ErrMissingName
	}
	var qty float64
	switch v := rc.Quantity.(type) {
	case nil, bool:
		return Component{}, fmt.Errorf("%w: %v", ErrBadQuantity, rc.Quantity)
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Component{}, fmt.Errorf("%w: %v", ErrBadQuantity, rc.Quantity)
		}
		qty = f
	}
	if qty < 0 {
		return Component{}, fmt.Errorf("%w: %v", ErrNegativeQuantity, qty)
	}
	return Component{RawMaterialName: name, Quantity: qty}, nil
}
