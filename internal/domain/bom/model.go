package bom

// Component is one canonicalized ingredient line of a recipe.
type Component struct {
	RawMaterialName string  `json:"rawMaterialName"`
	Quantity        float64 `json:"quantity"` // per one unit of the finished good
}

// Recipe is the bill of materials of one finished good.
type Recipe struct {
	Name       string      `json:"name"`
	Components []Component `json:"components"`
}

// RawComponent is an ingredient line as written in the recipe table, before
// validation and canonicalization. Quantity is untyped so that rows loaded from
// a file can be rejected instead of coerced.
type RawComponent struct {
	RawMaterialName string `mapstructure:"raw_material_name"`
	Quantity        any    `mapstructure:"quantity"`
}

type RawRecipe struct {
	Name       string         `mapstructure:"name"`
	Components []RawComponent `mapstructure:"components"`
}
