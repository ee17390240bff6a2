package bom

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadRecipes reads a recipe table from a YAML/JSON/TOML file:
//
//	recipes:
//	  - name: Dhoop
//	    components:
//	      - raw_material_name: Kanda powder
//	        quantity: 2
//
// Rows are returned as written; validation happens when a Registry builds.
func LoadRecipes(path string) ([]RawRecipe, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read recipes: %w", err)
	}
	var file struct {
		Recipes []RawRecipe `mapstructure:"recipes"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("decode recipes: %w", err)
	}
	return file.Recipes, nil
}
