package catalog

// Entry is one seed row of the raw-material catalog.
type Entry struct {
	Name     string
	Quantity float64
}

// Category groups raw materials for display and filtering.
type Category string

const (
	CatPackaging   Category = "Packaging"
	CatChemicals   Category = "Chemicals & Fragrances"
	CatHerbs       Category = "Herbs & Botanicals"
	CatFood        Category = "Food Ingredients"
	CatSoapMaking  Category = "Soap Making"
	CatSalts       Category = "Minerals & Salts"
	CatCowProducts Category = "Cow Products"
	CatSpices      Category = "Spices"
	CatIncense     Category = "Incense Materials"
	CatClays       Category = "Clays & Minerals"
	CatDefault     Category = "Raw Material"
)
