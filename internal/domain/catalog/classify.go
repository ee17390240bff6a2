package catalog

import "strings"

type rule struct {
	cat  Category
	keys []string
}

// Checked in order, first hit wins.
var rules = []rule{
	{CatPackaging, []string{"sticker", "box", "jar", "cap", "bottle", "tape", "bag", "pouch"}},
	{CatChemicals, []string{"oil", "resinoid", "acetate", "alcohol", "aldehyde", "fragrance", "perfume", "dep"}},
	{CatHerbs, []string{"powder", "chhal", "patta", "mool", "beej", "kand", "phool", "amla", "harda", "bhangara", "bramhi"}},
	{CatFood, []string{"ghee", "dal", "besan", "sugar", "honey"}},
	{CatSoapMaking, []string{"soap base"}},
	{CatSalts, []string{"namak"}},
	{CatCowProducts, []string{"gobar", "dung"}},
	{CatSpices, []string{"mirchi", "haldi", "jira", "dhaniya", "ajwain", "lavang", "dalchini"}},
	{CatIncense, []string{"guggal", "loban", "ral", "dhoop", "agarbatti", "charcoal"}},
	{CatClays, []string{"mitti", "calcite"}},
}

// Classify infers a category from a raw-material name by substring match.
func Classify(name string) Category {
	lower := strings.ToLower(name)
	for _, r := range rules {
		for _, k := range r.keys {
			if strings.Contains(lower, k) {
				return r.cat
			}
		}
	}
	return CatDefault
}
