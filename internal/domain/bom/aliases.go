package bom

// defaultAliases maps lowercase shop-floor abbreviations to full catalog names.
var defaultAliases = map[string]string{
	"lakadi powder":      "Lakdi Powder (Saw Dust Powder) for black agarbathi",
	"jose powder":        "Joss Powder",
	"kno3":               "KNO3 (Potassium Nitrate)",
	"kanda p":            "Kanda powder",
	"lakadi p":           "Lakdi Powder (Saw Dust Powder) for black agarbathi",
	"jose p":             "Joss Powder",
	"bamboo":             "Round Bamboo Sticks",
	"loban":              "Raw Loban",
	"guggal":             "Raw Guggal",
	"devdar wood powder": "Devdar",
	"black salt":         "Kala Namak",
	"sainda salt":        "Sendha Namak",
	"amla p":             "Amla Powder",
	"navsager":           "Navsagar",
	"black pepper":       "Kali Mirchi",
	"nimbu satva":        "Nimbu Satva (citric acid)",
	"jeera":              "Whole Jira",
	"saunt":              "Sounth",
	"choti harada":       "choti harda (balharda)",
	"souf":               "Sauf (Variyali)",
	"sikakai":            "Shikakai Powder",
	"besan":              "Chana Besan Powder",
	"kapoor kachari":     "Kapoor Kachri",
	"kapoor kacheri":     "Kapoor Kachri",
	"rita":               "Ritha",
	"ajwain sattva":      "Ajwain Satva",
	"brahmi":             "Bramhi",
	"brungaraj":          "Bhangara (Bhringraj)",
	"amla":               "Amla Powder",
	"jasvandi":           "Jasvandi Patta",
	"mehandi":            "Mehandi Patta",
	"multani":            "Multani Mitti",
	"multani mitti":      "Multani Mitti",
	"masoor dal":         "Masur Dal",
	"chandan":            "Chandan Powder (c-dhoop)",
	"harada p":           "Harda",
	"gudbaccha":          "Gudbach",
	"satavari":           "Shatavari",
	"pila saraso":        "Pili Sarso",
	"neem powder":        "Neem Chhal Powder",
	"goumutra ark":       "Go-Ark 500 ML",
	"petroleum jelly":    "Vasline",
	"mom":                "Yellow Wax (Bees wax) peela mom",
	"ghee":               "Cow Ghee",
	"pudina satva":       "Pudina Satva (paper mint)",
	"pudina":             "Pudina Satva (paper mint)",
	"ajwain":             "Ajwain",
	"lemon grass oil":    "Fragrance Lemon Grass",
	"behada p":           "Beharda",
	"rose":               "Gulab Phool (Rose Flower)",
	"harada":             "Harda",
	"behada":             "Beharda",
	"dharu haldi":        "Daru Haldi",
	"neem ful":           "Neem Phool",
	"alovera":            "Raw Aloevera from garden",
	"ark":                "Go-Ark 500 ML",
	"manjista":           "Manjishtha",
	"haldi powder":       "Haldi",
	"karela bij":         "Karela Beej",
	"jamun bij":          "Jamun Beej",
	"giloy":              "Giloy Powder",
	"pahadi imili":       "Pahadi Imli (Gar Beej)",
	"chiraita":           "Chirayta",
	"neem bij":           "Neem Beej",
	"goumutra":           "Gomutra",
	"neem":               "Neem Patta",
	"til oil":            "Til Oil",
	"methyl salicylate":  "Methyl Salicylate",
}

// DefaultAliases returns a copy of the built-in alias table.
func DefaultAliases() map[string]string {
	out := make(map[string]string, len(defaultAliases))
	for k, v := range defaultAliases {
		out[k] = v
	}
	return out
}
