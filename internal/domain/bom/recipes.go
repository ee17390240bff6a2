package bom

// DefaultRecipes returns the built-in recipe table in definition order.
func DefaultRecipes() []RawRecipe {
	return []RawRecipe{
		{
			Name:       "Dhoop",
			Components: []RawComponent{
				{RawMaterialName: "Kanda powder", Quantity: 2},
				{RawMaterialName: "Lakadi powder", Quantity: 7},
				{RawMaterialName: "Jose powder", Quantity: 2},
				{RawMaterialName: "KNO3", Quantity: 1.5},
				{RawMaterialName: "Dep", Quantity: 4.28},
				{RawMaterialName: "Perfume", Quantity: 0.714},
			},
		},
		{
			Name:       "Agarbatti",
			Components: []RawComponent{
				{RawMaterialName: "Kanda p", Quantity: 2},
				{RawMaterialName: "Lakadi p", Quantity: 7},
				{RawMaterialName: "Jose p", Quantity: 1.5},
				{RawMaterialName: "KNO3", Quantity: 0.75},
				{RawMaterialName: "Gaur Gum", Quantity: 0},
				{RawMaterialName: "Bamboo", Quantity: 4},
				{RawMaterialName: "Dep", Quantity: 6.25},
				{RawMaterialName: "Perfume", Quantity: 1.25},
			},
		},
		{
			Name:       "Havan Masala",
			Components: []RawComponent{
				{RawMaterialName: "Loban", Quantity: 30},
				{RawMaterialName: "Guggal", Quantity: 1.2},
				{RawMaterialName: "Ral", Quantity: 6},
				{RawMaterialName: "Havan Samagri", Quantity: 15},
				{RawMaterialName: "Devdar Wood Powder", Quantity: 9},
				{RawMaterialName: "Perfume", Quantity: 1.53},
			},
		},
		{
			Name:       "Havan Cup",
			Components: []RawComponent{
				{RawMaterialName: "Kanda powder", Quantity: 1},
				{RawMaterialName: "Lakadi powder", Quantity: 5},
				{RawMaterialName: "Jose powder", Quantity: 0.825},
				{RawMaterialName: "KNO3", Quantity: 0.8},
				{RawMaterialName: "Perfume", Quantity: 0.5},
			},
		},
		{
			Name:       "Hingvatti",
			Components: []RawComponent{
				{RawMaterialName: "Black salt", Quantity: 1},
				{RawMaterialName: "Sainda salt", Quantity: 0.4},
				{RawMaterialName: "Amla p", Quantity: 1.4},
				{RawMaterialName: "Navsager", Quantity: 0.2},
				{RawMaterialName: "Ajwain", Quantity: 0.2},
				{RawMaterialName: "Black pepper", Quantity: 0.48},
				{RawMaterialName: "Nimbu satva", Quantity: 0.2},
				{RawMaterialName: "Jeera", Quantity: 0.12},
				{RawMaterialName: "Hing", Quantity: 0.16},
				{RawMaterialName: "Saunt", Quantity: 0.24},
				{RawMaterialName: "Choti harada", Quantity: 0.32},
				{RawMaterialName: "Souf", Quantity: 0.24},
			},
		},
		{
			Name:       "Govardhan Soap",
			Components: []RawComponent{
				{RawMaterialName: "Multani mitti", Quantity: 3},
				{RawMaterialName: "Sikakai", Quantity: 0.1},
				{RawMaterialName: "Besan", Quantity: 0.1},
				{RawMaterialName: "Kapoor kachari", Quantity: 0.2},
				{RawMaterialName: "Jose powder", Quantity: 0.1},
				{RawMaterialName: "Rita", Quantity: 0.1},
				{RawMaterialName: "Kamdhenu Oil", Quantity: 0.07},
				{RawMaterialName: "Neem juice", Quantity: 4},
				{RawMaterialName: "Kapoor", Quantity: 0.1},
				{RawMaterialName: "Ajwain sattva", Quantity: 0.03},
			},
		},
		{
			Name:       "Kesh Sringar",
			Components: []RawComponent{
				{RawMaterialName: "Brahmi", Quantity: 0.9},
				{RawMaterialName: "Brungaraj", Quantity: 0.9},
				{RawMaterialName: "Amla", Quantity: 1.5},
				{RawMaterialName: "Sikakai", Quantity: 2.4},
				{RawMaterialName: "Gomutra", Quantity: 60},
				{RawMaterialName: "Jasvandi", Quantity: 1.5},
				{RawMaterialName: "Mehandi", Quantity: 0.5},
				{RawMaterialName: "Kapoor", Quantity: 0.3},
				{RawMaterialName: "Ajwain", Quantity: 0.15},
			},
		},
		{
			Name:       "Face Glow",
			Components: []RawComponent{
				{RawMaterialName: "Multani", Quantity: 40},
				{RawMaterialName: "Masoor dal", Quantity: 6},
				{RawMaterialName: "Chandan", Quantity: 4},
				{RawMaterialName: "Harada p", Quantity: 4},
				{RawMaterialName: "Gudbaccha", Quantity: 2},
				{RawMaterialName: "Satavari", Quantity: 2},
				{RawMaterialName: "Kapoor kachari", Quantity: 4},
				{RawMaterialName: "Haldi", Quantity: 6},
				{RawMaterialName: "Pila Saraso", Quantity: 9},
				{RawMaterialName: "Neem Powder", Quantity: 5},
			},
		},
		{
			Name:       "Balm",
			Components: []RawComponent{
				{RawMaterialName: "Goumutra ark", Quantity: 1},
				{RawMaterialName: "Petroleum jelly", Quantity: 1.25},
				{RawMaterialName: "Mom", Quantity: 1},
				{RawMaterialName: "Ghee", Quantity: 1},
				{RawMaterialName: "Pudina satva", Quantity: 0.35},
				{RawMaterialName: "Kapoor", Quantity: 0.35},
				{RawMaterialName: "Lemon grass oil", Quantity: 0.1},
			},
		},
		{
			Name:       "Ubtan",
			Components: []RawComponent{
				{RawMaterialName: "Besan", Quantity: 4},
				{RawMaterialName: "Haldi", Quantity: 4},
				{RawMaterialName: "Kapoor kacheri", Quantity: 2},
				{RawMaterialName: "Multani", Quantity: 20},
				{RawMaterialName: "Souf", Quantity: 0.4},
			},
		},
		{
			Name:       "Amrithdhar",
			Components: []RawComponent{
				{RawMaterialName: "Pudina", Quantity: 0.6},
				{RawMaterialName: "Ajwain", Quantity: 0.54},
				{RawMaterialName: "Kapoor", Quantity: 0.6},
			},
		},
		{
			Name:       "Triphala",
			Components: []RawComponent{
				{RawMaterialName: "Behada p", Quantity: 6},
				{RawMaterialName: "Harada p", Quantity: 6},
				{RawMaterialName: "Amla p", Quantity: 6},
			},
		},
		{
			Name:       "Netra Prabha",
			Components: []RawComponent{
				{RawMaterialName: "Rose", Quantity: 1},
				{RawMaterialName: "Amla", Quantity: 0.15},
				{RawMaterialName: "Harada", Quantity: 0.5},
				{RawMaterialName: "Behada", Quantity: 0.5},
				{RawMaterialName: "Dharu haldi", Quantity: 0.15},
				{RawMaterialName: "Neem ful", Quantity: 0.3},
			},
		},
	}
}
