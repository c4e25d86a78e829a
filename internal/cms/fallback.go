package cms

// builtinProperties is served when the content directory has no file for a slug, so a fresh
// checkout still renders a complete page.
var builtinProperties = []Property{
	{
		Slug:    "casa-oaxaca",
		Lang:    "en",
		Title:   "Casa Oaxaca",
		Summary: "A restored colonial house three blocks from Santo Domingo.",
		Facts: []Fact{
			{Label: "Bedrooms", Value: "4"},
			{Label: "Bathrooms", Value: "3"},
			{Label: "Built area", Value: "310 m²"},
			{Label: "Lot", Value: "420 m²"},
		},
		Location: Location{Locality: "Oaxaca de Juárez", Region: "Oaxaca", Country: "MX"},
		Body: "Thick adobe walls, a central courtyard with a lemon tree and a rooftop terrace " +
			"facing the Sierra Norte.\n\nThe house was restored with local cantera stone and " +
			"keeps its original wooden beams.",
	},
	{
		Slug:    "casa-oaxaca",
		Lang:    "es",
		Title:   "Casa Oaxaca",
		Summary: "Una casa colonial restaurada a tres cuadras de Santo Domingo.",
		Facts: []Fact{
			{Label: "Recámaras", Value: "4"},
			{Label: "Baños", Value: "3"},
			{Label: "Construcción", Value: "310 m²"},
			{Label: "Terreno", Value: "420 m²"},
		},
		Location: Location{Locality: "Oaxaca de Juárez", Region: "Oaxaca", Country: "MX"},
		Body: "Muros gruesos de adobe, un patio central con un limonero y una terraza en la " +
			"azotea con vista a la Sierra Norte.\n\nLa casa fue restaurada con cantera local y " +
			"conserva sus vigas de madera originales.",
	},
}

func builtinProperty(slug, lang string) (Property, bool) {
	for _, p := range builtinProperties {
		if p.Slug == slug && p.Lang == lang {
			return cloneProperty(p), true
		}
	}
	return Property{}, false
}
