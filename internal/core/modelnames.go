package core

// modelDisplayNames maps the scoring service's pedagogical-model keys to
// their display names. Keys absent from the table are humanized instead.
var modelDisplayNames = map[string]string{
	"Ensenanza_para_la_comprension": "Enseñanza para la Comprensión",
	"Indagacion_cientifica":         "Indagación Científica",
	"Didactica_del_patrimonio":      "Didáctica del Patrimonio",
	"Pedagogia_Critica":             "Pedagogía Crítica",
	"Aprendizaje_Significativo":     "Aprendizaje Significativo",
}

// GeneralModelName groups indicators whose result carries no model key.
const GeneralModelName = "General"

// ModelDisplayName resolves a pedagogical-model key to its display name.
func ModelDisplayName(key string) string {
	if key == "" {
		return GeneralModelName
	}
	if name, ok := modelDisplayNames[key]; ok {
		return name
	}
	return Humanize(key)
}
