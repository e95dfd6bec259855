package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizer descompone (NFD), elimina marcas diacríticas y recompone (NFC).
var normalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeSearch prepara un término de búsqueda: minúsculas, sin tildes y
// sin espacios sobrantes. "Almacén  Norte" -> "almacen norte". Es el espejo
// exacto de unaccent(lower(col)) que aplican las consultas del lado SQL:
// ambos lados de la comparación LIKE quedan normalizados igual.
func NormalizeSearch(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ""
	}
	out, _, err := transform.String(normalizer, s)
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(out), " ")
}
