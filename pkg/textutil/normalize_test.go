package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSearch_QuitaTildesYMayusculas(t *testing.T) {
	assert.Equal(t, "almacen norte", NormalizeSearch("Almacén  Norte"))
	assert.Equal(t, "nino", NormalizeSearch("NIÑO"))
}

func TestNormalizeSearch_Vacio(t *testing.T) {
	assert.Equal(t, "", NormalizeSearch("   "))
}

// La comparación LIKE normaliza los dos lados igual: el término con
// NormalizeSearch y la columna con unaccent(lower(col)) en SQL. Si solo se
// normalizara el término, "Almacén" jamás encontraría "Almacén Norte"
// (columna con tilde, término sin ella). Aquí se verifica la propiedad de
// espejo con valores acentuados escritos con y sin tilde.
func TestNormalizeSearch_AmbosLadosNormalizadosCoinciden(t *testing.T) {
	columnas := []string{"Almacén Norte", "Cartón Ondulado", "Añejo Reserva"}
	terminos := []string{"almacén", "ALMACEN", "cartón", "carton", "añejo", "anejo"}

	for _, col := range columnas {
		colNorm := NormalizeSearch(col) // equivalente de unaccent(lower(col))
		for _, term := range terminos {
			termNorm := NormalizeSearch(term)
			esperado := strings.Contains(strings.Map(quitarTilde, strings.ToLower(col)), strings.Map(quitarTilde, strings.ToLower(term)))
			assert.Equal(t, esperado, strings.Contains(colNorm, termNorm),
				"columna %q vs término %q", col, term)
		}
	}

	// El caso concreto: mismo texto con tilde en la columna y sin/con tilde
	// en el término debe coincidir en ambas variantes.
	assert.True(t, strings.Contains(NormalizeSearch("Almacén Norte"), NormalizeSearch("Almacén")))
	assert.True(t, strings.Contains(NormalizeSearch("Almacén Norte"), NormalizeSearch("almacen")))
}

// quitarTilde mapeo mínimo independiente de la implementación, solo para el
// oráculo del test.
func quitarTilde(r rune) rune {
	switch r {
	case 'á':
		return 'a'
	case 'é':
		return 'e'
	case 'í':
		return 'i'
	case 'ó':
		return 'o'
	case 'ú':
		return 'u'
	case 'ñ':
		return 'n'
	}
	return r
}
