package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Entradas suman, salidas restan (propiedad básica del libro de movimientos).
func TestSignedDelta_EntradasYSalidas(t *testing.T) {
	for _, kind := range []string{KindPurchaseIn, KindReturnIn, KindTransferIn, KindAdjustmentIn} {
		assert.Equal(t, int64(50), SignedDelta(kind, 50), kind)
	}
	for _, kind := range []string{KindSaleOut, KindTransferOut, KindAdjustmentOut} {
		assert.Equal(t, int64(-50), SignedDelta(kind, 50), kind)
	}
}

// El signo lo decide el tipo, no el llamador: una cantidad negativa se normaliza.
func TestSignedDelta_NormalizaCantidadNegativa(t *testing.T) {
	assert.Equal(t, int64(20), SignedDelta(KindPurchaseIn, -20))
	assert.Equal(t, int64(-20), SignedDelta(KindSaleOut, -20))
}

func TestValidKind(t *testing.T) {
	assert.True(t, ValidKind(KindAdjustmentOut))
	assert.False(t, ValidKind("TELEPORT_IN"))
	assert.False(t, ValidKind(""))
}
