package docnum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	day := time.Date(2026, 8, 28, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "SO202608280001", Format(PrefixOrder, day, 1))
	assert.Equal(t, "PO202608280042", Format(PrefixPurchase, day, 42))
	assert.Equal(t, "V202608289999", Format(PrefixVoucher, day, 9999))
	// más allá de 4 dígitos no se trunca
	assert.Equal(t, "SO2026082810000", Format(PrefixOrder, day, 10000))
}
