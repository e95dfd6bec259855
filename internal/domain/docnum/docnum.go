// Package docnum formatea números de documento legibles:
// {prefijo}{YYYYMMDD}{consecutivo a 4 dígitos}, ej. SO2026082800001 -> SO202608280001.
package docnum

import (
	"fmt"
	"time"
)

// Prefijos de documento usados por el sistema.
const (
	PrefixOrder    = "SO"
	PrefixPurchase = "PO"
	PrefixVoucher  = "V"
)

// Format arma el número de documento para un prefijo, día y consecutivo.
// El consecutivo se rellena a 4 dígitos; a partir de 10000 crece sin truncar.
func Format(prefix string, day time.Time, seq int64) string {
	return fmt.Sprintf("%s%s%04d", prefix, day.Format("20060102"), seq)
}
