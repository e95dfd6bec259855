package inventory

// Tipos de movimiento de inventario. Las entradas suman, las salidas restan.
const (
	KindPurchaseIn    = "PURCHASE_IN"
	KindSaleOut       = "SALE_OUT"
	KindReturnIn      = "RETURN_IN"
	KindTransferIn    = "TRANSFER_IN"
	KindTransferOut   = "TRANSFER_OUT"
	KindAdjustmentIn  = "ADJUSTMENT_IN"
	KindAdjustmentOut = "ADJUSTMENT_OUT"
)

// Inbound indica si el tipo suma existencias.
func Inbound(kind string) bool {
	switch kind {
	case KindPurchaseIn, KindReturnIn, KindTransferIn, KindAdjustmentIn:
		return true
	}
	return false
}

// Outbound indica si el tipo resta existencias.
func Outbound(kind string) bool {
	switch kind {
	case KindSaleOut, KindTransferOut, KindAdjustmentOut:
		return true
	}
	return false
}

// ValidKind indica si kind es uno de los tipos conocidos.
func ValidKind(kind string) bool {
	return Inbound(kind) || Outbound(kind)
}

// SignedDelta deriva el delta con signo a aplicar al inventario:
// +|qty| para entradas, -|qty| para salidas. qty se toma en valor absoluto.
func SignedDelta(kind string, qty int64) int64 {
	if qty < 0 {
		qty = -qty
	}
	if Outbound(kind) {
		return -qty
	}
	return qty
}
