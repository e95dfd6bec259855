// Package finance concentra la aritmética monetaria de órdenes, compras y
// asientos. Todo en decimal: nunca float para dinero.
package finance

import "github.com/shopspring/decimal"

// DefaultTaxRate tasa de impuesto por defecto para órdenes y compras (13%).
var DefaultTaxRate = decimal.NewFromFloat(0.13)

// LineAmount calcula el importe de una línea: quantity*unitPrice - discount.
func LineAmount(quantity int64, unitPrice, discount decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(quantity).Mul(unitPrice).Sub(discount)
}

// Tax calcula el impuesto sobre un total: total * taxRate, redondeado a
// 2 decimales (unidad mínima de la moneda).
func Tax(total, taxRate decimal.Decimal) decimal.Decimal {
	return total.Mul(taxRate).Round(2)
}

// FinalAmount calcula el importe final: total - discount + tax.
func FinalAmount(total, discount, tax decimal.Decimal) decimal.Decimal {
	return total.Sub(discount).Add(tax)
}

// BalanceDelta devuelve el efecto con signo de un asiento sobre el saldo de
// una cuenta según su tipo y la dirección del movimiento. En cuentas de
// naturaleza débito (ASSET, EXPENSE) el débito suma; en las de naturaleza
// crédito (LIABILITY, EQUITY, REVENUE) el crédito suma. El delta se aplica
// de forma relativa (balance = balance + delta) para que asientos
// concurrentes sobre la misma cuenta no se pisen entre sí.
func BalanceDelta(accountType, direction string, amount decimal.Decimal) decimal.Decimal {
	debitNature := accountType == "ASSET" || accountType == "EXPENSE"
	debit := direction == "DEBIT"
	if debitNature == debit {
		return amount
	}
	return amount.Neg()
}

// ApplyToBalance aplica un asiento a un saldo conocido. Es BalanceDelta
// sumado al saldo de partida; útil en cálculos en memoria.
func ApplyToBalance(balance decimal.Decimal, accountType, direction string, amount decimal.Decimal) decimal.Decimal {
	return balance.Add(BalanceDelta(accountType, direction, amount))
}
