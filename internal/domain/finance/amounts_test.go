package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Importe de línea = cantidad × precio unitario − descuento, exacto.
func TestLineAmount(t *testing.T) {
	assert.True(t, dec("95.50").Equal(LineAmount(10, dec("10.05"), dec("5.00"))))
	assert.True(t, dec("0").Equal(LineAmount(0, dec("99.99"), dec("0"))))
}

// Impuesto = total × tasa, redondeado a centavos.
func TestTax_RedondeoACentavos(t *testing.T) {
	// 33.33 * 0.13 = 4.3329 -> 4.33
	assert.True(t, dec("4.33").Equal(Tax(dec("33.33"), dec("0.13"))))
	// 10.05 * 0.13 = 1.3065 -> 1.31
	assert.True(t, dec("1.31").Equal(Tax(dec("10.05"), dec("0.13"))))
}

// Final = total − descuento + impuesto.
func TestFinalAmount(t *testing.T) {
	total := dec("100.00")
	tax := Tax(total, dec("0.13"))
	assert.True(t, dec("108.00").Equal(FinalAmount(total, dec("5.00"), tax)))
}

// Saldos: ASSET/EXPENSE suman con débito; LIABILITY/EQUITY/REVENUE con crédito.
func TestApplyToBalance(t *testing.T) {
	b := dec("100")
	assert.True(t, dec("150").Equal(ApplyToBalance(b, "ASSET", "DEBIT", dec("50"))))
	assert.True(t, dec("50").Equal(ApplyToBalance(b, "ASSET", "CREDIT", dec("50"))))
	assert.True(t, dec("150").Equal(ApplyToBalance(b, "REVENUE", "CREDIT", dec("50"))))
	assert.True(t, dec("50").Equal(ApplyToBalance(b, "REVENUE", "DEBIT", dec("50"))))
	assert.True(t, dec("150").Equal(ApplyToBalance(b, "EXPENSE", "DEBIT", dec("50"))))
	assert.True(t, dec("150").Equal(ApplyToBalance(b, "LIABILITY", "CREDIT", dec("50"))))
}

// El delta con signo es lo que se escribe de forma relativa en el almacén.
func TestBalanceDelta(t *testing.T) {
	assert.True(t, dec("50").Equal(BalanceDelta("ASSET", "DEBIT", dec("50"))))
	assert.True(t, dec("-50").Equal(BalanceDelta("ASSET", "CREDIT", dec("50"))))
	assert.True(t, dec("50").Equal(BalanceDelta("LIABILITY", "CREDIT", dec("50"))))
	assert.True(t, dec("-50").Equal(BalanceDelta("REVENUE", "DEBIT", dec("50"))))
}
