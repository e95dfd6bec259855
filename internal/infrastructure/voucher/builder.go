// Package voucher arma el comprobante XML de un asiento contable.
package voucher

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/tu-usuario/erp-pro/internal/application/finance"
	"github.com/tu-usuario/erp-pro/internal/domain/entity"
)

var _ finance.VoucherBuilder = (*XMLBuilder)(nil)

// XMLBuilder implementa finance.VoucherBuilder con etree.
type XMLBuilder struct{}

// NewXMLBuilder construye el generador de comprobantes.
func NewXMLBuilder() *XMLBuilder { return &XMLBuilder{} }

// Build genera el XML del comprobante de un asiento y devuelve sus bytes.
func (b *XMLBuilder) Build(tx *entity.Transaction, account *entity.Account) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Voucher")
	root.CreateAttr("number", tx.VoucherNo)
	root.CreateElement("Date").SetText(tx.Date.Format("2006-01-02"))
	root.CreateElement("Type").SetText(tx.Type)

	acc := root.CreateElement("Account")
	acc.CreateElement("Code").SetText(account.Code)
	acc.CreateElement("Name").SetText(account.Name)
	acc.CreateElement("AccountType").SetText(account.Type)

	entry := root.CreateElement("Entry")
	entry.CreateElement("Direction").SetText(tx.Direction)
	entry.CreateElement("Amount").SetText(tx.Amount.StringFixed(2))
	if tx.Description != "" {
		entry.CreateElement("Description").SetText(tx.Description)
	}

	if tx.ReferenceType != "" {
		ref := root.CreateElement("Reference")
		ref.CreateAttr("type", tx.ReferenceType)
		ref.SetText(tx.ReferenceID)
	}

	root.CreateElement("CreatedBy").SetText(tx.CreatedBy)
	root.CreateElement("CreatedAt").SetText(tx.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("voucher: serializar XML: %w", err)
	}
	return out, nil
}
