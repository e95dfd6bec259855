// Package purchasing define la máquina de estados de las órdenes de compra.
package purchasing

import "github.com/tu-usuario/erp-pro/internal/domain/entity"

// transitions tabla de transiciones permitidas por estado actual.
// PARTIAL admite recepciones sucesivas hasta RECEIVED.
var transitions = map[string][]string{
	entity.PurchaseStatusDraft:     {entity.PurchaseStatusSubmitted, entity.PurchaseStatusCancelled},
	entity.PurchaseStatusSubmitted: {entity.PurchaseStatusConfirmed, entity.PurchaseStatusCancelled},
	entity.PurchaseStatusConfirmed: {entity.PurchaseStatusShipped, entity.PurchaseStatusCancelled},
	entity.PurchaseStatusShipped:   {entity.PurchaseStatusPartial, entity.PurchaseStatusReceived},
	entity.PurchaseStatusPartial:   {entity.PurchaseStatusPartial, entity.PurchaseStatusReceived},
	entity.PurchaseStatusReceived:  {entity.PurchaseStatusCompleted},
	entity.PurchaseStatusCompleted: {},
	entity.PurchaseStatusCancelled: {},
}

// CanTransition indica si una compra puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus indica si s es un estado conocido de compra.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}
