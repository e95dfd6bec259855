// Package sales define la máquina de estados de las órdenes de venta.
// Los estados llegan por la API como texto libre; aquí se valida que el
// salto solicitado exista en la tabla de transiciones permitidas.
package sales

import "github.com/tu-usuario/erp-pro/internal/domain/entity"

// transitions tabla de transiciones permitidas por estado actual.
var transitions = map[string][]string{
	entity.OrderStatusDraft:      {entity.OrderStatusConfirmed, entity.OrderStatusCancelled},
	entity.OrderStatusConfirmed:  {entity.OrderStatusProcessing, entity.OrderStatusCancelled},
	entity.OrderStatusProcessing: {entity.OrderStatusShipped, entity.OrderStatusCancelled},
	entity.OrderStatusShipped:    {entity.OrderStatusDelivered},
	entity.OrderStatusDelivered:  {entity.OrderStatusCompleted},
	entity.OrderStatusCompleted:  {},
	entity.OrderStatusCancelled:  {},
}

// CanTransition indica si una orden puede pasar de from a to.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus indica si s es un estado conocido de orden.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}
