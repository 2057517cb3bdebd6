package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Line es una línea (variante, cantidad) de cualquier operación multi-línea:
// pedido, compra o salida de producción.
type Line struct {
	VariantID string
	Quantity  decimal.Decimal
}

// Aggregate colapsa las líneas en una cantidad neta por variante. Una operación
// debe generar exactamente un movimiento de inventario por variante: así el libro
// queda auditable y no hay dos read-modify-write sobre la misma fila de saldo
// dentro de la misma transacción. Entrada vacía produce mapa vacío; el motor
// lo trata como fallo de validación.
func Aggregate(lines []Line) map[string]decimal.Decimal {
	net := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		net[l.VariantID] = net[l.VariantID].Add(l.Quantity)
	}
	return net
}

// SortedVariantIDs devuelve las claves del agregado en orden estable, para que
// los movimientos de una operación se inserten en orden determinista.
func SortedVariantIDs(net map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(net))
	for id := range net {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
