package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Dos líneas de la misma variante (3 y 5) deben netear en una sola entrada de 8.
func TestAggregate_LineasRepetidasNetean(t *testing.T) {
	lines := []Line{
		{VariantID: "v1", Quantity: decimal.NewFromInt(3)},
		{VariantID: "v1", Quantity: decimal.NewFromInt(5)},
		{VariantID: "v2", Quantity: decimal.NewFromInt(2)},
	}

	net := Aggregate(lines)

	assert.Len(t, net, 2)
	assert.True(t, net["v1"].Equal(decimal.NewFromInt(8)))
	assert.True(t, net["v2"].Equal(decimal.NewFromInt(2)))
}

func TestAggregate_EntradaVacia(t *testing.T) {
	net := Aggregate(nil)
	assert.Empty(t, net)
}

func TestAggregate_CantidadesFraccionarias(t *testing.T) {
	lines := []Line{
		{VariantID: "v1", Quantity: decimal.NewFromFloat(2.5)},
		{VariantID: "v1", Quantity: decimal.NewFromFloat(0.5)},
	}
	net := Aggregate(lines)
	assert.True(t, net["v1"].Equal(decimal.NewFromInt(3)))
}

func TestSortedVariantIDs_OrdenEstable(t *testing.T) {
	net := Aggregate([]Line{
		{VariantID: "b", Quantity: decimal.NewFromInt(1)},
		{VariantID: "a", Quantity: decimal.NewFromInt(1)},
		{VariantID: "c", Quantity: decimal.NewFromInt(1)},
	})
	assert.Equal(t, []string{"a", "b", "c"}, SortedVariantIDs(net))
}
