package production_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
	"github.com/jhoicas/craft-inventory-api/internal/domain/production"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRequiredQuantity(t *testing.T) {
	cases := []struct {
		perUnit string
		batch   int64
		want    string
	}{
		{"2.0", 2, "4"},
		{"1.0", 10, "10"},
		{"0.333", 3, "1"},
		{"0.125", 1, "0.13"},
		{"1.5", 0, "0"},
	}
	for _, tc := range cases {
		got := production.RequiredQuantity(dec(tc.perUnit), tc.batch)
		assert.True(t, got.Equal(dec(tc.want)), "%s x %d = %s, se obtuvo %s", tc.perUnit, tc.batch, tc.want, got)
	}
}

func TestShortfalls_ReportaTodasLasLineas(t *testing.T) {
	cloth := &entity.Material{ID: 1, Name: "Cloth", Quantity: dec("10")}
	zipper := &entity.Material{ID: 2, Name: "Zipper", Quantity: dec("5")}
	thread := &entity.Material{ID: 3, Name: "Thread", Quantity: dec("100")}

	reqs := []production.Requirement{
		{Material: cloth, Required: dec("20")},
		{Material: thread, Required: dec("1")},
		{Material: zipper, Required: dec("10")},
	}

	got := production.Shortfalls(reqs)
	require.Len(t, got, 2)
	assert.Equal(t, "Cloth", got[0].MaterialName)
	assert.True(t, got[0].Required.Equal(dec("20")))
	assert.True(t, got[0].Available.Equal(dec("10")))
	assert.Equal(t, "Zipper", got[1].MaterialName)
}

func TestShortfalls_StockExactoAlcanza(t *testing.T) {
	m := &entity.Material{ID: 1, Name: "Cloth", Quantity: dec("4")}
	assert.Empty(t, production.Shortfalls([]production.Requirement{{Material: m, Required: dec("4")}}))
}

func TestApply(t *testing.T) {
	m := &entity.Material{ID: 1, Name: "Cloth", Quantity: dec("10")}
	production.Apply([]production.Requirement{{Material: m, Required: dec("4")}})
	assert.True(t, m.Quantity.Equal(dec("6")))
}

func TestConsuming_DescartaLineasEnCero(t *testing.T) {
	cloth := &entity.Material{ID: 1, Name: "Cloth", Quantity: dec("10")}
	thread := &entity.Material{ID: 2, Name: "Thread", Quantity: dec("10")}
	reqs := []production.Requirement{
		{Material: cloth, Required: production.RequiredQuantity(dec("2"), 1)},
		{Material: thread, Required: production.RequiredQuantity(dec("0.004"), 1)},
	}

	got := production.Consuming(reqs)
	require.Len(t, got, 1)
	assert.Equal(t, "Cloth", got[0].Material.Name)
	assert.Len(t, reqs, 2)
}

func TestValidScale(t *testing.T) {
	assert.True(t, production.ValidScale(dec("1.5")))
	assert.True(t, production.ValidScale(dec("0.0001")))
	assert.True(t, production.ValidScale(dec("12.3400000")))
	assert.False(t, production.ValidScale(dec("0.00001")))
	assert.False(t, production.ValidScale(dec("2.12345")))
}
