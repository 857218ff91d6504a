package inventory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/craft-inventory-api/internal/application/inventory"
	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
)

func newCalculate(f *fixture) *inventory.CalculateUseCase {
	return inventory.NewCalculateUseCase(f.store.BOMs(), f.store.Materials())
}

func TestCalculate_RequeridoVsDisponible(t *testing.T) {
	f := newFixture(t)

	res, err := newCalculate(f).Calculate(context.Background(), f.product.ID, 3, true)
	require.NoError(t, err)
	require.Len(t, res.Materials, 2)

	a := res.Materials["MaterialA"]
	assert.True(t, a.Required.Equal(dec("6")))
	assert.True(t, a.Available.Equal(dec("10")))
	assert.Equal(t, "yards", a.Unit)
	assert.Equal(t, inventory.StatusOK, a.Status)
	assert.NotNil(t, res.Insufficient)
	assert.Empty(t, res.Insufficient)
}

func TestCalculate_MarcaInsuficientesSoloSiSePide(t *testing.T) {
	f := newFixture(t)
	uc := newCalculate(f)

	checked, err := uc.Calculate(context.Background(), f.product.ID, 10, true)
	require.NoError(t, err)
	require.Len(t, checked.Insufficient, 2)
	assert.Equal(t, inventory.StatusInsufficient, checked.Materials["MaterialB"].Status)
	assert.True(t, checked.Insufficient["MaterialA"].Required.Equal(dec("20")))

	unchecked, err := uc.Calculate(context.Background(), f.product.ID, 10, false)
	require.NoError(t, err)
	assert.Nil(t, unchecked.Insufficient)
	assert.Equal(t, inventory.StatusOK, unchecked.Materials["MaterialB"].Status)
}

func TestCalculate_LoteCeroTodoOK(t *testing.T) {
	f := newFixture(t)

	res, err := newCalculate(f).Calculate(context.Background(), f.product.ID, 0, true)
	require.NoError(t, err)
	for name, line := range res.Materials {
		assert.True(t, line.Required.IsZero(), name)
		assert.Equal(t, inventory.StatusOK, line.Status, name)
	}
	assert.Empty(t, res.Insufficient)

	_, err = newCalculate(f).Calculate(context.Background(), f.product.ID, -1, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCalculate_MaterialFaltanteYProductoSinBoM(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ghost := &entity.Material{Name: "Ghost", Quantity: dec("50")}
	require.NoError(t, f.store.Materials().Create(ctx, ghost))
	require.NoError(t, f.store.BOMs().Create(ctx, &entity.BillOfMaterial{ProductID: f.product.ID, MaterialID: ghost.ID, Quantity: dec("1")}))
	f.store.DeleteMaterial(ghost.ID)

	res, err := newCalculate(f).Calculate(ctx, f.product.ID, 1, true)
	require.NoError(t, err)
	line, ok := res.Materials[fmt.Sprintf("Material #%d", ghost.ID)]
	require.True(t, ok)
	assert.True(t, line.Available.IsZero())
	assert.Equal(t, inventory.StatusInsufficient, line.Status)

	res, err = newCalculate(f).Calculate(ctx, 9999, 5, false)
	require.NoError(t, err)
	assert.Empty(t, res.Materials)
}

func TestCalculate_NoModificaNada(t *testing.T) {
	f := newFixture(t)
	uc := newCalculate(f)

	first, err := uc.Calculate(context.Background(), f.product.ID, 2, true)
	require.NoError(t, err)
	second, err := uc.Calculate(context.Background(), f.product.ID, 2, true)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, f.quantity(t, f.materialA.ID).Equal(dec("10")))
	assert.Empty(t, f.logs(t))
}
