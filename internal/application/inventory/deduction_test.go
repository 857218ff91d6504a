package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/craft-inventory-api/internal/application/inventory"
	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
	"github.com/jhoicas/craft-inventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/craft-inventory-api/pkg/logger"
	"github.com/jhoicas/craft-inventory-api/pkg/metrics"
)

type fixture struct {
	store     *memory.Store
	product   *entity.Product
	materialA *entity.Material
	materialB *entity.Material
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newFixture producto P con BoM A=2.0/unidad, B=1.0/unidad; stock A=10, B=5.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	f := &fixture{
		store:     s,
		product:   &entity.Product{Name: "Tote bag"},
		materialA: &entity.Material{Name: "MaterialA", Quantity: dec("10"), Unit: "yards"},
		materialB: &entity.Material{Name: "MaterialB", Quantity: dec("5"), Unit: "pcs"},
	}
	require.NoError(t, s.Products().Create(ctx, f.product))
	require.NoError(t, s.Materials().Create(ctx, f.materialA))
	require.NoError(t, s.Materials().Create(ctx, f.materialB))
	require.NoError(t, s.BOMs().Create(ctx, &entity.BillOfMaterial{ProductID: f.product.ID, MaterialID: f.materialA.ID, Quantity: dec("2.0")}))
	require.NoError(t, s.BOMs().Create(ctx, &entity.BillOfMaterial{ProductID: f.product.ID, MaterialID: f.materialB.ID, Quantity: dec("1.0")}))
	return f
}

func (f *fixture) quantity(t *testing.T, id int64) decimal.Decimal {
	t.Helper()
	m, err := f.store.Materials().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m.Quantity
}

func (f *fixture) logs(t *testing.T) []*entity.InventoryChangeLog {
	t.Helper()
	logs, err := f.store.InventoryLogs().List(context.Background(), entity.InventoryLogFilter{})
	require.NoError(t, err)
	return logs
}

func (f *fixture) newOrder(t *testing.T, batch int64, status entity.ProductionStatus) *entity.ProductionOrder {
	t.Helper()
	o := &entity.ProductionOrder{ProductID: f.product.ID, BatchSize: batch, Status: status, CreatedAt: time.Now()}
	require.NoError(t, f.store.ProductionOrders().Create(context.Background(), o))
	return o
}

func newDeduction(s *memory.Store) *inventory.DeductionUseCase {
	return inventory.NewDeductionUseCase(s, metrics.NewNop(), logger.Nop())
}

func TestDeductForProduct_DescuentaTodasLasLineas(t *testing.T) {
	f := newFixture(t)
	uc := newDeduction(f.store)

	res, err := uc.DeductForProduct(context.Background(), f.product.ID, 2)
	require.NoError(t, err)
	require.Len(t, res.Lines, 2)
	assert.NotEmpty(t, res.TransactionID)

	assert.True(t, f.quantity(t, f.materialA.ID).Equal(dec("6")))
	assert.True(t, f.quantity(t, f.materialB.ID).Equal(dec("3")))

	logs := f.logs(t)
	require.Len(t, logs, 2)
	for _, l := range logs {
		assert.Equal(t, entity.ChangeTypeDeduction, l.ChangeType)
		assert.Equal(t, res.TransactionID, l.TransactionID)
		assert.Equal(t, "Auto deduction for batch of size 2", l.Note)
		assert.Nil(t, l.ProductionOrderID)
	}
}

func TestDeductForProduct_ReportaTodosLosFaltantesSinMutar(t *testing.T) {
	f := newFixture(t)
	uc := newDeduction(f.store)

	_, err := uc.DeductForProduct(context.Background(), f.product.ID, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	require.Len(t, insufficient.Shortfalls, 2)
	assert.Equal(t, "MaterialA", insufficient.Shortfalls[0].MaterialName)
	assert.True(t, insufficient.Shortfalls[0].Required.Equal(dec("20")))
	assert.True(t, insufficient.Shortfalls[0].Available.Equal(dec("10")))
	assert.Equal(t, "MaterialB", insufficient.Shortfalls[1].MaterialName)
	assert.True(t, insufficient.Shortfalls[1].Required.Equal(dec("10")))
	assert.True(t, insufficient.Shortfalls[1].Available.Equal(dec("5")))

	assert.True(t, f.quantity(t, f.materialA.ID).Equal(dec("10")))
	assert.True(t, f.quantity(t, f.materialB.ID).Equal(dec("5")))
	assert.Empty(t, f.logs(t))
}

func TestDeductForProduct_FallaDeAlmacenamientoRevierteTodo(t *testing.T) {
	f := newFixture(t)
	uc := newDeduction(f.store)
	boom := errors.New("connection reset")
	f.store.InjectFault(memory.OpCreateInventoryLog, 1, boom)

	_, err := uc.DeductForProduct(context.Background(), f.product.ID, 2)
	assert.ErrorIs(t, err, boom)

	assert.True(t, f.quantity(t, f.materialA.ID).Equal(dec("10")))
	assert.True(t, f.quantity(t, f.materialB.ID).Equal(dec("5")))
	f.store.ClearFaults()
	assert.Empty(t, f.logs(t))
}

func TestDeductForProduct_SinBoMEsNoOp(t *testing.T) {
	f := newFixture(t)
	other := &entity.Product{Name: "Pouch"}
	require.NoError(t, f.store.Products().Create(context.Background(), other))

	res, err := newDeduction(f.store).DeductForProduct(context.Background(), other.ID, 3)
	require.NoError(t, err)
	assert.Empty(t, res.Lines)
	assert.Empty(t, f.logs(t))
}

func TestDeductForProduct_BatchInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := newDeduction(f.store).DeductForProduct(context.Background(), f.product.ID, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeductForProduct_RedondeaADosDecimales(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	p := &entity.Product{Name: "Wallet"}
	require.NoError(t, s.Products().Create(ctx, p))
	m := &entity.Material{Name: "Leather", Quantity: dec("10")}
	require.NoError(t, s.Materials().Create(ctx, m))
	require.NoError(t, s.BOMs().Create(ctx, &entity.BillOfMaterial{ProductID: p.ID, MaterialID: m.ID, Quantity: dec("0.333")}))

	res, err := newDeduction(s).DeductForProduct(ctx, p.ID, 3)
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.True(t, res.Lines[0].Quantity.Equal(dec("1")), "0.333 × 3 = 0.999 → 1.00")

	got, _ := s.Materials().GetByID(ctx, m.ID)
	assert.True(t, got.Quantity.Equal(dec("9")))
}

func TestDeductForProduct_LineaQueRedondeaACeroNoDejaFila(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	thread := &entity.Material{Name: "Thread", Quantity: dec("3"), Unit: "spools"}
	require.NoError(t, f.store.Materials().Create(ctx, thread))
	require.NoError(t, f.store.BOMs().Create(ctx, &entity.BillOfMaterial{ProductID: f.product.ID, MaterialID: thread.ID, Quantity: dec("0.004")}))

	res, err := newDeduction(f.store).DeductForProduct(ctx, f.product.ID, 1)
	require.NoError(t, err)
	require.Len(t, res.Lines, 2)
	for _, l := range res.Lines {
		assert.NotEqual(t, thread.ID, l.MaterialID)
	}

	assert.True(t, f.quantity(t, thread.ID).Equal(dec("3")))
	assert.True(t, f.quantity(t, f.materialA.ID).Equal(dec("8")))
	logs := f.logs(t)
	require.Len(t, logs, 2)
	for _, l := range logs {
		assert.True(t, l.Quantity.IsPositive(), "fila con cantidad %s", l.Quantity)
		assert.NotEqual(t, thread.ID, l.MaterialID)
	}
}

func TestDeductForOrder_CompletaDesdePlanned(t *testing.T) {
	f := newFixture(t)
	order := f.newOrder(t, 2, entity.ProductionStatusPlanned)

	got, err := newDeduction(f.store).DeductForOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusComplete, got.Status)
	require.NotNil(t, got.CompletedAt)

	stored, err := f.store.ProductionOrders().GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusComplete, stored.Status)
	assert.NotNil(t, stored.CompletedAt)

	logs := f.logs(t)
	require.Len(t, logs, 2)
	for _, l := range logs {
		require.NotNil(t, l.ProductionOrderID)
		assert.Equal(t, order.ID, *l.ProductionOrderID)
		assert.Equal(t, fmt.Sprintf("Deduction for production order #%d", order.ID), l.Note)
	}

	audit, err := f.store.AuditLogs().ListByOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, audit, 1)
	assert.Equal(t, entity.AuditActionCompleted, audit[0].Action)
	assert.Equal(t, "Auto-complete after deduction", audit[0].Note)
}

func TestDeductForOrder_SiempreTerminaCompleta(t *testing.T) {
	stale := time.Now().Add(-72 * time.Hour)
	cases := []struct {
		name        string
		status      entity.ProductionStatus
		completedAt *time.Time
	}{
		{"planned", entity.ProductionStatusPlanned, nil},
		{"in_progress", entity.ProductionStatusInProgress, nil},
		{"complete", entity.ProductionStatusComplete, &stale},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			order := &entity.ProductionOrder{
				ProductID:   f.product.ID,
				BatchSize:   1,
				Status:      tc.status,
				CreatedAt:   stale,
				CompletedAt: tc.completedAt,
			}
			require.NoError(t, f.store.ProductionOrders().Create(ctx, order))
			before := time.Now()

			got, err := newDeduction(f.store).DeductForOrder(ctx, order.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.ProductionStatusComplete, got.Status)

			stored, err := f.store.ProductionOrders().GetByID(ctx, order.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.ProductionStatusComplete, stored.Status)
			require.NotNil(t, stored.CompletedAt)
			assert.False(t, stored.CompletedAt.Before(before), "completed_at debe reflejar esta deducción")

			assert.True(t, f.quantity(t, f.materialA.ID).Equal(dec("8")))
			assert.True(t, f.quantity(t, f.materialB.ID).Equal(dec("4")))
			assert.Len(t, f.logs(t), 2)
		})
	}
}

func TestDeductForOrder_InsuficienteNoCambiaEstado(t *testing.T) {
	f := newFixture(t)
	order := f.newOrder(t, 10, entity.ProductionStatusInProgress)

	_, err := newDeduction(f.store).DeductForOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	stored, _ := f.store.ProductionOrders().GetByID(context.Background(), order.ID)
	assert.Equal(t, entity.ProductionStatusInProgress, stored.Status)
	assert.Nil(t, stored.CompletedAt)
	audit, _ := f.store.AuditLogs().ListByOrder(context.Background(), order.ID)
	assert.Empty(t, audit)
}

func TestDeductForOrder_FallaAlCompletarRevierteDeduccion(t *testing.T) {
	f := newFixture(t)
	order := f.newOrder(t, 2, entity.ProductionStatusPlanned)
	boom := errors.New("audit insert failed")
	f.store.InjectFault(memory.OpCreateAuditLog, 0, boom)

	_, err := newDeduction(f.store).DeductForOrder(context.Background(), order.ID)
	assert.ErrorIs(t, err, boom)
	f.store.ClearFaults()

	assert.True(t, f.quantity(t, f.materialA.ID).Equal(dec("10")))
	assert.Empty(t, f.logs(t))
	stored, _ := f.store.ProductionOrders().GetByID(context.Background(), order.ID)
	assert.Equal(t, entity.ProductionStatusPlanned, stored.Status)
}

func TestDeductForOrder_Errores(t *testing.T) {
	f := newFixture(t)
	uc := newDeduction(f.store)
	ctx := context.Background()

	_, err := uc.DeductForOrder(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	other := &entity.Product{Name: "Pouch"}
	require.NoError(t, f.store.Products().Create(ctx, other))
	noBoM := &entity.ProductionOrder{ProductID: other.ID, BatchSize: 1, Status: entity.ProductionStatusPlanned, CreatedAt: time.Now()}
	require.NoError(t, f.store.ProductionOrders().Create(ctx, noBoM))
	_, err = uc.DeductForOrder(ctx, noBoM.ID)
	assert.ErrorIs(t, err, domain.ErrNoBillOfMaterial)
}

func TestDeductForOrder_MaterialFaltante(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ghost := &entity.Material{Name: "Ghost"}
	require.NoError(t, f.store.Materials().Create(ctx, ghost))
	require.NoError(t, f.store.BOMs().Create(ctx, &entity.BillOfMaterial{ProductID: f.product.ID, MaterialID: ghost.ID, Quantity: dec("1")}))
	f.store.DeleteMaterial(ghost.ID)
	order := f.newOrder(t, 1, entity.ProductionStatusPlanned)

	_, err := newDeduction(f.store).DeductForOrder(ctx, order.ID)
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
	assert.True(t, f.quantity(t, f.materialA.ID).Equal(dec("10")))

	// el camino ad-hoc omite la línea
	res, err := newDeduction(f.store).DeductForProduct(ctx, f.product.ID, 1)
	require.NoError(t, err)
	assert.Len(t, res.Lines, 2)
}

func TestDeductForProduct_ConsumoEtiquetadoPorIDDeMaterial(t *testing.T) {
	f := newFixture(t)
	reg := prometheus.NewRegistry()
	uc := inventory.NewDeductionUseCase(f.store, metrics.New(reg), logger.Nop())

	_, err := uc.DeductForProduct(context.Background(), f.product.ID, 2)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, fmt.Sprintf(`craft_material_consumed_total{material_id="%d"} 4`, f.materialA.ID))
	assert.Contains(t, body, fmt.Sprintf(`craft_material_consumed_total{material_id="%d"} 2`, f.materialB.ID))
	assert.NotContains(t, body, "MaterialA")
}
