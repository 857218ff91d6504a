package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
	"github.com/jhoicas/craft-inventory-api/internal/domain/production"
	"github.com/jhoicas/craft-inventory-api/internal/domain/repository"
	"github.com/jhoicas/craft-inventory-api/pkg/logger"
	"github.com/jhoicas/craft-inventory-api/pkg/metrics"
)

var tracer = otel.Tracer("craft-inventory/inventory")

// Orígenes de una deducción (etiqueta de métricas).
const (
	sourceBOM   = "bom"
	sourceOrder = "order"
)

// DeductedLine una línea aplicada por una deducción.
type DeductedLine struct {
	MaterialID   int64
	MaterialName string
	Quantity     decimal.Decimal
	Remaining    decimal.Decimal
}

// DeductionResult resultado de una deducción confirmada.
type DeductionResult struct {
	TransactionID string
	ProductID     int64
	BatchSize     int64
	Lines         []DeductedLine
}

// DeductionUseCase motor de deducción de materiales según la lista de materiales (BoM).
// Toda deducción (verificación, descuento, libro y estado de la orden) ocurre en una sola
// transacción: o se aplican todas las líneas o ninguna.
type DeductionUseCase struct {
	txRunner TxRunner
	metrics  *metrics.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewDeductionUseCase construye el caso de uso.
func NewDeductionUseCase(txRunner TxRunner, m *metrics.Metrics, log *logger.Logger) *DeductionUseCase {
	return &DeductionUseCase{txRunner: txRunner, metrics: m, log: log, now: time.Now}
}

// DeductForProduct descuenta el consumo de batchSize unidades de productID.
// Un producto sin BoM es un no-op exitoso; las líneas cuyo material ya no existe se omiten.
func (uc *DeductionUseCase) DeductForProduct(ctx context.Context, productID, batchSize int64) (*DeductionResult, error) {
	if batchSize <= 0 {
		return nil, domain.ErrInvalidInput
	}
	ctx, span := tracer.Start(ctx, "inventory.DeductForProduct")
	defer span.End()
	span.SetAttributes(attribute.Int64("product.id", productID), attribute.Int64("batch.size", batchSize))

	result := &DeductionResult{TransactionID: uuid.New().String(), ProductID: productID, BatchSize: batchSize}
	now := uc.now()

	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		boms, err := repos.BOMs.ListByProduct(ctx, productID)
		if err != nil {
			return err
		}
		reqs, err := lockRequirements(ctx, repos.Materials, boms, batchSize, true)
		if err != nil {
			return err
		}
		note := fmt.Sprintf("Auto deduction for batch of size %d", batchSize)
		lines, err := applyDeduction(ctx, repos, reqs, nil, result.TransactionID, note, now)
		if err != nil {
			return err
		}
		result.Lines = lines
		return nil
	})
	uc.observe(ctx, sourceBOM, err, span)
	if err != nil {
		return nil, err
	}

	uc.consumed(result.Lines)
	uc.log.WithContext(ctx).Info().
		Str("transaction_id", result.TransactionID).
		Int64("product_id", productID).
		Int64("batch_size", batchSize).
		Int("lines", len(result.Lines)).
		Msg("deducción por BoM aplicada")
	return result, nil
}

// DeductForOrder descuenta el consumo de la orden y la marca como completa (sin importar su
// estado previo), estampando completed_at y registrando "completed" en el audit log.
func (uc *DeductionUseCase) DeductForOrder(ctx context.Context, orderID int64) (*entity.ProductionOrder, error) {
	ctx, span := tracer.Start(ctx, "inventory.DeductForOrder")
	defer span.End()
	span.SetAttributes(attribute.Int64("order.id", orderID))

	txID := uuid.New().String()
	now := uc.now()
	var (
		order *entity.ProductionOrder
		lines []DeductedLine
	)

	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		var err error
		order, err = repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		boms, err := repos.BOMs.ListByProduct(ctx, order.ProductID)
		if err != nil {
			return err
		}
		if len(boms) == 0 {
			return domain.ErrNoBillOfMaterial
		}
		reqs, err := lockRequirements(ctx, repos.Materials, boms, order.BatchSize, false)
		if err != nil {
			return err
		}
		note := fmt.Sprintf("Deduction for production order #%d", order.ID)
		lines, err = applyDeduction(ctx, repos, reqs, &order.ID, txID, note, now)
		if err != nil {
			return err
		}

		order.SetStatus(entity.ProductionStatusComplete, now)
		if err := repos.Orders.UpdateStatus(ctx, order); err != nil {
			return err
		}
		return repos.AuditLogs.Create(ctx, &entity.ProductionAuditLog{
			ProductionOrderID: order.ID,
			Action:            entity.AuditActionCompleted,
			Note:              "Auto-complete after deduction",
			Timestamp:         now,
		})
	})
	uc.observe(ctx, sourceOrder, err, span)
	if err != nil {
		return nil, err
	}

	uc.consumed(lines)
	uc.log.WithContext(ctx).Info().
		Str("transaction_id", txID).
		Int64("order_id", order.ID).
		Int64("product_id", order.ProductID).
		Int64("batch_size", order.BatchSize).
		Msg("orden de producción completada")
	return order, nil
}

// lockRequirements carga y bloquea cada material de la BoM (en orden de ID para evitar
// interbloqueos entre deducciones concurrentes) y calcula lo requerido.
func lockRequirements(
	ctx context.Context,
	materials repository.MaterialRepository,
	boms []*entity.BillOfMaterial,
	batchSize int64,
	skipMissing bool,
) ([]production.Requirement, error) {
	sorted := make([]*entity.BillOfMaterial, len(boms))
	copy(sorted, boms)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MaterialID < sorted[j].MaterialID })

	reqs := make([]production.Requirement, 0, len(sorted))
	for _, b := range sorted {
		m, err := materials.GetForUpdate(ctx, b.MaterialID)
		if err != nil {
			return nil, err
		}
		if m == nil {
			if skipMissing {
				continue
			}
			return nil, fmt.Errorf("%w: id %d", domain.ErrMaterialNotFound, b.MaterialID)
		}
		reqs = append(reqs, production.Requirement{
			Material: m,
			Required: production.RequiredQuantity(b.Quantity, batchSize),
		})
	}
	return reqs, nil
}

// applyDeduction valida disponibilidad de todas las líneas y, solo si todas alcanzan,
// descuenta y escribe una fila en el libro por material. Las líneas que requieren 0 se omiten.
func applyDeduction(
	ctx context.Context,
	repos TxRepos,
	reqs []production.Requirement,
	orderID *int64,
	txID, note string,
	now time.Time,
) ([]DeductedLine, error) {
	if short := production.Shortfalls(reqs); len(short) > 0 {
		return nil, &domain.InsufficientStockError{Shortfalls: short}
	}
	reqs = production.Consuming(reqs)
	production.Apply(reqs)

	lines := make([]DeductedLine, 0, len(reqs))
	for _, r := range reqs {
		if err := repos.Materials.UpdateQuantity(ctx, r.Material); err != nil {
			return nil, err
		}
		if err := repos.InventoryLogs.Create(ctx, &entity.InventoryChangeLog{
			TransactionID:     txID,
			MaterialID:        r.Material.ID,
			ProductionOrderID: orderID,
			ChangeType:        entity.ChangeTypeDeduction,
			Quantity:          r.Required,
			Remaining:         r.Material.Quantity,
			Note:              note,
			Timestamp:         now,
		}); err != nil {
			return nil, err
		}
		lines = append(lines, DeductedLine{
			MaterialID:   r.Material.ID,
			MaterialName: r.Material.Name,
			Quantity:     r.Required,
			Remaining:    r.Material.Quantity,
		})
	}
	return lines, nil
}

// observe registra métricas, span y log de una deducción terminada (exitosa o no).
func (uc *DeductionUseCase) observe(ctx context.Context, source string, err error, span trace.Span) {
	res := outcome(err)
	uc.metrics.DeductionsTotal.WithLabelValues(source, res).Inc()
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, res)

	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		uc.metrics.ShortfallLines.Add(float64(len(insufficient.Shortfalls)))
		uc.log.WithContext(ctx).Warn().Str("source", source).Int("shortfalls", len(insufficient.Shortfalls)).Msg("deducción rechazada por stock insuficiente")
	case res == metrics.OutcomeError:
		uc.log.WithContext(ctx).Error().Err(err).Str("source", source).Msg("deducción revertida por error de almacenamiento")
	}
}

func (uc *DeductionUseCase) consumed(lines []DeductedLine) {
	for _, l := range lines {
		uc.metrics.MaterialConsumed.WithLabelValues(strconv.FormatInt(l.MaterialID, 10)).Add(l.Quantity.InexactFloat64())
	}
}

// outcome clasifica un error de deducción para métricas y logs.
func outcome(err error) string {
	var insufficient *domain.InsufficientStockError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.As(err, &insufficient):
		return metrics.OutcomeInsufficient
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrMaterialNotFound), errors.Is(err, domain.ErrNoBillOfMaterial):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
