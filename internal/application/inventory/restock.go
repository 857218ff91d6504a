package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/craft-inventory-api/internal/domain"
	"github.com/jhoicas/craft-inventory-api/internal/domain/entity"
	"github.com/jhoicas/craft-inventory-api/internal/domain/production"
	"github.com/jhoicas/craft-inventory-api/pkg/logger"
	"github.com/jhoicas/craft-inventory-api/pkg/metrics"
)

const defaultRestockNote = "Manual restock"

// RestockInput entrada para reabastecer un material.
type RestockInput struct {
	MaterialID int64
	Quantity   decimal.Decimal
	Note       string
}

// RestockResult material actualizado y fila escrita en el libro.
type RestockResult struct {
	Material *entity.Material
	Log      *entity.InventoryChangeLog
}

// RestockUseCase suma cantidad a un material y lo registra en el libro, en una transacción.
type RestockUseCase struct {
	txRunner TxRunner
	metrics  *metrics.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewRestockUseCase construye el caso de uso.
func NewRestockUseCase(txRunner TxRunner, m *metrics.Metrics, log *logger.Logger) *RestockUseCase {
	return &RestockUseCase{txRunner: txRunner, metrics: m, log: log, now: time.Now}
}

// Restock bloquea el material, suma Quantity (> 0, a lo sumo 4 decimales) y agrega una fila restock con remaining = anterior + Quantity.
func (uc *RestockUseCase) Restock(ctx context.Context, in RestockInput) (*RestockResult, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) || !production.ValidScale(in.Quantity) {
		return nil, domain.ErrInvalidInput
	}
	ctx, span := tracer.Start(ctx, "inventory.Restock")
	defer span.End()
	span.SetAttributes(attribute.Int64("material.id", in.MaterialID), attribute.String("quantity", in.Quantity.String()))

	note := in.Note
	if note == "" {
		note = defaultRestockNote
	}
	out := &RestockResult{}

	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		m, err := repos.Materials.GetForUpdate(ctx, in.MaterialID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		m.Quantity = m.Quantity.Add(in.Quantity)
		if err := repos.Materials.UpdateQuantity(ctx, m); err != nil {
			return err
		}
		entry := &entity.InventoryChangeLog{
			TransactionID: uuid.New().String(),
			MaterialID:    m.ID,
			ChangeType:    entity.ChangeTypeRestock,
			Quantity:      in.Quantity,
			Remaining:     m.Quantity,
			Note:          note,
			Timestamp:     uc.now(),
		}
		if err := repos.InventoryLogs.Create(ctx, entry); err != nil {
			return err
		}
		out.Material, out.Log = m, entry
		return nil
	})
	res := outcome(err)
	uc.metrics.RestocksTotal.WithLabelValues(res).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, res)
		if res == metrics.OutcomeError {
			uc.log.WithContext(ctx).Error().Err(err).Int64("material_id", in.MaterialID).Msg("reabastecimiento revertido")
		}
		return nil, err
	}

	uc.log.WithContext(ctx).Info().
		Int64("material_id", out.Material.ID).
		Str("quantity", in.Quantity.String()).
		Str("remaining", out.Material.Quantity.String()).
		Msg("material reabastecido")
	return out, nil
}
