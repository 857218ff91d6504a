package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/jhoicas/craft-inventory-api/pkg/logger"
	"github.com/jhoicas/craft-inventory-api/pkg/metrics"
)

var tracer = otel.Tracer("craft-inventory/http")

// requestIDKey clave que usa el middleware requestid de Fiber.
const requestIDKey = "requestid"

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals(requestIDKey).(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

// Observe abre un span por petición, registra las métricas HTTP y escribe la línea de acceso.
// La ruta se etiqueta con el patrón (/production_orders/:id) y no con la URL concreta.
func Observe(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		ctx, span := tracer.Start(c.UserContext(), c.Method()+" "+c.Path())
		defer span.End()
		c.SetUserContext(ctx)

		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler fije el status antes de medir.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		route := c.Route().Path
		elapsed := time.Since(start)

		m.RequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(c.Method(), route).Observe(elapsed.Seconds())

		span.SetName(c.Method() + " " + route)
		span.SetAttributes(
			attribute.String("http.route", route),
			attribute.Int("http.status_code", status),
		)
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, strconv.Itoa(status))
		}

		ev := log.WithContext(ctx).Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.WithContext(ctx).Error()
		}
		ev.Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("request")
		return nil
	}
}
