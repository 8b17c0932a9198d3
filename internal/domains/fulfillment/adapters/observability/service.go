package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	types "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application/types"
	fulfillmentdomain "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"
	fulfillmentports "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/ports"
)

const tracerName = "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/observability/service"

// Service decorates the fulfillment service with tracing, logging, and metrics.
type Service struct {
	inner   fulfillmentports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core fulfillment service.
func New(inner fulfillmentports.Service, opts ...Option) fulfillmentports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input types.CreateOrderInput) (*fulfillmentdomain.SalesOrder, error) {
	ctx, span := s.tracer.Start(ctx, "FulfillmentService.CreateOrder",
		trace.WithAttributes(attribute.String("order.number", input.Number)))
	defer span.End()

	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create order", slog.String("order.number", input.Number))
	}
	s.logInfo(ctx, "order created", slog.Int64("order.id", result.ID), slog.String("order.number", result.Number))
	return result, nil
}

func (s *Service) ConfirmOrder(ctx context.Context, orderID int64) (*fulfillmentdomain.SalesOrder, error) {
	ctx, span := s.tracer.Start(ctx, "FulfillmentService.ConfirmOrder",
		trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	result, err := s.inner.ConfirmOrder(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to confirm order", slog.Int64("order.id", orderID))
	}
	s.logInfo(ctx, "order confirmed", slog.Int64("order.id", result.ID), slog.String("order.number", result.Number))
	return result, nil
}

func (s *Service) GetOrderByID(ctx context.Context, orderID int64) (*fulfillmentdomain.SalesOrder, error) {
	ctx, span := s.tracer.Start(ctx, "FulfillmentService.GetOrderByID",
		trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	result, err := s.inner.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", orderID))
	}
	return result, nil
}

func (s *Service) ValidateShipment(ctx context.Context, input types.ValidateShipmentInput) (*types.ValidateShipmentResult, error) {
	ctx, span := s.tracer.Start(ctx, "FulfillmentService.ValidateShipment",
		trace.WithAttributes(
			attribute.Int64("order.id", input.OrderID),
			attribute.Int("shipment.requested_lines", len(input.Items)),
			attribute.String("shipment.carrier", input.Carrier.Type),
		))
	defer span.End()

	s.logInfo(ctx, "validating shipment", slog.Int64("order.id", input.OrderID), slog.Int("lines", len(input.Items)))
	result, err := s.inner.ValidateShipment(ctx, input)
	if err != nil {
		s.metrics.recordShipmentRejected(ctx)
		return nil, s.handleError(ctx, span, err, "shipment validation failed", slog.Int64("order.id", input.OrderID))
	}
	span.SetAttributes(
		attribute.String("shipment.id", result.ShipmentID),
		attribute.String("order.status", string(result.NewStatus)),
	)
	s.metrics.recordShipmentValidated(ctx, result.NewStatus)
	s.logInfo(ctx, "shipment validated",
		slog.Int64("order.id", input.OrderID),
		slog.String("shipment.id", result.ShipmentID),
		slog.String("order.status", string(result.NewStatus)),
		slog.Int("lines_shipped", result.ItemsShipped))
	return result, nil
}

func (s *Service) ListShipments(ctx context.Context, orderID int64) ([]*fulfillmentdomain.Shipment, error) {
	ctx, span := s.tracer.Start(ctx, "FulfillmentService.ListShipments",
		trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	result, err := s.inner.ListShipments(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list shipments", slog.Int64("order.id", orderID))
	}
	span.SetAttributes(attribute.Int("shipment.count", len(result)))
	return result, nil
}

func (s *Service) RepairOrderLedger(ctx context.Context, orderID int64) (*types.RepairReport, error) {
	ctx, span := s.tracer.Start(ctx, "FulfillmentService.RepairOrderLedger",
		trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	s.logInfo(ctx, "repairing order ledger", slog.Int64("order.id", orderID))
	result, err := s.inner.RepairOrderLedger(ctx, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "ledger repair failed", slog.Int64("order.id", orderID))
	}
	s.metrics.recordRepair(ctx, result.LinesAdjusted)
	s.logInfo(ctx, "ledger repair completed",
		slog.Int64("order.id", orderID),
		slog.Int("lines_adjusted", result.LinesAdjusted),
		slog.Int64("units_recovered", result.UnitsRecovered),
		slog.Int("manual_review", len(result.ManualReview)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	shipmentsValidated metric.Int64Counter
	shipmentsRejected  metric.Int64Counter
	linesRepaired      metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	validated, _ := m.Int64Counter("fulfillment.service.shipments_validated",
		metric.WithDescription("Number of shipment validations that completed"))
	rejected, _ := m.Int64Counter("fulfillment.service.shipments_rejected",
		metric.WithDescription("Number of shipment validations that failed a gate"))
	repaired, _ := m.Int64Counter("fulfillment.service.lines_repaired",
		metric.WithDescription("Number of order lines adjusted by ledger repair"))
	return serviceMetrics{shipmentsValidated: validated, shipmentsRejected: rejected, linesRepaired: repaired}
}

func (m serviceMetrics) recordShipmentValidated(ctx context.Context, status fulfillmentdomain.Status) {
	if m.shipmentsValidated != nil {
		m.shipmentsValidated.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordShipmentRejected(ctx context.Context) {
	if m.shipmentsRejected != nil {
		m.shipmentsRejected.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordRepair(ctx context.Context, lines int) {
	if m.linesRepaired != nil {
		m.linesRepaired.Add(ctx, int64(lines))
	}
}

var _ fulfillmentports.Service = (*Service)(nil)
