package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/example/inventory-service/internal/domains/inventory/domain"
	inventoryports "github.com/example/inventory-service/internal/domains/inventory/ports"
)

const tracerName = "github.com/example/inventory-service/internal/domains/inventory/adapters/observability/service"

// Service decorates the inventory ledger with tracing, logging, and metrics.
type Service struct {
	inner      inventoryports.Service
	tracer     trace.Tracer
	logger     *slog.Logger
	adjustHist metric.Int64Histogram
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
		if m == nil {
			return
		}
		hist, _ := m.Int64Histogram("inventory.service.adjustments",
			metric.WithDescription("Signed quantity deltas applied to the ledger"))
		s.adjustHist = hist
	}
}

// New wraps the core inventory ledger service.
func New(inner inventoryports.Service, opts ...Option) inventoryports.Service {
	s := &Service{
		inner:  inner,
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
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

func (s *Service) GetByProduct(ctx context.Context, productID int64) (*domain.StockLevel, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.GetByProduct",
		trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()

	result, err := s.inner.GetByProduct(ctx, productID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to read stock level", slog.Int64("product.id", productID))
	}
	return result, nil
}

func (s *Service) SetQuantity(ctx context.Context, productID int64, quantity int) (*domain.StockLevel, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.SetQuantity",
		trace.WithAttributes(attribute.Int64("product.id", productID), attribute.Int("quantity", quantity)))
	defer span.End()

	result, err := s.inner.SetQuantity(ctx, productID, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to set stock level", slog.Int64("product.id", productID))
	}
	s.logInfo(ctx, "stock level set", slog.Int64("product.id", productID), slog.Int("quantity", result.Quantity))
	return result, nil
}

func (s *Service) Adjust(ctx context.Context, productID int64, delta int) (*domain.StockLevel, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.Adjust",
		trace.WithAttributes(attribute.Int64("product.id", productID), attribute.Int("delta", delta)))
	defer span.End()

	result, err := s.inner.Adjust(ctx, productID, delta)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to adjust stock level",
			slog.Int64("product.id", productID), slog.Int("delta", delta))
	}
	if s.adjustHist != nil {
		s.adjustHist.Record(ctx, int64(delta))
	}
	s.logInfo(ctx, "stock level adjusted",
		slog.Int64("product.id", productID), slog.Int("delta", delta), slog.Int("quantity", result.Quantity))
	return result, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.StockLevel, error) {
	ctx, span := s.tracer.Start(ctx, "InventoryService.List")
	defer span.End()

	result, err := s.inner.List(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list stock levels")
	}
	span.SetAttributes(attribute.Int("stock.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.logger != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
	}
	return err
}

var _ inventoryports.Service = (*Service)(nil)
