package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	customerdomain "github.com/commercekit/go-order-api/internal/domains/customers/domain"
	customerports "github.com/commercekit/go-order-api/internal/domains/customers/ports"
)

const tracerName = "github.com/commercekit/go-order-api/internal/domains/customers/adapters/observability/service"

// Service decorates the customers service with tracing, logging, and metrics.
type Service struct {
	inner   customerports.Service
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

// New wraps the core customers service.
func New(inner customerports.Service, opts ...Option) customerports.Service {
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

func (s *Service) CreateCustomer(ctx context.Context, customer *customerdomain.Customer) (*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.CreateCustomer")
	defer span.End()

	s.logInfo(ctx, "creating customer", slog.String("customer.email", customer.Email))
	result, err := s.inner.CreateCustomer(ctx, customer)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create customer")
	}
	s.metrics.recordCreated(ctx)
	s.logInfo(ctx, "customer created", slog.String("customer.id", result.ID))
	return result, nil
}

func (s *Service) GetCustomerByID(ctx context.Context, id string) (*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.GetCustomerByID", trace.WithAttributes(attribute.String("customer.id", id)))
	defer span.End()

	result, err := s.inner.GetCustomerByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load customer", slog.String("customer.id", id))
	}
	return result, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "CustomerService.DeleteCustomer", trace.WithAttributes(attribute.String("customer.id", id)))
	defer span.End()

	if err := s.inner.DeleteCustomer(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete customer", slog.String("customer.id", id))
	}
	s.logInfo(ctx, "customer deleted", slog.String("customer.id", id))
	return nil
}

func (s *Service) ListCustomers(ctx context.Context) ([]*customerdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CustomerService.ListCustomers")
	defer span.End()

	result, err := s.inner.ListCustomers(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list customers")
	}
	span.SetAttributes(attribute.Int("customers.count", len(result)))
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

type serviceMetrics struct {
	customersCreated metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	created, _ := m.Int64Counter("customers.service.created", metric.WithDescription("Number of customers created"))
	return serviceMetrics{customersCreated: created}
}

func (m serviceMetrics) recordCreated(ctx context.Context) {
	if m.customersCreated != nil {
		m.customersCreated.Add(ctx, 1)
	}
}

var _ customerports.Service = (*Service)(nil)
