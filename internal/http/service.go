package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/apierr"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/metric"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/middleware"
	"github.com/tuanvumaihuynh/product-catalog/internal/http/swagger"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
)

var tracer = otel.Tracer("internal/http")

// EventsPath is where the events receiver accepts product events.
const EventsPath = "/events"

// Service represents the HTTP service.
type Service struct {
	cfg     config.HTTP
	logger  *slog.Logger
	metrics *metric.Metrics

	productSvc    service.ProductService
	actorResolver ActorResolver
	eventReceiver http.Handler
}

type Option func(*Service)

// WithProducts serves the product query and mutation routes.
func WithProducts(productSvc service.ProductService, actorResolver ActorResolver) Option {
	return func(s *Service) {
		s.productSvc = productSvc
		s.actorResolver = actorResolver
	}
}

// WithEventReceiver serves the events receiver on EventsPath.
func WithEventReceiver(receiver http.Handler) Option {
	return func(s *Service) {
		s.eventReceiver = receiver
	}
}

type CleanupFunc func(ctx context.Context) error

func New(
	cfg config.HTTP,
	log *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		cfg:     cfg.WithDefaults(),
		logger:  log.With(slog.String("service", "http")),
		metrics: metric.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	return s.RunWithServer(ctx, s.Router())
}

// Router builds the handler serving every route of the service.
func (s *Service) Router() http.Handler {
	r := chi.NewRouter()
	s.RegisterMiddlewares(r)

	if s.cfg.Swagger {
		swagger.Register(r)
	}

	s.RegisterHandlers(r)

	return r
}

func (s *Service) RunWithServer(ctx context.Context, handler http.Handler) (CleanupFunc, error) {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64 KB
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.ErrorContext(ctx, "http server stopped", slog.Any("error", err))
		}
	}()

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func (s *Service) RegisterMiddlewares(r chi.Router) {
	r.Use(
		middleware.Recoverer(s.logger),
		middleware.Trace(tracer),
		middleware.Metrics(s.metrics),
		middleware.CorrelationID(),
		middleware.Cors(),
		middleware.Logging(s.logger),
	)
}

func (s *Service) RegisterHandlers(r chi.Router) {
	if s.productSvc != nil {
		query := newProductQueryHandler(s, s.productSvc)
		r.Get("/products", query.listProducts)
		r.Get("/products/{id}", query.getProduct)

		mutation := newProductMutationHandler(s, s.productSvc, s.actorResolver)
		r.Post("/products", mutation.createProduct)
		r.Put("/products/{id}", mutation.updateProduct)
		r.Delete("/products/{id}", mutation.deleteProduct)
	}

	if s.eventReceiver != nil {
		r.Method(http.MethodPost, EventsPath, s.eventReceiver)
	}

	r.Handle(middleware.MetricsPath, promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	}))

	r.NotFound(s.handleBadRequest)
	r.MethodNotAllowed(s.handleBadRequest)
}

func (s *Service) handleBadRequest(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, apierr.BadRequest.StatusCode, apierr.BadRequest)
}

func (s *Service) handleError(w http.ResponseWriter, r *http.Request, res apierr.ErrorResponse, err error) {
	logLevel := slog.LevelInfo
	if res.StatusCode >= 500 {
		logLevel = slog.LevelError
	} else if res.StatusCode >= 400 {
		logLevel = slog.LevelWarn
	}
	s.logger.Log(r.Context(), logLevel, "http response error", slog.Any("error", err))

	s.writeJSON(w, r, res.StatusCode, res)
}

func (s *Service) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.ErrorContext(r.Context(), "error encoding response",
			slog.Any("error", err))
	}
}
