package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/poskadesign/events/event"
	"github.com/poskadesign/events/internal/config"
	"github.com/poskadesign/events/internal/pkg/logging"
	platformotel "github.com/poskadesign/events/internal/platform/otel"
	httppresentation "github.com/poskadesign/events/internal/presentation/http"
	"github.com/poskadesign/events/internal/widget"
	"github.com/poskadesign/events/observability"
	"github.com/poskadesign/events/observability/logctx"
	"github.com/poskadesign/events/observability/oteltrace"
	"github.com/poskadesign/events/observability/prometrics"
	"github.com/poskadesign/events/observability/telemetry"
	"github.com/poskadesign/events/observability/zaplogger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, _ := cfg.Level()

	baseLogger, err := logging.NewLogger(logging.Options{
		Service: cfg.ServiceName,
		Env:     cfg.Env,
		LogFile: cfg.LogFile,
		Level:   level,
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	systemLogger := logging.WithTrace(baseLogger, logging.SystemTraceID, logging.SystemSpanID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := platformotel.Setup(ctx, tracingOptions(cfg))
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			systemLogger.Error("tracing_shutdown_error", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	logger := zaplogger.New(baseLogger)
	tel := telemetry.New(telemetry.Config{
		Tracer:     oteltrace.New(cfg.ServiceName),
		Logger:     logger,
		Metrics:    prometrics.New("", "", reg),
		Counters:   slices.Concat(observability.EventCounters, observability.HTTPCounters),
		Histograms: slices.Concat(observability.EventHistograms, observability.HTTPHistograms),
	})

	switch cfg.Mode {
	case config.ModeServe:
		return serve(ctx, cfg, systemLogger, logger, tel, reg)
	default:
		runDemo(ctx, cfg, logger, tel)
		return nil
	}
}

func tracingOptions(cfg config.Config) platformotel.Options {
	return platformotel.Options{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
		Endpoint:    cfg.OTelEndpoint,
		Enabled:     cfg.TracingEnabled(),
	}
}

// runDemo wires a consumer to a widget once and prints what its subscribers saw.
func runDemo(ctx context.Context, cfg config.Config, logger observability.Logger, tel observability.Telemetry) {
	ctx, span := tel.Tracer().Start(ctx, "demo.Run")
	defer span.End()
	ctx = logctx.WithRunContext(ctx, logger, map[string]string{"mode": string(cfg.Mode)})

	c := widget.NewConsumer(os.Stdout, logctx.FromOr(ctx, logger), event.WithTelemetry(tel))
	defer c.Close()
	c.Run(ctx, cfg.DemoInput)
}

func serve(
	ctx context.Context,
	cfg config.Config,
	systemLogger *zap.Logger,
	logger observability.Logger,
	tel observability.Telemetry,
	reg *prometheus.Registry,
) error {
	handler := httppresentation.NewHandler(logger, tel)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		systemLogger.Info("http_server_start",
			zap.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			systemLogger.Error("http_server_error",
				zap.Error(err),
			)
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			systemLogger.Error("http_server_shutdown_error",
				zap.Error(err),
			)
			return err
		}
		systemLogger.Info("http_server_stopped")
		return nil
	})

	return g.Wait()
}
