package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/repository"
	"taskboard/internal/server"
	"taskboard/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the taskboard HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.JaegerAddr != "" {
		exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.JaegerAddr)))
		if err != nil {
			return err
		}
		tp := newTraceProvider(exp)
		defer func() { _ = tp.Shutdown(context.Background()) }()
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.TraceContext{})
	}
	tracer := otel.Tracer("taskboard")

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	queryCache := cache.New(cfg.CacheTTL())

	taskRepo := repository.NewTaskRepository(db, tracer)
	authorRepo := repository.NewAuthorRepository(db)

	serviceLogger := log.New(os.Stdout, "[taskboard] ", log.LstdFlags)
	taskSvc := service.NewTaskService(taskRepo, authorRepo, queryCache, serviceLogger)
	querySvc := service.NewQueryService(taskRepo, queryCache)
	authorSvc := service.NewAuthorService(authorRepo)
	reportSvc := service.NewReportService(taskRepo)

	scheduler := service.NewSchedulerService(time.Local)
	if ttl := cfg.CacheTTL(); ttl > 0 {
		if _, err := scheduler.ScheduleInterval(ttl, func() {
			if removed := queryCache.Sweep(time.Now()); removed > 0 {
				serviceLogger.Printf("cache sweep: removed %d expired entries", removed)
			}
		}); err != nil {
			return err
		}
	}
	if _, err := scheduler.ScheduleDaily(cfg.ReportTime, func() {
		summary, err := reportSvc.OverdueSummary(context.Background(), time.Now())
		if err != nil {
			serviceLogger.Printf("overdue report: %v", err)
			return
		}
		if summary != "" {
			serviceLogger.Print(summary)
		}
	}); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Handler: server.NewRouter(querySvc, taskSvc, authorSvc, db, tracer),
		Addr:    cfg.Addr,
	}

	errCh := make(chan error, 1)
	go func() {
		serviceLogger.Printf("listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	serviceLogger.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, _ := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName("taskboard")),
	)
	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}
