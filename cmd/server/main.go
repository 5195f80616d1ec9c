package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"mealQuote/internal/config"
	"mealQuote/internal/modules/quotebuilder/application/handler"
	"mealQuote/internal/modules/quotebuilder/application/usecase"
	"mealQuote/internal/modules/quotebuilder/domain"
	"mealQuote/internal/modules/quotebuilder/infrastructure"
	transport "mealQuote/internal/modules/quotebuilder/interface"
	"mealQuote/internal/platform/broker"
	"mealQuote/internal/shared/auth"
	"mealQuote/internal/shared/logging"
)

var changeActions = []string{domain.ActionCreated, domain.ActionUpdated, domain.ActionDeleted}

func main() {
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, logWriter, err := logging.Setup(cfg.Logging.Directory, logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))
	slog.Info("kafka config resolved", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("group", cfg.Kafka.GroupID))

	metrics := infrastructure.NewMetrics()
	restClient := func(service, baseURL string) *infrastructure.RESTClient {
		return infrastructure.NewRESTClient(baseURL, infrastructure.RESTOptions{
			Service:   service,
			Timeout:   cfg.REST.Timeout,
			APIKey:    cfg.REST.APIKey,
			RateLimit: cfg.REST.RateLimit,
			RateBurst: cfg.REST.RateBurst,
			Observer:  metrics,
		})
	}

	cache := usecase.NewQueryCache(cfg.Cache.TTL, metrics)
	validator := usecase.NewPayloadValidator()

	quoteUC := usecase.NewQuoteUseCase(infrastructure.NewQuoteHTTPClient(restClient("quotes", cfg.REST.QuoteURL)), cache, validator)
	pricingUC := usecase.NewPricingUseCase(infrastructure.NewPricingHTTPClient(restClient("pricing", cfg.REST.PricingURL)), cache, validator)
	catalogUC := usecase.NewCatalogUseCase(infrastructure.NewProductHTTPClient(restClient("products", cfg.REST.ProductsURL)), cache, validator)
	userUC := usecase.NewUserUseCase(infrastructure.NewUserHTTPClient(restClient("users", cfg.REST.UsersURL)), cache, validator)

	tokens := auth.NewSessionTokens(cfg.Security.SessionSecret, cfg.Security.SessionTTL)
	gate := usecase.NewPricingGate(cfg.Security.PricingPassword, cfg.Security.PricingPasswordHash, tokens)

	hub := infrastructure.NewHub(metrics)
	broadcastUC := usecase.NewBroadcastUseCase(hub)

	registry := infrastructure.NewHandlerRegistry()
	for entity, topics := range cfg.Kafka.Topics {
		for _, topic := range topics {
			registry.Register(handler.NewEntityEventHandler(entity, topic, changeActions, cache, broadcastUC))
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	broker.StartKafkaConsumers(ctx, registry, cfg.Kafka.Brokers, cfg.Kafka.GroupID)

	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = transport.JSONSerializer{}
	e.Logger.SetOutput(logWriter)
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())

	transport.RegisterRoutes(e, transport.Dependencies{
		Quotes:     quoteUC,
		Pricing:    pricingUC,
		Catalog:    catalogUC,
		Users:      userUC,
		Gate:       gate,
		Cache:      cache,
		Hub:        hub,
		Metrics:    metrics.Handler(),
		SendBuffer: cfg.Websocket.SendBuffer,
	})

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", slog.Any("error", err))
	}
}
