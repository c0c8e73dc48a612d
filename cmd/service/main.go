package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/forgeworks/weather-mcp/internal/config"
	httpserver "github.com/forgeworks/weather-mcp/internal/http"
	"github.com/forgeworks/weather-mcp/internal/observability"
	"github.com/forgeworks/weather-mcp/internal/openmeteo"
	"github.com/forgeworks/weather-mcp/internal/tools"
)

func main() {
	stdio := flag.Bool("stdio", false, "use STDIO transport instead of HTTP")
	host := flag.String("host", "", "host for HTTP transport (overrides config)")
	port := flag.String("port", "", "port for HTTP transport (overrides config)")
	flag.Parse()

	logger, err := observability.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	if *host != "" {
		cfg.ServerHost = *host
	}
	if *port != "" {
		cfg.ServerPort = *port
	}

	if len(cfg.TrackedCities) > 0 {
		observability.SetTrackedCities(cfg.TrackedCities)
	}

	client := openmeteo.NewClientWithEndpoints(openmeteo.Endpoints{
		Geocoding:  cfg.GeocodingURL,
		Forecast:   cfg.ForecastURL,
		AirQuality: cfg.AirQualityURL,
	}, cfg.RequestTimeout)

	server := tools.NewServer(tools.NewHandler(client, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *stdio {
		runStdio(ctx, server, logger)
		return
	}
	runHTTP(ctx, server, cfg, logger)
}

// runStdio serves a single MCP session over stdin/stdout. Logging goes to
// stderr so the protocol stream stays clean.
func runStdio(ctx context.Context, server *mcp.Server, logger *zap.Logger) {
	logger.Info("starting MCP server on stdio", zap.String("version", tools.Version))
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Fatal("stdio server", zap.Error(err))
	}
	logger.Info("stdio session ended")
}

func runHTTP(ctx context.Context, server *mcp.Server, cfg *config.Config, logger *zap.Logger) {
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	handler := httpserver.NewHandler(tools.Version, logger)
	router := httpserver.NewRouter(handler, mcpHandler, limiter, logger)

	addr := net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)
	srv := &http.Server{
		Addr:        addr,
		Handler:     router,
		ReadTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("starting MCP server on HTTP",
			zap.String("addr", "http://"+addr+"/mcp"),
			zap.String("version", tools.Version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("graceful shutdown triggered")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}

	if inFlight := httpserver.InFlightCount(); inFlight > 0 {
		logger.Info("waiting for in-flight requests", zap.Int64("count", inFlight))
		waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer waitCancel()
		if err := httpserver.WaitForInFlight(waitCtx, 100*time.Millisecond); err != nil {
			logger.Warn("in-flight requests not completed",
				zap.Error(err), zap.Int64("remaining", httpserver.InFlightCount()))
		}
	}

	if err := observability.FlushTelemetry(context.Background(), logger); err != nil {
		logger.Error("telemetry flush", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
