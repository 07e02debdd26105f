package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/seaicedyn/driftdeform/internal/config"
	"github.com/seaicedyn/driftdeform/internal/logging"
	"github.com/seaicedyn/driftdeform/internal/run"
	"github.com/seaicedyn/driftdeform/internal/telemetry"
)

var version = "dev"

var (
	logManager *logging.SlogManager
	logger     *slog.Logger
)

func main() {
	start := time.Now().UTC()

	if err := config.Load("."); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	runCtx := run.NewContext(config.GetString("runLabel"))

	logsDir := config.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "creating logs dir:", err)
		os.Exit(1)
	}

	var logWriter *os.File
	logFile, err := os.Create(logging.LogFilePath(logsDir, "driftdeform", start))
	if err == nil {
		logWriter = logFile
		defer logFile.Close()
	}

	provider, cleanup, err := setupTelemetry(logsDir, start)
	if err != nil {
		fmt.Fprintln(os.Stderr, "telemetry:", err)
		os.Exit(1)
	}
	defer cleanup()

	logManager = logging.NewSlogManager()
	logManager.Setup(logWriter, config.GetString("logLevel"), provider.LoggerProvider(), runCtx.LogAttrs)
	logger = logManager.Logger()

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Println("usage: driftdeform <demo|version>")
		return
	}

	switch strings.ToLower(args[0]) {
	case "demo":
		logger.Info("Starting demo analysis run...", "version", version)
		demoStart := time.Now()
		if err := runDemo(context.Background(), runCtx); err != nil {
			logger.Error("Demo run failed", "error", err)
			os.Exit(1)
		}
		logger.Info("Demo run complete.", "duration", time.Since(demoStart))
	case "version":
		fmt.Println(version)
	default:
		fmt.Println("unknown command:", args[0])
		os.Exit(2)
	}
}

// setupTelemetry builds the telemetry provider when enabled, with log and
// metric export into the logs directory. The returned cleanup flushes and
// shuts the provider down.
func setupTelemetry(logsDir string, start time.Time) (*telemetry.Provider, func(), error) {
	cfg := config.OTel()
	if !cfg.Enabled {
		p, err := telemetry.New(telemetry.Config{Enabled: false})
		return p, func() {}, err
	}

	stamp := start.Format("20060102_150405")
	otelLog, err := os.Create(filepath.Join(logsDir, fmt.Sprintf("driftdeform.%s.otel.log", stamp)))
	if err != nil {
		return nil, nil, err
	}
	metricLog, err := os.Create(filepath.Join(logsDir, fmt.Sprintf("driftdeform.%s.metrics.log", stamp)))
	if err != nil {
		otelLog.Close()
		return nil, nil, err
	}

	p, err := telemetry.New(telemetry.Config{
		Enabled:      true,
		ServiceName:  cfg.ServiceName,
		BatchTimeout: 5 * time.Second,
		LogWriter:    otelLog,
		MetricWriter: metricLog,
	})
	if err != nil {
		otelLog.Close()
		metricLog.Close()
		return nil, nil, err
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := p.Shutdown(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "telemetry shutdown:", err)
		}
		otelLog.Close()
		metricLog.Close()
	}
	return p, cleanup, nil
}
