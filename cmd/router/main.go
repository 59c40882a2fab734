package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"leoroute/internal/config"
	"leoroute/internal/controller"
	"leoroute/internal/graphprovider"
	"leoroute/internal/logger"
	zapfactory "leoroute/internal/logger/zap"
	"leoroute/internal/telemetry"
)

var defaultConfigPath = "config/router/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %q: %v", *configPath, err)
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.ValidateConfig(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	var lgr logger.Logger
	if cfg.Logger.Active {
		zapLog, err := zapfactory.New(cfg.Logger)
		if err != nil {
			log.Fatalf("failed to initialize logger: %v", err)
		}
		defer func() { _ = zapLog.Sync() }()
		lgr = zapfactory.NewZapAdapter(zapLog)
	} else {
		lgr = &logger.NopLogger{}
	}
	cfg.LogConfig(lgr)
	lgr = lgr.Named("router")

	shutdown, err := telemetry.InitTracer(cfg.Telemetry, "leoroute-router", lgr.Named("telemetry"))
	if err != nil {
		lgr.Error("failed to initialize tracer", logger.F("err", err))
		os.Exit(1)
	}
	defer func() { _ = shutdown(context.Background()) }()

	var provider graphprovider.Provider
	switch cfg.GraphProvider.Kind {
	case "jsonfile":
		provider = graphprovider.NewJSONFile(cfg.GraphProvider.Dir)
	case "static":
		lgr.Error("graph provider kind \"static\" has no CLI-facing source; use jsonfile for cmd/router")
		os.Exit(1)
	default:
		lgr.Error("unsupported graph provider kind", logger.F("kind", cfg.GraphProvider.Kind))
		os.Exit(1)
	}

	ctrl, err := controller.New(cfg, provider, lgr.Named("controller"))
	if err != nil {
		lgr.Error("failed to initialize router controller", logger.F("err", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stepsPerSecond := float64(1e9) / float64(cfg.Router.TimeStepNs)
	numSteps := int64(float64(cfg.Router.DurationS) * stepsPerSecond)

	lgr.Info("router starting", logger.F("algorithm", cfg.Router.Algorithm), logger.F("steps", numSteps))

	for t := int64(0); t < numSteps; t++ {
		select {
		case <-ctx.Done():
			lgr.Info("shutdown signal received, stopping after current step", logger.FStep(t))
			return
		default:
		}

		if err := ctrl.Step(ctx, t); err != nil {
			lgr.Error("fatal error processing step", logger.FStep(t), logger.F("err", err))
			os.Exit(1)
		}
	}

	lgr.Info("router finished", logger.F("steps", numSteps))
}
