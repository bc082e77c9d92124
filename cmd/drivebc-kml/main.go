package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/bcroads/drivebc-kml/config"
	"github.com/bcroads/drivebc-kml/converter"
	"github.com/bcroads/drivebc-kml/drivebc"
	"github.com/bcroads/drivebc-kml/observability"
	"github.com/bcroads/drivebc-kml/pipeline"
)

func main() {
	mode := flag.String("mode", "oneshot", "oneshot|serve")
	configPath := flag.String("config", "", "path to config.yml (defaults searched when empty)")
	eventsURL := flag.String("events", "", "events endpoint URL (overrides config)")
	ferriesURL := flag.String("ferries", "", "ferries endpoint URL (overrides config)")
	noFerries := flag.Bool("noFerries", false, "skip the ferries source")
	outDir := flag.String("outDir", "", "output directory (overrides config)")
	outputMode := flag.String("outputMode", "", "live|export (overrides config)")
	logLevel := flag.String("logLevel", "info", "debug|info|warn|error")
	logFormat := flag.String("logFormat", "text", "text|json")
	flag.Parse()

	logger := observability.NewLogger(*logLevel, *logFormat)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *eventsURL != "" {
		cfg.Sources.EventsURL = *eventsURL
	}
	if *ferriesURL != "" {
		cfg.Sources.FerriesURL = *ferriesURL
	}
	if *noFerries {
		disabled := false
		cfg.Converter.IncludeFerries = &disabled
	}
	if *outDir != "" {
		cfg.Output.Dir = *outDir
	}
	if *outputMode != "" {
		cfg.Output.Mode = *outputMode
	}

	metrics := observability.NewMetrics()
	conv := converter.New(converter.Options{
		IncludeFerries: cfg.Converter.FerriesEnabled(),
		GeometryPolicy: cfg.Converter.GeometryPolicy,
		Live:           cfg.Output.Mode == "live" || *mode == "serve",
	})
	client := drivebc.NewClient(time.Duration(cfg.Sources.TimeoutMS) * time.Millisecond)
	p := pipeline.New(client, conv, cfg, logger, metrics)

	switch *mode {
	case "oneshot":
		runOneshot(p, logger)
	case "serve":
		runServer(p, cfg, logger)
	default:
		logger.Error("unknown mode", "mode", *mode)
		os.Exit(1)
	}
}

func runOneshot(p *pipeline.Pipeline, logger *slog.Logger) {
	out, _, err := p.Generate(context.Background())
	if err != nil {
		logger.Error("generation failed", "error", err)
		os.Exit(1)
	}
	path, err := p.WriteFile(out)
	if err != nil {
		logger.Error("write failed", "error", err)
		os.Exit(1)
	}
	os.Stdout.WriteString(path + "\n")
}
