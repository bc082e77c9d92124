package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bcroads/drivebc-kml/config"
	"github.com/bcroads/drivebc-kml/converter"
	"github.com/bcroads/drivebc-kml/drivebc"
	"github.com/bcroads/drivebc-kml/kml"
	"github.com/bcroads/drivebc-kml/observability"
)

// Fetcher retrieves one record list from an endpoint URL.
type Fetcher interface {
	FetchRecords(ctx context.Context, url string) ([]drivebc.Record, error)
}

// Stats summarizes one generation run.
type Stats struct {
	TrafficRecords int
	FerryRecords   int
	Placemarks     int
}

// Pipeline orchestrates the fetch-convert-serialize cycle.
type Pipeline struct {
	fetcher Fetcher
	conv    *converter.Converter
	cfg     config.AppConfig
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates a Pipeline with the given collaborators.
func New(fetcher Fetcher, conv *converter.Converter, cfg config.AppConfig, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher: fetcher,
		conv:    conv,
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once at least one document has been
// generated successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no document generated yet")
	}
	return nil
}

// Generate runs one complete cycle: fetch both sources, assemble the
// document, and serialize it. The two fetches run concurrently; the
// assembler only needs both results. With onFetchFailure=skip a failed
// source degrades to an empty list, with abort the run fails.
func (p *Pipeline) Generate(ctx context.Context) ([]byte, Stats, error) {
	start := time.Now()

	var (
		events, ferries []drivebc.Record
		evErr, feErr    error
		wg              sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		events, evErr = p.fetchSource(ctx, "events", p.cfg.Sources.EventsURL)
	}()
	if p.cfg.Converter.FerriesEnabled() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ferries, feErr = p.fetchSource(ctx, "ferries", p.cfg.Sources.FerriesURL)
		}()
	}
	wg.Wait()
	if evErr != nil {
		return nil, Stats{}, evErr
	}
	if feErr != nil {
		return nil, Stats{}, feErr
	}

	doc := p.conv.AssembleDocument(events, ferries)
	out := kml.Serialize(doc)

	stats := Stats{
		TrafficRecords: len(events),
		FerryRecords:   len(ferries),
		Placemarks:     doc.CountPlacemarks(),
	}
	p.observe(doc, stats, time.Since(start))
	p.ready.Store(true)

	p.logger.Info("document generated",
		"traffic_records", stats.TrafficRecords,
		"ferry_records", stats.FerryRecords,
		"placemarks", stats.Placemarks,
		"bytes", len(out),
	)
	return out, stats, nil
}

// fetchSource fetches one endpoint and applies the fetch-failure policy.
func (p *Pipeline) fetchSource(ctx context.Context, source, url string) ([]drivebc.Record, error) {
	records, err := p.fetcher.FetchRecords(ctx, url)
	if err != nil {
		p.metrics.FetchRequests.WithLabelValues(source, "error").Inc()
		if p.cfg.Converter.OnFetchFailure == "abort" {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		p.logger.Warn("fetch failed, continuing with empty list", "source", source, "error", err)
		return nil, nil
	}
	p.metrics.FetchRequests.WithLabelValues(source, "success").Inc()
	p.logger.Info("fetched records", "source", source, "count", len(records))
	return records, nil
}

func (p *Pipeline) observe(doc *kml.Document, stats Stats, elapsed time.Duration) {
	for _, f := range doc.Folders {
		switch f.Name {
		case "Traffic Events":
			p.metrics.RecordsConverted.WithLabelValues("traffic").Add(float64(f.CountPlacemarks()))
		case "Ferry Routes":
			p.metrics.RecordsConverted.WithLabelValues("ferry").Add(float64(f.CountPlacemarks()))
		}
	}
	dropped := stats.TrafficRecords + stats.FerryRecords - stats.Placemarks
	if dropped > 0 {
		p.metrics.RecordsNoGeometry.Add(float64(dropped))
	}
	p.metrics.DocumentsGenerated.Inc()
	p.metrics.BuildDuration.Observe(elapsed.Seconds())
	p.metrics.LastGeneratedEpoch.SetToCurrentTime()
}
