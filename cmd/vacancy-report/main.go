// Command vacancy-report fetches hh.ru vacancies for one region, prints a
// salary summary and renders a histogram of monthly salary midpoints.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/Sternrassler/vacancy-report/internal/config"
	"github.com/Sternrassler/vacancy-report/pkg/cache"
	"github.com/Sternrassler/vacancy-report/pkg/client"
	"github.com/Sternrassler/vacancy-report/pkg/hh"
	"github.com/Sternrassler/vacancy-report/pkg/logging"
	"github.com/Sternrassler/vacancy-report/pkg/metrics"
	"github.com/Sternrassler/vacancy-report/pkg/pagination"
	"github.com/Sternrassler/vacancy-report/pkg/plot"
	"github.com/Sternrassler/vacancy-report/pkg/report"
	"github.com/Sternrassler/vacancy-report/pkg/vacancy"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "vacancy-report: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
		Output: os.Stderr,
	})
	runID := logging.StartRun()
	metrics.RecordRun(runID, time.Now())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, os.Stdout)
	stop()

	if cfg.MetricsTextfile != "" {
		if mErr := metrics.WriteTextfile(cfg.MetricsTextfile, nil); mErr != nil {
			log.Warn().Err(mErr).Msg("Failed to write metrics textfile")
		}
	}

	if err != nil {
		if client.IsTransportError(err) {
			log.Error().Err(err).Msg("Listing API unreachable or refused the request")
		} else {
			log.Error().Err(err).Msg("Report failed")
		}
		os.Exit(1)
	}
}

// run executes one fetch, normalize, report pass. Nothing is written to out
// unless fetching and normalization both succeed.
func run(ctx context.Context, cfg config.Config, out io.Writer) error {
	logger := logging.NewLogger("report")

	var respCache client.ResponseCache
	if cfg.RedisURL != "" {
		rdb, err := connectRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, running without cache")
		} else {
			defer rdb.Close()
			respCache = cache.NewStore(rdb)
		}
	}

	apiClient, err := client.New(client.Config{
		BaseURL:   cfg.API.BaseURL,
		UserAgent: cfg.API.UserAgent,
		Timeout:   cfg.API.Timeout,
		Cache:     respCache,
	})
	if err != nil {
		return fmt.Errorf("create api client: %w", err)
	}

	source, err := hh.NewSource(apiClient)
	if err != nil {
		return err
	}

	fetcher := pagination.NewFetcher[hh.Listing](source, pagination.Config{
		OnMalformed: cfg.MalformedPolicy(),
	})
	result, err := fetcher.Run(ctx, pagination.Query{
		AreaID:   cfg.Fetch.Area,
		Target:   cfg.Fetch.Target,
		PageSize: cfg.Fetch.PerPage,
	})
	if err != nil {
		return fmt.Errorf("fetch vacancies: %w", err)
	}
	logger.Info().
		Int("listings", len(result.Items)).
		Int("requests", result.Requests).
		Str("reason", string(result.Reason)).
		Msg("Fetch complete")

	opts := []vacancy.Option{vacancy.WithVariant(cfg.Variant())}
	if cfg.Report.SkipInvalid {
		opts = append(opts, vacancy.SkipInvalid())
	}
	normalizer := vacancy.NewNormalizer(opts...)
	logger.Debug().Str("variant", string(normalizer.Variant())).Bool("skip_invalid", cfg.Report.SkipInvalid).Msg("Normalizing listings")
	batch, err := normalizer.NormalizeAll(result.Items)
	if err != nil {
		return fmt.Errorf("normalize vacancies: %w", err)
	}
	if len(batch.Skipped) > 0 {
		logger.Warn().Int("skipped", len(batch.Skipped)).Msg("Invalid listings skipped")
	}

	reportOpts := report.OptionsFor(cfg.Variant(), cfg.Filter())
	summary := report.Build(batch.Records, reportOpts)
	if err := report.WriteSummary(out, summary, reportOpts.Filter); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if summary.Retained == 0 {
		logger.Warn().Msg("No salary ranges to plot")
		return nil
	}

	sink := plot.NewHistogramSink(cfg.Report.PlotPath)
	if err := report.Publish(sink, summary); err != nil {
		return err
	}
	fmt.Fprintf(out, "Histogram written to %s\n", sink.Path)

	logger.Info().Int("retained", summary.Retained).Str("plot", sink.Path).Msg("Report complete")
	return nil
}

func connectRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return rdb, nil
}
