// Package main is the entry point for cdnflow-bench.
//
// cdnflow-bench generates synthetic CDN delivery topologies and solves
// each for minimum-cost maximum flow, reporting timing and flow/cost
// results for small, medium, and large scenarios plus a scalability
// series. It is benchmark tooling, not a long-running service: it runs
// to completion and exits, serving /metrics only for the duration of
// the run.
//
// # Configuration
//
// Configuration is loaded with the following priority (highest to
// lowest):
//  1. Environment variables (prefix: CDNFLOW_)
//  2. Config files (config.yaml, config/config.yaml, /etc/cdnflow/config.yaml)
//  3. Default values
//
// Key environment variables:
//
//	CDNFLOW_APP_NAME                          - service name (default: cdnflow-bench)
//	CDNFLOW_LOG_LEVEL                         - debug, info, warn, error (default: info)
//	CDNFLOW_METRICS_ENABLED                   - serve /metrics during the run (default: true)
//	CDNFLOW_METRICS_PORT                      - metrics HTTP port (default: 9090)
//	CDNFLOW_CACHE_ENABLED                     - memoize solve results (default: false)
//	CDNFLOW_CACHE_DRIVER                      - memory, redis (default: memory)
//	CDNFLOW_SCENARIO_SEED                     - topology RNG seed (default: 42)
//	CDNFLOW_SCENARIO_SCALABILITY_STEPS        - number of scalability steps (default: 5)
//
// # Output
//
// A report.Summary is marshaled to JSON and written to stdout, or to
// the file named by the -out flag.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"cdnflow/pkg/cache"
	"cdnflow/pkg/config"
	"cdnflow/pkg/flow"
	"cdnflow/pkg/logger"
	"cdnflow/pkg/metrics"
	"cdnflow/pkg/report"
	"cdnflow/pkg/topology"
)

func main() {
	outPath := flag.String("out", "", "write the report JSON to this file instead of stdout")
	repetitions := flag.Int("repetitions", 5, "number of repetitions for the small and medium scenarios")
	flag.Parse()

	// =====================================================================
	// Configuration
	// =====================================================================
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =====================================================================
	// Logging
	// =====================================================================
	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	// =====================================================================
	// Metrics
	// =====================================================================
	m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)

	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metricsServer = metrics.NewServer(cfg.Metrics.Port)
		metricsServer.Start()
		defer metricsServer.Shutdown()
	}

	// =====================================================================
	// Result cache
	// =====================================================================
	var solverCache *cache.SolverCache
	if cfg.Cache.Enabled {
		c, err := cache.New(cache.FromConfig(&cfg.Cache))
		if err != nil {
			logger.Log.Warn("failed to init cache, continuing without it", "error", err)
		} else {
			defer c.Close()
			solverCache = cache.NewSolverCache(c, cfg.Cache.DefaultTTL)
		}
	}

	ctx := context.Background()
	summary := report.Summary{}

	runID := uuid.New().String()
	logger.Log = logger.WithRequestID(runID)
	logger.Log.Info("starting benchmark run")

	// =====================================================================
	// Small-scale scenario
	// =====================================================================
	logger.Log.Info("running small-scale scenario", "repetitions", *repetitions)
	for i := 0; i < *repetitions; i++ {
		s := topology.GenerateSmall()
		rec := solveAndRecord(ctx, m, solverCache, cfg.Solver, "small", s)
		summary.SmallScale = append(summary.SmallScale, rec)
	}

	// =====================================================================
	// Medium-scale scenario
	// =====================================================================
	logger.Log.Info("running medium-scale scenario", "repetitions", *repetitions)
	for i := 0; i < *repetitions; i++ {
		s := topology.GenerateMedium(cfg.Scenario, cfg.Scenario.Seed+int64(i))
		rec := solveAndRecord(ctx, m, solverCache, cfg.Solver, "medium", s)
		summary.MediumScale = append(summary.MediumScale, rec)
	}

	// =====================================================================
	// Large-scale scenario
	// =====================================================================
	logger.Log.Info("running large-scale scenario")
	large := topology.GenerateLarge(cfg.Scenario, 5, 25, 50, cfg.Scenario.Seed)
	summary.LargeScale = append(summary.LargeScale, solveAndRecord(ctx, m, solverCache, cfg.Solver, "large", large))

	// =====================================================================
	// Scalability series
	// =====================================================================
	logger.Log.Info("running scalability series", "steps", cfg.Scenario.ScalabilitySteps)
	for _, s := range topology.GenerateScalability(cfg.Scenario, cfg.Scenario.ScalabilitySteps, cfg.Scenario.Seed) {
		start := time.Now()
		res, err := s.Graph.Solve(s.Source, s.Sink, s.Demand)
		if err != nil {
			logger.Log.Error("solve failed", "scale", s.Scale, "error", err)
			continue
		}
		res.ElapsedTime = time.Since(start)
		recordMetrics(m, "scalability", cfg.Solver, s, res)
		summary.Scalability = append(summary.Scalability, report.NewScalabilityRecord(s, res))
	}

	if err := writeSummary(summary, *outPath); err != nil {
		logger.Log.Error("failed to write report", "error", err)
		os.Exit(1)
	}
}

func solveAndRecord(ctx context.Context, m *metrics.Metrics, solverCache *cache.SolverCache, solverCfg config.SolverConfig, label string, s topology.Scenario) report.Record {
	if solverCache != nil {
		if cached, found, err := solverCache.Get(ctx, s.Graph, s.Source, s.Sink, s.Demand); err == nil && found {
			m.RecordCacheHit(label)
			return report.NewRecord(s, cached.ToResult())
		}
		m.RecordCacheMiss(label)
	}

	start := time.Now()
	res, err := s.Graph.Solve(s.Source, s.Sink, s.Demand)
	if err != nil {
		logger.Log.Error("solve failed", "scenario", label, "error", err)
		return report.Record{}
	}
	res.ElapsedTime = time.Since(start)

	recordMetrics(m, label, solverCfg, s, res)

	if solverCache != nil {
		if err := solverCache.Set(ctx, s.Graph, s.Source, s.Sink, s.Demand, res, 0); err != nil {
			logger.Log.Warn("failed to cache solve result", "scenario", label, "error", err)
		}
	}

	return report.NewRecord(s, res)
}

func recordMetrics(m *metrics.Metrics, label string, solverCfg config.SolverConfig, s topology.Scenario, res flow.Result) {
	m.RecordGraphSize(label, s.TotalNodes(), s.NumArcs())
	m.RecordSolveOperation(label, res.Satisfied, res.ElapsedTime, res.TotalFlow, res.TotalCost, s.Demand)

	if !res.Satisfied && solverCfg.WarnOnUnsaturated {
		logger.Log.Warn("scenario demand not fully satisfied",
			"scenario", label, "demand", s.Demand, "flow", res.TotalFlow)
	}
}

func writeSummary(summary report.Summary, outPath string) error {
	data, err := summary.JSON()
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if outPath == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}

	return os.WriteFile(outPath, append(data, '\n'), 0644)
}
