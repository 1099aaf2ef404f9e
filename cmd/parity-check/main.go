package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/payram/igaming-events-api/internal/parity"
	"github.com/payram/igaming-events-api/pkg/config"
	"github.com/payram/igaming-events-api/pkg/logger"
)

func main() {
	var (
		goBase      string
		legacyBase  string
		targetsPath string
		timeout     time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "events API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "legacy site base URL")
	flag.StringVar(&targetsPath, "targets", "", "optional JSON targets file")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP client timeout")
	flag.Parse()

	logr, err := logger.New(config.EnvDevelopment, config.LogConfig{Level: "info", Format: "console"})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	targets := parity.DefaultTargets
	if targetsPath != "" {
		if targets, err = parity.LoadTargets(targetsPath); err != nil {
			logr.Fatal("failed to load targets", zap.String("path", targetsPath), zap.Error(err))
		}
	}

	checker := parity.Checker{Client: &http.Client{Timeout: timeout}, GoBase: goBase, LegacyBase: legacyBase}
	breaking := 0
	for _, tgt := range targets {
		comp := checker.Compare(context.Background(), tgt)
		fields := []zap.Field{
			zap.String("method", tgt.Method),
			zap.String("path", tgt.Path),
			zap.Int("go_status", comp.GoStatus),
			zap.Int("legacy_status", comp.LegacyStatus),
			zap.Bool("body_match", comp.BodyMatch),
			zap.Duration("go_latency", comp.DurationGo),
			zap.Duration("legacy_latency", comp.DurationLegacy),
			zap.Bool("critical", tgt.Critical),
		}
		switch {
		case comp.Err != nil:
			logr.Error("parity error", append(fields, zap.Error(comp.Err))...)
		case !comp.StatusMatch || !comp.BodyMatch:
			logr.Warn("parity diff", fields...)
		default:
			logr.Info("parity ok", fields...)
		}
		if comp.Breaking() {
			breaking++
		}
	}

	if breaking > 0 {
		logr.Error("breaking diffs found", zap.Int("count", breaking))
		logr.Sync() //nolint:errcheck
		os.Exit(1)
	}
}
