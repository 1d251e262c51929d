package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/korbindeman/goaw/cmd"
	"github.com/korbindeman/goaw/internal/conf"
	"github.com/korbindeman/goaw/internal/daw"
	"github.com/korbindeman/goaw/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}
	logging.SetLevel(logLevelFor(settings.Log.Level))

	daw.InitMetrics(prometheus.DefaultRegisterer)

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func logLevelFor(level string) slog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return logging.LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "fatal":
		return logging.LevelFatal
	default:
		return slog.LevelInfo
	}
}
