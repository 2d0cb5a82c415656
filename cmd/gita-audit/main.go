// gita-audit reads serialized action logs and runs the dharmic scoring
// pipeline over them: per-action evaluation, boundary checks, and full
// sequence audits with verdict-encoded exit codes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes: audit verdicts map to 0-3; input and usage errors use 4.
const exitInputError = 4

var (
	configPath string
	jsonOutput bool
	logger     *zap.Logger

	// exitCode is set by subcommands; main exits with it after cobra
	// unwinds.
	exitCode int
)

func main() {
	logger = mustBuildLogger(envOrDefault("GITA_LOG_LEVEL", "error"))
	defer logger.Sync() //nolint:errcheck // best-effort flush

	root := &cobra.Command{
		Use:           "gita-audit",
		Short:         "Score and audit agent action logs against Gita-derived principles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML threshold overrides")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit JSON instead of formatted text")

	root.AddCommand(newAuditCmd())
	root.AddCommand(newEvaluateCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVerseCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitInputError)
	}
	os.Exit(exitCode)
}

func mustBuildLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	default:
		zapLevel = zapcore.ErrorLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	return logger
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
