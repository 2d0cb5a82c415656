package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sattva-labs/dharmakit/internal/audit"
	"github.com/sattva-labs/dharmakit/internal/config"
	"github.com/sattva-labs/dharmakit/internal/input"
	"github.com/sattva-labs/dharmakit/internal/model"
	"github.com/sattva-labs/dharmakit/internal/principles"
)

func newAuditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit <log.json>",
		Short: "Audit an ordered action log and exit with the verdict code (0-3)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			entries, overrides, err := loadEntries(args[0])
			if err != nil {
				return err
			}

			evaluator := principles.NewEvaluator(overrides.EvaluatorConfig())
			auditor := audit.New(overrides.AuditorConfig(), evaluator, logger)
			report := auditor.Audit(entries)

			if jsonOutput {
				if err := json.NewEncoder(os.Stdout).Encode(report); err != nil {
					return fmt.Errorf("encode report: %w", err)
				}
			} else {
				renderReport(os.Stdout, report)
			}

			exitCode = report.Verdict.ExitCode()
			return nil
		},
	}
}

// loadEntries parses the action log and the optional override file.
func loadEntries(path string) ([]model.AuditLogEntry, *config.File, error) {
	overrides, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	loader, err := input.NewLoader()
	if err != nil {
		return nil, nil, err
	}
	entries, err := loader.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return entries, overrides, nil
}

func renderReport(w *os.File, r audit.Report) {
	fmt.Fprintf(w, "Alignment audit %s\n", r.ID)
	fmt.Fprintf(w, "  actions:   %d\n", r.ActionCount)
	fmt.Fprintf(w, "  verdict:   %s\n", r.Verdict)
	s := r.Statistics
	fmt.Fprintf(w, "  mean %.3f  median %.3f  stddev %.3f  min %.3f  max %.3f\n",
		s.Mean, s.Median, s.StdDev, s.Min, s.Max)
	fmt.Fprintf(w, "  drift %.3f  trend %+.3f  aligned %.1f%%  critical %.1f%%\n",
		s.DriftIndex, s.Trend, s.AlignedPercent, s.CriticalPercent)

	if len(r.AgentSummaries) > 0 {
		fmt.Fprintln(w, "Agents:")
		for _, a := range r.AgentSummaries {
			fmt.Fprintf(w, "  %-20s %3d action(s)  mean %.3f  %s\n",
				a.Agent, a.ActionCount, a.MeanScore, a.Level)
		}
	}

	if len(r.FlaggedActions) > 0 {
		fmt.Fprintln(w, "Flagged actions:")
		for _, f := range r.FlaggedActions {
			fmt.Fprintf(w, "  [%s] %s (%.3f): %s\n", f.Severity, f.ActionID, f.Score, f.Reason)
		}
	}

	if len(r.PrincipleBreakdown) > 0 {
		fmt.Fprintln(w, "Principle breakdown:")
		for _, id := range sortedKeys(r.PrincipleBreakdown) {
			fmt.Fprintf(w, "  %-14s %.3f\n", id, r.PrincipleBreakdown[id])
		}
	}

	if len(r.Patterns) > 0 {
		fmt.Fprintf(w, "Patterns:\n  %s\n", strings.Join(r.Patterns, "\n  "))
	}
	fmt.Fprintf(w, "Recommendations:\n  %s\n", strings.Join(r.Recommendations, "\n  "))

	if len(r.EvaluationErrors) > 0 {
		fmt.Fprintf(w, "Skipped entries:\n  %s\n", strings.Join(r.EvaluationErrors, "\n  "))
	}
}
