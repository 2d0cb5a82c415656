package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sattva-labs/dharmakit/internal/boundary"
	"github.com/sattva-labs/dharmakit/internal/guard"
	"github.com/sattva-labs/dharmakit/internal/model"
)

func newCheckCmd() *cobra.Command {
	var guardThreshold float64

	cmd := &cobra.Command{
		Use:   "check <log.json>",
		Short: "Run each action through the boundary gate and the pattern guard",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			entries, overrides, err := loadEntries(args[0])
			if err != nil {
				return err
			}

			gate := boundary.NewGate(overrides.BoundaryConfig())

			type checkResult struct {
				ActionID string            `json:"actionId"`
				Decision boundary.Decision `json:"decision"`
				Findings []guard.Finding   `json:"findings,omitempty"`
			}

			denied := 0
			results := make([]checkResult, 0, len(entries))
			for _, e := range entries {
				d := gate.Evaluate(&model.ConstrainedAction{
					ID:          e.ID,
					Description: e.Description,
					Features:    e.Features,
					RoleContext: e.Svadharma,
				})
				if !d.Permitted {
					denied++
				}

				var findings []guard.Finding
				for _, f := range guard.Scan(e.Description) {
					if f.Triggered && f.Confidence >= guardThreshold {
						findings = append(findings, f)
					}
				}
				results = append(results, checkResult{ActionID: e.ID, Decision: d, Findings: findings})
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(results)
			}

			fmt.Printf("%-16s %-10s %-10s %-11s %s\n",
				"ACTION", "PERMITTED", "COMPLIANCE", "ADVICE", "DETAIL")
			for _, r := range results {
				detail := "-"
				if len(r.Decision.Violations) > 0 {
					detail = r.Decision.Violations[0].RuleID
				} else if len(r.Findings) > 0 {
					detail = fmt.Sprintf("guard: %s %.2f", r.Findings[0].Category, r.Findings[0].Confidence)
				}
				fmt.Printf("%-16s %-10v %-10.3f %-11s %s\n",
					r.ActionID, r.Decision.Permitted, r.Decision.ComplianceScore,
					r.Decision.Recommendation, detail)
			}
			fmt.Printf("%d/%d denied\n", denied, len(results))
			return nil
		},
	}

	cmd.Flags().Float64Var(&guardThreshold, "guard-threshold", 0.5,
		"minimum pattern-guard confidence to report")
	return cmd
}
