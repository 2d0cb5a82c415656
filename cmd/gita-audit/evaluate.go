package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sattva-labs/dharmakit/internal/model"
	"github.com/sattva-labs/dharmakit/internal/principles"
)

func newEvaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <log.json>",
		Short: "Evaluate each action independently and print a score table",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			entries, overrides, err := loadEntries(args[0])
			if err != nil {
				return err
			}

			evaluator := principles.NewEvaluator(overrides.EvaluatorConfig())
			actions := make([]model.Action, len(entries))
			for i, e := range entries {
				actions[i] = e.Action()
			}
			results, errs := evaluator.EvaluateBatch(actions)
			for _, be := range errs {
				logger.Warn("evaluation failed",
					zap.String("action_id", be.ActionID),
					zap.Error(be.Err),
				)
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(results)
			}

			fmt.Printf("%-16s %-9s %-8s %s\n", "ACTION", "SCORE", "LEVEL", "NOTES")
			for _, r := range results {
				notes := "-"
				if n := len(r.Violations); n > 0 {
					notes = fmt.Sprintf("%d violation(s)", n)
				} else if n := len(r.Commendations); n > 0 {
					notes = fmt.Sprintf("%d commendation(s)", n)
				}
				fmt.Printf("%-16s %-9.3f %-8s %s\n",
					r.Action.ID, r.CompositeScore, r.Level, notes)
			}
			if len(errs) > 0 {
				fmt.Printf("%d entr(ies) skipped; see log\n", len(errs))
			}
			return nil
		},
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
