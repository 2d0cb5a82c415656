package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sattva-labs/dharmakit/internal/verses"
)

func newVerseCmd() *cobra.Command {
	var principle, module string

	cmd := &cobra.Command{
		Use:   "verse [id]",
		Short: "Look up grounding verses by id, principle or module",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			db := verses.NewDB()

			var found []verses.Verse
			switch {
			case len(args) == 1:
				v, ok := db.Lookup(args[0])
				if !ok {
					return fmt.Errorf("verse %q not found", args[0])
				}
				found = []verses.Verse{v}
			case principle != "":
				found = db.ByPrinciple(principle)
			case module != "":
				found = db.ByModule(module)
			default:
				found = db.All()
			}

			if jsonOutput {
				return json.NewEncoder(os.Stdout).Encode(found)
			}
			for _, v := range found {
				fmt.Printf("%s [%s]\n  %s\n  %s\n", v.ID, v.Principle, v.Sanskrit, v.Translation)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&principle, "principle", "", "filter by principle tag")
	cmd.Flags().StringVar(&module, "module", "", "filter by module name")
	return cmd
}
