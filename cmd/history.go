package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/lingua/internal/attempt"
	"github.com/abhisek/lingua/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past practice attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		moduleFilter, _ := cmd.Flags().GetString("module")
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		attempts, err := st.HistoryRepo().Load(context.Background())
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		if moduleFilter != "" {
			module, ok := attempt.ParseModuleKind(strings.ToLower(moduleFilter))
			if !ok {
				return fmt.Errorf("invalid module %q", moduleFilter)
			}
			var filtered []attempt.Attempt
			for _, a := range attempts {
				if a.Module == module {
					filtered = append(filtered, a)
				}
			}
			attempts = filtered
		}

		if limit > 0 && len(attempts) > limit {
			attempts = attempts[:limit]
		}

		if len(attempts) == 0 {
			fmt.Println("No attempts recorded.")
			return nil
		}

		fmt.Printf("%-14s  %-17s  %-9s  %-6s  %5s\n",
			"Module", "Date", "Score", "Level", "Pct")
		fmt.Println(strings.Repeat("─", 60))

		for _, a := range attempts {
			var scoreStr string
			if a.Module == attempt.ModulePronunciation {
				scoreStr = fmt.Sprintf("%d/100", a.Score)
			} else {
				scoreStr = fmt.Sprintf("%d/%d", a.Score, a.TotalItems)
			}
			fmt.Printf("%-14s  %-17s  %-9s  %-6s  %4d%%\n",
				a.Module.Title(),
				a.Date.Local().Format("2006-01-02 15:04"),
				scoreStr,
				a.Difficulty,
				a.Percentage,
			)
		}

		fmt.Printf("\n%d attempts\n", len(attempts))
		return nil
	},
}

func init() {
	historyCmd.Flags().StringP("module", "m", "", "Filter by module (e.g. grammar)")
	historyCmd.Flags().IntP("limit", "n", 0, "Show at most N attempts")
}
