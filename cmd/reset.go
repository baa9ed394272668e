package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/lingua/internal/store"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear practice history and learning context",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		historyOnly, _ := cmd.Flags().GetBool("history")
		contextOnly, _ := cmd.Flags().GetBool("context")

		clearHistory := !contextOnly
		clearContext := !historyOnly
		if historyOnly && contextOnly {
			clearHistory, clearContext = true, true
		}

		if !force {
			var targets []string
			if clearHistory {
				targets = append(targets, "practice history")
			}
			if clearContext {
				targets = append(targets, "learning context")
			}
			fmt.Printf("This will erase your %s. Type 'yes' to continue: ", strings.Join(targets, " and "))
			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := context.Background()
		if clearHistory {
			if err := st.HistoryRepo().Clear(ctx); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Println("Practice history cleared.")
		}
		if clearContext {
			if err := st.ContextRepo().Save(ctx, ""); err != nil {
				return fmt.Errorf("clear learning context: %w", err)
			}
			fmt.Println("Learning context cleared.")
		}
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation prompt")
	resetCmd.Flags().Bool("history", false, "Only clear practice history")
	resetCmd.Flags().Bool("context", false, "Only clear the learning context")
}
