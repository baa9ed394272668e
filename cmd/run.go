package cmd

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/app"
	"github.com/abhisek/lingua/internal/attempt"
	"github.com/abhisek/lingua/internal/content"
	historyscreen "github.com/abhisek/lingua/internal/screens/history"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/speech"
	"github.com/abhisek/lingua/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	history := attempt.NewHistory(st.HistoryRepo())
	if err := history.Load(ctx); err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	opts := app.Options{
		History:     history,
		ContextRepo: st.ContextRepo(),
		Synth:       speech.NewSynthesizer(),
		Recognizer:  speech.NewTypedRecognizer(),
	}

	var generator content.Generator
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Practice modules will be unavailable.")
	} else {
		generator = content.New(provider, content.DefaultConfig())
		opts.Generator = generator
	}

	// Enrichment results arrive after the attempt is saved; the refresh
	// notification repaints an open history screen. The program pointer
	// is set before Run, and the controller only fires after a practice
	// set completes inside the running UI.
	var program *tea.Program
	controller := attempt.NewController(history, enricherFor(generator), func() {
		if p := program; p != nil {
			p.Send(historyscreen.RefreshMsg{})
		}
	})
	opts.Controller = controller

	program = app.NewProgram(opts)
	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}

	// Let in-flight suggestion and tip requests finish writing.
	controller.Wait()
	return nil
}

// enricherFor adapts the generator, which may be nil when no provider
// is configured.
func enricherFor(generator content.Generator) attempt.Enricher {
	if generator == nil {
		return nil
	}
	return generator
}
