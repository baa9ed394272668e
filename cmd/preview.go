package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/lingua/internal/attempt"
	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated questions for a module (no database)",
	Long: `Generate and interactively answer questions for a practice module.

This is a stateless developer tool — no database, no history, no events.
Useful for evaluating question quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("module", "grammar", "Module: grammar, vocabulary, listening, or reading")
	previewCmd.Flags().String("difficulty", "Medium", "Difficulty: Easy, Medium, or Hard")
	previewCmd.Flags().String("context", "", "Learning context to steer generation")
}

func runPreview(cmd *cobra.Command, args []string) error {
	moduleVal, _ := cmd.Flags().GetString("module")
	difficultyVal, _ := cmd.Flags().GetString("difficulty")
	contextText, _ := cmd.Flags().GetString("context")

	module, ok := attempt.ParseModuleKind(strings.ToLower(moduleVal))
	if !ok || module == attempt.ModulePronunciation {
		return fmt.Errorf("invalid module %q: must be grammar, vocabulary, listening, or reading", moduleVal)
	}

	difficulty, ok := attempt.ParseDifficulty(difficultyVal)
	if !ok {
		return fmt.Errorf("invalid difficulty %q: must be Easy, Medium, or Hard", difficultyVal)
	}

	// Create LLM provider (no EventRepo — logging skipped).
	ctx := context.Background()
	provider, err := llm.NewProviderFromEnv(ctx, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	gen := content.New(provider, content.DefaultConfig())

	fmt.Printf("Module: %s (%s)\n", module.Title(), difficulty)
	fmt.Printf("Generating %d questions...\n\n", content.BatchSize)

	var questions []content.Question
	if module.Passage() {
		task, err := gen.PassageTask(ctx, module, difficulty, contextText)
		if err != nil {
			return fmt.Errorf("generate passage task: %w", err)
		}
		fmt.Println("── Passage ──")
		fmt.Println(task.Passage)
		fmt.Println()
		questions = task.Questions
	} else {
		questions, err = gen.QuestionBatch(ctx, module, difficulty, content.BatchSize, contextText)
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	var correct int

	for i, q := range questions {
		fmt.Printf("── Question %d/%d ──\n", i+1, len(questions))
		fmt.Println(q.Text)
		for j, opt := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}

		fmt.Print("\nYour answer (1-4): ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}

		var choice int
		if _, err := fmt.Sscanf(answer, "%d", &choice); err != nil || choice < 1 || choice > len(q.Options) {
			fmt.Print("(not a valid option)\n\n")
			continue
		}

		if choice-1 == q.CorrectIndex {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Options[q.CorrectIndex])
		}

		if q.Explanation != "" {
			fmt.Printf("Explanation: %s\n", q.Explanation)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, len(questions))
	return nil
}
