package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/iqfieldbot/internal/llm"
	"github.com/abhisek/iqfieldbot/internal/problemgen"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated questions for a field (no session)",
	Long: `Generate and interactively answer questions for a field and difficulty.

This is a stateless developer tool: no session, no difficulty adaptation, no events.
Useful for evaluating question quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("field", "", "Field to generate questions for (required)")
	previewCmd.Flags().Int("difficulty", 1, "Difficulty tier (1-5)")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
	_ = previewCmd.MarkFlagRequired("field")
}

func runPreview(cmd *cobra.Command, args []string) error {
	fieldVal, _ := cmd.Flags().GetString("field")
	difficulty, _ := cmd.Flags().GetInt("difficulty")
	count, _ := cmd.Flags().GetInt("count")

	field, err := problemgen.ParseField(fieldVal)
	if err != nil {
		return err
	}
	if difficulty < problemgen.MinDifficulty || difficulty > problemgen.MaxDifficulty {
		return fmt.Errorf("difficulty must be between %d and %d", problemgen.MinDifficulty, problemgen.MaxDifficulty)
	}

	// No EventRepo: requests are logged but not recorded.
	ctx := cmd.Context()
	provider, err := llm.NewProvider(ctx, cfg.LLM, nil, log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	gen := problemgen.New(provider, problemgen.DefaultConfig())
	scanner := bufio.NewScanner(os.Stdin)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Field: %s, difficulty %d\n", field.Title(), difficulty)
	fmt.Fprintf(out, "Generating %d questions...\n\n", count)

	var correct int
	var recent []string

	for i := 1; i <= count; i++ {
		q, err := gen.Generate(ctx, problemgen.GenerateInput{
			Field:           field,
			Difficulty:      difficulty,
			RecentQuestions: recent,
		})
		if err != nil {
			fmt.Fprintf(out, "Question %d: generation failed: %v\n\n", i, err)
			continue
		}
		recent = append(recent, q.Text)

		fmt.Fprintf(out, "── Question %d/%d (%d pts) ──\n", i, count, q.Points)
		fmt.Fprintln(out, q.Text)
		for j, c := range q.Choices {
			fmt.Fprintf(out, "  %d) %s\n", j+1, c)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Fprint(out, "(skipped)\n\n")
			continue
		}

		ok, explanation := problemgen.Evaluate(q, answer)
		if ok {
			correct++
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Answer)
		}
		if explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", explanation)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "── Summary: %d/%d correct ──\n", correct, count)
	return nil
}
