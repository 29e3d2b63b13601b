// Command papyrus parses a research paper PDF into structured JSON:
// sections, captions, math-annotated content, and optionally
// references.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/papyrus"
	"github.com/tsawler/papyrus/model"
)

var (
	outPath     string
	llmProvider string
	llmModel    string
	withRefs    bool
	noMath      bool
	legacyShape bool
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "papyrus <pdf-path-or-url>",
	Short: "Reconstruct the section structure of a research paper PDF",
	Long: `papyrus extracts a research paper's sections, captions, and math
content from a PDF using the poppler toolchain, with optional LLM
assistance for section validation, math extraction, and reference
parsing.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&outPath, "out", "o", "", "write JSON to this file instead of stdout")
	rootCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM provider for validation and math extraction (openai, anthropic, ollama)")
	rootCmd.Flags().StringVar(&llmModel, "model", "", "model name for the LLM provider")
	rootCmd.Flags().BoolVar(&withRefs, "references", false, "extract structured references (requires --llm)")
	rootCmd.Flags().BoolVar(&noMath, "no-math", false, "skip math-span markup")
	rootCmd.Flags().BoolVar(&legacyShape, "legacy", false, "emit the flat title/contents JSON shape")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	cfg := papyrus.Config{
		LLMProvider:       llmProvider,
		LLMModel:          llmModel,
		ExtractReferences: withRefs,
		DisableMath:       noMath,
		Verbose:           verbose,
	}
	parser := papyrus.NewWithConfig(args[0], cfg)
	ctx := context.Background()

	var (
		out      []byte
		warnings []papyrus.Warning
		err      error
	)
	if legacyShape {
		out, warnings, err = parser.LegacyJSON(ctx)
	} else {
		var result *model.PaperOutput
		result, warnings, err = parser.PaperOutput(ctx)
		if err == nil {
			out, err = json.MarshalIndent(result, "", "  ")
		}
	}
	if err != nil {
		return err
	}

	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	if outPath == "" {
		fmt.Println(string(out))
		return nil
	}
	return os.WriteFile(outPath, out, 0o644)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
