package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mvp-joe/scribe/internal/document"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats PATH",
		Short: "Show word, character and line counts for a file",
		Long: `Show the number of lines, whitespace separated words, and characters in
PATH, along with its detected encoding. Trailing newlines are not counted as
characters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return executeStats(afero.NewOsFs(), args[0], asJSON, cmd.OutOrStdout())
		},
	}
	cmd.Flags().Bool("json", false, "print statistics as JSON")
	return cmd
}

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func executeStats(fsys afero.Fs, path string, asJSON bool, out io.Writer) error {
	doc, err := document.Open(fsys, path)
	if err != nil {
		return err
	}
	stats := doc.Stats()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(out, "File:       %s\n", path)
	fmt.Fprintf(out, "Encoding:   %s\n", stats.Encoding)
	fmt.Fprintf(out, "Lines:      %s\n", formatNumber(stats.Lines))
	fmt.Fprintf(out, "Words:      %s\n", formatNumber(stats.Words))
	fmt.Fprintf(out, "Characters: %s\n", formatNumber(stats.Chars))
	return nil
}

// formatNumber formats an integer with thousand separators.
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result []byte
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}
