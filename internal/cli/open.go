package cli

import (
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/mvp-joe/scribe/internal/config"
	"github.com/mvp-joe/scribe/internal/document"
	"github.com/mvp-joe/scribe/internal/render"
	"github.com/mvp-joe/scribe/internal/search"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// openOptions configures a single open invocation.
type openOptions struct {
	Path    string
	Line    int // 0 means no target line
	Context int // lines around Line to print; 0 prints the whole file
	Theme   string
}

func newOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open PATH",
		Short: "Print a file with line numbers",
		Long: `Open PATH, detecting its encoding, and print it with line numbers.

With --line the target line is validated against the file's line count and
highlighted, which makes open the jump-to-location companion of search.
The file is added to the recent files list.

Examples:
  scribe open notes.txt
  scribe open src/app.py --line 42 --context 5`,
		Args: cobra.ExactArgs(1),
		RunE: runOpen,
	}
	cmd.Flags().IntP("line", "n", 0, "line to jump to (1-based)")
	cmd.Flags().IntP("context", "C", 0, "with --line, print only this many lines around it")
	return cmd
}

func init() {
	rootCmd.AddCommand(newOpenCmd())
}

func runOpen(cmd *cobra.Command, args []string) error {
	settings, loader, err := loadSettings()
	if err != nil {
		return err
	}

	line, _ := cmd.Flags().GetInt("line")
	contextLines, _ := cmd.Flags().GetInt("context")
	opts := openOptions{
		Path:    args[0],
		Line:    line,
		Context: contextLines,
		Theme:   settings.Theme,
	}

	fsys := afero.NewOsFs()
	if err := executeOpen(fsys, opts, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
		return err
	}

	rememberRecentFile(settings, loader, opts.Path)
	return nil
}

// executeOpen prints the document at opts.Path.
func executeOpen(fsys afero.Fs, opts openOptions, out, errOut io.Writer) error {
	if opts.Line < 0 {
		return fmt.Errorf("%w: got %d", document.ErrLineOutOfRange, opts.Line)
	}

	doc, err := document.Open(fsys, opts.Path)
	if err != nil {
		return err
	}

	if opts.Line > 0 {
		if _, err := doc.GoToLine(opts.Line); err != nil {
			return err
		}
	}

	lines := doc.Lines()
	first := 1
	if opts.Line > 0 && opts.Context > 0 && len(lines) > 0 {
		pre, post := search.ContextWindow(lines, opts.Line-1, opts.Context)
		first = opts.Line - len(pre)
		window := make([]string, 0, len(pre)+1+len(post))
		window = append(window, pre...)
		window = append(window, lines[opts.Line-1])
		lines = append(window, post...)
	}

	fmt.Fprintf(errOut, "%s (%s, %d lines)\n", opts.Path, doc.Encoding(), doc.LineCount())

	theme := render.NewTheme(opts.Theme, out)
	return render.Lines(out, lines, first, opts.Line, theme)
}

// rememberRecentFile records path in the recent files list. Failures are
// logged; they never fail the command.
func rememberRecentFile(settings *config.Settings, loader config.Loader, path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	settings.AddRecentFile(path)
	if err := loader.Save(settings); err != nil {
		log.Printf("Warning: failed to update recent files: %v", err)
	}
}
