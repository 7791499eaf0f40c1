package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mvp-joe/scribe/internal/config"
	"github.com/mvp-joe/scribe/internal/render"
	"github.com/mvp-joe/scribe/internal/search"
	"github.com/mvp-joe/scribe/internal/watcher"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ErrEmptyQuery is returned when search is invoked with an empty pattern.
var ErrEmptyQuery = errors.New("please enter a search query")

// Output formats for search results.
const (
	formatText    = "text"
	formatPreview = "preview"
	formatJSON    = "json"
)

// searchOptions is everything one search invocation needs.
type searchOptions struct {
	Root        string
	Query       search.Query
	Format      string
	ShowSkipped bool
	Quiet       bool
	Verbose     bool
	Theme       string
	Fs          afero.Fs
}

// searchReport is the --json output.
type searchReport struct {
	Pattern      string          `json:"pattern"`
	Root         string          `json:"root"`
	Matches      []search.Match  `json:"matches"`
	TotalMatches int             `json:"total_matches"`
	FilesScanned int             `json:"files_scanned"`
	Skipped      []skippedReport `json:"skipped,omitempty"`
}

type skippedReport struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search PATTERN [ROOT]",
		Short: "Find a pattern in every file under a directory",
		Long: `Search every file under ROOT (default: current directory) for PATTERN.

Each line is matched independently; the first occurrence on a line is
reported with its line number and surrounding context. Files that are not
valid UTF-8 are read as Latin-1, and unreadable files are skipped.

Defaults for case sensitivity, regex mode, recursion, extensions, context
and ignore globs come from your settings (see "scribe settings show").

Examples:
  scribe search TODO
  scribe search -e 'func \w+Handler' ./src -x .go
  scribe search --case-sensitive Error docs --no-recursive -C 2
  scribe search hello --watch`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runSearch,
	}

	f := cmd.Flags()
	f.BoolP("regex", "e", false, "treat PATTERN as a regular expression")
	f.BoolP("ignore-case", "i", false, "case-insensitive matching")
	f.Bool("case-sensitive", false, "case-sensitive matching")
	f.StringP("ext", "x", "", `comma separated file extensions, e.g. ".py,.md" (empty: all files)`)
	f.Bool("no-recursive", false, "do not descend into subdirectories")
	f.IntP("context", "C", 0, "lines of context before and after each match")
	f.StringArray("ignore", nil, "glob of paths to skip, relative to ROOT (repeatable)")
	f.Bool("json", false, "print results as JSON")
	f.String("format", formatText, "output format: text, preview or json")
	f.Bool("show-skipped", false, "list files that could not be read")
	f.Bool("watch", false, "search again whenever files under ROOT change")
	f.BoolP("quiet", "q", false, "print matches only, without progress or status")
	cmd.MarkFlagsMutuallyExclusive("ignore-case", "case-sensitive")
	cmd.MarkFlagsMutuallyExclusive("json", "format")

	return cmd
}

func init() {
	rootCmd.AddCommand(newSearchCmd())
}

func runSearch(cmd *cobra.Command, args []string) error {
	settings, _, err := loadSettings()
	if err != nil {
		return err
	}

	opts, err := buildSearchOptions(cmd, args, settings)
	if err != nil {
		return err
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return executeSearch(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return executeWatch(ctx, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// buildSearchOptions layers explicitly set flags over the saved search settings.
func buildSearchOptions(cmd *cobra.Command, args []string, settings *config.Settings) (*searchOptions, error) {
	pattern := args[0]
	if pattern == "" {
		return nil, ErrEmptyQuery
	}

	root := "."
	if len(args) > 1 {
		root = args[1]
	}

	defaults := settings.Search
	q := search.Query{
		Pattern:      pattern,
		IsRegex:      defaults.Regex,
		IgnoreCase:   defaults.IgnoreCase,
		Extensions:   search.NormalizeExtensions(defaults.Extensions),
		Recursive:    defaults.Recursive,
		ContextLines: defaults.ContextLines,
		Ignore:       append([]string(nil), defaults.Ignore...),
	}

	f := cmd.Flags()
	if f.Changed("regex") {
		q.IsRegex, _ = f.GetBool("regex")
	}
	if f.Changed("ignore-case") {
		q.IgnoreCase, _ = f.GetBool("ignore-case")
	}
	if f.Changed("case-sensitive") {
		caseSensitive, _ := f.GetBool("case-sensitive")
		q.IgnoreCase = !caseSensitive
	}
	if f.Changed("ext") {
		ext, _ := f.GetString("ext")
		q.Extensions = search.NormalizeExtensions(config.SplitList(ext))
	}
	if f.Changed("no-recursive") {
		noRecursive, _ := f.GetBool("no-recursive")
		q.Recursive = !noRecursive
	}
	if f.Changed("context") {
		q.ContextLines, _ = f.GetInt("context")
		if q.ContextLines < 0 {
			return nil, fmt.Errorf("%w: context must be >= 0", config.ErrInvalidContextLines)
		}
	}
	if f.Changed("ignore") {
		extra, _ := f.GetStringArray("ignore")
		q.Ignore = append(q.Ignore, extra...)
	}

	format, _ := f.GetString("format")
	if asJSON, _ := f.GetBool("json"); asJSON {
		format = formatJSON
	}
	switch format {
	case formatText, formatPreview, formatJSON:
	default:
		return nil, fmt.Errorf("unknown format %q (want text, preview or json)", format)
	}

	showSkipped, _ := f.GetBool("show-skipped")
	quiet, _ := f.GetBool("quiet")

	return &searchOptions{
		Root:        root,
		Query:       q,
		Format:      format,
		ShowSkipped: showSkipped,
		Quiet:       quiet,
		Verbose:     verbose,
		Theme:       settings.Theme,
		Fs:          afero.NewOsFs(),
	}, nil
}

// executeSearch runs one search and writes its results to out. Progress and
// warnings go to errOut.
func executeSearch(opts *searchOptions, out, errOut io.Writer) error {
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	reporter := NewCLIProgressReporter(errOut, opts.Quiet || opts.Format == formatJSON, opts.Verbose)
	searcher := search.NewSearcher(
		search.WithFs(fsys),
		search.WithProgressReporter(reporter),
	)

	result, err := searcher.Run(opts.Root, opts.Query)
	if err != nil {
		return err
	}

	if opts.Format == formatJSON {
		return writeSearchJSON(out, opts, result)
	}
	return writeSearchText(out, opts, result)
}

func writeSearchJSON(out io.Writer, opts *searchOptions, result *search.Result) error {
	report := searchReport{
		Pattern:      opts.Query.Pattern,
		Root:         opts.Root,
		Matches:      result.Matches,
		TotalMatches: len(result.Matches),
		FilesScanned: result.FilesScanned,
	}
	if opts.ShowSkipped {
		for _, s := range result.Skipped {
			report.Skipped = append(report.Skipped, skippedReport{Path: s.Path, Error: errorString(s.Err)})
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	return nil
}

func writeSearchText(out io.Writer, opts *searchOptions, result *search.Result) error {
	theme := render.NewTheme(opts.Theme, out)

	var err error
	if opts.Format == formatPreview {
		err = render.Previews(out, result.Matches, theme)
	} else {
		err = render.Matches(out, result.Matches, theme)
	}
	if err != nil {
		return err
	}

	if opts.Quiet {
		return nil
	}

	if len(result.Matches) > 0 {
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, theme.Status.Render(render.Summary(result, opts.ShowSkipped)))

	if opts.ShowSkipped {
		for _, s := range result.Skipped {
			fmt.Fprintf(out, "skipped: %s: %s\n", s.Path, errorString(s.Err))
		}
	}
	return nil
}

// executeWatch runs the search, then runs it again after every debounced
// batch of changes until ctx is done. Runs never overlap.
func executeWatch(ctx context.Context, opts *searchOptions, out, errOut io.Writer) error {
	if err := executeSearch(opts, out, errOut); err != nil {
		return err
	}

	keep, err := search.IgnoreFilter(opts.Root, opts.Query.Ignore)
	if err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(opts.Root, watcher.Options{
		Recursive:  opts.Query.Recursive,
		Extensions: opts.Query.Extensions,
		Filter:     keep,
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", opts.Root, err)
	}
	defer fw.Stop()

	changes := make(chan []string, 1)
	err = fw.Start(ctx, func(files []string) {
		select {
		case changes <- files:
		default:
			// A rerun is already pending and will see these files too.
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	if !opts.Quiet {
		fmt.Fprintf(errOut, "Watching %s for changes (Ctrl+C to stop)...\n", opts.Root)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case files := <-changes:
			if !opts.Quiet {
				fmt.Fprintf(errOut, "\n%d file(s) changed, searching again...\n", len(files))
			}
			if err := executeSearch(opts, out, errOut); err != nil {
				return err
			}
		}
	}
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
