package cli

import (
	"io"
	"log"
	"time"

	"github.com/mvp-joe/scribe/internal/search"
	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter shows a spinner while a search scans files.
type CLIProgressReporter struct {
	quiet   bool
	verbose bool
	w       io.Writer
	bar     *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a reporter drawing to w. A quiet reporter
// draws nothing; a verbose one logs every skipped file.
func NewCLIProgressReporter(w io.Writer, quiet, verbose bool) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet:   quiet,
		verbose: verbose,
		w:       w,
	}
}

func (c *CLIProgressReporter) start() {
	if c.bar != nil {
		return
	}
	c.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(c.w),
		progressbar.OptionSetDescription("Searching"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
}

func (c *CLIProgressReporter) OnFileScanned(path string, matches int) {
	if c.quiet {
		return
	}
	c.start()
	_ = c.bar.Add(1)
}

func (c *CLIProgressReporter) OnFileSkipped(path string, err error) {
	if c.verbose {
		log.Printf("Warning: skipped %s: %v", path, err)
	}
}

func (c *CLIProgressReporter) OnComplete(result *search.Result) {
	if c.bar != nil {
		_ = c.bar.Finish()
		c.bar = nil
	}
}
