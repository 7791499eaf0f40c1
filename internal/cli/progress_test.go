package cli

import (
	"errors"
	"testing"

	"github.com/mvp-joe/scribe/internal/search"
	"github.com/stretchr/testify/assert"
)

func TestCLIProgressReporter_Quiet(t *testing.T) {
	t.Parallel()

	out := &syncBuffer{}
	reporter := NewCLIProgressReporter(out, true, false)

	reporter.OnFileScanned("a.txt", 1)
	reporter.OnFileSkipped("b.txt", errors.New("permission denied"))
	reporter.OnComplete(&search.Result{})

	assert.Nil(t, reporter.bar)
	assert.Empty(t, out.String())
}

func TestCLIProgressReporter_FinishesBar(t *testing.T) {
	t.Parallel()

	out := &syncBuffer{}
	reporter := NewCLIProgressReporter(out, false, false)

	reporter.OnFileScanned("a.txt", 0)
	reporter.OnFileScanned("b.txt", 2)
	assert.NotNil(t, reporter.bar)

	reporter.OnComplete(&search.Result{})
	assert.Nil(t, reporter.bar)
}

var _ search.ProgressReporter = (*CLIProgressReporter)(nil)
