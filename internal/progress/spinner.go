package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner shows an activity indicator while a slow operation runs.
// A nil *Spinner is valid and does nothing.
type Spinner struct {
	s       *spinner.Spinner
	out     *os.File
	symbols ProgressSymbols
	message string
}

// StartSpinner starts a spinner with message on f. It returns nil when f is
// not a terminal, so callers can Stop unconditionally.
func StartSpinner(f *os.File, message string) *Spinner {
	caps := DetectTerminalCapabilities(f)
	if !caps.IsTTY {
		return nil
	}

	symbols := SelectSymbols(caps)
	s := spinner.New(spinner.CharSets[symbols.SpinnerSet], spinnerInterval,
		spinner.WithWriterFile(f),
		spinner.WithSuffix(" "+message),
		spinner.WithHiddenCursor(true),
	)
	if !caps.SupportsColor {
		_ = s.Color("reset")
	}
	s.Start()

	return &Spinner{s: s, out: f, symbols: symbols, message: message}
}

// Stop clears the spinner line. When failed is set the message is kept
// with a failure mark so the error printed next has context.
func (sp *Spinner) Stop(failed bool) {
	if sp == nil {
		return
	}
	sp.s.Stop()
	if failed {
		fmt.Fprintf(sp.out, "%s %s\n", sp.symbols.Failure, sp.message)
	}
}
