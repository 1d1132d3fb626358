package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Status output goes to stderr so stdout stays clean for exports
var (
	outMu     sync.Mutex
	statusOut io.Writer = os.Stderr
	resultOut io.Writer = os.Stdout
)

// SetStatusOutput redirects progress and status lines, mostly for tests
func SetStatusOutput(status, result io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	statusOut = status
	resultOut = result
}

func outputs() (io.Writer, io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	return statusOut, resultOut
}

// ProgressStep is one named call of a multi-step operation
type ProgressStep struct {
	Message string
	Fn      func(ctx context.Context) error
}

// ShowProgress runs fn behind a spinner. Without a terminal the message is
// logged once instead.
func ShowProgress(ctx context.Context, message string, fn func(ctx context.Context) error) error {
	status, _ := outputs()
	if !isTerminal(status) {
		LogInfo("%s", message)
		return fn(ctx)
	}
	return spin(ctx, status, message, fn)
}

// ShowProgressWithSteps runs steps in order and stops at the first failure
func ShowProgressWithSteps(ctx context.Context, steps []ProgressStep) error {
	for i, step := range steps {
		msg := fmt.Sprintf("[%d/%d] %s", i+1, len(steps), step.Message)
		if err := ShowProgress(ctx, msg, step.Fn); err != nil {
			return fmt.Errorf("%s: %w", step.Message, err)
		}
	}
	return nil
}

func spin(ctx context.Context, w io.Writer, message string, fn func(ctx context.Context) error) error {
	stop := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", progressStyle.Render(spinnerFrames[i%len(spinnerFrames)]), message)
			}
		}
	}()

	err := fn(ctx)
	close(stop)
	<-stopped

	if err != nil {
		fmt.Fprintf(w, "\r%s %s\n", errorStyle.Render("✗"), message)
		return err
	}
	fmt.Fprintf(w, "\r%s %s\n", successStyle.Render("✓"), message)
	return nil
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// PrintSuccess prints a success message to the result output
func PrintSuccess(message string) {
	_, out := outputs()
	if isTerminal(out) {
		fmt.Fprintf(out, "%s %s\n", successStyle.Render("✓"), message)
	} else {
		fmt.Fprintln(out, message)
	}
}

// PrintError prints an error message to the status output
func PrintError(message string) {
	status, _ := outputs()
	if isTerminal(status) {
		fmt.Fprintf(status, "%s %s\n", errorStyle.Render("✗"), message)
	} else {
		fmt.Fprintln(status, message)
	}
}

// PrintInfo prints an info message to the result output
func PrintInfo(message string) {
	_, out := outputs()
	if isTerminal(out) {
		fmt.Fprintf(out, "%s %s\n", progressStyle.Render("ℹ"), message)
	} else {
		fmt.Fprintln(out, message)
	}
}

// PrintWarning prints a warning to the status output
func PrintWarning(message string) {
	status, _ := outputs()
	if isTerminal(status) {
		fmt.Fprintf(status, "%s %s\n", warningStyle.Render("⚠"), message)
	} else {
		fmt.Fprintf(status, "WARNING: %s\n", message)
	}
}
