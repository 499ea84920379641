package safe

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
)

// Run executes fn and turns a panic into an error, the stack is logged under component.
func Run(component string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				slog.Any("recover", r),
				slog.String("component", component),
				slog.String("stack", getStackTrace(20)),
			)
			err = fmt.Errorf("%s panic: %v", component, r)
		}
	}()

	return fn()
}

// Go runs fn in its own goroutine. The returned channel yields fn's error, or nil, and is then closed.
func Go(component string, fn func() error) <-chan error {
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		ch <- Run(component, fn)
	}()
	return ch
}

// getStackTrace returns at most maxLines trimmed lines of the current stack
func getStackTrace(maxLines int) string {
	lines := strings.Split(string(debug.Stack()), "\n")

	formatted := []string{"Stack trace:"}
	for i := 0; i < len(lines) && len(formatted) <= maxLines; i++ {
		if line := strings.TrimSpace(lines[i]); line != "" {
			formatted = append(formatted, "  "+line)
		}
	}
	if len(lines) > maxLines {
		formatted = append(formatted, "  ... (truncated)")
	}
	return strings.Join(formatted, "\n")
}
