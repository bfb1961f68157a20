package safe

import (
	"log/slog"
	"runtime/debug"
)

// Run executes fn and turns a panic into an error log instead of taking the
// process down. Used for fire-and-forget goroutines.
func Run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				slog.Any("recover", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	fn()
}
