// Package invariant names the process-aborting side of the engine's error
// handling (spec.md §7): a handful of conditions that, if ever observed,
// mean the engine or its data is corrupt rather than that the player made a
// bad move. Violatef panics with a diagnostic; it is never used for
// recoverable, value-returned move rejections.
package invariant

import (
	"context"
	"fmt"

	"github.com/seekerror/logw"
)

// Violatef logs the diagnostic at Error level and panics with it.
func Violatef(ctx context.Context, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logw.Errorf(ctx, "invariant violated: %v", msg)
	panic(msg)
}
