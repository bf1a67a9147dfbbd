package driving

import (
	"context"
	"time"
)

// Autosaver persists engine state in the background while a long-running
// session (MCP server, TUI) is open.
type Autosaver interface {
	// Start runs the save loop until Stop is called or ctx is done.
	Start(ctx context.Context) error

	// Stop ends the loop after a final save and waits for it to finish.
	Stop()

	// Stats reports completed saves, the last save time and the last error.
	Stats() (saves int, lastSave time.Time, lastErr error)
}
