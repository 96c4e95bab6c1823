package bot

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	statusInterval = 20 * time.Second
	idleActivity   = "out for requests"
)

// QueueSizer reports current queue depth. Implemented by the generation queue.
type QueueSizer interface {
	Size() int
}

// StatusUpdater pushes presence changes to the chat platform.
// Implemented by discord.Presence.
type StatusUpdater interface {
	SetWatching(status, activity string) error
}

// RunStatusLoop periodically mirrors the generation queue's depth into the
// bot's presence: online with a counter while work is queued, idle
// otherwise. Independent of request handling; returns when ctx is done.
func RunStatusLoop(ctx context.Context, presence StatusUpdater, gen QueueSizer) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()

	last := ""
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			status, activity := statusFor(gen.Size())
			if activity == last {
				continue
			}
			if err := presence.SetWatching(status, activity); err != nil {
				slog.Warn("presence update failed", "error", err)
				continue
			}
			last = activity
		}
	}
}

func statusFor(size int) (status, activity string) {
	if size > 0 {
		plural := "s"
		if size == 1 {
			plural = ""
		}
		return "online", fmt.Sprintf("%d Skin%s Generate", size, plural)
	}
	return "idle", idleActivity
}
