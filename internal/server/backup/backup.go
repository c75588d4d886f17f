// Package backup implements the fire-and-forget backup trigger. A trigger
// is invoked in a detached goroutine by the session service; it must never
// be awaited by a request path and its failures go only to the log.
package backup

import (
	"context"
	"os/exec"

	"github.com/tikaboopeak/weather-monitor/internal/logging"
)

// Trigger launches one backup run. Fire blocks its own goroutine only; the
// caller is expected to detach it.
type Trigger interface {
	Fire(ctx context.Context)
}

// ScriptTrigger spawns a shell script and does not wait for the result on
// the calling goroutine. The process is reaped in the background so it
// never turns into a zombie.
type ScriptTrigger struct {
	script string
	logger logging.Logger
}

func NewScriptTrigger(script string, logger logging.Logger) *ScriptTrigger {
	return &ScriptTrigger{script: script, logger: logger.With("module", "backup")}
}

func (t *ScriptTrigger) Fire(ctx context.Context) {
	cmd := exec.Command("sh", t.script)
	if err := cmd.Start(); err != nil {
		t.logger.Error(ctx, "backup script failed to start", "script", t.script, "error", err.Error())
		return
	}

	t.logger.Info(ctx, "backup script started", "script", t.script, "pid", cmd.Process.Pid)

	go func() {
		if err := cmd.Wait(); err != nil {
			t.logger.Error(ctx, "backup script failed", "script", t.script, "error", err.Error())
			return
		}
		t.logger.Debug(ctx, "backup script finished", "script", t.script)
	}()
}
