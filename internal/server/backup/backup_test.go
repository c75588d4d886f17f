package backup

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tikaboopeak/weather-monitor/internal/logging"
)

func nopLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func TestScriptTrigger_RunsScript(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "ran")
	script := filepath.Join(dir, "backup.sh")
	require.NoError(t, os.WriteFile(script, []byte("touch "+marker+"\n"), 0o755))

	trigger := NewScriptTrigger(script, nopLogger())
	trigger.Fire(context.Background())

	require.Eventually(t, func() bool {
		_, err := os.Stat(marker)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond, "script should have run")
}

func TestScriptTrigger_MissingScriptDoesNotPanic(t *testing.T) {
	trigger := NewScriptTrigger(filepath.Join(t.TempDir(), "no-such.sh"), nopLogger())

	// failure is swallowed and logged, never raised
	trigger.Fire(context.Background())
}

func TestStorageKey(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 30, 5, 0, time.UTC)

	key := storageKey("/var/lib/wm/database.json", now)
	assert.Equal(t, "backups/2024/03/09/143005/database.json", key)

	key = storageKey("users.json", now)
	assert.Equal(t, "backups/2024/03/09/143005/users.json", key)
}

func TestNewS3Trigger_CollectsBothCollections(t *testing.T) {
	cfg := testConfig()
	trigger := NewS3Trigger(cfg, nopLogger())
	assert.Equal(t, []string{cfg.DatabaseFile, cfg.UsersFile}, trigger.files)
}
