package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8000", cfg.EndpointAddr)
	assert.Equal(t, ":443", cfg.EndpointAddrTLS)
	assert.Equal(t, "ssl", cfg.TLSDir)
	assert.Equal(t, "database.json", cfg.DatabaseFile)
	assert.Equal(t, "users.json", cfg.UsersFile)
	assert.Equal(t, "backup_databases.sh", cfg.BackupScript)
	assert.Equal(t, 10, cfg.BackupLoginInterval)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.S3Bucket, "script trigger is the default")
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"server", "-a", ":9000", "-d", "/tmp/db.json", "-k", "5", "-b", "wm-backups"}

	cfg := LoadConfig()
	assert.Equal(t, ":9000", cfg.EndpointAddr)
	assert.Equal(t, "/tmp/db.json", cfg.DatabaseFile)
	assert.Equal(t, 5, cfg.BackupLoginInterval)
	assert.Equal(t, "wm-backups", cfg.S3Bucket)

	// untouched fields keep their defaults
	assert.Equal(t, "users.json", cfg.UsersFile)
	assert.Equal(t, ":443", cfg.EndpointAddrTLS)
}

func TestLoadConfig_UnknownFlagsIgnored(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"server", "-z", "whatever", "-a", ":9100"}

	cfg := LoadConfig()
	assert.Equal(t, ":9100", cfg.EndpointAddr)
}
