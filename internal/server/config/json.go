package config

import (
	"encoding/json"
	"os"

	"github.com/tikaboopeak/weather-monitor/internal/flagx"
	"github.com/tikaboopeak/weather-monitor/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for the timeout field, which allows
// parsing both string values such as "5s" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files; after unmarshalling, its fields are copied into the
// runtime Config struct.
type JsonConfig struct {
	EndpointAddr        string         `json:"endpoint_addr"`
	EndpointAddrTLS     string         `json:"endpoint_addr_tls"`
	TLSDir              string         `json:"tls_dir"`
	DatabaseFile        string         `json:"database_file"`
	UsersFile           string         `json:"users_file"`
	WebRoot             string         `json:"web_root"`
	BackupScript        string         `json:"backup_script"`
	BackupLoginInterval int            `json:"backup_login_interval"`
	ShutdownTimeout     timex.Duration `json:"shutdown_timeout"`
	S3RootUser          string         `json:"s3_root_user"`
	S3RootPassword      string         `json:"s3_root_password"`
	S3Bucket            string         `json:"s3_bucket"`
	S3Region            string         `json:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags; if neither
// is set, no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.EndpointAddrTLS = c.EndpointAddrTLS
	config.TLSDir = c.TLSDir
	config.DatabaseFile = c.DatabaseFile
	config.UsersFile = c.UsersFile
	config.WebRoot = c.WebRoot
	config.BackupScript = c.BackupScript
	config.BackupLoginInterval = c.BackupLoginInterval
	config.ShutdownTimeout = c.ShutdownTimeout.Duration
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
