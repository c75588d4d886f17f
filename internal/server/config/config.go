// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the weather-monitor server.
//
// Fields:
//   - EndpointAddr: bind address for plain HTTP when no TLS pair is present.
//   - EndpointAddrTLS: bind address for HTTPS when a TLS pair is present.
//   - TLSDir: directory checked for cert.pem/key.pem at startup.
//   - DatabaseFile / UsersFile: the two JSON document collections.
//   - WebRoot: directory served for non-API paths (index.html and assets).
//   - BackupScript: shell script spawned by the script backup trigger.
//   - BackupLoginInterval: a backup fires on every Nth successful login.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings; an empty
//     bucket selects the script trigger instead of the S3 one.
//   - ShutdownTimeout: how long a graceful stop waits for in-flight requests.
type Config struct {
	EndpointAddr        string
	EndpointAddrTLS     string
	TLSDir              string
	DatabaseFile        string
	UsersFile           string
	WebRoot             string
	BackupScript        string
	BackupLoginInterval int
	ShutdownTimeout     time.Duration
	S3RootUser          string
	S3RootPassword      string
	S3Bucket            string
	S3Region            string
	S3BaseEndpoint      string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8000"
	c.EndpointAddrTLS = ":443"
	c.TLSDir = "ssl"
	c.DatabaseFile = "database.json"
	c.UsersFile = "users.json"
	c.WebRoot = "."
	c.BackupScript = "backup_databases.sh"
	c.BackupLoginInterval = 10
	c.ShutdownTimeout = 5 * time.Second
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
