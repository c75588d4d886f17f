package config

import (
	"flag"
	"os"
	"time"

	"github.com/tikaboopeak/weather-monitor/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8000")
//	-t string   HTTPS bind address (e.g., ":443")
//	-l string   TLS directory checked for cert.pem/key.pem
//	-d string   location collection file
//	-f string   user collection file
//	-w string   web root for static files
//	-s string   backup script path
//	-k int      backup interval, in successful logins
//	-o int      graceful shutdown timeout, seconds
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name (empty selects the script trigger)
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-l", "-d", "-f", "-w", "-s", "-k", "-o", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port for plain HTTP")
	fs.StringVar(&config.EndpointAddrTLS, "t", config.EndpointAddrTLS, "address and port for HTTPS")
	fs.StringVar(&config.TLSDir, "l", config.TLSDir, "directory with cert.pem and key.pem")
	fs.StringVar(&config.DatabaseFile, "d", config.DatabaseFile, "location collection file")
	fs.StringVar(&config.UsersFile, "f", config.UsersFile, "user collection file")
	fs.StringVar(&config.WebRoot, "w", config.WebRoot, "web root for static files")
	fs.StringVar(&config.BackupScript, "s", config.BackupScript, "backup script path")
	fs.IntVar(&config.BackupLoginInterval, "k", config.BackupLoginInterval, "backup interval (in successful logins)")
	shutdownTimeout := fs.Int("o", int(config.ShutdownTimeout.Seconds()), "graceful shutdown timeout (in seconds)")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}
