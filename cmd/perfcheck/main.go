package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tikaboopeak/weather-monitor/internal/perfcheck"
)

func main() {

	baseURL := flag.String("u", "http://localhost:8000", "base URL of the server")
	username := flag.String("n", "", "username for the authenticated probes (optional)")
	insecure := flag.Bool("i", false, "skip TLS certificate verification")
	flag.Parse()

	ctx := context.Background()
	checker := perfcheck.New(*baseURL, *insecure)

	if *username != "" {
		password, err := perfcheck.GetPassword(os.Stdout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read password: %v\n", err)
			os.Exit(1)
		}
		if err := checker.Login(ctx, *username, password); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	results := checker.Run(ctx)
	perfcheck.Print(os.Stdout, results)

	for _, r := range results {
		if r.Err != nil || !r.Success {
			os.Exit(1)
		}
	}
}
