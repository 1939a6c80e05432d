// Command phoenixd assembles and prints the exported API document for one
// service. It is used operationally to warm the export cache and to generate
// API files out of band.
//
// Usage:
//
//	phoenixd --service=182 --version=3
//
// Requires CONFIG_PATH (or the individual environment variables) for
// configuration; see internal/config.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/tosdr/phoenix/internal/app"
)

func main() {
	serviceID := flag.Int64("service", 0, "id of the service to export")
	version := flag.Int("version", 3, "export shape version (1, 2 or 3)")
	flag.Parse()

	if *serviceID == 0 {
		fmt.Fprintln(os.Stderr, "Usage: phoenixd --service=<id> [--version=1|2|3]")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	a, err := app.New(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	export, err := a.Phoenix.Export(ctx, *serviceID, *version)
	if err != nil {
		a.Log.Error("export failed", "service_id", *serviceID, "version", *version, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		fmt.Fprintf(os.Stderr, "encode export: %v\n", err)
		os.Exit(1)
	}
}
