package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hostguard",
		Short: "Resolve the trustworthy origin of HTTP requests",
		Long: `hostguard decides which scheme and host a request really targets.

Forwarded headers are honored only from trusted proxies, hosts are
sanitized and checked against an allow-list, and a configured default
host is used when nothing else can be trusted.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		resolveCmd(),
		versionCmd(),
	)

	return rootCmd
}
