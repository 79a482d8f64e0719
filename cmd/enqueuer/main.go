package main

import (
	"os"

	"github.com/spf13/cobra"
)

const defaultServiceName = "enqueuer"

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "enqueuer",
		Short:        "Forward enqueue requests to Cloud Tasks",
		Long:         `Accepts enqueue requests over HTTP and creates OIDC-authenticated push tasks in Google Cloud Tasks, routed by a cached service table.`,
		Version:      Version,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newRoutesCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
