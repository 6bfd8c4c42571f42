package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thriftwise/thriftwise/internal/interfaces/cli/migrate"
	"github.com/thriftwise/thriftwise/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "thriftwise",
		Short: "Thriftwise - rotating savings packages with wallet settlement",
		Long:  `Thriftwise runs the thrift package API and manages its database schema.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
