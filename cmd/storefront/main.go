package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront backend: orders, payments and processor webhooks",
		SilenceUsage:  true,
	}

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newWebhookCommand(),
	)
	return root
}
