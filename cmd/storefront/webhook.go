package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/webhook"
	"github.com/spf13/cobra"
)

// newWebhookCommand signs a payload the way the processor would, for
// replaying events against a local server with curl.
func newWebhookCommand() *cobra.Command {
	var (
		secret    string
		timestamp int64
	)

	sign := &cobra.Command{
		Use:   "sign [payload-file]",
		Short: "Print a " + webhook.SignatureHeader + " header for a payload read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv("STOREFRONT_WEBHOOK__SIGNING_SECRET")
			}
			if secret == "" {
				return fmt.Errorf("signing secret is required (--secret or STOREFRONT_WEBHOOK__SIGNING_SECRET)")
			}

			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			payload, err := io.ReadAll(in)
			if err != nil {
				return err
			}

			ts := timestamp
			if ts == 0 {
				ts = time.Now().Unix()
			}
			fmt.Fprintln(cmd.OutOrStdout(), webhook.SignPayload(secret, ts, payload))
			return nil
		},
	}
	sign.Flags().StringVar(&secret, "secret", "", "webhook signing secret")
	sign.Flags().Int64Var(&timestamp, "timestamp", 0, "unix timestamp to sign with (default now)")

	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Webhook utilities",
	}
	cmd.AddCommand(sign)
	return cmd
}
