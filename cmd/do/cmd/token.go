package cmd

import (
	"fmt"
	"time"

	"github.com/nzoschke/healthmate/internal/config"
	"github.com/nzoschke/healthmate/internal/service"
	"github.com/spf13/cobra"
)

func TokenCmd() *cobra.Command {
	var expiry time.Duration

	cmd := &cobra.Command{
		Use:   "token [subject]",
		Short: "Mint an API bearer token",
		Long:  "Mint a signed API bearer token for a device or client. The subject defaults to \"app\".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			subject := "app"
			if len(args) == 1 {
				subject = args[0]
			}
			if expiry <= 0 {
				expiry = cfg.JWTExpiry
			}

			token, expiresAt, err := service.NewAuthService(cfg.JWTSecret, expiry).GenerateJWT(subject)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "subject %q, expires %s\n", subject, expiresAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime (default JWT_EXPIRY)")
	return cmd
}
