package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/iksnae/eight-sleep/internal"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and cache the session token",
	Long: `Sign in with the configured email and password, check that the account
has a device, and store the session token in the token cache so later
commands reuse it until it expires.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := internal.NewClientFromConfig(cfg)
		if err != nil {
			return err
		}
		cache, err := internal.OpenTokenCache(cfg.TokenCache)
		if err != nil {
			return err
		}
		defer cache.Close()

		steps := []internal.ProgressStep{
			{
				Message: "Signing in as " + cfg.Email,
				Fn:      client.RefreshToken,
			},
			{
				Message: "Discovering device",
				Fn:      client.Discover,
			},
			{
				Message: "Caching session",
				Fn: func(ctx context.Context) error {
					s, ok := client.Session()
					if !ok {
						return internal.ErrNotAuthenticated
					}
					return cache.Save(cfg.Email, s)
				},
			},
		}
		if err := internal.ShowProgressWithSteps(cmd.Context(), steps); err != nil {
			return err
		}

		s, _ := client.Session()
		internal.PrintSuccess(fmt.Sprintf("Signed in to device %s, session expires %s",
			client.DeviceID(), humanize.RelTime(s.ExpiresAt, time.Now(), "ago", "from now")))
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the cached session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Email == "" {
			return fmt.Errorf("email is required (--email, EIGHTSLEEP_EMAIL or config file)")
		}
		cache, err := internal.OpenTokenCache(cfg.TokenCache)
		if err != nil {
			return err
		}
		defer cache.Close()

		if err := cache.Delete(cfg.Email); err != nil {
			return err
		}
		internal.PrintSuccess("Signed out " + cfg.Email)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd)
}
