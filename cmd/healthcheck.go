package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/iksnae/eight-sleep/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckDetails bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that eight-sleep can reach your mattress",
	Long: `Check the health of eight-sleep by verifying:
  • Configuration and credentials
  • Token cache access
  • Sign-in against the auth endpoint
  • Device discovery
  • Device state (water, priming)
  • Users bound to each side

It always signs in with the password and never uses the cached session, so it
also detects a cached token that hides a changed password.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx := cmd.Context()
		detail := func(format string, a ...interface{}) {
			if healthcheckDetails {
				fmt.Fprintf(out, "   "+format+"\n", a...)
			}
		}
		fail := func(step string, err error) error {
			fmt.Fprintln(out, errorStyle.Render("❌ "+step+" failed:"), err)
			fmt.Fprintln(out)
			fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
			return fmt.Errorf("health check failed: %s: %w", step, err)
		}

		fmt.Fprintln(out, sectionStyle.Render("🔍 Eight Sleep Health Check"))
		fmt.Fprintln(out)

		// Step 1: Configuration
		fmt.Fprintln(out, infoStyle.Render("Step 1: Checking configuration..."))
		if err := cfg.Validate(); err != nil {
			return fail("Configuration", err)
		}
		fmt.Fprintln(out, successStyle.Render("✅ Configuration is complete"))
		detail("Email: %s", cfg.Email)
		detail("Timezone: %s", cfg.Timezone)
		detail("Unit: %s", cfg.Unit)
		detail("Client API: %s", cfg.ClientAPIURL)
		detail("App API: %s", cfg.AppAPIURL)
		fmt.Fprintln(out)

		// Step 2: Token cache
		fmt.Fprintln(out, infoStyle.Render("Step 2: Checking token cache..."))
		if cache := openTokenCache(); cache != nil {
			_, cached, err := cache.Load(cfg.Email, time.Now())
			cache.Close()
			switch {
			case err != nil:
				fmt.Fprintln(out, warningStyle.Render("⚠️  Token cache unreadable:"), err)
			case cached:
				fmt.Fprintln(out, successStyle.Render("✅ Token cache holds a valid session"))
			default:
				fmt.Fprintln(out, successStyle.Render("✅ Token cache available (no session yet)"))
			}
		} else {
			fmt.Fprintln(out, warningStyle.Render("⚠️  Token cache unavailable, every command will sign in"))
		}
		detail("Path: %s", cfg.TokenCache)
		fmt.Fprintln(out)

		// Step 3: Authentication
		fmt.Fprintln(out, infoStyle.Render("Step 3: Signing in..."))
		client, err := internal.NewClientFromConfig(cfg)
		if err != nil {
			return fail("Configuration", err)
		}
		if err := client.RefreshToken(ctx); err != nil {
			var authErr *internal.AuthenticationError
			if errors.As(err, &authErr) {
				detail("The credentials were rejected; check email and password")
			}
			return fail("Sign-in", err)
		}
		session, _ := client.Session()
		fmt.Fprintln(out, successStyle.Render("✅ Signed in"))
		detail("Account user: %s", session.OwnerUserID)
		detail("Token expires %s", humanize.RelTime(session.ExpiresAt, time.Now(), "ago", "from now"))
		fmt.Fprintln(out)

		// Step 4: Device discovery
		fmt.Fprintln(out, infoStyle.Render("Step 4: Discovering device..."))
		if err := client.Discover(ctx); err != nil {
			return fail("Device discovery", err)
		}
		device, _ := client.Device()
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found device %s", device.ID)))
		detail("Cooling: %s", yesNo(device.CanCool))
		detail("Adjustable base: %s", yesNo(device.HasBase))
		fmt.Fprintln(out)

		// Step 5: Device state
		fmt.Fprintln(out, infoStyle.Render("Step 5: Reading device state..."))
		data, err := client.RefreshDevice(ctx)
		if err != nil {
			fmt.Fprintln(out, warningStyle.Render("⚠️  Failed to read device state:"), err)
		} else {
			fmt.Fprintln(out, successStyle.Render("✅ Device state available"))
			if data.HasWater != nil && !*data.HasWater {
				fmt.Fprintln(out, warningStyle.Render("⚠️  Water tank is empty"))
			}
			if data.NeedsPriming != nil && *data.NeedsPriming {
				fmt.Fprintln(out, warningStyle.Render("⚠️  Device needs priming"))
			}
			if data.LastPrime != "" {
				if t, ok := internal.ParseAPITime(data.LastPrime); ok {
					detail("Last prime: %s", humanize.RelTime(t, time.Now(), "ago", "from now"))
				}
			}
		}
		fmt.Fprintln(out)

		// Step 6: Users
		fmt.Fprintln(out, infoStyle.Render("Step 6: Resolving users..."))
		users := client.Users()
		if len(users) == 0 {
			fmt.Fprintln(out, warningStyle.Render("⚠️  No users are bound to the device"))
		} else {
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ Found %d user(s)", len(users))))
			for _, u := range users {
				detail("%s side: %s", u.Side, u.UserID)
			}
		}
		fmt.Fprintln(out)

		// Summary
		fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Device: %s", device.ID)))
		fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Users: %d found", len(users))))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckDetails, "details", "d", false, "Show detailed diagnostic information")
}
