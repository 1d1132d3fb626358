package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/eight-sleep/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"

	// cfg is loaded before every command runs
	cfg *internal.Config
)

// persistent flags that override config keys
var configFlags = map[string]string{
	"email":     "email",
	"password":  "password",
	"timezone":  "timezone",
	"unit":      "unit",
	"log_level": "log-level",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "eight-sleep",
	Short: "Read sleep data and control an Eight Sleep mattress",
	Long: `A command line client for the Eight Sleep cloud.

It signs in with your account, finds your mattress and the people sleeping
on each side, and reports their sleep sessions, biometrics and alarms. It can
also set the heating level of a side, turn a side on or off, and toggle away
mode.

Credentials come from flags, EIGHTSLEEP_* environment variables or
~/.eight-sleep.yaml. The session token is cached so most commands do not sign
in again.

Quick Start:
  eight-sleep login                      # Sign in and cache the session
  eight-sleep status                     # Sleep report for every side
  eight-sleep heat <user-id> 20          # Warm one side
  eight-sleep export --format md         # Export reports as Markdown`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		internal.SetStatusOutput(cmd.ErrOrStderr(), cmd.OutOrStdout())
		internal.SetLogOutput(cmd.ErrOrStderr())

		v := viper.New()
		flags := cmd.Root().PersistentFlags()
		for key, name := range configFlags {
			if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", name, err)
			}
		}

		loaded, err := internal.LoadConfig(v, configPath)
		if err != nil {
			return err
		}
		level, err := internal.ParseLogLevel(loaded.LogLevel)
		if err != nil {
			return err
		}
		internal.SetLogLevel(level)
		if verbose {
			internal.SetVerbose(true)
		}
		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	pf.StringVar(&configPath, "config", "", "Config file (default ~/.eight-sleep.yaml)")
	pf.String("email", "", "Account email")
	pf.String("password", "", "Account password")
	pf.String("timezone", "", "IANA timezone used for sleep trends (default $TZ or local)")
	pf.String("unit", "", "Temperature unit: celsius or fahrenheit")
	pf.String("log-level", "", "Log level: error, warn, info or debug")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
