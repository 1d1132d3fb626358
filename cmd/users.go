package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/iksnae/eight-sleep/internal"
	"github.com/spf13/cobra"
)

var usersRefresh bool

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the users on the mattress",
	Long: `List the user bound to each side of the mattress.

With --refresh the profiles are fetched too, so names are shown instead of
the side.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			client    *internal.Client
			snapshots []internal.UserSnapshot
			err       error
		)
		if usersRefresh {
			client, snapshots, err = connectAndRefresh(cmd.Context(), "")
		} else {
			client, err = connect(cmd.Context())
			if err == nil {
				snapshots = client.Users()
			}
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(snapshots) == 0 {
			fmt.Fprintln(out, "No users found on device", client.DeviceID())
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "USER ID\tSIDE\tNAME")
		for _, s := range snapshots {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", s.UserID, s.Side, s.DisplayName())
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(out, idStyle.Render(fmt.Sprintf("%d user(s) on device %s", len(snapshots), client.DeviceID())))
		return nil
	},
}

func init() {
	usersCmd.Flags().BoolVar(&usersRefresh, "refresh", false, "Fetch profiles before listing")
	rootCmd.AddCommand(usersCmd)
}
