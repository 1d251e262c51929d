package devices

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/korbindeman/goaw/internal/conf"
	"github.com/korbindeman/goaw/internal/daw"
)

// Command creates the `devices` subcommand, listing available output
// devices.
func Command(_ *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List available audio output devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			devs, err := daw.EnumerateOutputDevices()
			if err != nil {
				return err
			}
			for _, d := range devs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", d.Index, d.Name)
			}
			return nil
		},
	}

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd
}
