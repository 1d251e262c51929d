// root.go viper root command code
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/korbindeman/goaw/cmd/devices"
	"github.com/korbindeman/goaw/cmd/play"
	"github.com/korbindeman/goaw/cmd/render"
	"github.com/korbindeman/goaw/internal/conf"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "goaw",
		Short: "goaw - a realtime audio workstation engine",
	}

	if err := setupFlags(rootCmd, settings); err != nil {
		log.Printf("error setting up flags: %v\n", err)
	}

	playCmd := play.Command(settings)
	renderCmd := render.Command(settings)
	devicesCmd := devices.Command(settings)

	rootCmd.AddCommand(playCmd, renderCmd, devicesCmd)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Daw.DeviceName, "device", viper.GetString("daw.devicename"), "Output device name (default selects the system default)")
	rootCmd.PersistentFlags().Float64Var(&settings.Daw.Tempo, "tempo", viper.GetFloat64("daw.tempo"), "Session tempo in BPM")
	rootCmd.PersistentFlags().StringVar(&settings.Daw.SamplesRoot, "samples", viper.GetString("daw.samplesroot"), "Root directory searched for sample files")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	return nil
}
