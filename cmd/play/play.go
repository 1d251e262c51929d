package play

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/korbindeman/goaw/internal/conf"
	"github.com/korbindeman/goaw/internal/daw"
	"github.com/korbindeman/goaw/internal/daw/demo"
)

// Command creates the `play` subcommand: opens the audio device, starts a
// demo pattern playing, and prints the transport position at roughly 60 Hz
// until interrupted.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [pattern]",
		Short: "Play a demo pattern through the audio device",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
			go func() {
				sig := <-sigChan
				fmt.Print("\n")
				fmt.Printf("received signal %v, initiating graceful shutdown...\n", sig)
				cancel()
			}()

			pattern := demo.PatternFourOnTheFloor
			if len(args) == 1 {
				pattern = args[0]
			}

			tracks, err := demo.Build(pattern, settings.Daw.SamplesRoot)
			if err != nil {
				return fmt.Errorf("error building pattern: %w", err)
			}

			timeSig := daw.NewTimeSignature(settings.Daw.TimeSigNum, settings.Daw.TimeSigDen)
			session, err := daw.NewSession("demo", tracks, settings.Daw.Tempo, timeSig, settings.Daw.DeviceName)
			if err != nil {
				return fmt.Errorf("error starting session: %w", err)
			}
			defer session.Close()

			session.Play()

			ticker := time.NewTicker(16 * time.Millisecond)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					session.Stop()
					return nil
				case <-ticker.C:
					if tick, ok := session.Poll(); ok {
						pos := daw.NewTimeContext(settings.Daw.Tempo, timeSig).FormatPosition(tick)
						fmt.Fprintf(cmd.OutOrStdout(), "\r%s", pos.String())
					}
				}
			}
		},
	}

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
	}

	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().StringVar(&settings.Daw.DeviceName, "device", viper.GetString("daw.devicename"), "Output device name")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	return nil
}
