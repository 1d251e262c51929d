package render

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/korbindeman/goaw/internal/conf"
	"github.com/korbindeman/goaw/internal/daw"
	"github.com/korbindeman/goaw/internal/daw/demo"
)

// Command creates the `render` subcommand: mixes a demo pattern down to a
// WAV file without opening an audio device.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [pattern]",
		Short: "Render a demo pattern to a WAV file",
		Long:  `Render a demo pattern (four-on-the-floor, hip-hop, bossa) to a WAV file without opening an audio device.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := demo.PatternFourOnTheFloor
			if len(args) == 1 {
				pattern = args[0]
			}

			tracks, err := demo.Build(pattern, settings.Daw.SamplesRoot)
			if err != nil {
				return fmt.Errorf("error building pattern: %w", err)
			}

			sampleRate := uint32(settings.Daw.SampleRate)
			if sampleRate == 0 {
				sampleRate = conf.DefaultSampleRate
			}
			channels := uint16(settings.Daw.Channels)
			if channels == 0 {
				channels = conf.DefaultChannels
			}

			buf, err := daw.RenderTimeline(tracks, settings.Daw.Tempo, sampleRate, channels)
			if err != nil {
				return fmt.Errorf("error rendering timeline: %w", err)
			}

			outPath := conf.ResolveOutputPath(settings.Output.File.Path)
			if err := daw.WriteWAV(buf, outPath); err != nil {
				return fmt.Errorf("error writing WAV: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "rendered %s to %s (%d frames)\n", pattern, outPath, buf.Frames())
			return nil
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
	cmd.Flags().StringVarP(&settings.Output.File.Path, "output", "o", viper.GetString("output.file.path"), "Destination WAV path")
	if settings.Output.File.Path == "" {
		settings.Output.File.Path = "render.wav"
	}

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}
	return nil
}
