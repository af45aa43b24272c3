package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/COVAS-Labs/plugin-elevenlabs/audio"
	"github.com/COVAS-Labs/plugin-elevenlabs/settings"
	tts "github.com/COVAS-Labs/plugin-elevenlabs/synthesis/elevenlabs"
)

// PCM format of the synthesis stream.
const (
	speakSampleRate  = 24000
	speakSampleWidth = 2
)

func newSpeakCommand(root *rootOptions) *cobra.Command {
	var (
		voice string
		model string
		out   string
		raw   bool
	)
	cmd := &cobra.Command{
		Use:   "speak TEXT",
		Short: "Synthesize TEXT and write the audio as WAV (or raw PCM with --raw)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := root.open(ctx)
			if err != nil {
				return err
			}
			defer p.Shutdown(ctx)

			s := settings.Values{tts.SettingAPIKey: root.key()}
			if model != "" {
				s[tts.SettingModelID] = model
			}
			syn, err := p.CreateSynthesizer(string(tts.ProviderName), s)
			if err != nil {
				return err
			}
			if voice == "" {
				voice = syn.DefaultVoice()
			}

			it, err := syn.Synthesize(ctx, args[0], voice)
			if err != nil {
				return err
			}
			defer it.Close()

			var pcm bytes.Buffer
			for {
				chunk, ok, err := it.Next(ctx)
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				pcm.Write(chunk)
			}

			data := pcm.Bytes()
			if !raw {
				data, err = audio.Data{
					Frames:      data,
					SampleRate:  speakSampleRate,
					SampleWidth: speakSampleWidth,
				}.WAV(0, 0)
				if err != nil {
					return err
				}
			}
			return writeOutput(cmd.OutOrStdout(), out, data)
		},
	}
	cmd.Flags().StringVar(&voice, "voice", "", "voice id (default: the configured voice)")
	cmd.Flags().StringVar(&model, "model", "", "model id (default: "+tts.DefaultModelID+")")
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().BoolVar(&raw, "raw", false, "write raw 24 kHz 16-bit PCM instead of WAV")
	return cmd
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
