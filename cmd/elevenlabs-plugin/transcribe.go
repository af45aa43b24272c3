package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/COVAS-Labs/plugin-elevenlabs/audio"
	"github.com/COVAS-Labs/plugin-elevenlabs/settings"
	stt "github.com/COVAS-Labs/plugin-elevenlabs/transcription/elevenlabs"
)

func newTranscribeCommand(root *rootOptions) *cobra.Command {
	var (
		language string
		model    string
	)
	cmd := &cobra.Command{
		Use:   "transcribe FILE.wav",
		Short: "Transcribe a PCM WAV file (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			data, err := audio.ParseWAV(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			ctx := cmd.Context()
			p, err := root.open(ctx)
			if err != nil {
				return err
			}
			defer p.Shutdown(ctx)

			s := settings.Values{stt.SettingAPIKey: root.key(), stt.SettingLanguage: language}
			if model != "" {
				s[stt.SettingModelID] = model
			}
			tr, err := p.CreateTranscriber(string(stt.ProviderName), s)
			if err != nil {
				return err
			}

			text, err := tr.Transcribe(ctx, data)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVar(&language, "language", "", "language code, empty to auto-detect")
	cmd.Flags().StringVar(&model, "model", "", "model id (default: "+stt.DefaultModelID+")")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}
