package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/COVAS-Labs/plugin-elevenlabs/plugin"
	"github.com/COVAS-Labs/plugin-elevenlabs/settings"
)

// schema is everything the host renders for this plugin.
type schema struct {
	Settings  settings.Page       `json:"settings" yaml:"settings"`
	Providers []plugin.Descriptor `json:"model_providers" yaml:"model_providers"`
}

func newSchemaCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the settings page and provider table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := schema{Settings: plugin.SettingsPage(), Providers: plugin.Declare()}

			var (
				out []byte
				err error
			)
			switch format {
			case "yaml", "yml":
				out, err = settings.MarshalYAML(s)
			case "json":
				out, err = settings.MarshalJSON(s)
				out = append(out, '\n')
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml or json")
	return cmd
}
