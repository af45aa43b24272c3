// Command elevenlabs-plugin inspects and exercises the ElevenLabs plugin
// outside the host: it prints the provider schema the host reads and runs
// one-off transcriptions and syntheses against the live API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/COVAS-Labs/plugin-elevenlabs/config"
	"github.com/COVAS-Labs/plugin-elevenlabs/plugin"
)

// apiKeyEnv is read when --api-key is not given.
const apiKeyEnv = "ELEVENLABS_API_KEY"

type rootOptions struct {
	configFile string
	envFile    string
	dir        string
	apiKey     string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "elevenlabs-plugin",
		Short:         "ElevenLabs speech plugin tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: config.yml in --dir or the working directory)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", ".env file (default: .env in --dir or the working directory)")
	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "plugin directory searched for config files")
	cmd.PersistentFlags().StringVar(&opts.apiKey, "api-key", "", "ElevenLabs API key (default: $"+apiKeyEnv+")")

	cmd.AddCommand(
		newSchemaCommand(),
		newSpeakCommand(opts),
		newTranscribeCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

// open loads the plugin the way the host would.
func (o *rootOptions) open(ctx context.Context) (*plugin.Plugin, error) {
	var loader []config.LoaderOption
	if o.configFile != "" {
		loader = append(loader, config.WithConfigFile(o.configFile))
	}
	if o.envFile != "" {
		loader = append(loader, config.WithEnvFile(o.envFile))
	}
	if o.dir != "" {
		loader = append(loader, config.WithDir(o.dir))
	}
	return plugin.Open(ctx, loader...)
}

func (o *rootOptions) key() string {
	if o.apiKey != "" {
		return o.apiKey
	}
	return os.Getenv(apiKeyEnv)
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
