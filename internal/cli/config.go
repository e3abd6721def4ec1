package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type resolvedConfig struct {
	ConfigFile string            `yaml:"config_file"`
	DiaryRoot  string            `yaml:"diary_root"`
	Editor     string            `yaml:"editor"`
	Settings   map[string]string `yaml:"settings"`
}

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Long:  `Prints the config file location, diary root, editor and raw settings as YAML.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.loadEnvironment()
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(resolvedConfig{
				ConfigFile: env.configFile,
				DiaryRoot:  env.root,
				Editor:     env.editor,
				Settings:   env.settings.Map(),
			})
			if err != nil {
				return fmt.Errorf("failed to encode config as YAML: %w", err)
			}

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
