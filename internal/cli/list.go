package cli

import (
	"fmt"

	"github.com/MikeBiancalana/pepys/internal/storage"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the dates that have an entry",
		Long:  `Prints the date of every entry under the diary root, oldest first (useful for fzf inputs).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.loadEnvironment()
			if err != nil {
				return err
			}

			dates, err := storage.NewFileStore(env.root).ListEntries()
			if err != nil {
				return fmt.Errorf("failed to list entries: %w", err)
			}

			for _, d := range dates {
				fmt.Fprintln(cmd.OutOrStdout(), d.String())
			}
			return nil
		},
	}
}
