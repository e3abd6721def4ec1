package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/MikeBiancalana/pepys/internal/config"
	"github.com/MikeBiancalana/pepys/internal/diary"
	"github.com/MikeBiancalana/pepys/internal/editor"
	"github.com/MikeBiancalana/pepys/internal/logger"
	"github.com/MikeBiancalana/pepys/internal/storage"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	createdStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	openedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// App holds the collaborators the commands run against.
type App struct {
	ConfigPath  func() (string, error)
	Home        config.HomeFunc
	Clock       diary.Clock
	NewLauncher func(editorCmd string) editor.Launcher
}

// DefaultApp wires the real config location, clock and editor. The nil Home
// makes config.DiaryRoot use the real home directory.
func DefaultApp() *App {
	return &App{
		ConfigPath: config.FilePath,
		Clock:      diary.SystemClock{},
		NewLauncher: func(editorCmd string) editor.Launcher {
			return editor.NewExecLauncher(editorCmd)
		},
	}
}

// environment is everything resolved from config before a date is involved.
type environment struct {
	configFile string
	settings   config.Settings
	root       string
	editor     string
}

func (a *App) loadEnvironment() (environment, error) {
	path, err := a.ConfigPath()
	if err != nil {
		return environment{}, err
	}

	settings, err := config.Load(path)
	if err != nil {
		return environment{}, err
	}

	root, err := config.DiaryRoot(settings, a.Home)
	if err != nil {
		return environment{}, err
	}

	configured, _ := settings.Get(config.KeyEditor)

	logger.Debug("resolved diary root", "root", root, "config", path)
	return environment{
		configFile: path,
		settings:   settings,
		root:       root,
		editor:     editor.Resolve(configured),
	}, nil
}

// OpenEntry makes sure the entry for the date in args (or today) exists and
// opens it in the editor. Editor failures are reported but not returned.
func (a *App) OpenEntry(ctx context.Context, args []string, out, errOut io.Writer) error {
	env, err := a.loadEnvironment()
	if err != nil {
		return err
	}

	var date diary.Date
	if len(args) == 0 {
		date = diary.Today(a.Clock)
	} else {
		date, err = diary.ParseDate(args[0])
		if err != nil {
			return err
		}
	}

	store := storage.NewFileStore(env.root)
	path := store.EntryPath(date)

	created, err := store.EnsureEntry(path)
	if err != nil {
		return err
	}

	if created {
		fmt.Fprintln(out, createdStyle.Render("Created entry for "+date.String()+": "+path))
	} else {
		fmt.Fprintln(out, openedStyle.Render("Opening entry for "+date.String()+": "+path))
	}

	launcher := a.NewLauncher(env.editor)
	if err := launcher.Launch(ctx, path); err != nil {
		logger.Warn("editor failed", "path", path, "error", err)
		fmt.Fprintln(errOut, warnStyle.Render("Warning: "+err.Error()))
	}

	return nil
}

// NewRootCmd builds the pepys command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pepys [YYYY-MM-DD]",
		Short: "Pepys - a diary in your editor",
		Long: `Opens the diary entry for a day in your $EDITOR.

With no argument the entry for today (UTC) is opened. Entries live at
<diary root>/YYYY/MM/DD.txt and are created empty the first time they
are opened. The diary root is ~/pepys unless diary_path is set in pepys.conf.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.OpenEntry(cmd.Context(), args, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newListCmd(app))

	return rootCmd
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	logger.Initialize()
	return NewRootCmd(DefaultApp()).ExecuteContext(ctx)
}
