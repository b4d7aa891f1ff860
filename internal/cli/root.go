package cli

import (
	"os"

	"rundown-cli/internal/store"
	"rundown-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "rundown",
		Short:        "Production rundown editor (CLI + TUI)",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("RUNDOWN_DIR", ""), "Path to workspace dir (default: nearest .rundown, else ./.rundown)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newMoveCmd(app))
	cmd.AddCommand(newOpenCmd(app))

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func resolveStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	return store.Store{Dir: dir}, nil
}

func runTUI(app *App) error {
	s, err := resolveStore(app)
	if err != nil {
		return err
	}
	return tui.Run(s)
}

func newOpenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open the interactive rundown editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}
}
