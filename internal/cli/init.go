package cli

import (
	"context"
	"fmt"

	"rundown-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var empty bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a rundown workspace in the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := resolveStore(app)
			if err != nil {
				return err
			}
			existing, err := s.LoadItems(ctx)
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				return fmt.Errorf("workspace already has a rundown (%d rows): %s", len(existing), s.Dir)
			}
			items := store.SeedItems()
			if empty {
				items = nil
			}
			if err := s.SaveItems(ctx, items); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized %s (%d rows)\n", s.Dir, len(items))
			return nil
		},
	}
	cmd.Flags().BoolVar(&empty, "empty", false, "Start with an empty rundown instead of the demo show")
	return cmd
}
