package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rundown-cli/internal/model"
	"rundown-cli/internal/rundown"
	"rundown-cli/internal/store"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var (
		header   bool
		duration string
		after    string
		talent   string
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Append a segment (or header) to the rundown",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, doc, err := loadDocument(app)
			if err != nil {
				return err
			}
			dur, err := model.ParseDuration(duration)
			if err != nil {
				return err
			}
			now := time.Now().UTC()
			it := model.Item{
				ID:        store.NewItemID(),
				Kind:      model.ItemKindSegment,
				Name:      strings.Join(args, " "),
				Duration:  dur,
				Talent:    talent,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if header {
				it.Kind = model.ItemKindHeader
			}
			at := doc.Len()
			if after != "" {
				ci := doc.IndexOf(after)
				if ci < 0 {
					return rundown.NotFoundError{ID: after}
				}
				at = ci + 1
			}
			if err := doc.Insert(it, at); err != nil {
				return err
			}
			if err := persist(ctx, s, doc, store.MutationEvent{Op: "insert", Item: &it, At: at}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s at %d\n", it.ID, at)
			return nil
		},
	}
	cmd.Flags().BoolVar(&header, "header", false, "Add a section header instead of a segment")
	cmd.Flags().StringVar(&duration, "duration", "0:00", "Scheduled duration (m:ss or h:mm:ss)")
	cmd.Flags().StringVar(&after, "after", "", "Insert after this item id (default: append)")
	cmd.Flags().StringVar(&talent, "talent", "", "Talent field")
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Remove items from the rundown",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, doc, err := loadDocument(app)
			if err != nil {
				return err
			}
			var evs []store.MutationEvent
			for _, id := range args {
				if err := doc.Remove(id); err != nil {
					return err
				}
				evs = append(evs, store.MutationEvent{Op: "remove", ID: id})
			}
			if err := persist(ctx, s, doc, evs...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d item(s)\n", len(args))
			return nil
		},
	}
}

func newMoveCmd(app *App) *cobra.Command {
	var to int
	cmd := &cobra.Command{
		Use:   "mv <id>...",
		Short: "Move items (headers move with their whole group)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, doc, err := loadDocument(app)
			if err != nil {
				return err
			}
			if err := doc.Move(args, to); err != nil {
				return err
			}
			if err := persist(ctx, s, doc, store.MutationEvent{Op: "move", IDs: args, To: to}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "moved %d item(s) to %d\n", len(args), to)
			return nil
		},
	}
	cmd.Flags().IntVar(&to, "to", 0, "Target canonical index")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func loadDocument(app *App) (store.Store, *rundown.Document, error) {
	s, err := resolveStore(app)
	if err != nil {
		return store.Store{}, nil, err
	}
	items, err := s.LoadItems(context.Background())
	if err != nil {
		return store.Store{}, nil, err
	}
	return s, rundown.NewDocument(items), nil
}

func persist(ctx context.Context, s store.Store, doc *rundown.Document, evs ...store.MutationEvent) error {
	if err := s.SaveItems(ctx, doc.Items()); err != nil {
		return err
	}
	for _, ev := range evs {
		if err := s.AppendEvent(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}
