package cli

import (
	"context"
	"fmt"
	"time"

	"rundown-cli/internal/model"
	"rundown-cli/internal/rundown"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	var withIDs bool
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the rundown as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := resolveStore(app)
			if err != nil {
				return err
			}
			items, err := s.LoadItems(ctx)
			if err != nil {
				return err
			}
			ui, err := s.LoadUIState()
			if err != nil {
				return err
			}

			doc := rundown.NewDocument(items)
			calc := rundown.NewCalc(doc)
			calc.SetLocked(ui.LockedNumbering)
			cs := rundown.NewCollapseSet()
			rows := calc.Rows(cs, ui.PlayheadID, time.Now())

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.SetStyle(table.StyleRounded)
			header := table.Row{"#", "Name", "Talent", "Dur", "Status"}
			if withIDs {
				header = append(header, "ID")
			}
			tw.AppendHeader(header)
			for i, it := range doc.Items() {
				ri := rows[i]
				name := it.Name
				dur := model.FormatDuration(it.Duration)
				if it.IsHeader() {
					dur = model.FormatDuration(calc.HeaderDuration(cs, ui.PlayheadID, time.Now(), it.ID))
					name = "— " + name
				}
				if it.Floated {
					name += " (floated)"
				}
				row := table.Row{ri.Label, name, it.Talent, dur, string(ri.Status)}
				if withIDs {
					row = append(row, it.ID)
				}
				tw.AppendRow(row)
			}
			tw.SetColumnConfigs([]table.ColumnConfig{
				{Number: 1, Align: text.AlignRight},
				{Number: 4, Align: text.AlignRight},
			})
			tw.Render()

			total := calc.Total(cs, ui.PlayheadID, time.Now())
			fmt.Fprintf(cmd.OutOrStdout(), "total runtime %s (%d rows)\n", model.FormatDuration(total), doc.Len())
			return nil
		},
	}
	cmd.Flags().BoolVar(&withIDs, "ids", false, "Include item ids (for add/rm/mv)")
	return cmd
}
