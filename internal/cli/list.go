package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Syuf1514/video-labeler/internal/render"
)

type listRow struct {
	Position int             `json:"position"`
	ID       string          `json:"id"`
	Current  bool            `json:"current"`
	Labels   map[string]bool `json:"labels"`
}

func (a *app) newListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List items in the current order with their labels",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(true)
			if err != nil {
				return err
			}
			tbl := s.Table()
			labels := s.LabelColumns()
			cur := s.Current()

			var rows []listRow
			for pos, id := range s.Order() {
				if limit > 0 && pos >= limit {
					break
				}
				row := listRow{Position: pos + 1, ID: id, Current: pos == cur.Position, Labels: map[string]bool{}}
				for _, l := range labels {
					v, _ := tbl.Label(id, l)
					row.Labels[l] = v
				}
				rows = append(rows, row)
			}

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), rows)
			}
			header := []any{"", "#", "ITEM"}
			for i, l := range labels {
				header = append(header, fmt.Sprintf("%d.%s", i+1, l))
			}
			out := newTable(header...)
			for _, row := range rows {
				marker := ""
				if row.Current {
					marker = ">"
				}
				cells := []any{marker, row.Position, filepath.Base(row.ID)}
				for _, l := range labels {
					cells = append(cells, render.Checkbox(row.Labels[l]))
				}
				out.AddRow(cells...)
			}
			_, _ = faint.Fprintf(cmd.OutOrStdout(), "%s sorted by %s\n", cur.Source, cur.Sort)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n items (0 for all)")
	return cmd
}
