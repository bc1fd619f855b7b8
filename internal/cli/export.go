package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Syuf1514/video-labeler/internal/export"
	"github.com/Syuf1514/video-labeler/internal/paths"
)

func (a *app) newExportCmd() *cobra.Command {
	var fileOrder bool
	cmd := &cobra.Command{
		Use:   "export <file.db>",
		Short: "Write the table and its labels to a SQLite database",
		Long: "Export writes an items table (one row per item, with its position in the\n" +
			"current sort order) and a labels table with one (item, label, value) row\n" +
			"per label. An existing database file is replaced.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := paths.Abs(args[0])
			if err != nil {
				return err
			}
			s, err := a.openSession(true)
			if err != nil {
				return err
			}
			tbl := s.Table()
			order := s.Order()
			if fileOrder {
				order = tbl.IDs()
			}
			if err := export.ToSQLite(cmd.Context(), tbl, order, dbPath); err != nil {
				a.log.WithError(err).WithField("path", dbPath).Error("export failed")
				return sysErrorf("export: %w", err)
			}
			a.log.WithField("path", dbPath).WithField("items", len(order)).Info("exported")
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d items to %s\n", len(order), dbPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fileOrder, "file-order", false, "record positions in file order instead of the current sort")
	return cmd
}
