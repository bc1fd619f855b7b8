package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Syuf1514/video-labeler/internal/paths"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

func (a *app) newSourceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "source [file.csv]",
		Short: "Show or change the table being labeled",
		Long: "With no argument, show the current item of the current table. With a path,\n" +
			"load that table and start from its first item. A table that cannot be\n" +
			"read or has no identity column is refused and the current one is kept.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(len(args) == 0)
			if err != nil {
				return err
			}
			res := s.Current()
			if len(args) == 1 {
				path, err := paths.Abs(args[0])
				if err != nil {
					return err
				}
				if res, err = s.SetSourcePath(path); err != nil {
					return err
				}
			}
			warnSave(cmd.ErrOrStderr(), res)
			return a.printResult(cmd.OutOrStdout(), res)
		},
	}
}

func (a *app) newSortCmd() *cobra.Command {
	var (
		desc      bool
		direction string
	)
	cmd := &cobra.Command{
		Use:   "sort [column]",
		Short: "Show or change the sort order",
		Long: "Sort items by a column. Ties are broken by the identity column, ascending.\n" +
			"Changing the order moves the cursor to the first item.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(true)
			if err != nil {
				return err
			}
			res := s.Current()
			if len(args) == 1 {
				spec := types.SortSpec{Key: strings.TrimSpace(args[0]), Direction: types.Ascending}
				switch {
				case direction != "":
					if spec.Direction, err = types.ParseDirection(direction); err != nil {
						return err
					}
				case desc:
					spec.Direction = types.Descending
				}
				if res, err = s.SetSortSpec(spec); err != nil {
					return err
				}
			}
			warnSave(cmd.ErrOrStderr(), res)
			return a.printResult(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&direction, "direction", "", "sort direction: ascending or descending")
	return cmd
}
