package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Syuf1514/video-labeler/internal/engine"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

func (a *app) newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <label>",
		Short: "Flip a label of the current item between 0 and 1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.action(cmd, func(s *engine.Session) (types.Result, error) {
				return s.ToggleLabel(args[0])
			})
		},
	}
}

func (a *app) newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <label> <0|1>",
		Short: "Set a label of the current item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseFlagArg(args[1])
			if err != nil {
				return err
			}
			return a.action(cmd, func(s *engine.Session) (types.Result, error) {
				return s.SetLabel(args[0], value)
			})
		},
	}
}

func parseFlagArg(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid label value %q (want 0 or 1)", s)
}

func (a *app) newLabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Add, remove or list label columns",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <name>",
			Short: "Add a label column set to 0 for every item",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.action(cmd, func(s *engine.Session) (types.Result, error) {
					return s.AddLabel(args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "remove <name>...",
			Short: "Remove label columns; other names are ignored",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.action(cmd, func(s *engine.Session) (types.Result, error) {
					return s.RemoveLabels(splitNames(args)...)
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List label columns with their toggle digit and counts",
			Args:  cobra.NoArgs,
			RunE:  a.runLabelList,
		},
	)
	return cmd
}

// splitNames accepts both "a b" and "a,b".
func splitNames(args []string) []string {
	var names []string
	for _, arg := range args {
		for _, n := range strings.Split(arg, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}
	return names
}

type labelSummary struct {
	Digit    int    `json:"digit"`
	Name     string `json:"name"`
	Positive int    `json:"positive"`
	Total    int    `json:"total"`
}

func (a *app) runLabelList(cmd *cobra.Command, args []string) error {
	s, err := a.openSession(true)
	if err != nil {
		return err
	}
	tbl := s.Table()
	var summary []labelSummary
	for i, name := range s.LabelColumns() {
		row := labelSummary{Digit: i + 1, Name: name, Total: tbl.Len()}
		for _, id := range tbl.IDs() {
			if v, err := tbl.Label(id, name); err == nil && v {
				row.Positive++
			}
		}
		summary = append(summary, row)
	}

	if a.flags.jsonMode {
		return printJSON(cmd.OutOrStdout(), summary)
	}
	out := newTable("DIGIT", "LABEL", "POSITIVE", "TOTAL")
	for _, row := range summary {
		out.AddRow(row.Digit, row.Name, row.Positive, row.Total)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
