package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Syuf1514/video-labeler/internal/engine"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

// action runs one session action and prints its result.
func (a *app) action(cmd *cobra.Command, fn func(*engine.Session) (types.Result, error)) error {
	s, err := a.openSession(true)
	if err != nil {
		return err
	}
	res, err := fn(s)
	if err != nil {
		return err
	}
	warnSave(cmd.ErrOrStderr(), res)
	return a.printResult(cmd.OutOrStdout(), res)
}

func (a *app) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.action(cmd, func(s *engine.Session) (types.Result, error) {
				return s.Current(), nil
			})
		},
	}
}

func (a *app) newNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "next",
		Aliases: []string{"n"},
		Short:   "Move to the next item (wraps to the first)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.action(cmd, (*engine.Session).Advance)
		},
	}
}

func (a *app) newPrevCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "prev",
		Aliases: []string{"p"},
		Short:   "Move to the previous item (wraps to the last)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.action(cmd, (*engine.Session).Retreat)
		},
	}
}

func (a *app) newJumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jump <n>",
		Short: "Move to the n-th item (1-based) in the current order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}
			return a.action(cmd, func(s *engine.Session) (types.Result, error) {
				return s.JumpTo(n - 1)
			})
		},
	}
}
