package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Syuf1514/video-labeler/internal/logging"
)

func (a *app) newLogsCmd() *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the end of the log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n := lines
			if n <= 0 {
				n = a.cfg.tailLines
			}
			tail, err := logging.Tail(a.cfg.logPath, n)
			if err != nil {
				return sysErrorf("read log: %w", err)
			}
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), tail)
			}
			for _, line := range tail {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "number of lines (default: log_tail_lines from config)")
	return cmd
}
