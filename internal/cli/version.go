package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the labeler release.
const Version = "0.3.0"

const modulePath = "github.com/Syuf1514/video-labeler"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the labeler version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "labeler v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
