package cli

import (
	"github.com/spf13/cobra"

	"github.com/Syuf1514/video-labeler/internal/player"
	"github.com/Syuf1514/video-labeler/internal/tui"
)

func (a *app) newUICmd() *cobra.Command {
	var playerCmd string
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Label interactively in the terminal",
		Long: "Open the terminal labeler. Arrow keys and space move between items, digit\n" +
			"keys toggle the numbered labels, and ? lists the other commands.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(false)
			if err != nil {
				return err
			}
			command := a.cfg.playerCommand
			if cmd.Flags().Changed("player") {
				command = playerCmd
			}
			p := player.New(command, a.log)
			defer p.Close()

			a.log.WithField("session", s.ID()).Info("terminal ui started")
			return tui.Run(s, p, tui.Options{
				LogPath:   a.cfg.logPath,
				TailLines: a.cfg.tailLines,
				Log:       a.log,
			})
		},
	}
	cmd.Flags().StringVar(&playerCmd, "player", "", "command that plays the current video (overrides player_command)")
	return cmd
}
