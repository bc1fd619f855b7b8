// Package cli implements the labeler command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Syuf1514/video-labeler/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app is the state shared by one invocation's commands.
type app struct {
	flags    rootFlags
	cfg      settings
	log      *logrus.Logger
	logClose io.Closer
}

// NewRootCmd creates the top-level "labeler" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "labeler",
		Short: "Label a table of videos one item at a time",
		Long: "Labeler walks the rows of a CSV table of videos in a chosen sort order\n" +
			"and toggles 0/1 label columns, saving every change back to the table.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipsConfig(cmd) {
				return nil
			}
			return a.loadSettings()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/video-labeler)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory for state and logs (default: $(CWD)/.labeler)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output as JSON")

	root.AddCommand(
		newVersionCmd(),
		a.newInitCmd(),
		a.newUICmd(),
		a.newStatusCmd(),
		a.newListCmd(),
		a.newNextCmd(),
		a.newPrevCmd(),
		a.newJumpCmd(),
		a.newToggleCmd(),
		a.newSetCmd(),
		a.newLabelCmd(),
		a.newSourceCmd(),
		a.newSortCmd(),
		a.newLogsCmd(),
		a.newExportCmd(),
		a.newDownloadCmd(),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// skipsConfig reports whether cmd runs without loading config.yaml.
func skipsConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "init", "help":
		return true
	}
	return false
}

// systemError marks a failure of the environment rather than of the
// operator's request.
type systemError struct {
	err error
}

func (e *systemError) Error() string { return e.err.Error() }
func (e *systemError) Unwrap() error { return e.err }

func sysErrorf(format string, args ...any) error {
	return &systemError{err: fmt.Errorf(format, args...)}
}

// exitCode maps an error to exit code 1 (bad request, bad input data) or
// 2 (the system could not carry out a valid request).
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *systemError
	if errors.As(err, &se) || errors.Is(err, types.ErrPersistence) {
		return exitSysError
	}
	return exitUserError
}

// warnSave reports a non-fatal persistence failure on stderr.
func warnSave(w io.Writer, res types.Result) {
	if res.SaveErr == nil {
		return
	}
	_, _ = color.New(color.FgYellow).Fprintf(w, "warning: %v (changes kept in memory)\n", res.SaveErr)
}

func (a *app) close() error {
	if a.logClose == nil {
		return nil
	}
	err := a.logClose.Close()
	a.logClose = nil
	return err
}
