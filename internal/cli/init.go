package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Syuf1514/video-labeler/internal/logging"
	"github.com/Syuf1514/video-labeler/internal/paths"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	IdentityColumn string `yaml:"identity_column"`
	DataDir        string `yaml:"data_dir,omitempty"`
	Table          string `yaml:"table,omitempty"`
	PlayerCommand  string `yaml:"player_command,omitempty"`
	LogLevel       string `yaml:"log_level"`
	LogTailLines   int    `yaml:"log_tail_lines"`
}

func (a *app) newInitCmd() *cobra.Command {
	var (
		table    string
		identity string
		player   string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and data directories",
		Long: "Write config.yaml (if it does not exist yet) and create the data directory\n" +
			"that holds the session state and the log file.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(a.flags.configDir)
			if err != nil {
				return sysErrorf("resolve config dir: %w", err)
			}
			dataDir, err := paths.ResolveDataDir(a.flags.dataDir, "")
			if err != nil {
				return sysErrorf("resolve data dir: %w", err)
			}
			if table != "" {
				if table, err = paths.Abs(table); err != nil {
					return sysErrorf("resolve table path: %w", err)
				}
			}

			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return sysErrorf("create config directory: %w", err)
			}
			cfg := configFile{
				IdentityColumn: identity,
				Table:          table,
				PlayerCommand:  player,
				LogLevel:       defaultLogLevel,
				LogTailLines:   logging.DefaultTailLines,
			}
			if a.flags.dataDir != "" {
				cfg.DataDir = dataDir
			}
			configPath := filepath.Join(configDir, configFileExt)
			written, err := writeConfigIfMissing(configPath, cfg)
			if err != nil {
				return sysErrorf("write config: %w", err)
			}
			if err := os.MkdirAll(dataDir, 0o755); err != nil {
				return sysErrorf("create data directory: %w", err)
			}

			out := cmd.OutOrStdout()
			if written {
				fmt.Fprintf(out, "wrote %s\n", configPath)
			} else {
				fmt.Fprintf(out, "kept existing %s\n", configPath)
			}
			fmt.Fprintf(out, "data directory %s\n", dataDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&table, "table", "", "CSV table to open by default")
	cmd.Flags().StringVar(&identity, "identity", types.DefaultIdentityColumn, "column that names each item")
	cmd.Flags().StringVar(&player, "player", "", "command that plays the current video")
	return cmd
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. It reports whether it wrote the file.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
