package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Syuf1514/video-labeler/internal/logging"
	"github.com/Syuf1514/video-labeler/internal/paths"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "LABELER"

	cfgKeyIdentity  = "identity_column"
	cfgKeyDataDir   = "data_dir"
	cfgKeySnapshot  = "snapshot_file"
	cfgKeyLogFile   = "log_file"
	cfgKeyLogLevel  = "log_level"
	cfgKeyTailLines = "log_tail_lines"
	cfgKeyPlayer    = "player_command"
	cfgKeyTable     = "table"

	defaultSnapshotFile = "state.json"
	defaultLogFile      = "app.log"
	defaultLogLevel     = "info"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# labeler configuration

# Column whose value names each item (usually the video file path)
identity_column: path

# Data directory for state.json and app.log (optional; overridable by --data-dir)
# data_dir:

# Table opened when no source has been chosen yet
# table: videos.csv

# Program that plays the current video; the file path is appended
# player_command: mpv --loop

log_level: info
log_tail_lines: 20
`

// settings are the resolved values of config.yaml, environment and flags.
type settings struct {
	identity      string
	dataDir       string
	snapshotPath  string
	logPath       string
	logLevel      string
	tailLines     int
	playerCommand string
	table         string
}

func (s settings) engineConfig() types.Config {
	return types.Config{
		IdentityColumn: s.identity,
		SnapshotPath:   s.snapshotPath,
		DefaultTable:   s.table,
	}
}

// loadConfig reads config.yaml from the resolved config directory using Viper.
// It creates the config directory and a default config.yaml on first run.
// LABELER_* environment variables override file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyIdentity, types.DefaultIdentityColumn)
	v.SetDefault(cfgKeySnapshot, defaultSnapshotFile)
	v.SetDefault(cfgKeyLogFile, defaultLogFile)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyTailLines, logging.DefaultTailLines)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// loadSettings resolves directories and reads config.yaml into a.cfg.
func (a *app) loadSettings() error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErrorf("resolve config dir: %w", err)
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysErrorf("load config: %w", err)
	}
	cfg, err := settingsFrom(v, a.flags.dataDir)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func settingsFrom(v *viper.Viper, dataDirFlag string) (settings, error) {
	dataDir, err := paths.ResolveDataDir(dataDirFlag, v.GetString(cfgKeyDataDir))
	if err != nil {
		return settings{}, sysErrorf("resolve data dir: %w", err)
	}
	snapshot, err := paths.InDir(dataDir, v.GetString(cfgKeySnapshot))
	if err != nil {
		return settings{}, sysErrorf("resolve snapshot path: %w", err)
	}
	logPath, err := paths.InDir(dataDir, v.GetString(cfgKeyLogFile))
	if err != nil {
		return settings{}, sysErrorf("resolve log path: %w", err)
	}
	table := v.GetString(cfgKeyTable)
	if table != "" {
		if table, err = paths.Abs(table); err != nil {
			return settings{}, sysErrorf("resolve table path: %w", err)
		}
	}

	s := settings{
		identity:      strings.TrimSpace(v.GetString(cfgKeyIdentity)),
		dataDir:       dataDir,
		snapshotPath:  snapshot,
		logPath:       logPath,
		logLevel:      v.GetString(cfgKeyLogLevel),
		tailLines:     v.GetInt(cfgKeyTailLines),
		playerCommand: v.GetString(cfgKeyPlayer),
		table:         table,
	}
	if err := s.engineConfig().Validate(); err != nil {
		return settings{}, fmt.Errorf("invalid config: %w", err)
	}
	return s, nil
}
