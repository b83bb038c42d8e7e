// Config loading for the numex CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/numex-dev/numex/internal/gui"
	"github.com/numex-dev/numex/internal/presets"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyPlotWidth       = "plot_width"
	cfgKeyPlotHeight      = "plot_height"
	cfgKeyDefaultColormap = "default_colormap"
	cfgKeyRecentLimit     = "recent_limit"
	cfgKeyWatchFiles      = "watch_files"
	cfgKeyWatchDebounceMs = "watch_debounce_ms"
	cfgKeyDataDir         = "data_dir"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# NumEx configuration

# Plot area size in pixels.
plot_width: 640
plot_height: 480

# Colormap preselected for map displays.
default_colormap: viridis

# Entries kept in the File > Open Recent menu.
recent_limit: 10

# Reload the view when the open file changes on disk.
watch_files: true
watch_debounce_ms: 250

# Directory for the preset database (default: the config directory).
# data_dir:
`

// loadConfig reads config.yaml from the config directory, creating the
// directory and a default file on first run. A missing config.yaml is
// not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyPlotWidth, 640)
	v.SetDefault(cfgKeyPlotHeight, 480)
	v.SetDefault(cfgKeyDefaultColormap, "viridis")
	v.SetDefault(cfgKeyRecentLimit, 10)
	v.SetDefault(cfgKeyWatchFiles, true)
	v.SetDefault(cfgKeyWatchDebounceMs, 250)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

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

func guiConfig() gui.Config {
	return gui.Config{
		PlotWidth:       appConfig.GetInt(cfgKeyPlotWidth),
		PlotHeight:      appConfig.GetInt(cfgKeyPlotHeight),
		DefaultColormap: appConfig.GetString(cfgKeyDefaultColormap),
		WatchFiles:      appConfig.GetBool(cfgKeyWatchFiles),
		Debounce:        time.Duration(appConfig.GetInt(cfgKeyWatchDebounceMs)) * time.Millisecond,
		RecentLimit:     appConfig.GetInt(cfgKeyRecentLimit),
	}
}

// resolveDataDir returns the preset database directory: config.yaml
// data_dir when set, the config directory otherwise.
func resolveDataDir() (string, error) {
	if dir := appConfig.GetString(cfgKeyDataDir); dir != "" {
		return dir, nil
	}
	return resolveConfigDir()
}

func openStore() (*presets.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, err
	}
	store := presets.NewStore()
	if err := store.Open(dataDir); err != nil {
		return nil, err
	}
	return store, nil
}
