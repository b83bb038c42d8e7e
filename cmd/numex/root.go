// Root command for the numex CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/numex-dev/numex/internal/logger"
)

const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// errSystem marks failures of the environment rather than the invocation;
// they exit with exitSysError.
var errSystem = errors.New("system error")

func systemError(err error) error {
	return fmt.Errorf("%w: %w", errSystem, err)
}

// Global flag values.
var (
	flagConfigDir string
	flagVerbose   int
	flagQuiet     bool
)

// Set by PersistentPreRunE for all subcommands.
var (
	appConfig *viper.Viper
	log       logger.Logger = &logger.Nop{}
)

var rootCmd = &cobra.Command{
	Use:           "numex",
	Short:         "NumEx explores n-dimensional numerical arrays",
	Long:          "NumEx opens numerical array files (NPY, CFL, common images)\nand explores them interactively with auto-generated controls.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.NewConsoleLogger(logger.LevelFromVerbosity(flagVerbose, flagQuiet))

		configDir, err := resolveConfigDir()
		if err != nil {
			return systemError(err)
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return systemError(err)
		}
		appConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: <user config dir>/numex)")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "silence all logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(synthCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(presetsCmd)
}

// resolveConfigDir follows the precedence --config-dir flag >
// NUMEX_CONFIG_DIR env > <user config dir>/numex.
func resolveConfigDir() (string, error) {
	if flagConfigDir != "" {
		return flagConfigDir, nil
	}
	if env := os.Getenv("NUMEX_CONFIG_DIR"); env != "" {
		return env, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "numex"), nil
}
