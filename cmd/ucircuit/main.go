// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/ucircuit/internal/config"
	"github.com/ezrec/ucircuit/internal/logging"
	"github.com/ezrec/ucircuit/level"
	"github.com/ezrec/ucircuit/translate"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ucircuit",
		Short: "μCircuit bench - circuits and microcontroller programs",
		Long: `ucircuit checks μCircuit benches and programs against the level catalog.

A bench is a YAML description of components and wires. A program is
μCircuit assembly text. Both are validated by the level before the
program runs on a copy of the bench.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Configuration file (default ~/.ucircuit/config.yaml)")
	rootCmd.PersistentFlags().String("levels", "", "HCL level catalog (default built-in)")
	rootCmd.PersistentFlags().String("lang", "", "Message language, ie 'en-US'")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose mode")

	rootCmd.AddCommand(
		newLevelsCmd(),
		newLintCmd(),
		newRunCmd(),
	)

	return rootCmd
}

// session is the state shared by all subcommands.
type session struct {
	config  *config.Config
	logger  *slog.Logger
	catalog *level.Catalog
	verbose bool
}

// newSession loads configuration, logging and the level catalog from the
// persistent flags.
func newSession(cmd *cobra.Command) (sess *session, err error) {
	configPath, _ := cmd.Flags().GetString("config")
	levelsPath, _ := cmd.Flags().GetString("levels")
	lang, _ := cmd.Flags().GetString("lang")
	verbose, _ := cmd.Flags().GetBool("verbose")

	if len(lang) != 0 {
		if err = translate.SetLanguage(lang); err != nil {
			err = fmt.Errorf("--lang %s: %w", lang, err)
			return
		}
	}

	var cfg *config.Config
	if len(configPath) != 0 {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return
	}

	if len(levelsPath) != 0 {
		cfg.Levels.Catalog = levelsPath
	}
	if verbose && logging.ParseLevel(cfg.Logging.Level) > slog.LevelDebug {
		cfg.Logging.Level = "debug"
	}

	if err = cfg.Validate(); err != nil {
		err = fmt.Errorf("invalid configuration: %w", err)
		return
	}

	// A debug or trace level from the configuration is verbose too.
	sess = &session{
		config:  cfg,
		logger:  logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()),
		verbose: verbose || logging.ParseLevel(cfg.Logging.Level) <= slog.LevelDebug,
	}

	if len(cfg.Levels.Catalog) != 0 {
		sess.logger.Debug("catalog", "path", cfg.Levels.Catalog)
		sess.catalog, err = level.LoadFile(cfg.Levels.Catalog)
		if err != nil {
			sess = nil
			return
		}
	} else {
		sess.catalog = level.Default()
	}

	return
}

// readInput reads a named file, or standard input for "-".
func readInput(cmd *cobra.Command, name string) (text []byte, err error) {
	if name == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	return os.ReadFile(name)
}
