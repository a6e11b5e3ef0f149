package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"componentdiff/internal/adapters/filesystem"
	"componentdiff/internal/adapters/sqlite"
	"componentdiff/internal/config"
	"componentdiff/internal/domain"
	"componentdiff/internal/logging"
	"componentdiff/internal/ports"
)

var (
	configPath  string
	defaultsDir string
	corpusDir   string
	verbose     bool

	cfg      *config.Config
	docs     ports.DocumentStore
	registry *domain.Registry
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "componentdiff-cli",
	Short: "Compare and normalize components across CNC script files",
	Long: `componentdiff-cli compares one component type (rates, wing, tool, ...)
across a directory of XML script files against a default document.

It ranks files by similarity, shows per-field differences, synthesizes
defaults from the corpus and writes the default back into selected files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("defaults") {
			cfg.DefaultsDir = defaultsDir
		}
		if cmd.Flags().Changed("corpus") {
			cfg.CorpusDir = corpusDir
		}
		cfg.DefaultsDir = filesystem.ExpandHome(cfg.DefaultsDir)
		cfg.CorpusDir = filesystem.ExpandHome(cfg.CorpusDir)

		registry, err = cfg.Registry()
		if err != nil {
			return err
		}

		if verbose {
			logger, err = logging.New(true)
		} else {
			logger, err = logging.Quiet()
		}
		if err != nil {
			return err
		}

		docs = filesystem.NewRepository()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command. SIGINT and SIGTERM cancel the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.ConfigPath(), "path to the YAML config file")
	rootCmd.PersistentFlags().StringVarP(&defaultsDir, "defaults", "d", config.DefaultDefaultsDir, "directory holding <type>_default.xml files")
	rootCmd.PersistentFlags().StringVarP(&corpusDir, "corpus", "c", config.DefaultCorpusDir, "directory of XML script files")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output as JSON to stderr")
}

// openHistory opens the run history database. Failures are logged and yield nil.
func openHistory() *sqlite.History {
	h := sqlite.NewHistory()
	if err := h.Open(cfg.HistoryDB); err != nil {
		logger.Warn("run history unavailable", zap.String("path", cfg.HistoryDB), zap.Error(err))
		return nil
	}
	return h
}

func componentType(arg string) domain.ComponentType {
	return domain.ComponentType(arg)
}
