package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"todotui/internal/clock"
	"todotui/internal/config"
	"todotui/internal/engine"
	"todotui/internal/storage"
	"todotui/internal/ui"
)

var (
	flagConfig  string
	flagFile    string
	flagBackend string
)

var rootCmd = &cobra.Command{
	Use:   "todotui",
	Short: "A terminal UI for a todo.txt task list",
	Long: `todotui keeps a plain-text task list in the todo.txt format and
drives it with short commands (list, add, done, remove, closest,
important) typed into the TUI.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file path")
	rootCmd.Flags().StringVar(&flagFile, "file", "", "todo.txt path (overrides config)")
	rootCmd.Flags().StringVar(&flagBackend, "backend", "", "storage backend: file or sqlite")
	rootCmd.SilenceUsage = true
}

func run() error {
	configPath := flagConfig
	if configPath == "" {
		configPath = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if flagFile != "" {
		cfg.TodoPath = flagFile
	}
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}

	logger, closeLog, err := openLogger(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	path := cfg.TodoPath
	if cfg.Backend == storage.BackendSQLite {
		path = cfg.DBPath
	}
	store, err := storage.Open(cfg.Backend, path, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	sess := engine.NewSession(store, clock.Real{}, logger, cfg.Aliases)
	return ui.Run(sess, cfg)
}

// openLogger sends diagnostics to the configured file. The terminal
// belongs to the TUI, so an empty path means discard.
func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true})
	return logger, func() { f.Close() }, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
