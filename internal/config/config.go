// Package config loads the TOML config file, writing defaults on
// first run.
package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultTodoName       = "todo.txt"
	DefaultDBName         = "todo.db"
	appDirName            = "todotui"
)

type Keymap struct {
	Quit    string `toml:"quit"`
	Edit    string `toml:"edit"`
	Confirm string `toml:"confirm"`
	Cancel  string `toml:"cancel"`
}

type Config struct {
	// TodoPath is the todo.txt file for the file backend; DBPath is
	// the database for the sqlite backend.
	TodoPath string `toml:"todo_path"`
	Backend  string `toml:"backend"`
	DBPath   string `toml:"db_path"`
	// LogPath receives diagnostics; empty disables logging. The TUI
	// owns the terminal, so nothing is ever logged to stdout.
	LogPath string `toml:"log_path"`
	// Aliases maps extra command words onto built-in commands,
	// e.g. due = "closest".
	Aliases map[string]string `toml:"aliases"`
	Keys    Keymap            `toml:"keys"`
}

// ResolveConfigPath returns the per-user config location, falling back
// to the working directory when the user config dir is unknown.
func ResolveConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(base, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.TodoPath == "" {
		cfg.TodoPath = DefaultTodoName
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		TodoPath: DefaultTodoName,
		Backend:  "file",
		DBPath:   DefaultDBName,
		Aliases: map[string]string{
			"due":  "closest",
			"prio": "important",
		},
		Keys: Keymap{
			Quit:    "q",
			Edit:    "e",
			Confirm: "enter",
			Cancel:  "esc",
		},
	}
}
