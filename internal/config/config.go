// Package config loads the user identity consumed by commit creation.
//
// Configuration is TOML. The global file lives at $HOME/.gitconfig; a
// repository may carry .git/config on top, and repository values win.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ErrNoIdentity reports that user.name or user.email is unset.
var ErrNoIdentity = errors.New("user identity not configured (set user.name and user.email)")

// Config is the subset of configuration the engine consumes.
type Config struct {
	User User `toml:"user"`
}

// User is the commit identity.
type User struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// Validate confirms the identity is complete enough to commit with.
func (u User) Validate() error {
	if u.Name == "" || u.Email == "" {
		return ErrNoIdentity
	}
	return nil
}

// Load reads the global config and, when projRoot is non-empty, merges
// the repository config over it. Missing files are not errors.
func Load(projRoot string) (*Config, error) {
	cfg := &Config{}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("locate home directory: %w", err)
	}
	if err := mergeFile(filepath.Join(home, ".gitconfig"), cfg); err != nil {
		return nil, err
	}
	if projRoot != "" {
		if err := mergeFile(filepath.Join(projRoot, ".git", "config"), cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// mergeFile unmarshals path into cfg; keys present in the file override
// earlier values, keys absent leave them alone.
func mergeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
