// Package config handles XDG configuration directory and file paths.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"wrapitup/internal/task"
)

const (
	// AppName is the application directory name.
	AppName = "wrapitup"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// ProfileFile is the cached identity profile filename.
	ProfileFile = "profile.json"

	// ProjectFile holds the Google Cloud project id of the Firestore
	// database, written at login.
	ProjectFile = "project"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Project is the Google Cloud project id; a -project flag overrides the
	// stored value.
	Project string

	// Debug enables diagnostic output.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/wrapitup or
// $HOME/.config/wrapitup.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// ProfilePath returns the path to the cached profile file.
func (c *Config) ProfilePath() string {
	return filepath.Join(c.Dir, ProfileFile)
}

// ProjectPath returns the path to the stored project id file.
func (c *Config) ProjectPath() string {
	return filepath.Join(c.Dir, ProjectFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}

// LoadProfile reads the cached identity profile.
func (c *Config) LoadProfile() (task.Profile, error) {
	data, err := os.ReadFile(c.ProfilePath())
	if err != nil {
		return task.Profile{}, err
	}
	var p task.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return task.Profile{}, err
	}
	return p, nil
}

// SaveProfile writes the cached identity profile with mode 0600.
func (c *Config) SaveProfile(p task.Profile) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.ProfilePath(), data, 0600)
}

// RemoveProfile deletes the cached profile. A missing file is not an error.
func (c *Config) RemoveProfile() error {
	err := os.Remove(c.ProfilePath())
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// LoadProject resolves the project id: the -project flag wins, then the
// stored project file. Returns empty when neither is set.
func (c *Config) LoadProject() string {
	if c.Project != "" {
		return c.Project
	}
	data, err := os.ReadFile(c.ProjectPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SaveProject stores the project id for later runs.
func (c *Config) SaveProject(project string) error {
	return os.WriteFile(c.ProjectPath(), []byte(project+"\n"), 0600)
}
