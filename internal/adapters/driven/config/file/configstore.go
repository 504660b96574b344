package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/Buttje/mcp-fess/internal/core/domain"
	"github.com/Buttje/mcp-fess/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// EnvConfigPath overrides the default configuration file location.
const EnvConfigPath = "MCP_FESS_CONFIG"

// DefaultFileName is the configuration file created by WriteStarter.
const DefaultFileName = "config.toml"

// Format is a configuration file syntax.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from the file extension.
// Unknown extensions are read as TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// DefaultDir returns ~/.mcp-fess.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".mcp-fess"), nil
}

// LogDir returns ~/.mcp-fess/log.
func LogDir() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "log"), nil
}

// ResolvePath returns explicit if set, then $MCP_FESS_CONFIG, then
// ~/.mcp-fess/config.toml.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env, nil
	}
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultFileName), nil
}

// ConfigStore reads the server configuration from a single file.
type ConfigStore struct {
	filePath string
}

// NewConfigStore creates a store for path, resolved with ResolvePath.
func NewConfigStore(path string) (*ConfigStore, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}
	return &ConfigStore{filePath: resolved}, nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Load reads the file over the defaults, then normalises and validates.
func (s *ConfigStore) Load() (domain.Config, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("config file %s not found (run 'mcp-fess config init'): %w",
				s.filePath, err)
		}
		return domain.Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := domain.DefaultConfig()
	if err := Decode(data, FormatFromPath(s.filePath), &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("%w: %s: %w", domain.ErrInvalidConfig, s.filePath, err)
	}
	cfg.Normalise()
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Decode parses data in the given format into cfg. Keys absent from data
// keep their current values.
func Decode(data []byte, format Format, cfg *domain.Config) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		return dec.Decode(cfg)
	case FormatYAML:
		return yaml.Unmarshal(data, cfg)
	default:
		return toml.Unmarshal(data, cfg)
	}
}

// Encode renders cfg in the given format.
func Encode(cfg domain.Config, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(cfg, "", "  ")
	case FormatYAML:
		return yaml.Marshal(cfg)
	default:
		return toml.Marshal(cfg)
	}
}

// StarterConfig returns the configuration written by WriteStarter.
func StarterConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.FessBaseURL = "http://localhost:8080"
	cfg.Domain = domain.DomainConfig{
		ID:          "default",
		Name:        "Default Knowledge Base",
		Description: "Documents indexed by the local Fess server.",
	}
	cfg.Normalise()
	return cfg
}

// WriteStarter writes StarterConfig to the store path, creating the
// directory. An existing file is kept unless force is set.
func (s *ConfigStore) WriteStarter(force bool) error {
	if !force {
		if _, err := os.Stat(s.filePath); err == nil {
			return fmt.Errorf("config file %s already exists", s.filePath)
		}
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := Encode(StarterConfig(), FormatFromPath(s.filePath))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(s.filePath, data, 0o600)
}

// Watch reloads the file on change. See Watcher.
func (s *ConfigStore) Watch(ctx context.Context, onChange func(domain.Config)) error {
	return NewWatcher(s, onChange).Run(ctx)
}
