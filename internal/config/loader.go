// internal/config/loader.go
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces every orionctl environment variable.
const envPrefix = "ORIONCTL_"

// systemConfigDir is the machine-wide config location, read in addition
// to the per-user directory.
const systemConfigDir = "/etc/orionctl"

// maxConfigFileSize caps how much YAML LoadWithFile will read. Anything
// larger than 1MB is not a config file.
const maxConfigFileSize = 1 << 20

// LoadWithFile builds the effective configuration from three layers, last
// one wins: compiled-in defaults, the YAML file at configPath, and
// ORIONCTL_* environment variables. An empty configPath means the standard
// user location, ~/.config/orionctl/config.yaml. A missing file is not an
// error; env vars and defaults still apply.
//
// The file may hold OAuth2 client credentials, so loading refuses paths
// outside ~/.config/orionctl/ and /etc/orionctl/, files readable by group
// or world, and files over 1MB.
//
// Environment variables map onto YAML keys by section and field:
//
//	ORIONCTL_SERVER_URL             server.url
//	ORIONCTL_AUTH_CLIENT_SECRET     auth.client_secret
//	ORIONCTL_TELEMETRY_SAMPLE_RATE  telemetry.sample_rate
func LoadWithFile(configPath string) (*Config, error) {
	if configPath == "" {
		p, err := userConfigFile()
		if err != nil {
			return nil, err
		}
		configPath = p
	}
	if err := validateConfigPath(configPath); err != nil {
		return nil, fmt.Errorf("config path validation failed: %w", err)
	}

	k := koanf.New(".")

	raw, err := readConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	if raw != nil {
		if err := k.Load(rawbytes.Provider(raw), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// EnsureConfigDir creates ~/.config/orionctl with 0700 permissions so a
// first run has somewhere to put config.yaml.
func EnsureConfigDir() error {
	dir, err := userConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}
	return nil
}

// userConfigDir is ~/.config/orionctl.
func userConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "orionctl"), nil
}

// userConfigFile is the default config path under userConfigDir.
func userConfigFile() (string, error) {
	dir, err := userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// readConfigFile returns the file's content, or nil if no file exists at
// path. The permission and size checks run against the opened descriptor,
// so swapping the file between check and read cannot bypass them.
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if runtime.GOOS != "windows" {
		switch perm := info.Mode().Perm(); perm {
		case 0600, 0400:
		default:
			return nil, fmt.Errorf("insecure config file permissions %v: want 0600 or 0400", perm)
		}
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (limit %d)", info.Size(), maxConfigFileSize)
	}

	raw, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return raw, nil
}

// envToKey maps an environment variable name to a koanf key. The first
// underscore after the prefix separates section from field; later
// underscores belong to the field, so ORIONCTL_AUTH_TOKEN_URL becomes
// auth.token_url.
func envToKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	section, field, ok := strings.Cut(key, "_")
	if !ok {
		return key
	}
	return section + "." + field
}

// validateConfigPath rejects any path outside the two directories orionctl
// reads config from. Symlinks are resolved first so a link cannot point
// the read elsewhere; a path that does not exist yet is judged by its
// cleaned absolute form.
func validateConfigPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	userDir, err := userConfigDir()
	if err != nil {
		return err
	}
	if !underDir(abs, userDir) && !underDir(abs, systemConfigDir) {
		return errors.New("config file must be in ~/.config/orionctl/ or /etc/orionctl/")
	}
	return nil
}

// underDir reports whether path is dir itself or inside it. Matching on
// the separator boundary keeps /etc/orionctl-evil from counting as a
// child of /etc/orionctl.
func underDir(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(os.PathSeparator))
}
