package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ponto/config"
)

const defaultConfigName = ".ponto.yaml"

// configFilePath picks the --configFile flag, then the file viper loaded, then
// $HOME/.ponto.yaml.
func configFilePath(flagValue, loadedPath string) (string, error) {
	for _, candidate := range []string{flagValue, loadedPath} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, defaultConfigName), nil
}

// writeConfigTemplate writes the example config unless path already exists.
// It reports whether a file was written.
func writeConfigTemplate(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking config file failed: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory failed: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.ExampleYAML()), 0o600); err != nil {
		return false, fmt.Errorf("creating example config failed: %w", err)
	}
	return true, nil
}

// validateConfigFile reads path back and checks it as ponto YAML.
func validateConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config failed: %w", err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		return nil, fmt.Errorf("config validation failed in %s: %w", path, err)
	}
	return cfg, nil
}
