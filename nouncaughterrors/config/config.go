// Package config holds the per-run analyzer configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the immutable configuration of one analysis run.
type Config struct {
	// RequireNever demands an explicit @throws {never} tag on functions
	// with an empty inferred error set.
	RequireNever bool `yaml:"require-never"`

	// AllowErrorBubbling permits unhandled call sites to contribute their
	// errors to the caller's contract. When false, every unhandled call
	// with a non-empty error set is reported at the call site.
	AllowErrorBubbling bool `yaml:"allow-error-bubbling"`

	// UnsafeCalls controls reporting of calls whose error contract cannot
	// be resolved.
	UnsafeCalls UnsafeCallsMode `yaml:"unsafe-calls"`

	// ErrorHandlers lists functions that absorb the errors of their
	// callback arguments.
	ErrorHandlers NameSet `yaml:"error-handlers"`

	// GenericWrappers lists functions whose error contribution is the
	// union of their function-valued arguments' contracts.
	GenericWrappers NameSet `yaml:"generic-wrappers"`

	// StrictMode rejects the generic base "error" name in declarations.
	StrictMode bool `yaml:"strict-mode"`
}

// Default returns the documented default configuration.
func Default() *Config {
	return &Config{
		RequireNever:       true,
		AllowErrorBubbling: true,
		UnsafeCalls:        UnsafeCallsWarn,
	}
}

// Load reads a YAML configuration file. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
