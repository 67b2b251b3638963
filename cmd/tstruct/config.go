package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/mizuleo/tstruct/pkg/tstruct"
)

// Config represents the tstruct.yaml configuration file.
type Config struct {
	DatabaseURL string `yaml:"database_url"`
	SchemasDir  string `yaml:"schemas_dir"`
	OutDir      string `yaml:"out_dir"`
	Package     string `yaml:"package"`
	Dialect     string `yaml:"dialect"`
	CacheDir    string `yaml:"cache_dir"`
}

// loadConfig loads configuration from file, env vars, and CLI flags.
// Precedence: CLI flags > env vars > config file > defaults
func loadConfig() (*Config, error) {
	cfg := &Config{
		SchemasDir: "./schemas",
		OutDir:     "./models",
		Package:    "models",
	}

	// Load config file if it exists
	if data, err := os.ReadFile(configFile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		// Handle env var interpolation in database_url
		cfg.DatabaseURL = expandEnvVars(cfg.DatabaseURL)
	}

	// Override with env vars
	if envURL := os.Getenv("DATABASE_URL"); envURL != "" && databaseURL == "" {
		cfg.DatabaseURL = envURL
	}
	if envSchemas := os.Getenv("TSTRUCT_SCHEMAS_DIR"); envSchemas != "" {
		cfg.SchemasDir = envSchemas
	}
	if envOut := os.Getenv("TSTRUCT_OUT_DIR"); envOut != "" {
		cfg.OutDir = envOut
	}

	// Override with CLI flags (highest priority)
	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}

	return cfg, nil
}

// expandEnvVars expands ${VAR} patterns in a string.
func expandEnvVars(s string) string {
	return os.Expand(s, os.Getenv)
}

// clientOptions builds the common client options from config.
func clientOptions(cfg *Config) []tstruct.Option {
	opts := []tstruct.Option{
		tstruct.WithGoPackage(cfg.Package),
	}
	if cfg.Dialect != "" {
		opts = append(opts, tstruct.WithDialect(cfg.Dialect))
	}
	if cfg.CacheDir != "" {
		opts = append(opts, tstruct.WithCacheDir(cfg.CacheDir))
	}
	return opts
}

// newClient creates a tstruct client connected to the configured database.
// It returns enhanced errors that are suitable for direct display to users.
func newClient() (*tstruct.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, tstruct.ErrMissingDatabaseURL
	}

	opts := append(clientOptions(cfg), tstruct.WithDatabaseURL(cfg.DatabaseURL))
	return tstruct.New(opts...)
}

// newSchemaOnlyClient creates a client that only reads definition files.
// It does not require a database connection.
func newSchemaOnlyClient() (*tstruct.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return tstruct.New(clientOptions(cfg)...)
}

// sourceFiles resolves the definition files to operate on. Explicit
// arguments win; otherwise every .sql file in the schemas directory is
// used, in sorted order.
func sourceFiles(args []string, cfg *Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	entries, err := os.ReadDir(cfg.SchemasDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schemas directory %s: %w", cfg.SchemasDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".sql" {
			continue
		}
		files = append(files, filepath.Join(cfg.SchemasDir, entry.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no .sql files found in %s", cfg.SchemasDir)
	}
	return files, nil
}
