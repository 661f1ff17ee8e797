package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultListenAddr     = "127.0.0.1:8420"
	DefaultLockTimeoutMS  = 5000
	DefaultBusyTimeoutMS  = 5000
	DefaultImpactMaxNodes = 100
	DefaultLogLevel       = "info"
)

// Config represents the main configuration for genfs.
type Config struct {
	StoreID    string           `toml:"store_id"`
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	LogLevel   string           `toml:"log_level"`
	Database   DatabaseConfig   `toml:"database"`
	Lock       LockConfig       `toml:"lock"`
	Impact     ImpactConfig     `toml:"impact"`
	Server     ServerConfig     `toml:"server"`
	Filesystem FilesystemConfig `toml:"filesystem"`
	Encryption EncryptionConfig `toml:"encryption"`
	Vaults     []VaultConfig    `toml:"vaults"`
}

// DatabaseConfig represents configuration for the version store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type          string `toml:"type"`                      // "sqlite" or "memory"
	Path          string `toml:"path,omitempty"`            // only used for type=sqlite
	BusyTimeoutMS int    `toml:"busy_timeout_ms,omitempty"` // SQLite busy_timeout
}

// LockConfig bounds how long a writer waits for its path lock.
type LockConfig struct {
	TimeoutMS int `toml:"timeout_ms"`
}

// Timeout returns the lock timeout as a duration.
func (c LockConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// ImpactConfig bounds impact analysis.
type ImpactConfig struct {
	MaxNodes int `toml:"max_nodes"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

// FilesystemConfig holds settings for importing local directories.
type FilesystemConfig struct {
	Ignore []string `toml:"ignore"`
}

// EncryptionConfig holds paths to the age key pair used for snapshots.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age", "test" or "none"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// VaultConfig represents configuration for a snapshot vault backend.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type VaultConfig struct {
	Type string `toml:"type"` // "memory", "s3", or "filesystem"
	Name string `toml:"name"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket   string `toml:"s3_bucket,omitempty"`
	S3Prefix   string `toml:"s3_prefix,omitempty"`
	S3Region   string `toml:"s3_region,omitempty"`
	S3Endpoint string `toml:"s3_endpoint,omitempty"` // for S3 compatible stores

	// FileSystem-specific fields (only used when Type == "filesystem")
	FSVaultRoot string `toml:"fs_vault_root,omitempty"`
}

// NewConfig creates a new Config with the provided values and defaults.
func NewConfig(storeID, baseDir string) *Config {
	return &Config{
		StoreID:  storeID,
		BaseDir:  baseDir,
		LogDir:   filepath.Join(baseDir, "log"),
		LogLevel: DefaultLogLevel,
		Database: DatabaseConfig{
			Type:          "sqlite",
			Path:          filepath.Join(baseDir, "db", storeID+".db"),
			BusyTimeoutMS: DefaultBusyTimeoutMS,
		},
		Lock:   LockConfig{TimeoutMS: DefaultLockTimeoutMS},
		Impact: ImpactConfig{MaxNodes: DefaultImpactMaxNodes},
		Server: ServerConfig{ListenAddr: DefaultListenAddr},
		Filesystem: FilesystemConfig{
			Ignore: []string{".git", "node_modules"},
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "genfs.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "genfs.key"),
		},
	}
}

// WithDefaults fills zero-valued tunables so older config files keep working.
func (c *Config) WithDefaults() *Config {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogDir == "" && c.BaseDir != "" {
		c.LogDir = filepath.Join(c.BaseDir, "log")
	}
	if c.Database.Type == "" {
		c.Database.Type = "sqlite"
	}
	if c.Database.BusyTimeoutMS <= 0 {
		c.Database.BusyTimeoutMS = DefaultBusyTimeoutMS
	}
	if c.Lock.TimeoutMS <= 0 {
		c.Lock.TimeoutMS = DefaultLockTimeoutMS
	}
	if c.Impact.MaxNodes <= 0 {
		c.Impact.MaxNodes = DefaultImpactMaxNodes
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = DefaultListenAddr
	}
	if c.Encryption.Type == "" {
		c.Encryption.Type = "age"
	}
	return c
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads the config file at path, then applies environment overrides
// and defaults. Variables from a .env file in the working directory are
// loaded first; variables already set in the environment take precedence.
// A missing .env is skipped, an unparsable one is an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := ReadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg.WithDefaults(), nil
}

// ApplyEnv overrides selected fields from GENFS_* environment variables.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("GENFS_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("GENFS_LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("GENFS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GENFS_LOCK_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GENFS_LOCK_TIMEOUT_MS must be a valid integer: %w", err)
		}
		cfg.Lock.TimeoutMS = ms
	}
	return nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
