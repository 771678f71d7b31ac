package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress          string
	DatabaseURI         string
	DatabaseName        string
	Asset               AssetConfig
	UploadDir           string
	SpoolSweepInterval  time.Duration
	SpoolMaxAge         time.Duration
	SweeperWorkers      int
	MaxMultipartMemory  int64
	// MaxDecompressedBody caps gzip encoded request bodies after decompression.
	MaxDecompressedBody int64
	ShutdownTimeout     time.Duration
	LogLevel            string
}

// AssetConfig describes the S3 compatible bucket profile images are uploaded to.
type AssetConfig struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
	Folder        string
}

// StorageDriver names the user store backend selected by DatabaseURI.
type StorageDriver string

const (
	DriverMongo    StorageDriver = "mongo"
	DriverPostgres StorageDriver = "postgres"
)

const (
	defaultRunAddress         = ":1000"
	defaultDatabaseName       = "profilecard"
	defaultAssetRegion        = "auto"
	defaultAssetFolder        = "profiles"
	defaultSpoolSweepInterval = time.Minute
	defaultSpoolMaxAge        = time.Hour
	defaultSweeperWorkers     = 2
	defaultMaxMultipartMemory = 32 << 20
	defaultMaxDecompressed    = 64 << 20
	defaultShutdownTimeout    = 10 * time.Second
	defaultLogLevel           = "info"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	// a missing .env file is not an error, real environments set variables directly
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:   getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:  getString(lookup, "DATABASE_URI", ""),
		DatabaseName: getString(lookup, "DATABASE_NAME", defaultDatabaseName),
		Asset: AssetConfig{
			Endpoint:      getString(lookup, "ASSET_ENDPOINT", ""),
			Region:        getString(lookup, "ASSET_REGION", defaultAssetRegion),
			AccessKey:     getString(lookup, "ASSET_ACCESS_KEY", ""),
			SecretKey:     getString(lookup, "ASSET_SECRET_KEY", ""),
			Bucket:        getString(lookup, "ASSET_BUCKET", ""),
			PublicBaseURL: getString(lookup, "ASSET_PUBLIC_BASE_URL", ""),
			Folder:        getString(lookup, "ASSET_FOLDER", defaultAssetFolder),
		},
		UploadDir:           getString(lookup, "UPLOAD_DIR", defaultUploadDir()),
		SpoolSweepInterval:  getDuration(lookup, "SPOOL_SWEEP_INTERVAL", defaultSpoolSweepInterval),
		SpoolMaxAge:         getDuration(lookup, "SPOOL_MAX_AGE", defaultSpoolMaxAge),
		SweeperWorkers:      getInt(lookup, "SWEEPER_WORKERS", defaultSweeperWorkers),
		MaxMultipartMemory:  int64(getInt(lookup, "MAX_MULTIPART_MEMORY", defaultMaxMultipartMemory)),
		MaxDecompressedBody: int64(getInt(lookup, "MAX_DECOMPRESSED_BODY", defaultMaxDecompressed)),
		ShutdownTimeout:     getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:            getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("profilecard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sweepIntervalStr   = cfg.SpoolSweepInterval.String()
		spoolMaxAgeStr     = cfg.SpoolMaxAge.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "MongoDB or PostgreSQL connection URI")
	fs.StringVar(&cfg.DatabaseName, "db-name", cfg.DatabaseName, "MongoDB database name")
	fs.StringVar(&cfg.Asset.Endpoint, "asset-endpoint", cfg.Asset.Endpoint, "S3 compatible endpoint URL")
	fs.StringVar(&cfg.Asset.Region, "asset-region", cfg.Asset.Region, "Asset store signing region")
	fs.StringVar(&cfg.Asset.Bucket, "asset-bucket", cfg.Asset.Bucket, "Bucket for profile images")
	fs.StringVar(&cfg.Asset.PublicBaseURL, "asset-public-url", cfg.Asset.PublicBaseURL, "Public base URL of the bucket")
	fs.StringVar(&cfg.Asset.Folder, "asset-folder", cfg.Asset.Folder, "Key prefix for uploaded images")
	fs.StringVar(&cfg.UploadDir, "upload-dir", cfg.UploadDir, "Directory for spooled uploads")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between spool sweeps")
	fs.StringVar(&spoolMaxAgeStr, "spool-max-age", spoolMaxAgeStr, "Age after which spooled files are removed")
	fs.IntVar(&cfg.SweeperWorkers, "sweep-workers", cfg.SweeperWorkers, "Number of concurrent spool sweepers")
	fs.Int64Var(&cfg.MaxMultipartMemory, "multipart-memory", cfg.MaxMultipartMemory, "Bytes of multipart body kept in memory")
	fs.Int64Var(&cfg.MaxDecompressedBody, "max-decompressed-body", cfg.MaxDecompressedBody, "Byte limit of a gzip request body after decompression")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SpoolSweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.SpoolMaxAge, err = time.ParseDuration(spoolMaxAgeStr); err != nil {
		return nil, fmt.Errorf("invalid spool max age: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("ASSET_SECRET_KEY_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read asset secret file: %w", err)
		}
		cfg.Asset.SecretKey = strings.TrimSpace(string(content))
	}

	if cfg.SweeperWorkers <= 0 {
		cfg.SweeperWorkers = defaultSweeperWorkers
	}

	if cfg.SpoolSweepInterval <= 0 {
		cfg.SpoolSweepInterval = defaultSpoolSweepInterval
	}

	if cfg.SpoolMaxAge <= 0 {
		cfg.SpoolMaxAge = defaultSpoolMaxAge
	}

	if cfg.MaxMultipartMemory <= 0 {
		cfg.MaxMultipartMemory = defaultMaxMultipartMemory
	}

	if cfg.MaxDecompressedBody <= 0 {
		cfg.MaxDecompressedBody = defaultMaxDecompressed
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if _, err := cfg.StorageDriver(); err != nil {
		return nil, err
	}

	if err := cfg.Asset.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// StorageDriver picks the user store backend from the database URI scheme.
func (c *Config) StorageDriver() (StorageDriver, error) {
	u, err := url.Parse(c.DatabaseURI)
	if err != nil {
		return "", fmt.Errorf("parse database URI: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return DriverMongo, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	default:
		return "", fmt.Errorf("unsupported database URI scheme %q", u.Scheme)
	}
}

func (a AssetConfig) validate() error {
	missing := make([]string, 0, 5)
	if a.Endpoint == "" {
		missing = append(missing, "ASSET_ENDPOINT")
	}
	if a.AccessKey == "" {
		missing = append(missing, "ASSET_ACCESS_KEY")
	}
	if a.SecretKey == "" {
		missing = append(missing, "ASSET_SECRET_KEY")
	}
	if a.Bucket == "" {
		missing = append(missing, "ASSET_BUCKET")
	}
	if a.PublicBaseURL == "" {
		missing = append(missing, "ASSET_PUBLIC_BASE_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("asset store settings must be provided: %s", strings.Join(missing, ", "))
	}
	return nil
}

func defaultUploadDir() string {
	return filepath.Join(os.TempDir(), "profilecard-uploads")
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
