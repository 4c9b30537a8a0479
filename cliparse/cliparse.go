package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/printvote/auth"
)

// Store types
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

const (
	DefaultPort    = 3318
	DefaultAuthTTL = 5 * time.Minute
	defaultEnvFile = ".env"
)

type Config struct {
	Port           int
	StoreType      string
	AdminKey       string
	IPHashSalt     string
	CandidatesFile string
	AuthTTL        time.Duration
	EnvFile        string
}

// ParseFlags validates flags and fills the gaps from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("printvote", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreType, "s", "", "Registry store (memory or sqlite)")
	fs.StringVar(&cfg.CandidatesFile, "candidates", "", "YAML file with the candidate list")
	fs.DurationVar(&cfg.AuthTTL, "auth-ttl", 0, "How long a verification authorizes a vote")
	fs.StringVar(&cfg.EnvFile, "env-file", "", "Env file to load (default .env if present)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key for registry reset (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Salt for hashing client IPs in logs (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.StoreType == "" {
		cfg.StoreType = os.Getenv("STORE_TYPE")
		if cfg.StoreType == "" {
			cfg.StoreType = StoreMemory
		}
	}
	if cfg.StoreType != StoreMemory && cfg.StoreType != StoreSQLite {
		return Config{}, fmt.Errorf("invalid store type %q (use memory or sqlite)", cfg.StoreType)
	}

	if cfg.CandidatesFile == "" {
		cfg.CandidatesFile = os.Getenv("CANDIDATES_FILE")
	}

	if cfg.AuthTTL == 0 {
		if ttlStr := os.Getenv("AUTH_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid AUTH_TTL env variable")
			}
			cfg.AuthTTL = ttl
		} else {
			cfg.AuthTTL = DefaultAuthTTL
		}
	}
	if cfg.AuthTTL <= 0 {
		return Config{}, errors.New("auth TTL must be positive")
	}

	// Secrets - admin key MUST be provided
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		// Per-process salt; hashes only need to correlate within one run
		salt, err := auth.GenerateID(16)
		if err != nil {
			return Config{}, err
		}
		cfg.IPHashSalt = salt
	}

	return cfg, nil
}

// loadEnvFile loads path into the environment without overriding variables
// that are already set. With no path, a missing .env is not an error.
func loadEnvFile(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
		return nil
	}

	if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", defaultEnvFile, err)
	}
	return nil
}
