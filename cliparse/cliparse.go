package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           int
	BinURL         string
	BinID          string
	APIKey         string
	AdminCode      string
	IPHashSalt     string
	CachePath      string
	Roster         []string
	Deadline       time.Time
	RequestTimeout time.Duration
}

// DefaultBinURL is the JSONBin v3 API root.
const DefaultBinURL = "https://api.jsonbin.io/v3"

// ParseFlags validates flags, applies environment fallbacks and defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var roster, deadline string
	var timeoutSec int

	fs := flag.NewFlagSet("festival-ballot", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.BinURL, "bin-url", "", "Remote bin API root")
	fs.StringVar(&cfg.BinID, "bin-id", "", "Remote bin document ID")
	fs.StringVar(&cfg.CachePath, "cache", "", "Local snapshot cache path")
	fs.StringVar(&roster, "roster", "", "Comma-separated predefined nominees")
	fs.StringVar(&deadline, "deadline", "", "Voting deadline (RFC3339, optional)")
	fs.IntVar(&timeoutSec, "timeout", 0, "Remote request timeout in seconds")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.APIKey, "api-key", "", "Bin API key (prefer env)")
	fs.StringVar(&cfg.AdminCode, "admin-code", "", "Admin code (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	if err := fs.Parse(args); err != nil {
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
			cfg.Port = 3318 // default
		}
	}

	if cfg.BinURL == "" {
		cfg.BinURL = os.Getenv("BIN_URL")
	}
	if cfg.BinURL == "" {
		cfg.BinURL = DefaultBinURL
	}
	cfg.BinURL = strings.TrimRight(cfg.BinURL, "/")

	if cfg.BinID == "" {
		cfg.BinID = os.Getenv("BIN_ID")
	}
	if cfg.BinID == "" {
		return Config{}, errors.New("bin ID required (use -bin-id or BIN_ID env)")
	}

	if cfg.CachePath == "" {
		cfg.CachePath = os.Getenv("CACHE_PATH")
	}
	if cfg.CachePath == "" {
		cfg.CachePath = "ballot.db"
	}

	if roster == "" {
		roster = os.Getenv("ROSTER")
	}
	cfg.Roster = splitRoster(roster)

	if deadline == "" {
		deadline = os.Getenv("VOTING_DEADLINE")
	}
	if deadline != "" {
		t, err := time.Parse(time.RFC3339, deadline)
		if err != nil {
			return Config{}, errors.New("invalid VOTING_DEADLINE, expected RFC3339")
		}
		cfg.Deadline = t
	}

	if timeoutSec == 0 {
		if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return Config{}, errors.New("invalid REQUEST_TIMEOUT env variable")
			}
			timeoutSec = n
		} else {
			timeoutSec = 5 // default, matches the remote bin's expectations
		}
	}
	cfg.RequestTimeout = time.Duration(timeoutSec) * time.Second

	// Secrets - MUST be provided
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("BIN_API_KEY")
	}
	if cfg.APIKey == "" {
		return Config{}, errors.New("BIN_API_KEY required")
	}

	if cfg.AdminCode == "" {
		cfg.AdminCode = os.Getenv("ADMIN_CODE")
	}
	if cfg.AdminCode == "" {
		return Config{}, errors.New("ADMIN_CODE required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	return cfg, nil
}

func splitRoster(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			out = append(out, name)
		}
	}
	return out
}
