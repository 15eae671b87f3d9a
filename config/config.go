package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"hockey-scraper/models"
)

const (
	// BaseURL is the competitions root of the England Hockey London site.
	BaseURL = "https://london.englandhockey.co.uk/competitions"

	// FixturesPath and TablePath are the competition sub-paths for the
	// fixtures list and the league table views.
	FixturesPath = "2024-2025-4477305-london-hockey-league-womens-4477409-london-womens-premier-division/fixtures"
	TablePath    = "2024-2025-4477305-london-hockey-league-womens-4477409-london-womens-premier-division/table"
)

// Global fallbacks used when a season has no override of its own.
const (
	defaultCompetitionGroupID = "30df1a93-543a-4352-a493-72e5ae8c102d"
	defaultCompetitionID      = "a91902a0-70f5-4edb-8f50-0eba140e972f"
)

// seasonIDs maps a season name to the site's season query parameter.
var seasonIDs = map[string]string{
	"2024-2025": "14edd6a1-2d0e-447a-8550-68b42882e46d",
	"2023-2024": "3d87a2df-f97d-47a1-8371-b8e5267c5360",
}

// Competition group and competition ids vary by season.
var competitionGroupIDs = map[string]string{
	"2024-2025": "30df1a93-543a-4352-a493-72e5ae8c102d",
	"2023-2024": "8c166342-84d4-4f76-ae04-85bb285359da",
}

var competitionIDs = map[string]string{
	"2024-2025": "a91902a0-70f5-4edb-8f50-0eba140e972f",
	"2023-2024": "bbd3b34a-7621-4e1d-8bf4-e10a1712241e",
}

// seasonOrder fixes the order seasons are scraped and emitted in.
var seasonOrder = []string{"2024-2025", "2023-2024"}

// ConfigError reports a season requested with no resolvable parameters.
// It is raised before any network call is made.
type ConfigError struct {
	Season string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: no parameters resolvable for season %q", e.Season)
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	OutputDir string
	Headless  bool
	Debug     bool

	MaxRetries        int
	RateLimitMs       int
	RenderTimeoutSec  int
	SettleDelaySec    int
	SeasonConcurrency int

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	ChromeBin string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		OutputDir: getEnv("OUTPUT_DIR", "./output"),
		Headless:  getEnvBool("HEADLESS", true),
		Debug:     getEnvBool("DEBUG", false),

		MaxRetries:        getEnvInt("MAX_RETRIES", 3),
		RateLimitMs:       getEnvInt("RATE_LIMIT_MS", 3000),
		RenderTimeoutSec:  getEnvInt("RENDER_TIMEOUT_SEC", 30),
		SettleDelaySec:    getEnvInt("SETTLE_DELAY_SEC", 5),
		SeasonConcurrency: getEnvInt("SEASON_CONCURRENCY", 1),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "hockey_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		ChromeBin: getEnv("CHROME_BIN", ""),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// Seasons resolves the configured seasons in scrape order. When names is
// empty every known season is returned; an unknown name yields a ConfigError
// before any network call happens.
func Seasons(names []string) ([]models.Season, error) {
	if len(names) == 0 {
		names = seasonOrder
	}

	seasons := make([]models.Season, 0, len(names))
	for _, name := range names {
		s, err := ResolveSeason(name)
		if err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	return seasons, nil
}

// ResolveSeason looks up the per-season site parameters, falling back to the
// global competition defaults when a season has no override.
func ResolveSeason(name string) (models.Season, error) {
	seasonID, ok := seasonIDs[name]
	if !ok {
		return models.Season{}, &ConfigError{Season: name}
	}

	groupID, ok := competitionGroupIDs[name]
	if !ok {
		groupID = defaultCompetitionGroupID
	}
	compID, ok := competitionIDs[name]
	if !ok {
		compID = defaultCompetitionID
	}

	return models.Season{
		Name:               name,
		SeasonID:           seasonID,
		CompetitionGroupID: groupID,
		CompetitionID:      compID,
	}, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
