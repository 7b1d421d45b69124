// Package config loads and validates environment variables at startup.
// Fail-fast: a variable that is present but malformed is an error; nothing
// silently falls back to a default once a value is set.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"ldexchange/jobboard/internal/model"
)

// Config holds all runtime configuration shared by the commands.
type Config struct {
	DatabaseURL string
	SQLitePath  string
	RedisURL    string

	AdzunaAppID   string
	AdzunaAppKey  string
	AdzunaCountry string // e.g. "us", "gb"

	ScrapeIntervalHours int // How often the scheduled ingest fires
	WebPort             string
	GRPCPort            string

	TelegramBotToken string
	TelegramChatID   int64

	// Search is the ingestion grid; Leads is the broad manager-level grid.
	Search model.SearchGrid
	Leads  model.SearchGrid
}

// Load reads a .env file when present, then environment variables, and
// returns a validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	interval := 24
	if s := os.Getenv("SCRAPE_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SCRAPE_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	var chatID int64
	if s := os.Getenv("TELEGRAM_CHAT_ID"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer, got %q", s)
		}
		chatID = v
	}

	webPort := os.Getenv("WEB_PORT")
	if webPort == "" {
		webPort = "5000"
	}
	if err := checkPort("WEB_PORT", webPort); err != nil {
		return nil, err
	}
	grpcPort := os.Getenv("GRPC_PORT")
	if grpcPort == "" {
		grpcPort = "9090"
	}
	if err := checkPort("GRPC_PORT", grpcPort); err != nil {
		return nil, err
	}

	search, leads := DefaultSearchGrid(), DefaultLeadsGrid()
	if path := os.Getenv("SEARCH_CONFIG"); path != "" {
		f, err := LoadSearchFile(path)
		if err != nil {
			return nil, err
		}
		search = f.Search.merge(search)
		leads = f.Leads.merge(leads)
	}
	if err := validateGrid("search", search); err != nil {
		return nil, err
	}
	if err := validateGrid("leads", leads); err != nil {
		return nil, err
	}

	country := os.Getenv("ADZUNA_COUNTRY")
	if country != "" {
		search.Country, leads.Country = country, country
	} else {
		country = search.Country
	}

	return &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		SQLitePath:          os.Getenv("SQLITE_PATH"),
		RedisURL:            os.Getenv("REDIS_URL"),
		AdzunaAppID:         os.Getenv("ADZUNA_APP_ID"),
		AdzunaAppKey:        os.Getenv("ADZUNA_APP_KEY"),
		AdzunaCountry:       country,
		ScrapeIntervalHours: interval,
		WebPort:             webPort,
		GRPCPort:            grpcPort,
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:      chatID,
		Search:              search,
		Leads:               leads,
	}, nil
}

// TelegramEnabled reports whether both Telegram settings are present.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

func checkPort(name, s string) error {
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 || v > 65535 {
		return fmt.Errorf("%s must be a port number, got %q", name, s)
	}
	return nil
}

func validateGrid(name string, g model.SearchGrid) error {
	switch {
	case len(g.Terms) == 0:
		return fmt.Errorf("%s grid: at least one search term is required", name)
	case len(g.Locations) == 0:
		return fmt.Errorf("%s grid: at least one location is required", name)
	case g.MaxAgeHours < 1:
		return fmt.Errorf("%s grid: max_age_hours must be positive, got %d", name, g.MaxAgeHours)
	case g.MaxResults < 1:
		return fmt.Errorf("%s grid: max_results must be positive, got %d", name, g.MaxResults)
	case g.Delay < 0:
		return fmt.Errorf("%s grid: delay must not be negative, got %s", name, g.Delay)
	}
	return nil
}
