package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	// Ordered catalog sources, either http(s) URLs or local file paths.
	// Manufacturer names are derived from each source's filename.
	CatalogSources []string
	FetchTimeoutMs int

	SearchLimit int

	ScrapeSitemapURL  string
	ScrapeUserAgent   string
	ScrapeRateLimitPS int
	ScrapeTimeoutMs   int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	defaultSources := []string{
		filepath.Join(cwd, "data", "sources", "victaulic_fire_protection_products.csv"),
		filepath.Join(cwd, "data", "sources", "anvil_threaded_fittings.csv"),
		filepath.Join(cwd, "data", "sources", "viking_fire_protection_products.csv"),
		filepath.Join(cwd, "data", "sources", "reliable_fire_protection_products.csv"),
		filepath.Join(cwd, "data", "sources", "tyco_fire_protection_products.csv"),
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "catalog.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		CatalogSources: getEnvList("CATALOG_SOURCES", defaultSources),
		FetchTimeoutMs: getEnvInt("CATALOG_FETCH_TIMEOUT_MS", 30000),

		SearchLimit: getEnvInt("SEARCH_LIMIT", 10),

		ScrapeSitemapURL:  getEnv("SCRAPE_SITEMAP_URL", "https://www.victaulic.com/vtc_products-sitemap.xml"),
		ScrapeUserAgent:   getEnv("SCRAPE_USER_AGENT", "Mozilla/5.0 (compatible; FireProductsCSVBot/1.0; +local-script)"),
		ScrapeRateLimitPS: getEnvInt("SCRAPE_RATE_LIMIT_PS", 2),
		ScrapeTimeoutMs:   getEnvInt("SCRAPE_TIMEOUT_MS", 30000),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := getEnv(key, "")
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
