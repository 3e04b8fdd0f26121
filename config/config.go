package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort         string
	PoolsAPIURL     string
	FetchTimeout    time.Duration
	FetchRetries    int
	RefreshInterval time.Duration
	Chains          []string
	Protocols       []string
	DefaultMinTvl   float64
	DefaultMinApy   float64
}

// Networks the dashboard supports. Pools on any other chain are rejected
// at normalization, before filtering.
var defaultChains = []string{
	"Arbitrum", "Avalanche", "Base", "BNB",
	"Ethereum", "Optimism", "Polygon", "Solana",
}

var defaultProtocols = []string{
	"aave-v2", "aave-v3", "aerodrome-v1", "aerodrome-v2",
	"convex-finance", "orca", "pancakeswap-amm", "pancakeswap-amm-v3",
	"pendle", "quickswap-dex", "sushiswap", "uniswap-v2",
	"uniswap-v3", "velodrome-v2", "yearn-finance", "yldr",
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment directly")
	}

	return &Config{
		AppPort:         getEnv("APP_PORT", "3000"),
		PoolsAPIURL:     getEnv("POOLS_API_URL", "https://yields.llama.fi"),
		FetchTimeout:    getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
		FetchRetries:    getEnvInt("FETCH_RETRIES", 3),
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 5*time.Minute),
		Chains:          getEnvList("CHAIN_ALLOWLIST", defaultChains),
		Protocols:       getEnvList("PROTOCOL_ALLOWLIST", defaultProtocols),
		DefaultMinTvl:   getEnvFloat("DEFAULT_MIN_TVL", 800_000),
		DefaultMinApy:   getEnvFloat("DEFAULT_MIN_APY", 5.0),
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("invalid value for %s, using default", key)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s, using default", key)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("invalid value for %s, using default", key)
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	if value, exists := os.LookupEnv(key); exists {
		var list []string
		for _, item := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				list = append(list, trimmed)
			}
		}
		if len(list) > 0 {
			return list
		}
	}
	return fallback
}
