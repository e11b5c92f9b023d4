package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/kjannette/sidebar-pricebot/internal/gas"
)

type Config struct {
	// Display
	Ticker           string
	UpdateIntervalMS int
	RotatePrice      bool
	RotateIntervalMS int

	// Discord
	DiscordBotTokens []string
	TokenIndex       int

	// Price source
	CoinGeckoAPIURL string
	CoinGeckoAPIKey string
	SymbolsFile     string
	LoadCoinList    bool

	// Gas oracles
	EtherscanAPIURL     string
	EtherscanAPIKey     string
	EthereumAPIEndpoint string

	HTTPTimeoutSeconds int

	// Notifications
	WebhookURL string
	BotName    string

	// REST API
	APIPort         int
	APIKey          string
	CORSAllowOrigin string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads .env and the environment, then applies the positional
// arguments [TICKER] [INTERVAL_MS] [TOKEN_INDEX] [ROTATE], which win over
// the environment. Any fourth argument at all turns rotation on.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Ticker:           envStr("TICKER", "ETH"),
		UpdateIntervalMS: envInt("UPDATE_INTERVAL_MS", 60000),
		RotatePrice:      envPresent("ROTATE_PRICE"),
		RotateIntervalMS: envInt("ROTATE_INTERVAL_MS", 10000),

		DiscordBotTokens: envList("DISCORD_BOT_TOKENS"),
		TokenIndex:       envInt("TOKEN_INDEX", 0),

		CoinGeckoAPIURL: envStr("COINGECKO_API_URL", "https://api.coingecko.com/api/v3"),
		CoinGeckoAPIKey: envStr("COINGECKO_API_KEY", ""),
		SymbolsFile:     envStr("SYMBOLS_FILE", ""),
		LoadCoinList:    envBool("LOAD_COIN_LIST", true),

		EtherscanAPIURL:     envStr("ETHERSCAN_API_URL", "https://api.etherscan.io/api"),
		EtherscanAPIKey:     envStr("ETHERSCAN_API_KEY", ""),
		EthereumAPIEndpoint: envStr("ETHEREUM_API_ENDPOINT", ""),

		HTTPTimeoutSeconds: envInt("HTTP_TIMEOUT_SECONDS", 10),

		WebhookURL: envStr("WEBHOOK_URL", ""),
		BotName:    envStr("BOT_NAME", "SidebarPriceBot"),

		APIPort:         envInt("API_PORT", 3001),
		APIKey:          envStr("API_KEY", ""),
		CORSAllowOrigin: envStr("CORS_ALLOW_ORIGIN", "*"),

		LogLevel:  envStr("LOG_LEVEL", "info"),
		LogFormat: envStr("LOG_FORMAT", "console"),
	}

	if len(args) > 0 && args[0] != "" {
		cfg.Ticker = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return nil, fmt.Errorf("interval argument %q: %w", args[1], err)
		}
		cfg.UpdateIntervalMS = n
	}
	if len(args) > 2 {
		n, err := strconv.Atoi(args[2])
		if err != nil {
			return nil, fmt.Errorf("token index argument %q: %w", args[2], err)
		}
		cfg.TokenIndex = n
	}
	if len(args) > 3 {
		cfg.RotatePrice = true
	}

	cfg.Ticker = strings.ToUpper(strings.TrimSpace(cfg.Ticker))
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.Ticker == "" {
		errs = append(errs, "TICKER must not be empty")
	}
	if c.UpdateIntervalMS <= 0 {
		errs = append(errs, "UPDATE_INTERVAL_MS must be positive")
	}
	if c.RotateIntervalMS <= 0 {
		errs = append(errs, "ROTATE_INTERVAL_MS must be positive")
	}
	if len(c.DiscordBotTokens) > 0 && (c.TokenIndex < 0 || c.TokenIndex >= len(c.DiscordBotTokens)) {
		errs = append(errs, fmt.Sprintf("TOKEN_INDEX %d out of range (%d tokens configured)", c.TokenIndex, len(c.DiscordBotTokens)))
	}
	if c.GasMode() && c.EtherscanAPIKey == "" && c.EthereumAPIEndpoint == "" {
		errs = append(errs, "gas mode needs ETHERSCAN_API_KEY or ETHEREUM_API_ENDPOINT")
	}
	if c.HTTPTimeoutSeconds <= 0 {
		errs = append(errs, "HTTP_TIMEOUT_SECONDS must be positive")
	}
	if c.APIPort < 0 || c.APIPort > 65535 {
		errs = append(errs, fmt.Sprintf("API_PORT %d out of range", c.APIPort))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Warnings lists settings that are legal but probably unintended.
func (c *Config) Warnings() []string {
	var w []string
	if len(c.DiscordBotTokens) == 0 {
		w = append(w, "DISCORD_BOT_TOKENS not set, nicknames will not be updated")
	}
	if c.GasMode() && c.RotatePrice {
		w = append(w, "rotation has no effect in gas mode")
	}
	if c.APIKey == "" && c.APIPort != 0 {
		w = append(w, "API_KEY not set, REST API has no authentication")
	}
	return w
}

// GasMode reports whether the ticker selects the gas display.
func (c *Config) GasMode() bool { return gas.IsSentinel(c.Ticker) }

// Rotate reports whether the rotation job should run.
func (c *Config) Rotate() bool { return c.RotatePrice && !c.GasMode() }

// DiscordToken is the bot token selected by TOKEN_INDEX, empty if none.
func (c *Config) DiscordToken() string {
	if c.TokenIndex < 0 || c.TokenIndex >= len(c.DiscordBotTokens) {
		return ""
	}
	return c.DiscordBotTokens[c.TokenIndex]
}

func (c *Config) UpdateInterval() time.Duration {
	return time.Duration(c.UpdateIntervalMS) * time.Millisecond
}

func (c *Config) RotateInterval() time.Duration {
	return time.Duration(c.RotateIntervalMS) * time.Millisecond
}

func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func (c *Config) Print(log zerolog.Logger) {
	mode := "price"
	switch {
	case c.GasMode():
		mode = "gas"
	case c.Rotate():
		mode = "rotate"
	}
	log.Info().
		Str("ticker", c.Ticker).
		Str("mode", mode).
		Dur("update_interval", c.UpdateInterval()).
		Dur("rotate_interval", c.RotateInterval()).
		Int("discord_tokens", len(c.DiscordBotTokens)).
		Int("token_index", c.TokenIndex).
		Str("coingecko", boolLabel(c.CoinGeckoAPIKey != "", "pro key", "public")).
		Str("etherscan", boolLabel(c.EtherscanAPIKey != "", "configured", "not set")).
		Str("rpc", boolLabel(c.EthereumAPIEndpoint != "", "configured", "not set")).
		Str("webhook", boolLabel(c.WebhookURL != "", "configured", "not set")).
		Int("api_port", c.APIPort).
		Msg("configuration loaded")
}

// --- helpers ---

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(v)
		return v == "true" || v == "1" || v == "yes"
	}
	return fallback
}

// envPresent treats any value as set except an explicit false.
func envPresent(key string) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "false", "0", "no":
		return false
	}
	return true
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func boolLabel(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
