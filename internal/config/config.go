// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values
// Validate config

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`

	//Search target
	SearchURL string `yaml:"search_url" env:"UPWORK_SEARCH_URL"`
	BaseURL   string `yaml:"base_url"`

	//Browser session
	Headless          bool          `yaml:"headless"`
	UserAgent         string        `yaml:"user_agent"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	RenderWait        time.Duration `yaml:"render_wait"`
	ScrollSteps       int           `yaml:"scroll_steps"`

	//Polling and pacing
	PollInterval       time.Duration `yaml:"poll_interval"`
	MessageDelay       time.Duration `yaml:"message_delay"`
	AlertAfterFailures int           `yaml:"alert_after_failures"`
	TelegramTimeout    time.Duration `yaml:"telegram_timeout"`

	//Dedup
	EmptyLinks string `yaml:"empty_links"`
	MaxRecords int    `yaml:"max_records"`

	//Filter
	Keywords        []string `yaml:"keywords"`
	ExcludeKeywords []string `yaml:"exclude_keywords"`

	//Paths
	CookiesPath string `yaml:"cookies_path" env:"COOKIES_PATH"`
	StorePath   string `yaml:"store_path" env:"STORE_PATH"`
	DebugDir    string `yaml:"debug_dir" env:"DEBUG_DIR"`

	//Status server
	ServerAddr string `yaml:"server_addr" env:"PORT"`
}

const (
	EmptyLinksSkip   = "skip"
	EmptyLinksNotify = "notify"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Load reads .env, the YAML file at path (missing file is only a warning),
// applies env overrides and defaults, then validates.
func Load(path string) (*Config, error) {
	cfg, err := LoadUnvalidated(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadUnvalidated is Load without the Telegram requirements, for tools that only read the store
func LoadUnvalidated(path string) (*Config, error) {
	_ = godotenv.Load()

	//durations are preset so an explicit 0 in YAML survives
	cfg := &Config{
		Headless:          true,
		NavigationTimeout: 25 * time.Second,
		RenderWait:        2 * time.Second,
		PollInterval:      60 * time.Second,
		MessageDelay:      2 * time.Second,
		TelegramTimeout:   30 * time.Second,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("⚠️ Could not read %s: %v", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if v := os.Getenv("UPWORK_SEARCH_URL"); v != "" {
		cfg.SearchURL = v
	}
	if v := os.Getenv("COOKIES_PATH"); v != "" {
		cfg.CookiesPath = v
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("DEBUG_DIR"); v != "" {
		cfg.DebugDir = v
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.ServerAddr = ":" + strings.TrimPrefix(port, ":")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.SearchURL == "" {
		cfg.SearchURL = "https://www.upwork.com/nx/search/jobs/?nbs=1&q=qt&sort=recency"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.upwork.com"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.EmptyLinks == "" {
		cfg.EmptyLinks = EmptyLinksSkip
	}
	if cfg.CookiesPath == "" {
		cfg.CookiesPath = "upwork_cookies.json"
	}
	if cfg.StorePath == "" {
		cfg.StorePath = "jobs.json"
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8080"
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.TelegramToken == "" {
		errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN is required"))
	}
	if c.TelegramChatID == 0 {
		errs = append(errs, errors.New("TELEGRAM_CHAT_ID is required"))
	}
	if c.EmptyLinks != EmptyLinksSkip && c.EmptyLinks != EmptyLinksNotify {
		errs = append(errs, fmt.Errorf("empty_links must be %q or %q, got %q", EmptyLinksSkip, EmptyLinksNotify, c.EmptyLinks))
	}
	if c.MaxRecords < 0 {
		errs = append(errs, errors.New("max_records must be >= 0"))
	}
	if c.AlertAfterFailures < 0 {
		errs = append(errs, errors.New("alert_after_failures must be >= 0"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("poll_interval must be > 0"))
	}
	if c.MessageDelay < 0 || c.RenderWait < 0 {
		errs = append(errs, errors.New("message_delay and render_wait must be >= 0"))
	}
	if c.NavigationTimeout <= 0 || c.TelegramTimeout <= 0 {
		errs = append(errs, errors.New("navigation_timeout and telegram_timeout must be > 0"))
	}
	if c.ScrollSteps < 0 {
		errs = append(errs, errors.New("scroll_steps must be >= 0"))
	}
	return errors.Join(errs...)
}
