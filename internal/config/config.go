package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const minSecretKeyLength = 32

var (
	ErrSecretKeyMissing  = errors.New("SECRET_KEY is required")
	ErrSecretKeyInsecure = errors.New("SECRET_KEY uses an insecure placeholder")
	ErrSecretKeyTooShort = fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	ErrInvalidPort       = errors.New("PORT must be between 1 and 65535")
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
	"secret":    {},
	"changeme":  {},
	"change_me": {},
}

type MailConfig struct {
	Host           string        `env:"MAIL_HOST" envDefault:"smtp.gmail.com"`
	Port           int           `env:"MAIL_PORT" envDefault:"587"`
	Username       string        `env:"MAIL_USERNAME"`
	Password       string        `env:"MAIL_PASSWORD"`
	LegacyUsername string        `env:"EMAIL_USERNAME"`
	LegacyPassword string        `env:"EMAIL_PASSWORD"`
	Timeout        time.Duration `env:"MAIL_TIMEOUT" envDefault:"10s"`
	Retries        int           `env:"MAIL_RETRIES" envDefault:"2"`
	RequireTLS     bool          `env:"MAIL_REQUIRE_TLS" envDefault:"true"`
}

// Configured reports whether both relay credentials are present.
func (m MailConfig) Configured() bool {
	return strings.TrimSpace(m.Username) != "" && m.Password != ""
}

func (m MailConfig) Address() string {
	return m.Host + ":" + strconv.Itoa(m.Port)
}

type Config struct {
	Port            int        `env:"PORT" envDefault:"8080"`
	DBPath          string     `env:"DB_PATH" envDefault:"data/cardiocheck.db"`
	DatasetPath     string     `env:"DATASET_PATH" envDefault:"data/heart.csv"`
	TemplatesDir    string     `env:"TEMPLATES_DIR" envDefault:"internal/templates"`
	SecretKey       string     `env:"SECRET_KEY,required"`
	CookieSecure    bool       `env:"COOKIE_SECURE" envDefault:"false"`
	DefaultLanguage string     `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	LogLevel        string     `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string     `env:"LOG_FORMAT" envDefault:"text"`
	Mail            MailConfig `env:""`
}

// Load reads optional .env files into the environment and parses Config.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the process environment without consulting any .env file.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Mail.Username == "" {
		cfg.Mail.Username = cfg.Mail.LegacyUsername
	}
	if cfg.Mail.Password == "" {
		cfg.Mail.Password = cfg.Mail.LegacyPassword
	}
	cfg.Mail.Username = strings.TrimSpace(cfg.Mail.Username)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	secret, err := ResolveSecretKey(c.SecretKey)
	if err != nil {
		return err
	}
	c.SecretKey = secret

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Port)
	}
	if c.Mail.Port < 1 || c.Mail.Port > 65535 {
		return fmt.Errorf("MAIL_PORT must be between 1 and 65535: got %d", c.Mail.Port)
	}
	if c.Mail.Timeout <= 0 {
		return fmt.Errorf("MAIL_TIMEOUT must be positive: got %s", c.Mail.Timeout)
	}
	if c.Mail.Retries < 0 {
		return fmt.Errorf("MAIL_RETRIES must not be negative: got %d", c.Mail.Retries)
	}
	if strings.TrimSpace(c.DefaultLanguage) == "" {
		c.DefaultLanguage = "en"
	}
	return nil
}

// StorageConfig is the subset the operator commands need; it does not require SECRET_KEY.
type StorageConfig struct {
	DBPath string `env:"DB_PATH" envDefault:"data/cardiocheck.db"`
}

func LoadStorage(envFiles ...string) (StorageConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return StorageConfig{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := StorageConfig{}
	if err := env.Parse(&cfg); err != nil {
		return StorageConfig{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

func (c *Config) ListenAddress() string {
	return ":" + strconv.Itoa(c.Port)
}

func ResolveSecretKey(raw string) (string, error) {
	secret := strings.TrimSpace(raw)
	if secret == "" {
		return "", ErrSecretKeyMissing
	}
	if _, insecure := insecureSecretKeys[strings.ToLower(secret)]; insecure {
		return "", ErrSecretKeyInsecure
	}
	if len(secret) < minSecretKeyLength {
		return "", ErrSecretKeyTooShort
	}
	return secret, nil
}
