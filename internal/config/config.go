package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/shopspring/decimal"
)

const DefaultConfigPath = "./config/local.yaml"

type API struct {
	BaseURL    string        `yaml:"API_BASE_URL" env:"API_BASE_URL" env-default:"http://localhost:5000/api"`
	UploadsURL string        `yaml:"API_UPLOADS_URL" env:"API_UPLOADS_URL" env-default:"http://localhost:5000/uploads"`
	Timeout    time.Duration `yaml:"API_TIMEOUT" env:"API_TIMEOUT" env-default:"10s"`
}

type Cart struct {
	Shipping string `yaml:"CART_SHIPPING_FEE" env:"CART_SHIPPING_FEE" env-default:"5.00"`
	Sync     bool   `yaml:"CART_SYNC" env:"CART_SYNC" env-default:"false"`
}

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type Credentials struct {
	Driver     string `yaml:"CREDENTIALS_DRIVER" env:"CREDENTIALS_DRIVER" env-default:"sqlite"`
	SQLitePath string `yaml:"CREDENTIALS_SQLITE_PATH" env:"CREDENTIALS_SQLITE_PATH" env-default:"storefront.db"`
	Profile    string `yaml:"CREDENTIALS_PROFILE" env:"CREDENTIALS_PROFILE" env-default:"default"`
}

type RedisConnect struct {
	Host       string        `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port       string        `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username   string        `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password   string        `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB         int           `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
	SessionTTL time.Duration `yaml:"SESSION_TTL" env:"SESSION_TTL" env-default:"24h"`
}

type Otel struct {
	ServiceName      string  `yaml:"OTEL_SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"grocery-storefront"`
	ExporterEndpoint string  `yaml:"OTEL_EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT"`
	SamplerRatio     float64 `yaml:"OTEL_SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1"`
}

type Metrics struct {
	Addr string `yaml:"METRICS_ADDRESS" env:"METRICS_ADDRESS"`
}

type Log struct {
	Level  string `yaml:"LOG_LEVEL" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"LOG_FORMAT" env:"LOG_FORMAT" env-default:"json"`
}

type Config struct {
	Env          string       `yaml:"env" env:"ENV" env-default:"local"`
	API          API          `yaml:"api"`
	Cart         Cart         `yaml:"cart"`
	Credentials  Credentials  `yaml:"credentials"`
	RedisConnect RedisConnect `yaml:"redis"`
	Otel         Otel         `yaml:"otel"`
	Metrics      Metrics      `yaml:"metrics"`
	Log          Log          `yaml:"log"`
}

// Load resolves the config file (explicit path, then CONFIG_PATH, then
// ./config/local.yaml). With no file at all the config comes from env and
// defaults only.
func Load(path string) (*Config, error) {

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		return LoadConfigFromPath(path)
	}

	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return LoadConfigFromPath(DefaultConfigPath)
	}

	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("can not read config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func LoadConfigFromPath(path string) (*Config, error) {

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad(path string) *Config {

	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %s", err.Error())
	}

	return cfg
}

func (c *Config) Validate() error {

	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("invalid API_BASE_URL %q: %w", c.API.BaseURL, err)
	}

	switch c.Credentials.Driver {
	case DriverSQLite, DriverRedis:
	default:
		return fmt.Errorf("unsupported CREDENTIALS_DRIVER %q", c.Credentials.Driver)
	}

	if _, err := c.Cart.ShippingFee(); err != nil {
		return err
	}

	return nil
}

// ShippingFee is the flat fee added to every cart total.
func (c Cart) ShippingFee() (decimal.Decimal, error) {

	fee, err := decimal.NewFromString(c.Shipping)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid CART_SHIPPING_FEE %q: %w", c.Shipping, err)
	}

	if fee.IsNegative() {
		return decimal.Zero, errors.New("CART_SHIPPING_FEE must not be negative")
	}

	return fee, nil
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}
