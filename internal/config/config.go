package config

import (
	"errors"
	"flag"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"log"
	"os"
	"path/filepath"
	"time"
)

const defaultConfigPath = "config/local.yaml"

type Config struct {
	Env       string    `yaml:"env" env:"QV_ENV" env-default:"local"`
	BaseDir   string    `yaml:"base_dir" env:"QV_BASE_DIR" env-default:"."`
	API       APIConfig `yaml:"api"`
	Elections []string  `yaml:"elections" env:"QV_ELECTIONS" env-separator:","`
}

type APIConfig struct {
	BaseURL       string        `yaml:"base_url" env:"QV_API_URL" env-required:"true"`
	Timeout       time.Duration `yaml:"timeout" env:"QV_API_TIMEOUT" env-default:"15s"`
	Retries       uint64        `yaml:"retries" env:"QV_API_RETRIES" env-default:"3"`
	RetryInterval time.Duration `yaml:"retry_interval" env:"QV_API_RETRY_INTERVAL" env-default:"500ms"`
}

func (c *Config) DataDir() string {
	return filepath.Join(c.BaseDir, "data")
}

func (c *Config) ReportDir() string {
	return filepath.Join(c.BaseDir, "report")
}

// MustLoad reads the config pointed to by the -config flag or CONFIG_PATH,
// falling back to config/local.yaml. A .env file in the working directory
// is loaded first when present.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("cannot read .env: %s", err)
	}

	return Load(fetchConfigPath())
}

func Load(path string) *Config {
	cfg, err := LoadConfig(path)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	var config Config
	if err := cleanenv.ReadConfig(path, &config); err != nil {
		return nil, err
	}

	if config.API.Timeout <= 0 {
		return nil, errors.New("api timeout must be positive")
	}

	return &config, nil
}

func fetchConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "Путь к конфигурационному файлу")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = defaultConfigPath
	}

	return path
}
