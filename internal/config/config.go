package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	Env        string `yaml:"env" env:"APP_ENV" env-default:"prod"`
	HTTPServer `yaml:"http_server"`
	DB         `yaml:"db"`
	Funding    `yaml:"funding"`

	AllowedOrigins []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-default:"http://localhost:5173"`

	AdminLogin string `yaml:"admin_login" env:"ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"ADMIN_PASS"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type DB struct {
	User      string `yaml:"db_user" env:"DB_USER" env-required:"true"`
	Password  string `yaml:"db_password" env:"DB_PASSWORD"`
	Host      string `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	Port      int    `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	Name      string `yaml:"db_name" env:"DB_NAME" env-required:"true"`
	ParseTime bool   `yaml:"parse_time" env-default:"true"`
}

type Funding struct {
	DecimalPlaces     uint8 `yaml:"decimal_places" env:"FUNDING_DECIMAL_PLACES" env-default:"2"`
	ValidationWorkers int   `yaml:"validation_workers" env:"FUNDING_VALIDATION_WORKERS" env-default:"4"`
}

// Load reads the YAML file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}
