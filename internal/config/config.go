package config

import (
	"errors"
	"io/fs"
	"log"
	"net/url"
	"os"
	"regexp"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env       string `yaml:"env" env:"APP_ENV" env-default:"local"`
	Port      string `yaml:"port" env:"PORT" env-default:"8080"`
	DBDriver  string `yaml:"db_driver" env:"DB_DRIVER" env-default:"sqlite"`
	DBDSN     string `yaml:"db_dsn" env:"DB_DSN" env-default:"pricewatch.db"`
	URLFile   string `yaml:"url_file" env:"URL_FILE" env-default:"urls.csv"`
	LogFile   string `yaml:"log_file" env:"LOG_FILE"`
	UserAgent string `yaml:"user_agent" env:"FETCH_USER_AGENT" env-default:"Mozilla/5.0"`
	Twilio    Twilio `yaml:"twilio"`
}

// Twilio credentials are only checked when a message is actually sent.
type Twilio struct {
	AccountSID string `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
	AuthToken  string `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN"`
	FromNumber string `yaml:"phone_number" env:"TWILIO_PHONE_NUMBER"`
}

// Load reads an optional .env file, then either the YAML file at path (env vars
// still override it) or the environment alone when path is empty.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, err
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}

	log.Printf("[config] APP_ENV=%s PORT=%s DB_DRIVER=%s DB_DSN=%s URL_FILE=%s LOG_FILE=%s",
		cfg.Env, cfg.Port, cfg.DBDriver, RedactDSN(cfg.DBDSN), cfg.URLFile, cfg.LogFile)
	return cfg, nil
}

var rePassword = regexp.MustCompile(`(?i)(password\s*=\s*)('[^']*'|\S+)`)

// RedactDSN masks the password of a URL DSN (postgres://user:pw@host/db) or of a
// key/value DSN (host=db password=pw) so it can be logged.
func RedactDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.User != nil {
		return u.Redacted()
	}
	return rePassword.ReplaceAllString(dsn, "${1}xxxxx")
}

func MustLoad() Config {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot read config: %v", err)
	}
	return cfg
}
