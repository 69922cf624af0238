package config_test

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pricewatch/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_DSN", "FETCH_USER_AGENT", "TWILIO_ACCOUNT_SID"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.DBDriver != "sqlite" || cfg.DBDSN != "pricewatch.db" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.UserAgent != "Mozilla/5.0" {
		t.Fatalf("want Mozilla/5.0 user agent, got %q", cfg.UserAgent)
	}
	if cfg.Twilio.AccountSID != "" {
		t.Fatalf("twilio sid should be empty, got %q", cfg.Twilio.AccountSID)
	}
}

func TestLoadEnvAndDotenv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TWILIO_ACCOUNT_SID", "")
	os.Unsetenv("TWILIO_ACCOUNT_SID")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TWILIO_ACCOUNT_SID=AC123\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PORT", "9090")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("want PORT from env, got %q", cfg.Port)
	}
	if cfg.Twilio.AccountSID != "AC123" {
		t.Fatalf("want sid from .env, got %q", cfg.Twilio.AccountSID)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DB_DSN", "")
	os.Unsetenv("DB_DSN")
	path := filepath.Join(dir, "config.yaml")
	body := "db_dsn: data.db\ntwilio:\n  phone_number: \"+15550001111\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBDSN != "data.db" || cfg.Twilio.FromNumber != "+15550001111" {
		t.Fatalf("yaml not applied: %+v", cfg)
	}
}

func TestLoadDoesNotLogDSNPassword(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_DSN", "postgres://app:s3cretpw@db:5432/pw")

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBDSN != "postgres://app:s3cretpw@db:5432/pw" {
		t.Fatalf("dsn should be kept intact in config, got %q", cfg.DBDSN)
	}
	out := buf.String()
	if strings.Contains(out, "s3cretpw") {
		t.Fatalf("password leaked into log: %s", out)
	}
	if !strings.Contains(out, "app:xxxxx@db:5432") {
		t.Fatalf("want redacted dsn in log, got %s", out)
	}
}

func TestRedactDSN(t *testing.T) {
	cases := []struct{ in, want string }{
		{"pricewatch.db", "pricewatch.db"},
		{"postgres://app:s3cretpw@db:5432/pw?sslmode=disable", "postgres://app:xxxxx@db:5432/pw?sslmode=disable"},
		{"host=db user=app password=s3cretpw dbname=pw", "host=db user=app password=xxxxx dbname=pw"},
		{"host=db password='s3cret pw' dbname=pw", "host=db password=xxxxx dbname=pw"},
	}
	for _, tc := range cases {
		if got := config.RedactDSN(tc.in); got != tc.want {
			t.Errorf("RedactDSN(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
