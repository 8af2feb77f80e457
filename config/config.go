package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Host string
	Port int
	User string
	Pass string
	Name string
}

type JWT struct {
	Secret  string
	Issuer  string
	ExpDays int
}

// SeedAdmin describes the bootstrap admin account created at startup.
// Left empty, no account is seeded.
type SeedAdmin struct {
	Name     string
	Email    string
	Password string
}

type Config struct {
	HTTP HTTP
	DB   DB
	JWT  JWT
	Seed SeedAdmin

	v *viper.Viper
}

// Load reads the YAML config at path. Every key can be overridden through
// the environment (TASKBOARD_SERVER_JWT_SECRET and friends). A missing
// signing secret is a fatal configuration error here, never per-request.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TASKBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.db.host", "127.0.0.1")
	v.SetDefault("server.db.port", 3306)
	v.SetDefault("server.db.user", "root")
	v.SetDefault("server.db.pass", "")
	v.SetDefault("server.db.name", "taskboard")
	v.SetDefault("server.jwt.issuer", "taskboard")
	v.SetDefault("server.jwt.exp_days", 7)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("server.host"), Port: v.GetInt("server.port")},
		DB: DB{
			Host: v.GetString("server.db.host"),
			Port: v.GetInt("server.db.port"),
			User: v.GetString("server.db.user"),
			Pass: v.GetString("server.db.pass"),
			Name: v.GetString("server.db.name"),
		},
		JWT: JWT{
			Secret:  v.GetString("server.jwt.secret"),
			Issuer:  v.GetString("server.jwt.issuer"),
			ExpDays: v.GetInt("server.jwt.exp_days"),
		},
		Seed: SeedAdmin{
			Name:     v.GetString("server.seed_admin.name"),
			Email:    v.GetString("server.seed_admin.email"),
			Password: v.GetString("server.seed_admin.password"),
		},
		v: v,
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("server.jwt.secret is required (set TASKBOARD_SERVER_JWT_SECRET)")
	}
	if cfg.JWT.ExpDays <= 0 {
		cfg.JWT.ExpDays = 7
	}
	return cfg, nil
}
