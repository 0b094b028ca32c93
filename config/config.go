package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host string
	Port int
}

type DB struct {
	Driver string // "mysql" or "sqlite"
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
	Path   string // sqlite file path
}

type Storage struct {
	Dir           string
	BaseURL       string
	PresignSecret string
	PresignTTLSec int
}

type Redis struct {
	Enabled bool
	Addr    string
	TTLSec  int
}

type Config struct {
	HTTP    HTTP
	DB      DB
	Storage Storage
	Redis   Redis
	JWT     struct {
		Secret string
		Issuer string
		ExpMin int
	}
	Admin struct {
		Username string
		Password string
	}
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Defaults
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 9400)
	v.SetDefault("server.db.driver", "sqlite")
	v.SetDefault("server.db.host", "127.0.0.1")
	v.SetDefault("server.db.port", 3306)
	v.SetDefault("server.db.user", "root")
	v.SetDefault("server.db.pass", "")
	v.SetDefault("server.db.name", "carmarket")
	v.SetDefault("server.db.path", "carmarket.db")
	v.SetDefault("server.storage.dir", "uploads")
	v.SetDefault("server.storage.presign_ttl_sec", 900)
	v.SetDefault("server.redis.enabled", false)
	v.SetDefault("server.redis.addr", "127.0.0.1:6379")
	v.SetDefault("server.redis.ttl_sec", 60)
	v.SetDefault("server.admin.username", "admin")
	v.SetDefault("server.admin.password", "admin123")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{
		HTTP: HTTP{Host: v.GetString("server.host"), Port: v.GetInt("server.port")},
		DB: DB{
			Driver: v.GetString("server.db.driver"),
			Host:   v.GetString("server.db.host"),
			Port:   v.GetInt("server.db.port"),
			User:   v.GetString("server.db.user"),
			Pass:   v.GetString("server.db.pass"),
			Name:   v.GetString("server.db.name"),
			Path:   v.GetString("server.db.path"),
		},
		Storage: Storage{
			Dir:           v.GetString("server.storage.dir"),
			BaseURL:       v.GetString("server.storage.base_url"),
			PresignSecret: v.GetString("server.storage.presign_secret"),
			PresignTTLSec: v.GetInt("server.storage.presign_ttl_sec"),
		},
		Redis: Redis{
			Enabled: v.GetBool("server.redis.enabled"),
			Addr:    v.GetString("server.redis.addr"),
			TTLSec:  v.GetInt("server.redis.ttl_sec"),
		},
	}
	cfg.JWT.Secret = v.GetString("server.jwt.secret")
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret"
	}
	cfg.JWT.Issuer = v.GetString("server.jwt.issuer")
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "carmarket"
	}
	cfg.JWT.ExpMin = v.GetInt("server.jwt.exp_min")
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 60
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = fmt.Sprintf("http://%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	}
	if cfg.Storage.PresignSecret == "" {
		cfg.Storage.PresignSecret = cfg.JWT.Secret
	}
	cfg.Admin.Username = v.GetString("server.admin.username")
	cfg.Admin.Password = v.GetString("server.admin.password")
	return cfg, nil
}
