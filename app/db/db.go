package db

import (
	"fmt"

	"carmarket/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg config.DB) (*gorm.DB, error) {
	switch cfg.Driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local", cfg.User, cfg.Pass, cfg.Host, cfg.Port, cfg.Name)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	case "sqlite", "":
		return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{TranslateError: true})
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}
