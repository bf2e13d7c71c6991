package config

import (
	"fmt"

	"github.com/etceter4/littlelemon/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the database selected by cfg.DB.Driver.
func InitDB(cfg *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DB.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DB.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DB.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}

	logLevel := logger.Warn
	if cfg.GinMode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.New(utils.InfoLogger, logger.Config{LogLevel: logLevel, IgnoreRecordNotFoundError: true}),
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Connected to %s database", cfg.DB.Driver)
	return db, nil
}
