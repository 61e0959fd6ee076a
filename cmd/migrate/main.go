package main

import (
	"flag"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gharzo/engine/internal/infrastructure/config"
	"github.com/gharzo/engine/internal/infrastructure/logger"
	"github.com/gharzo/engine/internal/infrastructure/persistence"
	"github.com/gharzo/engine/internal/infrastructure/persistence/models"
)

func main() {
	var logLevel string
	var sqlitePath string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&sqlitePath, "sqlite", "", "Migrate a local sqlite file instead of the configured postgres database")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	var gdb *gorm.DB
	if sqlitePath != "" {
		gdb, err = gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to open sqlite database", zap.String("path", sqlitePath), zap.Error(err))
		}
		log.Info("Running schema migration", zap.String("sqlite", sqlitePath))
	} else {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal("Failed to load configuration", zap.Error(err))
		}

		db, err := persistence.NewDatabase(&cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Error closing database", zap.Error(err))
			}
		}()

		log.Info("Running schema migration",
			zap.String("database", cfg.Database.DBName),
			zap.String("host", cfg.Database.Host),
		)
		gdb = db.DB
	}

	err = gdb.AutoMigrate(
		&models.ComplaintModel{},
		&models.RoomSwitchRequestModel{},
		&models.BillModel{},
		&models.PaymentModel{},
		&models.TenantModel{},
	)
	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migration complete")
}
