package database

import (
	"errors"
	"log"
	"time"

	"github.com/justsurfingit/recruitment-tracker/internal/config"
	"github.com/justsurfingit/recruitment-tracker/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultGreeting = "Hello World from PostgreSQL!"

// Connect opens the postgres pool, waits for the server to answer and, when enabled,
// provisions the schema. Any failure is fatal.
func Connect(cfg *config.Config) *gorm.DB {
	gormConfig := &gorm.Config{}
	if cfg.GinMode == "debug" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database handle:", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpen)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdle)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLife)

	deadline := time.Now().Add(30 * time.Second)
	backoff := 500 * time.Millisecond
	for {
		err := sqlDB.Ping()
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("Failed to ping database: %v", err)
		}
		log.Printf("⏳ Database not ready yet: %v", err)
		time.Sleep(backoff)
		if backoff < 5*time.Second {
			backoff *= 2
		}
	}

	log.Println("Database connection established")

	if cfg.DBAutoMigrate {
		log.Println("Running Migrations...")
		if err := Migrate(db); err != nil {
			log.Fatal("Migration failed:", err)
		}
	}
	return db
}

// Migrate creates or alters the tables and seeds the greeting row when hello_world is empty.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Application{}, &models.HelloWorld{}); err != nil {
		return err
	}
	var hello models.HelloWorld
	err := db.Order("id ASC").First(&hello).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return db.Create(&models.HelloWorld{Message: DefaultGreeting}).Error
	}
	return err
}
