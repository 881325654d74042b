package db

import (
	"fmt"
	"time"

	"placementhub/internal/logger"
	"placementhub/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init connects to Postgres and stores the handle in DB.
func Init(dsn string) error {
	return Open(postgres.Open(dsn))
}

// Open connects with any gorm dialector. Tests pass an in-memory SQLite one.
func Open(dialector gorm.Dialector) error {
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("connection to db failed: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get db from GORM: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	DB = conn
	logger.L.Info("connected to database", zap.String("dialect", dialector.Name()))
	return nil
}

// Migrate creates or updates every table the service uses.
func Migrate() error {
	tables := []any{
		&models.User{},
		&models.College{},
		&models.Company{},
		&models.Student{},
		&models.JobPosting{},
		&models.Skill{},
		&models.JobApplication{},
		&models.Interview{},
		&models.Placement{},
		&models.Certificate{},
		&models.Transaction{},
		&models.Analytics{},
		&models.NEPAssessment{},
		&models.PracticeSession{},
	}
	for _, t := range tables {
		if err := DB.AutoMigrate(t); err != nil {
			return fmt.Errorf("AutoMigration failed for %T: %w", t, err)
		}
	}
	return nil
}
