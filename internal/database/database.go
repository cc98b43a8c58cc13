package database

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	// registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"
)

// Connect opens the job store. A postgres:// DSN selects PostgreSQL; anything
// else is treated as a SQLite file path (":memory:" included), which keeps
// local development and tests free of external services.
//
// TranslateError is on so unique-index violations surface as
// gorm.ErrDuplicatedKey on both drivers; duplicate job id detection depends
// on it under SQLite.
func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		logrus.Info("connecting to postgres")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	logrus.WithField("path", dsn).Info("using sqlite store")
	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite", // modernc pure-Go driver, no cgo
			DSN:        dsn,
		}),
		cfg,
	)
}
