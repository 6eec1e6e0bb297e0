package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"github.com/Daskott/raksha/server/models"
	"github.com/Daskott/raksha/shared"
	"github.com/Daskott/raksha/utils"
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	DB_NAME = "raksha.db"

	SQLCIPHER_DRIVER = "sqlcipher"
	SQLITE_DRIVER    = "sqlite"
	POSTGRES_DRIVER  = "postgres"
	MYSQL_DRIVER     = "mysql"
)

// Open connects to the database selected by 'cfg.Driver'
func Open(cfg shared.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %v", err)
	}

	return db, nil
}

// Migrate creates or updates the schema & indexes. It's safe to run on every start.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Contact{},
		&models.Alert{},
		&models.SafetyZone{},
		&models.UserSettings{},
		&models.SafetyHistory{},
	)
	return errors.Wrap(err, "Migrate")
}

// SqliteFilePath returns the location of the sqlite db file for the sqlite drivers
func SqliteFilePath(dbRootDir string) (string, error) {
	dbDir, err := DbDirectory(dbRootDir)
	if err != nil {
		return "", err
	}

	return filepath.Join(dbDir, DB_NAME), nil
}

func DbDirectory(dbRootDir string) (string, error) {
	dbDir := filepath.Join(dbRootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return dbDir, nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func dialectorFor(cfg shared.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case POSTGRES_DRIVER:
		return postgres.Open(cfg.DSN), nil
	case MYSQL_DRIVER:
		return mysql.Open(cfg.DSN), nil
	}

	dbFilePath, err := SqliteFilePath(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to set sqlite DSN: %v", err)
	}

	if cfg.Driver == SQLITE_DRIVER {
		return sqlite.Open(fmt.Sprintf("file:%v?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbFilePath)), nil
	}

	return sqliteEncrypt.Open(fmt.Sprintf(
		"file:%v?_pragma_key=%s&_pragma_cipher_page_size=4096&_journal_mode=WAL&_busy_timeout=5000",
		dbFilePath,
		cfg.PassPhrase,
	)), nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  gormLogger.Silent,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}
}
