package server

import (
	"errors"
	"fmt"
	"path"

	"github.com/Daskott/raksha/server/database"
	"github.com/Daskott/raksha/server/gstorage"
	"github.com/Daskott/raksha/shared"
	"github.com/Daskott/raksha/utils"
	"github.com/go-co-op/gocron"
	"gorm.io/gorm"
)

const BACKUP_JOB_TAG = "backupSqliteDb"

type objectStorage interface {
	UploadFile(bucket, object, filePath string) error
	DownloadFile(bucket, object, destFileName string) error
	Close() error
}

// sqliteBackup keeps a copy of the sqlite db file in google cloud storage
type sqliteBackup struct {
	storage    objectStorage
	config     shared.StorageConfig
	dbFilePath string
	db         *gorm.DB
}

// newSqliteBackup returns nil when backups are disabled or the db isn't a sqlite file
func newSqliteBackup(config shared.ServerConfig) (*sqliteBackup, error) {
	if !config.Google.Storage.EnableSqliteBackupAndSync {
		return nil, nil
	}

	if config.Database.Driver != database.SQLCIPHER_DRIVER && config.Database.Driver != database.SQLITE_DRIVER {
		logg.Warnf("sqlite backups are only supported for sqlite drivers, not %q", config.Database.Driver)
		return nil, nil
	}

	dbFilePath, err := database.SqliteFilePath(config.Database.Dir)
	if err != nil {
		return nil, err
	}

	storage, err := gstorage.NewGStorage(config.Google.ApplicationCredentials)
	if err != nil {
		return nil, err
	}

	return &sqliteBackup{storage: storage, config: config.Google.Storage, dbFilePath: dbFilePath}, nil
}

func (b *sqliteBackup) objectName() string {
	return path.Join(b.config.Prefix, database.DB_NAME)
}

// restoreIfMissing pulls the last backup when there's no local db yet
func (b *sqliteBackup) restoreIfMissing() error {
	exists, err := utils.FileExist(b.dbFilePath)
	if err != nil || exists {
		return err
	}

	err = b.storage.DownloadFile(b.config.Bucket, b.objectName(), b.dbFilePath)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		logg.Infof("No sqlite backup found in %v/%v, starting with an empty db", b.config.Bucket, b.objectName())
		return nil
	}

	if err != nil {
		return fmt.Errorf("restoreIfMissing: %v", err)
	}

	logg.Infof("Restored sqlite db from %v/%v", b.config.Bucket, b.objectName())
	return nil
}

// run uploads the db file, after folding the WAL into it so the copy is complete
func (b *sqliteBackup) run() error {
	if b.db != nil {
		if err := b.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
			logg.Warnf("wal checkpoint before backup failed: %v", err)
		}
	}

	if err := b.storage.UploadFile(b.config.Bucket, b.objectName(), b.dbFilePath); err != nil {
		return fmt.Errorf("backupSqliteDb: %v", err)
	}

	logg.Infof("Backed up sqlite db to %v/%v", b.config.Bucket, b.objectName())
	return nil
}

// close runs the last backup & releases the storage client
func (b *sqliteBackup) close() error {
	err := b.run()
	if closeErr := b.storage.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("closing storage client: %v", closeErr)
	}

	return err
}

func (b *sqliteBackup) schedule(scheduler *gocron.Scheduler) error {
	_, err := scheduler.Cron(b.config.SqliteBackupSchedule).Tag(BACKUP_JOB_TAG).Do(func() {
		if err := b.run(); err != nil {
			logg.Error(err)
		}
	})

	return err
}
