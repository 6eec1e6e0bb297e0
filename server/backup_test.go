package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Daskott/raksha/server/gstorage"
	"github.com/Daskott/raksha/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type objectStorageStub struct {
	objects   map[string][]byte
	downloads int
	uploads   int
	closed    bool
}

func (s *objectStorageStub) Close() error {
	s.closed = true
	return nil
}

func (s *objectStorageStub) UploadFile(bucket, object, filePath string) error {
	s.uploads++
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	s.objects[bucket+"/"+object] = data
	return nil
}

func (s *objectStorageStub) DownloadFile(bucket, object, destFileName string) error {
	s.downloads++
	data, ok := s.objects[bucket+"/"+object]
	if !ok {
		return gstorage.ErrObjectNotExist
	}
	return os.WriteFile(destFileName, data, 0600)
}

func newBackupStub(t *testing.T) (*sqliteBackup, *objectStorageStub) {
	storage := &objectStorageStub{objects: map[string][]byte{}}
	return &sqliteBackup{
		storage:    storage,
		config:     shared.StorageConfig{Bucket: "raksha-bucket", Prefix: "prod", SqliteBackupSchedule: "0 * * * *"},
		dbFilePath: filepath.Join(t.TempDir(), "raksha.db"),
	}, storage
}

func TestNewSqliteBackupDisabled(t *testing.T) {
	config := shared.ServerConfig{Database: shared.DatabaseConfig{Driver: "sqlite"}}
	backup, err := newSqliteBackup(config)
	assert.Nil(t, err)
	assert.Nil(t, backup)

	config.Google.Storage.EnableSqliteBackupAndSync = true
	config.Database.Driver = "postgres"
	backup, err = newSqliteBackup(config)
	assert.Nil(t, err)
	assert.Nil(t, backup)
}

func TestBackupObjectName(t *testing.T) {
	backup, _ := newBackupStub(t)
	assert.Equal(t, "prod/raksha.db", backup.objectName())
}

func TestRestoreIfMissing(t *testing.T) {
	backup, storage := newBackupStub(t)

	// Nothing to restore yet
	require.Nil(t, backup.restoreIfMissing())
	_, err := os.Stat(backup.dbFilePath)
	assert.True(t, os.IsNotExist(err))

	storage.objects["raksha-bucket/prod/raksha.db"] = []byte("backup")
	require.Nil(t, backup.restoreIfMissing())
	data, err := os.ReadFile(backup.dbFilePath)
	require.Nil(t, err)
	assert.Equal(t, "backup", string(data))

	// A local db is never overwritten
	require.Nil(t, os.WriteFile(backup.dbFilePath, []byte("local"), 0600))
	require.Nil(t, backup.restoreIfMissing())
	assert.Equal(t, 2, storage.downloads)
}

func TestBackupRun(t *testing.T) {
	backup, storage := newBackupStub(t)
	require.Nil(t, os.WriteFile(backup.dbFilePath, []byte("local"), 0600))

	require.Nil(t, backup.run())
	assert.Equal(t, 1, storage.uploads)
	assert.Equal(t, "local", string(storage.objects["raksha-bucket/prod/raksha.db"]))
}

func TestBackupRunMissingFile(t *testing.T) {
	backup, _ := newBackupStub(t)
	assert.NotNil(t, backup.run())
}

func TestBackupCloseUploadsAndReleasesStorage(t *testing.T) {
	backup, storage := newBackupStub(t)
	require.Nil(t, os.WriteFile(backup.dbFilePath, []byte("final"), 0600))

	require.Nil(t, backup.close())
	assert.True(t, storage.closed)
	assert.Equal(t, "final", string(storage.objects["raksha-bucket/prod/raksha.db"]))

	// The client is released even when the last upload fails
	failing, failingStorage := newBackupStub(t)
	assert.NotNil(t, failing.close())
	assert.True(t, failingStorage.closed)
}
