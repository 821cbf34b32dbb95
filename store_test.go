package kanby

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a store in a temporary directory
func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "kanby_data.json"), WithStoreLogger(logger))
	require.NoError(t, err)
	return store
}

// TestLoad_MissingFile starts with the default workspace and creates nothing
func TestLoad_MissingFile(t *testing.T) {
	store := newTestStore(t)

	ws := store.Load()

	assert.Equal(t, []string{DefaultProjectName}, ws.ProjectNames())
	for _, c := range Columns {
		assert.Empty(t, ws.Projects[0].Columns[c])
	}
	assert.NoFileExists(t, store.Path())
}

func TestLoadWorkspace_DoesNotCreateDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	ws := LoadWorkspace(filepath.Join(dir, "kanby.json"))

	assert.Equal(t, []string{DefaultProjectName}, ws.ProjectNames())
	assert.NoDirExists(t, dir)
}

func TestLoad_CorruptFileLogsAndHeals(t *testing.T) {
	logger, hook := test.NewNullLogger()
	path := filepath.Join(t.TempDir(), "board.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Work": {"To Do": [`), 0644))

	store, err := NewFileStore(path, WithStoreLogger(logger))
	require.NoError(t, err)

	ws := store.Load()
	assert.Equal(t, DefaultWorkspace(), ws)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, path, hook.LastEntry().Data["path"])

	// the unreadable file is left for the user to inspect until the next save
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"Work": {"To Do": [`, string(data))
}

func TestNewFileStore_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "kanby.json")

	_, err := NewFileStore(path)
	require.NoError(t, err)

	assert.DirExists(t, filepath.Dir(path))
}

func TestSave_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ws := DefaultWorkspace()
	_, err := ws.AddTask(DefaultProjectName, ColumnTodo, "Buy milk", PriorityLow)
	require.NoError(t, err)
	require.NoError(t, ws.SetLastProject(DefaultProjectName))

	require.NoError(t, store.Save(ws))

	assert.FileExists(t, store.Path())
	assert.NoFileExists(t, store.TempPath())
	assert.NoFileExists(t, store.BackupPath())
	assert.Equal(t, ws, store.Load())
}

func TestSave_RotatesBackup(t *testing.T) {
	store := newTestStore(t)

	first := DefaultWorkspace()
	require.NoError(t, store.Save(first))

	second := first.Clone()
	_, err := second.CreateProject("Second")
	require.NoError(t, err)
	require.NoError(t, store.Save(second))

	assert.Equal(t, second, store.Load())

	backup, err := os.ReadFile(store.BackupPath())
	require.NoError(t, err)
	fromBackup, err := DecodeWorkspace(backup)
	require.NoError(t, err)
	assert.Equal(t, first, fromBackup)

	third := second.Clone()
	_, err = third.CreateProject("Third")
	require.NoError(t, err)
	require.NoError(t, store.Save(third))

	backup, err = os.ReadFile(store.BackupPath())
	require.NoError(t, err)
	fromBackup, err = DecodeWorkspace(backup)
	require.NoError(t, err)
	assert.Equal(t, second, fromBackup)
}

func TestSave_FailureLeavesTargetUntouched(t *testing.T) {
	store := newTestStore(t)
	original := DefaultWorkspace()
	require.NoError(t, store.Save(original))
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	// a non-empty directory where the temp file should go makes the write fail
	require.NoError(t, os.MkdirAll(filepath.Join(store.TempPath(), "blocker"), 0755))

	changed := original.Clone()
	_, err = changed.CreateProject("Never written")
	require.NoError(t, err)

	err = store.Save(changed)
	assert.Error(t, err)

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.NoFileExists(t, store.BackupPath())
}

// TestSave_InterruptedBeforeRename leaves a durable temp file behind, as a crash
// after the fsync would, and checks the data file still holds the last save
func TestSave_InterruptedBeforeRename(t *testing.T) {
	store := newTestStore(t)
	precious := named("Precious")
	require.NoError(t, store.Save(precious))
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	data, err := EncodeWorkspace(named("Half written"))
	require.NoError(t, err)
	require.NoError(t, writeSynced(store.TempPath(), data))

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.Equal(t, precious, store.Load())

	// the next save replaces the leftover temp file
	next := named("Next")
	require.NoError(t, store.Save(next))
	assert.Equal(t, next, store.Load())
	assert.NoFileExists(t, store.TempPath())
}

// TestSave_DataFileNeverMissing checks a save keeps the data file in place while
// the backup is taken
func TestSave_DataFileNeverMissing(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(named("Precious")))
	require.NoError(t, store.Save(named("Second")))

	assert.FileExists(t, store.Path())
	assert.Equal(t, named("Second"), store.Load())

	backup, err := os.ReadFile(store.BackupPath())
	require.NoError(t, err)
	fromBackup, err := DecodeWorkspace(backup)
	require.NoError(t, err)
	assert.Equal(t, named("Precious"), fromBackup)
}

func TestLoad_MissingFileRecoversBackup(t *testing.T) {
	logger, hook := test.NewNullLogger()
	path := filepath.Join(t.TempDir(), "kanby_data.json")
	store, err := NewFileStore(path, WithStoreLogger(logger))
	require.NoError(t, err)

	precious := named("Precious")
	require.NoError(t, store.Save(precious))
	require.NoError(t, os.Rename(store.Path(), store.BackupPath()))

	assert.Equal(t, precious, store.Load())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)

	// saving from the recovered workspace keeps the data in both slots
	require.NoError(t, store.Save(store.Load()))
	require.NoError(t, store.Save(store.Load()))
	assert.Equal(t, precious, store.Load())
	backup, err := os.ReadFile(store.BackupPath())
	require.NoError(t, err)
	assert.Contains(t, string(backup), "Precious")
}

func TestSave_BackupFailureLeavesTargetUntouched(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(named("Precious")))
	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	// a non-empty directory in the backup slot cannot be replaced
	require.NoError(t, os.MkdirAll(filepath.Join(store.BackupPath(), "blocker"), 0755))

	err = store.Save(named("Never written"))
	assert.Error(t, err)

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.NoFileExists(t, store.TempPath())
}
