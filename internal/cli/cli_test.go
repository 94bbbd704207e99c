package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"banctl/internal/admin"
	"banctl/internal/datastore"
	"banctl/internal/directory"
	"banctl/internal/logging"
	"banctl/internal/store"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnv points the XDG directories at a temp dir so test runs never
// touch the real config, and returns the database path to use.
func setupTestEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	xdg.Reload()
	return filepath.Join(tmp, "banctl.db")
}

// runCommand executes a fresh command tree so flag state never leaks
// between invocations.
func runCommand(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	logger, _ := logging.NewTestLogger()
	app := NewApp(logger)
	cmd := app.NewRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--db", dbPath))

	err := cmd.Execute()
	require.NoError(t, app.teardown(), "store handle must close on every exit path")
	return out.String(), err
}

func TestUnbanInvalidEmailFails(t *testing.T) {
	dbPath := setupTestEnv(t)

	_, err := runCommand(t, dbPath, "unban", "not-an-email")
	require.ErrorIs(t, err, admin.ErrInvalidEmail)
}

func TestUnbanUnknownUserFails(t *testing.T) {
	dbPath := setupTestEnv(t)

	_, err := runCommand(t, dbPath, "unban", "nobody@example.com")
	require.ErrorIs(t, err, admin.ErrUserNotFound)
}

func TestUnbanClearsSeededBanEntry(t *testing.T) {
	dbPath := setupTestEnv(t)

	// Seed directly: user u1 with a ban entry keyed by their id.
	db, err := datastore.Open(dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, directory.NewSQLiteDirectory(db).Create(ctx, &directory.User{
		ID: "u1", Email: "alice@example.com",
	}))
	bans := store.NewSQLiteStore(db)
	require.NoError(t, bans.Put(ctx, store.Record{
		Namespace: store.NamespaceBans, Key: "u1", Reason: "spam",
	}))
	require.NoError(t, db.Close())

	out, err := runCommand(t, dbPath, "unban", "alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "u1")

	db, err = datastore.Open(dbPath)
	require.NoError(t, err)
	defer db.Close()
	_, err = store.NewSQLiteStore(db).Get(ctx, store.NamespaceBans, "u1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUnbanTwiceSucceedsBothTimes(t *testing.T) {
	dbPath := setupTestEnv(t)

	_, err := runCommand(t, dbPath, "useradd", "alice@example.com")
	require.NoError(t, err)

	_, err = runCommand(t, dbPath, "unban", "alice@example.com")
	require.NoError(t, err)

	_, err = runCommand(t, dbPath, "unban", "alice@example.com")
	require.NoError(t, err, "unban against an absent entry must still succeed")
}

func TestBanStatusUnbanFlow(t *testing.T) {
	dbPath := setupTestEnv(t)

	_, err := runCommand(t, dbPath, "useradd", "bob@example.com", "--username", "bob")
	require.NoError(t, err)

	out, err := runCommand(t, dbPath, "status", "bob@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "not banned")

	out, err = runCommand(t, dbPath, "ban", "bob@example.com", "--duration", "1h", "--reason", "spam")
	require.NoError(t, err)
	assert.Contains(t, out, "Banned bob@example.com")

	out, err = runCommand(t, dbPath, "status", "bob@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "is banned")
	assert.Contains(t, out, "spam")

	out, err = runCommand(t, dbPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1 records")

	_, err = runCommand(t, dbPath, "unban", "bob@example.com")
	require.NoError(t, err)

	out, err = runCommand(t, dbPath, "status", "bob@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "not banned")
}

func TestBanPermanentWithZeroDuration(t *testing.T) {
	dbPath := setupTestEnv(t)

	_, err := runCommand(t, dbPath, "useradd", "carol@example.com")
	require.NoError(t, err)

	out, err := runCommand(t, dbPath, "ban", "carol@example.com", "--duration", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "permanently")
}

func TestPurgeRemovesExpiredRecords(t *testing.T) {
	dbPath := setupTestEnv(t)

	db, err := datastore.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.NewSQLiteStore(db).Put(context.Background(), store.Record{
		Namespace: store.NamespaceBans,
		Key:       "stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, db.Close())

	out, err := runCommand(t, dbPath, "purge")
	require.NoError(t, err)
	assert.Contains(t, out, "Purged 1")
}

func TestListEmptyNamespace(t *testing.T) {
	dbPath := setupTestEnv(t)

	out, err := runCommand(t, dbPath, "list", "--namespace", "login_violations")
	require.NoError(t, err)
	assert.Contains(t, out, "no live records")
}

func TestGuideDocumentsAddressKeyedLimitation(t *testing.T) {
	dbPath := setupTestEnv(t)

	out, err := runCommand(t, dbPath, "guide")
	require.NoError(t, err)
	assert.Contains(t, out, "address-keyed")
}
