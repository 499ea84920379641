package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/study-manager/study-manager/pkg/testutils"
	"github.com/study-manager/study-manager/pkg/types"
)

type testConnectConfig struct {
	driver string
	dsn    string
}

func (c testConnectConfig) DriverName() string { return c.driver }
func (c testConnectConfig) FormatDSN() string  { return c.dsn }

func (c testConnectConfig) MaxOpenConns() int {
	if c.driver == types.STORE_DRIVER_SQLITE {
		return 1
	}
	return 0
}

func (c testConnectConfig) MaxIdleConns() int { return 0 }

func setupSqliteProvider(t *testing.T) *Provider {
	p, err := Setup(testConnectConfig{
		driver: types.STORE_DRIVER_SQLITE,
		dsn:    filepath.Join(t.TempDir(), "store.db") + "?_pragma=busy_timeout(5000)",
	})
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })

	require.NoError(t, p.Install(context.Background()))
	return p
}

// setupPostgresProvider connects to STUDY_MANAGER_TEST_POSTGRES_DSN, the test is skipped when it is unset.
func setupPostgresProvider(t *testing.T) *Provider {
	testutils.LoadEnv()
	dsn := testutils.GetEnvOrDefault("STUDY_MANAGER_TEST_POSTGRES_DSN", "")
	if dsn == "" {
		t.Skip("STUDY_MANAGER_TEST_POSTGRES_DSN not set")
	}

	p, err := Setup(testConnectConfig{driver: types.STORE_DRIVER_POSTGRES, dsn: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })

	ctx := context.Background()
	require.NoError(t, p.Install(ctx))
	_, err = p.GetMaster().ExecContext(ctx, "DELETE FROM "+types.TABLE_MANAGER_ENTRY.Name())
	require.NoError(t, err)
	return p
}

func providers(t *testing.T) map[string]func(t *testing.T) *Provider {
	return map[string]func(t *testing.T) *Provider{
		types.STORE_DRIVER_SQLITE:   setupSqliteProvider,
		types.STORE_DRIVER_POSTGRES: setupPostgresProvider,
	}
}

func TestEntryStore(t *testing.T) {
	for driver, setup := range providers(t) {
		t.Run(driver, func(t *testing.T) {
			p := setup(t)
			t.Run("create and get", func(t *testing.T) { testCreateAndGet(t, p) })
			t.Run("list by location", func(t *testing.T) { testListByLocation(t, p) })
			t.Run("find one and update", func(t *testing.T) { testFindOneAndUpdate(t, p) })
			t.Run("find one and delete", func(t *testing.T) { testFindOneAndDelete(t, p) })
			t.Run("transaction", func(t *testing.T) { testTransaction(t, p) })
		})
	}
}

func testCreateAndGet(t *testing.T, p *Provider) {
	ctx := context.Background()

	entry, err := p.EntryStore().Create(ctx, types.Entry{
		Content:  lo.ToPtr("Read chapter 1"),
		Location: lo.ToPtr("library"),
		Tags:     types.StringList{"math", "math"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.NotZero(t, entry.CreatedAt)
	assert.Equal(t, entry.CreatedAt, entry.UpdatedAt)
	assert.Nil(t, entry.Completed)

	got, err := p.EntryStore().Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry, got)

	_, err = p.EntryStore().Get(ctx, "missing")
	assert.Equal(t, sql.ErrNoRows, err)
}

func testListByLocation(t *testing.T, p *Provider) {
	ctx := context.Background()
	location := fmt.Sprintf("room-%d", os.Getpid())

	for _, l := range []string{location, location + "-other", location} {
		_, err := p.EntryStore().Create(ctx, types.Entry{Content: lo.ToPtr("Read"), Location: lo.ToPtr(l)})
		require.NoError(t, err)
	}

	list, err := p.EntryStore().List(ctx, types.EntryFilter{Location: &location})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.LessOrEqual(t, list[0].CreatedAt, list[1].CreatedAt)

	total, err := p.EntryStore().Total(ctx, types.EntryFilter{Location: &location})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	upper := "ROOM"
	list, err = p.EntryStore().List(ctx, types.EntryFilter{Location: &upper})
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func testFindOneAndUpdate(t *testing.T, p *Provider) {
	ctx := context.Background()

	entry, err := p.EntryStore().Create(ctx, types.Entry{Content: lo.ToPtr("Read"), Location: lo.ToPtr("library")})
	require.NoError(t, err)

	tags := types.StringList{"b", "a"}
	updated, err := p.EntryStore().FindOneAndUpdate(ctx, types.EntryFilter{ID: entry.ID}, types.EntryUpdate{
		Completed: lo.ToPtr(true),
		Tags:      &tags,
	})
	require.NoError(t, err)
	assert.True(t, *updated.Completed)
	assert.Equal(t, tags, updated.Tags)
	assert.Equal(t, "Read", *updated.Content)
	assert.GreaterOrEqual(t, updated.UpdatedAt, entry.UpdatedAt)
	assert.Equal(t, entry.CreatedAt, updated.CreatedAt)

	_, err = p.EntryStore().FindOneAndUpdate(ctx, types.EntryFilter{ID: "missing"}, types.EntryUpdate{Content: lo.ToPtr("x")})
	assert.Equal(t, sql.ErrNoRows, err)

	_, err = p.EntryStore().FindOneAndUpdate(ctx, types.EntryFilter{}, types.EntryUpdate{Content: lo.ToPtr("x")})
	assert.Equal(t, sql.ErrNoRows, err)
}

func testFindOneAndDelete(t *testing.T, p *Provider) {
	ctx := context.Background()

	entry, err := p.EntryStore().Create(ctx, types.Entry{Content: lo.ToPtr("Read"), Location: lo.ToPtr("library")})
	require.NoError(t, err)

	removed, err := p.EntryStore().FindOneAndDelete(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry, removed)

	_, err = p.EntryStore().Get(ctx, entry.ID)
	assert.Equal(t, sql.ErrNoRows, err)

	_, err = p.EntryStore().FindOneAndDelete(ctx, entry.ID)
	assert.Equal(t, sql.ErrNoRows, err)
}

func testTransaction(t *testing.T, p *Provider) {
	ctx := context.Background()
	var id string

	err := p.Transaction(ctx, func(ctx context.Context) error {
		entry, err := p.EntryStore().Create(ctx, types.Entry{Content: lo.ToPtr("Read"), Location: lo.ToPtr("library")})
		if err != nil {
			return err
		}
		id = entry.ID
		return fmt.Errorf("rollback")
	})
	assert.EqualError(t, err, "rollback")
	require.NotEmpty(t, id)

	_, err = p.EntryStore().Get(ctx, id)
	assert.Equal(t, sql.ErrNoRows, err)
}

func TestInstallIsIdempotent(t *testing.T) {
	p := setupSqliteProvider(t)
	ctx := context.Background()

	require.NoError(t, p.Install(ctx))

	var count int
	require.NoError(t, p.GetMaster().GetContext(ctx, &count, "SELECT COUNT(*) FROM "+types.TABLE_SCHEMA_MIGRATIONS.Name()))
	assert.Equal(t, 1, count)
}
