package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/study-manager/study-manager/app/store"
	"github.com/study-manager/study-manager/pkg/sqlstore"
	"github.com/study-manager/study-manager/pkg/types"
)

//go:embed migrations
var CreateTableFiles embed.FS

// Provider owns the connection pool and every store built on it.
// It is created once at startup and handed to whoever needs it.
type Provider struct {
	*sqlstore.SqlProvider
	stores *Stores
}

type Stores struct {
	store.EntryStore
}

func NewProvider(p *sqlstore.SqlProvider) *Provider {
	provider := &Provider{
		SqlProvider: p,
		stores:      &Stores{},
	}
	provider.stores.EntryStore = NewEntryStore(provider)
	return provider
}

func Setup(m sqlstore.ConnectConfig, s ...sqlstore.ConnectConfig) (*Provider, error) {
	p, err := sqlstore.SetupProvider(m, s...)
	if err != nil {
		return nil, err
	}
	return NewProvider(p), nil
}

func (p *Provider) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(p.Placeholder())
}

func (p *Provider) migrationDir() string {
	if p.DriverName() == types.STORE_DRIVER_POSTGRES {
		return "migrations/postgres"
	}
	return "migrations/sqlite"
}

// Install 初始化所有数据表
func (p *Provider) Install(ctx context.Context) error {
	// 确保迁移记录表存在
	if err := p.ensureMigrationTable(ctx); err != nil {
		return err
	}

	dir := p.migrationDir()
	files, err := CreateTableFiles.ReadDir(dir)
	if err != nil {
		return err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		executed, err := p.isFileExecuted(ctx, file.Name())
		if err != nil {
			return err
		}
		if executed {
			continue
		}

		raw, err := CreateTableFiles.ReadFile(path.Join(dir, file.Name()))
		if err != nil {
			return err
		}

		slog.Info("execute sql file", slog.String("driver", p.DriverName()), slog.String("file", file.Name()))
		if _, err = p.GetMaster().ExecContext(ctx, string(raw)); err != nil {
			return fmt.Errorf("failed to execute %s: %w", file.Name(), err)
		}

		if err = p.markFileExecuted(ctx, file.Name()); err != nil {
			return err
		}
	}
	return nil
}

// ensureMigrationTable 确保迁移记录表存在
func (p *Provider) ensureMigrationTable(ctx context.Context) error {
	createTableSQL := `
CREATE TABLE IF NOT EXISTS ` + types.TABLE_SCHEMA_MIGRATIONS.Name() + ` (
    filename VARCHAR(255) PRIMARY KEY,
    executed_at BIGINT NOT NULL
);`
	_, err := p.GetMaster().ExecContext(ctx, createTableSQL)
	return err
}

func (p *Provider) isFileExecuted(ctx context.Context, filename string) (bool, error) {
	query, args, err := p.builder().Select("COUNT(*)").From(types.TABLE_SCHEMA_MIGRATIONS.Name()).
		Where("filename = ?", filename).ToSql()
	if err != nil {
		return false, ErrorSqlBuild(err)
	}

	var count int
	if err = p.GetMaster().GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (p *Provider) markFileExecuted(ctx context.Context, filename string) error {
	query, args, err := p.builder().Insert(types.TABLE_SCHEMA_MIGRATIONS.Name()).
		Columns("filename", "executed_at").
		Values(filename, time.Now().Unix()).
		Suffix("ON CONFLICT (filename) DO NOTHING").ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}
	_, err = p.GetMaster().ExecContext(ctx, query, args...)
	return err
}

func (p *Provider) EntryStore() store.EntryStore {
	return p.stores.EntryStore
}
