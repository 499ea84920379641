package sqlstore

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type SqlCommons interface {
	GetTable(...interface{}) string
}

type ConnectConfig interface {
	DriverName() string
	FormatDSN() string
}

// PoolConfig is optionally implemented by a ConnectConfig to size the pool.
type PoolConfig interface {
	MaxOpenConns() int
	MaxIdleConns() int
}

type SqlProvider struct {
	driver   string
	master   *sqlx.DB
	replicas []*sqlx.DB
}

func (s *SqlProvider) GetTxFromCtx(ctx context.Context) *sqlx.Tx {
	if driver, ok := ctx.Value(TransactionKey{}).(*sqlx.Tx); ok {
		return driver
	}
	return nil
}

func (s *SqlProvider) GetMaster() *sqlx.DB {
	return s.master
}

func (s *SqlProvider) GetReplica() *sqlx.DB {
	if len(s.replicas) == 1 {
		return s.replicas[0]
	}
	return s.replicas[rand.Intn(len(s.replicas))]
}

func (s *SqlProvider) DriverName() string {
	return s.driver
}

// Placeholder returns the bind variable format of the master driver.
func (s *SqlProvider) Placeholder() sq.PlaceholderFormat {
	if s.driver == "postgres" {
		return sq.Dollar
	}
	return sq.Question
}

type TransactionKey struct{}

func (s *SqlProvider) Transaction(ctx context.Context, next func(ctx context.Context) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, ok := ctx.Value(TransactionKey{}).(*sqlx.Tx); ok {
		return next(ctx)
	}

	var tx *sqlx.Tx
	if tx, err = s.GetMaster().BeginTxx(ctx, nil); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil || err != nil {
			slog.Error("Transaction rollbacked", slog.Any("recover", r), slog.Any("error", err))
			_ = tx.Rollback()
			if r != nil {
				panic(r)
			}
		}
	}()

	if err = next(context.WithValue(ctx, TransactionKey{}, tx)); err != nil {
		return err
	}

	return tx.Commit()
}

// 建立数据库连接
func (s *SqlProvider) initConnection(conf ConnectConfig) (*sqlx.DB, error) {
	engine, err := sqlx.Open(conf.DriverName(), conf.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", conf.DriverName(), err)
	}

	if pool, ok := conf.(PoolConfig); ok {
		if pool.MaxOpenConns() > 0 {
			engine.SetMaxOpenConns(pool.MaxOpenConns())
		}
		if pool.MaxIdleConns() > 0 {
			engine.SetMaxIdleConns(pool.MaxIdleConns())
		}
	}
	return engine, nil
}

func SetupProvider(m ConnectConfig, s ...ConnectConfig) (*SqlProvider, error) {
	provider := &SqlProvider{driver: m.DriverName()}

	engine, err := provider.initConnection(m)
	if err != nil {
		return nil, err
	}
	provider.master = engine

	for _, v := range s {
		slave, err := provider.initConnection(v)
		if err != nil {
			provider.Close()
			return nil, err
		}
		provider.replicas = append(provider.replicas, slave)
	}

	if len(provider.replicas) == 0 {
		provider.replicas = append(provider.replicas, engine)
	}

	return provider, nil
}

func (s *SqlProvider) Ping(ctx context.Context) error {
	return s.master.PingContext(ctx)
}

// Close closes the master and every distinct replica pool.
func (s *SqlProvider) Close() error {
	var firstErr error
	for _, r := range s.replicas {
		if r == s.master {
			continue
		}
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.master != nil {
		if err := s.master.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
