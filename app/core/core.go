package core

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/samber/lo"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/study-manager/study-manager/app/store/sqlstore"
	pkgsqlstore "github.com/study-manager/study-manager/pkg/sqlstore"
	"github.com/study-manager/study-manager/pkg/utils"
)

// Core holds the process wide dependencies. It is built once at startup and
// passed explicitly to handlers and logic, there is no package level instance.
type Core struct {
	cfg        CoreConfig
	stores     *sqlstore.Provider
	httpEngine *gin.Engine
	metrics    *Metrics

	limiters  cmap.ConcurrentMap[string, *limiterEntry]
	lastSweep atomic.Int64
}

// limiterIdleTTL must exceed the time an idle bucket needs to refill.
const limiterIdleTTL = 10 * time.Minute

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

func SetupCore(cfg CoreConfig) (*Core, error) {
	setupLogger(cfg.Log)

	if err := cfg.Store.Validate(); err != nil {
		return nil, err
	}

	utils.SetupIDWorker(1)

	core := &Core{
		cfg:        cfg,
		metrics:    NewMetrics("study_manager", "core"),
		httpEngine: gin.New(),
		limiters:   cmap.New[*limiterEntry](),
	}
	core.lastSweep.Store(time.Now().UnixNano())

	if err := setupSqlStore(core); err != nil {
		return nil, err
	}

	return core, nil
}

func setupLogger(cfg Log) {
	var writer io.Writer = os.Stdout
	if cfg.Path != "" {
		writer = &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    500, // megabytes
			MaxBackups: 3,
			MaxAge:     28,   //days
			Compress:   true, // disabled by default
		}
	}
	l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(l)
}

func setupSqlStore(core *Core) error {
	replicas := lo.Map(core.cfg.Store.Replicas, func(item StoreConfig, _ int) pkgsqlstore.ConnectConfig {
		if item.Driver == "" {
			item.Driver = core.cfg.Store.Driver
		}
		return item
	})

	provider, err := sqlstore.Setup(core.cfg.Store, replicas...)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	// 执行数据库表初始化
	if err = provider.Install(ctx); err != nil {
		provider.Close()
		return err
	}
	core.stores = provider
	slog.Info("setupSqlStore done", slog.String("driver", provider.DriverName()))
	return nil
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func (s *Core) Store() *sqlstore.Provider {
	return s.stores
}

// Limiter returns the token bucket for key, creating it on first use.
// perMinute requests are allowed per minute with a burst of twice that.
// Buckets unused for limiterIdleTTL are dropped.
func (s *Core) Limiter(key string, perMinute int) *rate.Limiter {
	now := time.Now()
	entry := s.limiters.Upsert(key, nil, func(exist bool, valueInMap, _ *limiterEntry) *limiterEntry {
		if !exist {
			valueInMap = &limiterEntry{
				limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute*2),
			}
		}
		valueInMap.lastSeen.Store(now.UnixNano())
		return valueInMap
	})

	if last := s.lastSweep.Load(); now.UnixNano()-last >= int64(limiterIdleTTL) && s.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		s.expireLimiters(now.Add(-limiterIdleTTL))
	}
	return entry.limiter
}

// expireLimiters removes the buckets last used before deadline and returns how many were removed.
func (s *Core) expireLimiters(deadline time.Time) int {
	idle := func(v *limiterEntry) bool {
		return v.lastSeen.Load() < deadline.UnixNano()
	}

	var stale []string
	s.limiters.IterCb(func(key string, v *limiterEntry) {
		if idle(v) {
			stale = append(stale, key)
		}
	})

	removed := 0
	for _, key := range stale {
		// a request may have touched the bucket since the scan
		if s.limiters.RemoveCb(key, func(_ string, v *limiterEntry, exists bool) bool {
			return exists && idle(v)
		}) {
			removed++
		}
	}
	return removed
}

// Close releases the datastore pool.
func (s *Core) Close() error {
	if s.stores == nil {
		return nil
	}
	return s.stores.Close()
}
