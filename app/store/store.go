package store

import (
	"context"

	"github.com/study-manager/study-manager/pkg/sqlstore"
	"github.com/study-manager/study-manager/pkg/types"
)

// EntryStore 定义 study manager entry 的持久化接口
type EntryStore interface {
	sqlstore.SqlCommons
	// Create 创建新的记录, id and timestamps are assigned when empty
	Create(ctx context.Context, data types.Entry) (*types.Entry, error)
	// Get returns sql.ErrNoRows when the id does not exist
	Get(ctx context.Context, id string) (*types.Entry, error)
	List(ctx context.Context, opts types.EntryFilter) ([]types.Entry, error)
	Total(ctx context.Context, opts types.EntryFilter) (int64, error)
	// FindOneAndUpdate applies the update to the first matching entry and returns its new state,
	// sql.ErrNoRows when nothing matched
	FindOneAndUpdate(ctx context.Context, opts types.EntryFilter, update types.EntryUpdate) (*types.Entry, error)
	// FindOneAndDelete removes the entry and returns the removed state, sql.ErrNoRows when nothing matched
	FindOneAndDelete(ctx context.Context, id string) (*types.Entry, error)
}
