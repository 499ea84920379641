package sqlstore

import (
	"context"
	"database/sql"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/study-manager/study-manager/pkg/types"
	"github.com/study-manager/study-manager/pkg/utils"
)

type EntryStore struct {
	CommonFields
}

// NewEntryStore
func NewEntryStore(provider SqlProviderAchieve) *EntryStore {
	repo := &EntryStore{}
	repo.SetProvider(provider)
	repo.SetTable(types.TABLE_MANAGER_ENTRY)
	repo.SetAllColumns("id", "content", "location", "completed", "tags", "created_at", "updated_at")
	return repo
}

func (s *EntryStore) returning() string {
	return "RETURNING " + strings.Join(s.GetAllColumns(), ", ")
}

func (s *EntryStore) where(opts types.EntryFilter) sq.Eq {
	cond := sq.Eq{}
	if opts.ID != "" {
		cond["id"] = opts.ID
	}
	if opts.Location != nil {
		cond["location"] = *opts.Location
	}
	return cond
}

// Create
func (s *EntryStore) Create(ctx context.Context, data types.Entry) (*types.Entry, error) {
	if data.ID == "" {
		data.ID = utils.GenUniqIDStr()
	}
	now := time.Now().UnixMilli()
	if data.CreatedAt == 0 {
		data.CreatedAt = now
	}
	if data.UpdatedAt == 0 {
		data.UpdatedAt = data.CreatedAt
	}
	if data.Tags == nil {
		data.Tags = types.StringList{}
	}

	query := s.Builder().Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(data.ID, data.Content, data.Location, data.Completed, data.Tags, data.CreatedAt, data.UpdatedAt).
		Suffix(s.returning())

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Entry
	if err = s.GetMaster(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// Get
func (s *EntryStore) Get(ctx context.Context, id string) (*types.Entry, error) {
	query := s.Builder().Select(s.GetAllColumns()...).From(s.GetTable()).Where(sq.Eq{"id": id})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Entry
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

// List returns the matching entries in creation order, never nil
func (s *EntryStore) List(ctx context.Context, opts types.EntryFilter) ([]types.Entry, error) {
	query := s.Builder().Select(s.GetAllColumns()...).From(s.GetTable()).Where(s.where(opts)).OrderBy("created_at ASC", "id ASC")

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	res := make([]types.Entry, 0)
	if err = s.GetReplica(ctx).Select(&res, queryString, args...); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *EntryStore) Total(ctx context.Context, opts types.EntryFilter) (int64, error) {
	query := s.Builder().Select("COUNT(*)").From(s.GetTable()).Where(s.where(opts))

	queryString, args, err := query.ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var res int64
	if err = s.GetReplica(ctx).Get(&res, queryString, args...); err != nil {
		return 0, err
	}
	return res, nil
}

func (s *EntryStore) FindOneAndUpdate(ctx context.Context, opts types.EntryFilter, update types.EntryUpdate) (*types.Entry, error) {
	// an update without an id cannot address a single entry
	if opts.ID == "" {
		return nil, sql.ErrNoRows
	}

	setMap := update.SetMap()
	setMap["updated_at"] = time.Now().UnixMilli()

	query := s.Builder().Update(s.GetTable()).SetMap(setMap).Where(s.where(opts)).Suffix(s.returning())

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Entry
	if err = s.GetMaster(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *EntryStore) FindOneAndDelete(ctx context.Context, id string) (*types.Entry, error) {
	query := s.Builder().Delete(s.GetTable()).Where(sq.Eq{"id": id}).Suffix(s.returning())

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var res types.Entry
	if err = s.GetMaster(ctx).Get(&res, queryString, args...); err != nil {
		return nil, err
	}
	return &res, nil
}
