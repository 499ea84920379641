package v1

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/study-manager/study-manager/app/core"
	"github.com/study-manager/study-manager/pkg/errors"
	"github.com/study-manager/study-manager/pkg/i18n"
	"github.com/study-manager/study-manager/pkg/types"
)

type EntryLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewEntryLogic(ctx context.Context, core *core.Core) *EntryLogic {
	return &EntryLogic{
		ctx:  ctx,
		core: core,
	}
}

// emptyString reports a field that was sent but carries no value, an absent field passes.
func emptyString(s *string) bool {
	return s != nil && *s == ""
}

func (l *EntryLogic) storeError(trace, operation string, err error) error {
	l.core.Metrics().StoreErrorInc(operation)
	requestID, _ := InjectRequestID(l.ctx)
	slog.Error("entry store failure", slog.String("request_id", requestID), slog.String("operation", operation), slog.String("error", err.Error()))
	return errors.New(trace, i18n.ERROR_INTERNAL, err)
}

func entryNotFound(trace, id string) error {
	return errors.New(trace, i18n.ERROR_ENTRY_ID_NOT_FOUND, nil).Code(http.StatusNotFound).WithData(map[string]interface{}{
		"ID": id,
	})
}

func (l *EntryLogic) CreateEntry(content, location *string, completed *bool, tags []string) (*types.Entry, error) {
	if emptyString(content) {
		return nil, errors.New("EntryLogic.CreateEntry.check.content", i18n.ERROR_ENTRY_CONTENT_EMPTY, nil).Code(http.StatusBadRequest)
	}
	if emptyString(location) {
		return nil, errors.New("EntryLogic.CreateEntry.check.location", i18n.ERROR_ENTRY_LOCATION_EMPTY, nil).Code(http.StatusBadRequest)
	}

	entry, err := l.core.Store().EntryStore().Create(l.ctx, types.Entry{
		Content:   content,
		Location:  location,
		Completed: completed,
		Tags:      tags,
	})
	if err != nil {
		return nil, l.storeError("EntryLogic.CreateEntry.EntryStore.Create", "create", err)
	}
	return entry, nil
}

// findOneAndUpdate is shared by every single field update.
func (l *EntryLogic) findOneAndUpdate(trace string, filter types.EntryFilter, update types.EntryUpdate) (*types.Entry, error) {
	entry, err := l.core.Store().EntryStore().FindOneAndUpdate(l.ctx, filter, update)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entryNotFound(trace+".EntryStore.FindOneAndUpdate", filter.ID)
		}
		return nil, l.storeError(trace+".EntryStore.FindOneAndUpdate", "update", err)
	}
	return entry, nil
}

func (l *EntryLogic) UpdateContent(id string, content *string) (*types.Entry, error) {
	if emptyString(content) {
		return nil, errors.New("EntryLogic.UpdateContent.check", i18n.ERROR_ENTRY_CONTENT_EMPTY, nil).Code(http.StatusBadRequest)
	}
	return l.findOneAndUpdate("EntryLogic.UpdateContent", types.EntryFilter{ID: id}, types.EntryUpdate{
		Content: content,
	})
}

func (l *EntryLogic) UpdateLocation(id string, location *string) (*types.Entry, error) {
	if emptyString(location) {
		return nil, errors.New("EntryLogic.UpdateLocation.check", i18n.ERROR_ENTRY_LOCATION_EMPTY, nil).Code(http.StatusBadRequest)
	}
	return l.findOneAndUpdate("EntryLogic.UpdateLocation", types.EntryFilter{ID: id}, types.EntryUpdate{
		Location: location,
	})
}

// UpdateCompleted requires the flag, unlike content and location an absent value is rejected.
func (l *EntryLogic) UpdateCompleted(id string, completed *bool) (*types.Entry, error) {
	if completed == nil {
		return nil, errors.New("EntryLogic.UpdateCompleted.check", i18n.ERROR_ENTRY_COMPLETED_MISSING, nil).Code(http.StatusBadRequest)
	}
	return l.findOneAndUpdate("EntryLogic.UpdateCompleted", types.EntryFilter{ID: id}, types.EntryUpdate{
		Completed: completed,
	})
}

// UpdateTags replaces the whole tag list, an empty list clears it.
func (l *EntryLogic) UpdateTags(id string, tags *[]string) (*types.Entry, error) {
	if tags == nil {
		return nil, errors.New("EntryLogic.UpdateTags.check", i18n.ERROR_ENTRY_TAGS_MISSING, nil).Code(http.StatusBadRequest)
	}
	list := types.StringList(*tags)
	if list == nil {
		list = types.StringList{}
	}
	return l.findOneAndUpdate("EntryLogic.UpdateTags", types.EntryFilter{ID: id}, types.EntryUpdate{
		Tags: &list,
	})
}

func (l *EntryLogic) ListEntries() ([]types.Entry, error) {
	list, err := l.core.Store().EntryStore().List(l.ctx, types.EntryFilter{})
	if err != nil {
		return nil, l.storeError("EntryLogic.ListEntries.EntryStore.List", "list", err)
	}
	return list, nil
}

// ListByLocation matches the location exactly, case included.
func (l *EntryLogic) ListByLocation(location string) ([]types.Entry, error) {
	list, err := l.core.Store().EntryStore().List(l.ctx, types.EntryFilter{Location: &location})
	if err != nil {
		return nil, l.storeError("EntryLogic.ListByLocation.EntryStore.List", "list", err)
	}
	return list, nil
}

func (l *EntryLogic) GetEntry(id string) (*types.Entry, error) {
	entry, err := l.core.Store().EntryStore().Get(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entryNotFound("EntryLogic.GetEntry.EntryStore.Get", id)
		}
		return nil, l.storeError("EntryLogic.GetEntry.EntryStore.Get", "get", err)
	}
	return entry, nil
}

// DeleteEntry removes the entry and returns the state it had before removal.
func (l *EntryLogic) DeleteEntry(id string) (*types.Entry, error) {
	entry, err := l.core.Store().EntryStore().FindOneAndDelete(l.ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entryNotFound("EntryLogic.DeleteEntry.EntryStore.FindOneAndDelete", id)
		}
		return nil, l.storeError("EntryLogic.DeleteEntry.EntryStore.FindOneAndDelete", "delete", err)
	}
	return entry, nil
}
