package handler

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/study-manager/study-manager/app/logic/v1"
	"github.com/study-manager/study-manager/app/response"
	"github.com/study-manager/study-manager/pkg/errors"
	"github.com/study-manager/study-manager/pkg/utils"
)

// Fields are pointers so an absent key can be told apart from an empty value.
type CreateEntryRequest struct {
	Content   *string  `json:"content" form:"content"`
	Location  *string  `json:"location" form:"location"`
	Completed *bool    `json:"completed" form:"completed"`
	Tags      []string `json:"tags" form:"tags"`
}

func (s *HttpSrv) CreateEntry(c *gin.Context) {
	var (
		err error
		req CreateEntryRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	entry, err := v1.NewEntryLogic(c, s.Core).CreateEntry(req.Content, req.Location, req.Completed, req.Tags)
	if err != nil {
		response.APIError(c, errors.Trace("api.CreateEntry", err))
		return
	}
	response.APISuccess(c, entry)
}

// EntryIDRequest accepts the id as "id" or the legacy "_id" key.
type EntryIDRequest struct {
	ID       string `json:"id" form:"id"`
	LegacyID string `json:"_id" form:"_id"`
}

func (r EntryIDRequest) EntryID() string {
	if r.ID != "" {
		return r.ID
	}
	return r.LegacyID
}

type UpdateContentRequest struct {
	EntryIDRequest
	Content *string `json:"content" form:"content"`
}

func (s *HttpSrv) UpdateEntryContent(c *gin.Context) {
	var (
		err error
		req UpdateContentRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	entry, err := v1.NewEntryLogic(c, s.Core).UpdateContent(req.EntryID(), req.Content)
	if err != nil {
		response.APIError(c, errors.Trace("api.UpdateEntryContent", err))
		return
	}
	response.APISuccess(c, entry)
}

type UpdateLocationRequest struct {
	EntryIDRequest
	Location *string `json:"location" form:"location"`
}

func (s *HttpSrv) UpdateEntryLocation(c *gin.Context) {
	var (
		err error
		req UpdateLocationRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	entry, err := v1.NewEntryLogic(c, s.Core).UpdateLocation(req.EntryID(), req.Location)
	if err != nil {
		response.APIError(c, errors.Trace("api.UpdateEntryLocation", err))
		return
	}
	response.APISuccess(c, entry)
}

type UpdateCompletedRequest struct {
	EntryIDRequest
	Completed *bool `json:"completed" form:"completed"`
}

func (s *HttpSrv) UpdateEntryCompleted(c *gin.Context) {
	var (
		err error
		req UpdateCompletedRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	entry, err := v1.NewEntryLogic(c, s.Core).UpdateCompleted(req.EntryID(), req.Completed)
	if err != nil {
		response.APIError(c, errors.Trace("api.UpdateEntryCompleted", err))
		return
	}
	response.APISuccess(c, entry)
}

type UpdateTagsRequest struct {
	EntryIDRequest
	Tags *[]string `json:"tags" form:"tags"`
}

func (s *HttpSrv) UpdateEntryTags(c *gin.Context) {
	var (
		err error
		req UpdateTagsRequest
	)
	if err = utils.BindArgsWithGin(c, &req); err != nil {
		response.APIError(c, err)
		return
	}

	entry, err := v1.NewEntryLogic(c, s.Core).UpdateTags(req.EntryID(), req.Tags)
	if err != nil {
		response.APIError(c, errors.Trace("api.UpdateEntryTags", err))
		return
	}
	response.APISuccess(c, entry)
}

func (s *HttpSrv) ListEntries(c *gin.Context) {
	list, err := v1.NewEntryLogic(c, s.Core).ListEntries()
	if err != nil {
		response.APIError(c, errors.Trace("api.ListEntries", err))
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) GetEntry(c *gin.Context) {
	entry, err := v1.NewEntryLogic(c, s.Core).GetEntry(c.Param("id"))
	if err != nil {
		response.APIError(c, errors.Trace("api.GetEntry", err))
		return
	}
	response.APISuccess(c, entry)
}

func (s *HttpSrv) ListEntriesByLocation(c *gin.Context) {
	list, err := v1.NewEntryLogic(c, s.Core).ListByLocation(c.Param("location"))
	if err != nil {
		response.APIError(c, errors.Trace("api.ListEntriesByLocation", err))
		return
	}
	response.APISuccess(c, list)
}

func (s *HttpSrv) DeleteEntry(c *gin.Context) {
	entry, err := v1.NewEntryLogic(c, s.Core).DeleteEntry(c.Param("id"))
	if err != nil {
		response.APIError(c, errors.Trace("api.DeleteEntry", err))
		return
	}
	response.APISuccess(c, entry)
}
