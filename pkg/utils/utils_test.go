package utils

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/study-manager/study-manager/pkg/errors"
)

func TestGenUniqIDStr(t *testing.T) {
	SetupIDWorker(1)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenUniqIDStr()
		assert.False(t, seen[id], "duplicated id %s", id)
		seen[id] = true
	}
}

func TestGenRequestID(t *testing.T) {
	_, err := uuid.Parse(GenRequestID())
	assert.NoError(t, err)
}

type bindRequest struct {
	ID      string  `json:"id" form:"id"`
	Content *string `json:"content" form:"content"`
}

func newContext(method, contentType, body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(method, "/manager/entries/content/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", contentType)
	return c
}

func TestBindArgsWithGin(t *testing.T) {
	var req bindRequest
	require.NoError(t, BindArgsWithGin(newContext(http.MethodPut, "application/json", `{"id":"1","content":""}`), &req))
	assert.Equal(t, "1", req.ID)
	require.NotNil(t, req.Content)
	assert.Equal(t, "", *req.Content)

	req = bindRequest{}
	require.NoError(t, BindArgsWithGin(newContext(http.MethodPut, "application/x-www-form-urlencoded", "id=2&content=hello"), &req))
	assert.Equal(t, "2", req.ID)
	require.NotNil(t, req.Content)
	assert.Equal(t, "hello", *req.Content)

	req = bindRequest{}
	require.NoError(t, BindArgsWithGin(newContext(http.MethodPut, "application/json", `{"id":"3"}`), &req))
	assert.Nil(t, req.Content)
}

func TestBindArgsWithGinEmptyJSONBody(t *testing.T) {
	var req bindRequest
	require.NoError(t, BindArgsWithGin(newContext(http.MethodPost, "application/json", ""), &req))
	assert.Empty(t, req.ID)
	assert.Nil(t, req.Content)
}

func TestBindArgsWithGinBadBody(t *testing.T) {
	var req bindRequest
	err := BindArgsWithGin(newContext(http.MethodPost, "application/json", `{"id":`), &req)
	require.Error(t, err)

	ce, ok := err.(*errors.CustomizedError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, ce.GetCode())
	assert.True(t, strings.HasPrefix(ce.Error(), `{"trace":"Gin.ShouldBindWith.POST./manager/entries/content/"`))
}
