package utils

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/holdno/snowFlakeByGo"

	"github.com/study-manager/study-manager/pkg/errors"
	"github.com/study-manager/study-manager/pkg/i18n"
)

var (
	// idWorker 全局唯一id生成器实例
	idWorker     *snowFlakeByGo.Worker
	idWorkerOnce sync.Once
)

// SetupIDWorker must run before the first id is generated, later calls are ignored.
func SetupIDWorker(clusterID int64) {
	idWorkerOnce.Do(func() {
		worker, err := snowFlakeByGo.NewWorker(clusterID)
		if err != nil {
			panic(fmt.Sprintf("failed to setup id worker: %v", err))
		}
		idWorker = worker
	})
}

func GenUniqID() int64 {
	SetupIDWorker(1)
	return idWorker.GetId()
}

func GenUniqIDStr() string {
	return strconv.FormatInt(GenUniqID(), 10)
}

func GenRequestID() string {
	return uuid.NewString()
}

// BindArgsWithGin binds json or form bodies depending on the request content type.
// An empty json body binds as an object without keys.
func BindArgsWithGin(c *gin.Context, req interface{}) error {
	err := c.ShouldBindWith(req, binding.Default(c.Request.Method, c.ContentType()))
	if stderrors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return errors.New(fmt.Sprintf("Gin.ShouldBindWith.%s.%s", c.Request.Method, c.Request.URL.Path), i18n.ERROR_INVALIDARGUMENT, err).Code(http.StatusBadRequest)
	}
	return nil
}
