package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/study-manager/study-manager/app/response"
	"github.com/study-manager/study-manager/pkg/errors"
	"github.com/study-manager/study-manager/pkg/i18n"
)

func (s *HttpSrv) Healthz(c *gin.Context) {
	if err := s.Core.Store().Ping(c); err != nil {
		response.APIError(c, errors.New("api.Healthz.Store.Ping", i18n.ERROR_INTERNAL, err).Code(http.StatusServiceUnavailable))
		return
	}
	response.APISuccess(c, map[string]string{
		"status": "ok",
	})
}
