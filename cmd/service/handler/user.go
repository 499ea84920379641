package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	v1 "github.com/study-manager/study-manager/app/logic/v1"
)

// The users resource answers without the response envelope.

func (s *HttpSrv) UserPlaceholder(c *gin.Context) {
	c.String(http.StatusOK, v1.NewUserLogic(c).Placeholder())
}

func (s *HttpSrv) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, v1.NewUserLogic(c).ListUsers())
}
