package middleware

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/study-manager/study-manager/app/core"
	v1 "github.com/study-manager/study-manager/app/logic/v1"
	"github.com/study-manager/study-manager/app/response"
	"github.com/study-manager/study-manager/pkg/errors"
	"github.com/study-manager/study-manager/pkg/i18n"
)

func I18n() gin.HandlerFunc {
	var allowList []string
	for k := range i18n.ALLOW_LANG {
		allowList = append(allowList, k)
	}
	// map order is random, keep the registry stable
	sort.Strings(allowList)
	l := i18n.NewLocalizer(allowList...)

	return response.ProvideResponseLocalizer(l)
}

// AcceptLanguage 目前服务端支持 en: English, zh-CN: 简体中文
// Must run after I18n.
func AcceptLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := response.InjectResponseLocalizer(c).Match(c.GetHeader("Accept-Language"))
		c.Set(response.LangKey, lang)
		c.Set(v1.LANGUAGE_KEY, lang)
	}
}

// RequestID exposes the request id to logic through the context it receives.
// Must run after response.NewResponse.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(v1.REQUEST_ID_KEY, response.GetRequestID(c))
	}
}

func Cors(c *gin.Context) {
	method := c.Request.Method
	origin := c.Request.Header.Get("Origin")
	if origin != "" {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, Accept-Language, "+response.RequestIDHeader)
		c.Header("Access-Control-Expose-Headers", "Content-Length, Access-Control-Allow-Origin, Access-Control-Allow-Headers, Cache-Control, Content-Language, Content-Type, "+response.RequestIDHeader)
		c.Header("Access-Control-Allow-Credentials", "true")
	}
	if method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

// Metrics times every matched route and counts the responses that were not successful.
func Metrics(appCore *core.Core) gin.HandlerFunc {
	return func(c *gin.Context) {
		api := c.FullPath()
		if api == "" {
			api = "unmatched"
		}
		timer := appCore.Metrics().ApiResponseTimer(c.Request.Method + " " + api)
		c.Next()
		timer.ObserveDuration()

		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			appCore.Metrics().ApiErrorInc(c.Request.Method, api, status)
		}
	}
}

func UseLimit(appCore *core.Core, operation string, genKeyFunc func(c *gin.Context) string, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perMinute <= 0 {
			return
		}
		if !appCore.Limiter(operation+":"+genKeyFunc(c), perMinute).Allow() {
			response.APIError(c, errors.New("middleware.limiter", i18n.ERROR_TOO_MANY_REQUESTS, nil).Code(http.StatusTooManyRequests))
		}
	}
}

func ClientIPKey(c *gin.Context) string {
	return c.ClientIP()
}
