package response

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/study-manager/study-manager/pkg/errors"
	"github.com/study-manager/study-manager/pkg/i18n"
	"github.com/study-manager/study-manager/pkg/utils"
)

func ProvideResponseLocalizer(l i18n.Localizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("i18n", l)
	}
}

func InjectResponseLocalizer(c *gin.Context) i18n.Localizer {
	return c.MustGet("i18n").(i18n.Localizer)
}

// 常量定义
const (
	RequestIDKey    = "request_id"
	ResponseKey     = "response_key"
	LangKey         = "lang"
	RequestIDHeader = "X-Request-Id"
)

// Response is the envelope every entry endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// GetLangFromRequestOrDefault returns the language picked by the i18n middleware,
// or matches the Accept-Language header when the middleware did not run.
func GetLangFromRequestOrDefault(c *gin.Context) string {
	if lang := c.GetString(LangKey); lang != "" {
		return lang
	}
	if v, exist := c.Get("i18n"); exist {
		return v.(i18n.Localizer).Match(c.GetHeader("Accept-Language"))
	}
	return i18n.DEFAULT_LANG
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

func getResponse(c *gin.Context) *Response {
	if v, exist := c.Get(ResponseKey); exist {
		return v.(*Response)
	}
	return &Response{}
}

// APIError api响应失败
// Client errors carry a localized message, server errors carry the raw cause.
func APIError(c *gin.Context, err error) {
	c.Abort()

	res := getResponse(c)
	res.Success = false
	res.Data = nil

	httpStatus := http.StatusInternalServerError
	if cerrptr, ok := err.(*errors.CustomizedError); !ok {
		res.Error = err.Error()
	} else {
		httpStatus = cerrptr.GetCode()
		if httpStatus >= http.StatusInternalServerError {
			res.Error = cerrptr.Message()
			if cause := cerrptr.Cause(); cause != nil {
				res.Error = cause.Error()
			}
		} else {
			l := InjectResponseLocalizer(c)
			res.Message = l.GetWithData(GetLangFromRequestOrDefault(c), cerrptr.Message(), cerrptr.Data())
		}
	}

	c.JSON(httpStatus, res)
	printErrorLog(c, httpStatus, err)
}

func printErrorLog(c *gin.Context, code int, err error) {
	endTime := time.Now().Unix()
	// 统一打印日志
	var logFields = map[string]any{
		"request_id":  GetRequestID(c),
		"method":      c.Request.Method,
		"request_uri": c.Request.URL.Path,
		"end_time":    endTime,
		"code":        code,
		"error":       err.Error(),
		"client_ip":   c.ClientIP(),
	}

	if code >= http.StatusInternalServerError {
		slog.Error("response error", slog.Any("fields", logFields))
		return
	}
	slog.Warn("response error", slog.Any("fields", logFields))
}

func printSuccessLog(c *gin.Context) {
	endTime := time.Now().Unix()
	// 统一打印日志
	var logFields = map[string]any{
		"request_id":  GetRequestID(c),
		"method":      c.Request.Method,
		"request_uri": c.Request.URL.Path,
		"end_time":    endTime,
		"client_ip":   c.ClientIP(),
	}

	if c.Request.Method == http.MethodGet {
		logFields["params"] = c.Request.URL.Query().Encode()
	}

	slog.Info("request success", slog.Any("fields", logFields))
}

// APISuccess api响应成功
func APISuccess(c *gin.Context, response interface{}) {
	c.Abort()
	res := getResponse(c)
	res.Success = true
	res.Data = response
	c.JSON(http.StatusOK, res)
	printSuccessLog(c)
}

// NewResponse 为每个请求生成 request id 并准备响应体
func NewResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = utils.GenRequestID()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Set(ResponseKey, &Response{})
	}
}
