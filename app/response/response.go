package response

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/corpora-ai/corpora/pkg/errors"
	"github.com/corpora-ai/corpora/pkg/i18n"
	"github.com/corpora-ai/corpora/pkg/utils"
)

func ProvideResponseLocalizer(l i18n.Localizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("i18n", l)
	}
}

func InjectResponseLocalizer(c *gin.Context) i18n.Localizer {
	return c.MustGet("i18n").(i18n.Localizer)
}

const (
	RequestIDKey = "request_id"
	ResponseKey  = "response_key"
)

type EmptyStruct struct {
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Meta Meta        `json:"meta"`
	Data interface{} `json:"data"`
}

type Meta struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

func GetLangFromRequestOrDefault(c *gin.Context) string {
	lang := c.Request.Header.Get("Accept-Language")
	if lang == "zh" {
		lang = "zh-CN"
	}
	if i18n.ALLOW_LANG[lang] {
		return lang
	}
	return i18n.DEFAULT_LANG
}

// APIError finishes the request with a localized error message. Customized
// errors carry their own http code; anything else is a 500.
func APIError(c *gin.Context, err error) {
	c.Abort()
	l := InjectResponseLocalizer(c)

	res := c.MustGet(ResponseKey).(*Response)
	var httpStatus int
	if cerrptr, ok := err.(*errors.CustomizedError); !ok {
		res.Meta.Code = http.StatusInternalServerError
		res.Meta.Message = err.Error()
		httpStatus = res.Meta.Code
	} else {
		res.Meta.Code = cerrptr.GetCode()
		lang := GetLangFromRequestOrDefault(c)
		res.Meta.Message = l.Get(lang, cerrptr.Message())
		httpStatus = cerrptr.GetCode()
	}

	c.JSON(httpStatus, res)
	printErrorLog(c, res, err)
}

func printErrorLog(c *gin.Context, res *Response, err error) {
	slog.Error("response error",
		slog.String("request_uri", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.Int64("end_time", time.Now().Unix()),
		slog.Int("code", res.Meta.Code),
		slog.String("request_id", res.Meta.RequestID),
		slog.String("error", err.Error()))
}

func printSuccessLog(c *gin.Context, res *Response) {
	var params string
	if c.Request.Method == http.MethodPost {
		_ = c.Request.ParseForm()
		params = c.Request.Form.Encode()
	} else {
		params = c.Request.URL.Query().Encode()
	}

	slog.Info("request success",
		slog.String("request_uri", c.Request.URL.Path),
		slog.String("method", c.Request.Method),
		slog.Int64("end_time", time.Now().Unix()),
		slog.String("request_id", res.Meta.RequestID),
		slog.String("params", params))
}

func APISuccess(c *gin.Context, response interface{}) {
	c.Abort()
	res := c.MustGet(ResponseKey).(*Response)
	if response != nil {
		res.Data = response
	}
	c.JSON(http.StatusOK, res)
	printSuccessLog(c, res)
}

// NewResponse seeds the per-request envelope with a request id.
func NewResponse() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := &Response{
			Meta: Meta{
				RequestID: utils.GenRandomID(),
			},
		}
		c.Set(ResponseKey, resp)
	}
}
