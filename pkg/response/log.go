package response

import (
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/geo-region-service/internal/domain/errs"
	"github.com/oksasatya/geo-region-service/pkg/helpers"
)

// CtxRequestBodyKey holds the raw request body captured by
// middleware.CaptureBody.
const CtxRequestBodyKey = "request_body"

var logger = logrus.StandardLogger()

// redactedFields are masked before a body reaches the log.
var redactedFields = []string{"password"}

// SetLogger replaces the logger used for server-side failures. Call it once
// at startup.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		logger = l
	}
}

// logServerError records a 5xx failure with the request that caused it.
func logServerError(c *gin.Context, err error) {
	fields := logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"url":        c.Request.URL.String(),
	}
	if e := errs.As(err); e != nil {
		fields["kind"] = e.Kind.String()
		if e.Op != "" {
			fields["op"] = e.Op
		}
		if e.Cause != nil {
			fields["cause"] = e.Cause.Error()
		}
	}
	if raw, ok := c.Get(CtxRequestBodyKey); ok {
		if b, ok := raw.([]byte); ok && len(b) > 0 {
			fields["body"] = redactBody(b)
		}
	}
	helpers.LogError(logger, "request failed with server error", err, fields)
}

func redactBody(raw []byte) string {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return string(raw)
	}
	for _, k := range redactedFields {
		if _, ok := m[k]; ok {
			m[k] = "[REDACTED]"
		}
	}
	out, err := json.Marshal(m)
	if err != nil {
		return string(raw)
	}
	return string(out)
}
