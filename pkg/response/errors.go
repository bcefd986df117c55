package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/geo-region-service/internal/domain/errs"
)

// Stable error codes returned in errorCode.
const (
	CodeValidation    = "VALIDATION_ERROR"
	CodeCoordinates   = "COORDINATES_ERROR"
	CodeUser          = "USER_ERROR"
	CodeRegion        = "REGION_ERROR"
	CodeNotFound      = "ENTITY_NOT_FOUND_ERROR"
	CodeLogin         = "LOGIN_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeDatabase      = "DATABASE_ERROR"
	CodeUnknown       = "UNKNOWN_ERROR"
	CodeRouteNotFound = "ROUTE_NOT_FOUND"
	CodeRateLimited   = "RATE_LIMITED"
)

type mapping struct {
	status int
	code   string
}

var kinds = map[errs.Kind]mapping{
	errs.KindValidation:         {http.StatusBadRequest, CodeValidation},
	errs.KindLocation:           {http.StatusBadRequest, CodeValidation},
	errs.KindCoordinates:        {http.StatusBadRequest, CodeCoordinates},
	errs.KindGeocoding:          {http.StatusBadRequest, CodeCoordinates},
	errs.KindUser:               {http.StatusBadRequest, CodeUser},
	errs.KindRegion:             {http.StatusBadRequest, CodeRegion},
	errs.KindNotFound:           {http.StatusNotFound, CodeNotFound},
	errs.KindInvalidCredentials: {http.StatusUnauthorized, CodeLogin},
	errs.KindUnauthorized:       {http.StatusUnauthorized, CodeUnauthorized},
	errs.KindStorage:            {http.StatusInternalServerError, CodeDatabase},
}

// Classify maps err to its HTTP status and stable code.
func Classify(err error) (int, string) {
	if m, ok := kinds[errs.KindOf(err)]; ok {
		return m.status, m.code
	}
	return http.StatusInternalServerError, CodeUnknown
}

// Fail is the single translator from an error to an error envelope. The
// error is attached to the gin context so the access log records it with
// its cause. Server-side failures are also logged with the request method,
// URL and body; their causes only reach the client in debug mode.
func Fail(c *gin.Context, err error) {
	status, code := Classify(err)
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		logServerError(c, err)
	}

	e := errs.As(err)
	message := "Internal Server Error"
	var details any
	switch {
	case status >= http.StatusInternalServerError:
		if e != nil && e.Kind == errs.KindStorage {
			message = "A database error occurred."
		}
		if gin.IsDebugging() {
			details = err.Error()
		}
	case e != nil:
		message = e.Message
		if len(e.Fields) > 0 {
			details = e.Fields
		}
	default:
		message = err.Error()
	}
	Error(c, status, code, message, details)
}
