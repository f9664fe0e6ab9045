package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parlourhq/parlour-scheduler/internal/httperr"
)

const dateLayout = "2006-01-02"

// writeBusinessError maps a domain rule violation to a 400 response with its
// user-facing message. Reports whether the error was handled.
func writeBusinessError(c *gin.Context, err error) bool {
	if code := httperr.BusinessCode(err); code != "" {
		httperr.BadRequest(c, code, httperr.BusinessMessage(code))
		return true
	}
	return false
}

func parseDateParam(s string) (time.Time, bool) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
