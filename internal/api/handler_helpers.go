package api

import (
	"github.com/gin-gonic/gin"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal"
	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/response"
)

// HandleStoreError logs the failure server-side and answers the generic
// plain-text message. The status stays at the framework default.
func HandleStoreError(c *gin.Context, logger internal.Logger, err error, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	response.PlainText(c, msg)
}
