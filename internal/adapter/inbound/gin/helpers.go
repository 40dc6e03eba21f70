package gin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/uniedit/orderflow/internal/utils/errors"
)

// parseOrderID extracts the numeric order id from the :ref path parameter.
// It writes a 400 and returns false when the id is not a positive integer.
func parseOrderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("ref"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid order id")
		return 0, false
	}
	return id, true
}

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, apperrors.Envelope{Data: data})
}

func respondRejection(c *gin.Context, message string) {
	appErr := apperrors.Rejected(message)
	c.JSON(appErr.StatusCode, appErr.ToResponse())
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, apperrors.Envelope{Message: message})
}

// withAction returns action followed by h in a fresh slice.
func withAction(action []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(action)+1)
	out = append(out, action...)
	return append(out, h)
}
