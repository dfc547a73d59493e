package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
)

// respondError maps a service error to its HTTP status; anything that is not
// an *apierr.Error comes out as a 500 with a generic message.
func respondError(c *gin.Context, err error) {
	ae := apierr.From(err)
	msg := ae.Error()
	if ae.Status >= http.StatusInternalServerError {
		msg = ae.Code
	}
	c.JSON(ae.Status, gin.H{"error": msg, "code": ae.Code})
}

func respondOK(c *gin.Context, body gin.H) {
	body["success"] = true
	c.JSON(http.StatusOK, body)
}
