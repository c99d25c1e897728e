package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes a JSON body with the given status. Handlers go through
// this helper so success payloads stay uniform across the API.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 response, the common case for reads of jobs,
// candidates, and scores.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}
