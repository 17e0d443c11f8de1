package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/docline/docline-api/pkg/response"
)

// idParam parses the :id path parameter; on failure it writes a 400 and
// reports false.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid id",
			map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}
