package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flowcore/engine/internal/archive"
	"github.com/flowcore/engine/pkg/api"
)

func (s *Server) handleGetRun(c *gin.Context) {
	runID := api.RunID(c.Param("runID"))

	if s.store == nil {
		c.JSON(http.StatusNotFound, errorResponse{
			Error:  "run archiving is not enabled",
			Status: http.StatusNotFound,
		})
		return
	}

	res, err := s.store.Get(c.Request.Context(), runID)
	if err != nil {
		if errors.Is(err, archive.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{
				Error:  fmt.Sprintf("run not found: %s", runID),
				Status: http.StatusNotFound,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{
			Error:  err.Error(),
			Status: http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, res)
}
