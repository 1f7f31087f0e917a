package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/flowcore/engine/internal/engine"
	"github.com/flowcore/engine/pkg/api"
	"github.com/flowcore/engine/pkg/log"
)

type (
	validateResponse struct {
		Errors []string `json:"errors,omitempty"`
		Valid  bool     `json:"valid"`
	}

	executeRequest struct {
		Flow    *api.Flow   `json:"flow"`
		Input   any         `json:"input"`
		Options api.Options `json:"options"`
	}
)

func (s *Server) handleValidate(c *gin.Context) {
	var f api.Flow
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:  err.Error(),
			Status: http.StatusBadRequest,
		})
		return
	}

	if err := engine.Validate(&f, s.registry); err != nil {
		c.JSON(http.StatusOK, validateResponse{
			Valid:  false,
			Errors: strings.Split(err.Error(), "\n"),
		})
		return
	}

	c.JSON(http.StatusOK, validateResponse{Valid: true})
}

func (s *Server) handleExecute(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:  err.Error(),
			Status: http.StatusBadRequest,
		})
		return
	}
	if req.Flow == nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:  "flow is required",
			Status: http.StatusBadRequest,
		})
		return
	}

	opts := s.applyDefaults(req.Options)

	exec, err := engine.New(req.Flow, s.registry,
		engine.WithEvents(s.events),
		engine.WithLogger(s.logger),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:  err.Error(),
			Status: http.StatusBadRequest,
		})
		return
	}

	res := exec.Execute(c.Request.Context(), req.Input, opts)
	s.archiveRun(c, res)

	c.JSON(http.StatusOK, res)
}

// applyDefaults fills omitted run budgets from the server's configured
// defaults
func (s *Server) applyDefaults(opts api.Options) api.Options {
	if opts.MaxSteps == 0 {
		opts.MaxSteps = s.defaults.MaxSteps
	}
	if opts.Timeout == 0 {
		opts.Timeout = s.defaults.Timeout
	}
	return opts
}

// archiveRun stores a finalized result. Archive failures are logged and
// never surface into the run's outcome
func (s *Server) archiveRun(c *gin.Context, res *api.ExecutionResult) {
	if s.store == nil {
		return
	}
	if err := s.store.Put(c.Request.Context(), res); err != nil {
		s.logger.Error("failed to archive run",
			log.RunID(res.RunID),
			log.Error(err))
	}
}
