package server

import (
	"log/slog"
	"net/http"
	"sync"

	glog "github.com/gin-contrib/slog"
	"github.com/gin-gonic/gin"

	"github.com/flowcore/engine/internal/archive"
	"github.com/flowcore/engine/internal/engine"
	"github.com/flowcore/engine/internal/node"
	"github.com/flowcore/engine/pkg/api"
	"github.com/flowcore/engine/pkg/util"
)

type (
	// Server implements the HTTP API for validating and executing flows
	Server struct {
		registry *node.Registry
		events   *engine.Events
		store    *archive.Store
		logger   *slog.Logger
		defaults api.Options
		sockets  util.Set[*Client]
		mu       sync.Mutex
	}

	// Option configures a Server at construction
	Option func(*Server)

	errorResponse struct {
		Error  string `json:"error"`
		Status int    `json:"status"`
	}
)

// WithArchive attaches a run archive; finalized results are stored in it
// and served from the run lookup endpoint
func WithArchive(store *archive.Store) Option {
	return func(s *Server) {
		s.store = store
	}
}

// WithDefaultOptions overrides the default run budgets applied when an
// execute request omits its options
func WithDefaultOptions(opts api.Options) Option {
	return func(s *Server) {
		s.defaults = opts
	}
}

// WithLogger attaches a structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new HTTP API server
func NewServer(
	registry *node.Registry, events *engine.Events, opts ...Option,
) *Server {
	s := &Server{
		registry: registry,
		events:   events,
		logger:   slog.Default(),
		sockets:  util.Set[*Client]{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetupRoutes configures and returns the HTTP router with all endpoints
func (s *Server) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(glog.SetLogger(
		glog.WithLogger(func(c *gin.Context, l *slog.Logger) *slog.Logger {
			return s.logger
		}),
	))

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set(
			"Access-Control-Allow-Methods",
			"GET, POST, OPTIONS",
		)
		c.Writer.Header().Set(
			"Access-Control-Allow-Headers",
			"Content-Type, Authorization",
		)

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	})

	router.GET("/health", s.handleHealth)

	flows := router.Group("/flows")
	{
		flows.POST("/validate", s.handleValidate)
		flows.POST("/execute", s.handleExecute)
	}

	router.GET("/runs/:runID", s.handleGetRun)
	router.GET("/ws", s.handleWebSocket)

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "flowcore-engine",
		"status":  "ok",
	})
}

func (s *Server) registerWebSocket(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sockets.Add(c)
}

func (s *Server) unregisterWebSocket(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sockets.Remove(c)
}

// CloseWebSockets closes all active WebSocket connections
func (s *Server) CloseWebSockets() {
	s.mu.Lock()
	conns := make([]*Client, 0, len(s.sockets))
	for c := range s.sockets {
		conns = append(conns, c)
	}
	s.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}
