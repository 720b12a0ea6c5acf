package remote

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zeu5/impact-eval/types"
)

// StepRequest is the body of POST /step
type StepRequest struct {
	Actions types.Action `json:"actions"`
}

// Server exposes environments created by a constructor over HTTP.
// Every POST /reset starts a fresh environment.
type Server struct {
	Addr        string
	constructor types.EnvironmentConstructor
	server      *http.Server
	logger      *slog.Logger

	lock *sync.Mutex
	env  types.Environment
}

func NewServer(addr string, constructor types.EnvironmentConstructor, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		Addr:        addr,
		constructor: constructor,
		logger:      logger,
		lock:        new(sync.Mutex),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/health", s.handleHealth)
	r.POST("/reset", s.handleReset)
	r.POST("/step", s.handleStep)
	s.server = &http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// Handler returns the router, useful to mount the server elsewhere
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *Server) handleReset(c *gin.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()

	env, err := s.constructor.NewEnvironment()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	obs, err := env.Reset(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.env = env
	s.logger.Debug("environment reset", "segments", obs.NumSegments())
	c.JSON(http.StatusOK, obs)
}

func (s *Server) handleStep(c *gin.Context) {
	req := StepRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if s.env == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "environment not reset"})
		return
	}
	result, err := s.env.Step(c.Request.Context(), req.Actions)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, types.ErrEpisodeDone) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Run serves until ctx is cancelled and then shuts the server down
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving environment", "addr", s.Addr)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
