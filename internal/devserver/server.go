// Package devserver is a local reference implementation of the TrackUp HTTP
// API, for development and integration tests.
package devserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"trackup/internal/logger"
	"trackup/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Store     store.Store
	Assistant *Assistant
	// AllowOrigins defaults to all origins.
	AllowOrigins []string
}

type Server struct {
	store     store.Store
	assistant *Assistant
	router    *gin.Engine
}

func New(opts Options) *Server {
	s := &Server{store: opts.Store, assistant: opts.Assistant}
	if s.assistant == nil {
		s.assistant = NewAssistant(opts.Store, nil)
	}
	s.router = s.setupRouter(opts.AllowOrigins)
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	// Team and member names are free text and may contain escaped slashes.
	r.UseRawPath = true
	r.UnescapePathValues = true
	r.Use(requestLogger(), gin.Recovery())

	corsCfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().Unix()})
	})
	r.POST("/chat", s.chat)

	api := r.Group("/api")
	{
		api.GET("/teams", s.listTeams)
		api.POST("/teams", s.createTeam)
		api.DELETE("/teams/:team", s.deleteTeam)
		api.POST("/teams/:team/members", s.addMember)
		api.DELETE("/teams/:team/members/:member", s.removeMember)

		api.GET("/member/:name", s.memberDetail)

		api.GET("/tasks", s.listTasks)
		api.POST("/tasks", s.createTask)
		api.DELETE("/tasks/:id", s.deleteTask)
	}
	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("devserver listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	logger.Infof("devserver shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		fields := logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.WithFields(fields).Warnf("request failed")
			return
		}
		logger.WithFields(fields).Infof("request")
	}
}
