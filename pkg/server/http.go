package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is read from requests and set on every response.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// API holds the HTTP handlers.
type API struct {
	service *Service
}

// NewRouter returns a gin engine with recovery and the corpus routes.
func NewRouter(service *Service) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	SetupRoutes(router, service)
	return router
}

// SetupRoutes defines the corpus routes on router.
func SetupRoutes(router *gin.Engine, service *Service) {
	api := &API{service: service}

	router.Use(RequestIDMiddleware(), CORSMiddleware())
	router.GET("/health", api.HealthCheckHandler)
	router.GET("/search_corpus", api.SearchCorpusHandler)
}

// RequestIDMiddleware tags each request with an id, reusing the caller's when given.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()
		log.Debugf("%s %s [%s] %d in %v", c.Request.Method, c.Request.URL.Path, id, c.Writer.Status(), time.Since(start))
	}
}

// CORSMiddleware lets browser clients on other origins query the corpus.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// HealthCheckHandler reports liveness and corpus statistics.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"stats":  api.service.Stats(),
	})
}

// SearchCorpusHandler answers GET /search_corpus.
func (api *API) SearchCorpusHandler(c *gin.Context) {
	results, err := api.service.Search(c.Request.Context(),
		c.Query("mode"), c.Query("pattern"), c.Query("absent_letters"))
	if err != nil {
		c.JSON(statusOf(err), ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, results)
}

// Serve runs handler on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Corpus service listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("Shutting down corpus service")
		return srv.Shutdown(shutdownCtx)
	}
}
