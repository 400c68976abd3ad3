package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Domenick1991/dorado/api"
	"github.com/Domenick1991/dorado/config"
	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/Domenick1991/dorado/internal/security"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

const shutdownTimeout = 5 * time.Second

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type RouterDeps struct {
	Handlers api.Handlers
	Tokens   security.TokenService
	Log      logging.Logger
	Checks   map[string]HealthCheck
}

// NewRouter builds the gin engine: health, API docs, locally stored photos
// and the API itself under cfg.HTTP.BasePath.
func NewRouter(cfg *config.Config, deps RouterDeps) *gin.Engine {
	engine := gin.New()
	engine.MaxMultipartMemory = int64(cfg.Photos.MaxSizeMB) << 20
	engine.Use(gin.Recovery(), api.RequestLogger(deps.Log))

	engine.GET("/health", healthHandler(deps.Checks))

	if cfg.HTTP.SwaggerDir != "" {
		engine.StaticFile("/openapi.json", filepath.Join(cfg.HTTP.SwaggerDir, "openapi.json"))
		engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))
	}

	if cfg.Photos.Driver == "local" {
		engine.Static(cfg.Photos.PublicPath, cfg.Photos.Dir)
	}

	deps.Handlers.Mount(engine.Group(cfg.HTTP.BasePath), deps.Tokens)
	return engine
}

func healthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		components := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				components[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			components[name] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		c.JSON(status, gin.H{"status": overall, "components": components})
	}
}

// Run serves handler on cfg.HTTP.Address and blocks until ctx is canceled or
// the server fails.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler, log logging.Logger) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "http server listening", "address", cfg.HTTP.Address, "base_path", cfg.HTTP.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Info(shutdownCtx, "http server stopped")
		return nil
	}
}
