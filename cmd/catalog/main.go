package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/catalog/handler"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/catalog/repository"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/config"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/database"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/filemap"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/oidc"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/storage"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/store"
	"github.com/vendorhub/vendorhub/backend/go-services/internal/tokens"
	"github.com/vendorhub/vendorhub/backend/go-services/pkg/logger"
	"github.com/vendorhub/vendorhub/backend/go-services/pkg/metrics"
	"github.com/vendorhub/vendorhub/backend/go-services/pkg/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL may also come from .env; re-initialised once config is loaded.
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.SetField("service", "catalog")
	logger.Infof("config loaded: keycloak=%v redis=%v minio=%v jwt_secret_set=%v",
		cfg.Auth.KeycloakURL != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "", cfg.Auth.JWTSecret != "")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, time.Second)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	db := client.Database(cfg.MongoDB.Database)

	var rdb *redis.Client
	if addr := cfg.RedisAddr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
		} else {
			logger.Infof("connected to Redis: %s", addr)
		}
	}

	var blobs *storage.MinIOStorage
	if cfg.MinIO.Endpoint != "" {
		blobs, err = storage.NewMinIOStorage(cfg.MinIO)
		if err != nil {
			logger.Warnf("MinIO disabled: %v", err)
			blobs = nil
		}
	}

	filemaps := store.NewMongoCollection(db.Collection(cfg.FileMap.Collection))
	dispatcher := filemap.NewDispatcher(filemap.NewStoreTracker(filemaps), cfg.FileMap.TrackerTimeout)
	deps := readiness{mongo: client, redis: rdb}
	var presigner filemap.Presigner
	if blobs != nil {
		presigner = blobs
		deps.blobs = blobs
	}
	expander := filemap.NewExpander(filemaps, presigner)

	repos := map[string]*repository.Repository{}
	for _, schema := range []repository.Schema{repository.Review, repository.Service, repository.CustomerStory} {
		col := db.Collection(schema.Collection)
		if err := database.EnsureIndexes(ctx, col, schema.Showcases); err != nil {
			logger.Warnf("%v", err)
		}
		repos[schema.Collection] = repository.New(schema, store.NewMongoCollection(col),
			repository.WithFileRefs(dispatcher), repository.WithExpander(expander))
	}

	verifier := buildVerifier(ctx, cfg)
	auth := middleware.RequireAuth(verifier)

	r := gin.New()
	r.Use(cors(), gin.Logger(), gin.Recovery())
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "healthy") })
	r.GET("/ready", readyHandler(deps))
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handler.RegisterSwagger(r)

	api := r.Group("/api")
	handler.RegisterReviewRoutes(api.Group("/reviews"), repos[repository.Review.Collection], auth)
	handler.RegisterServiceRoutes(api.Group("/services"), repos[repository.Service.Collection], auth)
	handler.RegisterCustomerStoryRoutes(api.Group("/customer-stories"), repos[repository.CustomerStory.Collection], auth)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}
	go func() {
		logger.Infof("starting catalog service on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("shutting down catalog service")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	dispatcher.Wait()
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Warnf("mongo disconnect: %v", err)
	}
	logger.Infof("catalog service exited")
}

// buildVerifier prefers Keycloak OIDC, then a shared HMAC secret. A nil
// verifier leaves write routes open.
func buildVerifier(ctx context.Context, cfg *config.Config) middleware.Verifier {
	if cfg.Auth.KeycloakURL != "" && cfg.Auth.KeycloakClientID != "" {
		ver, err := oidc.NewVerifier(ctx, cfg.KeycloakIssuer(), cfg.Auth.KeycloakClientID)
		if err == nil {
			logger.Infof("write routes verified by OIDC issuer %s", cfg.KeycloakIssuer())
			return ver
		}
		logger.Warnf("failed to initialize OIDC verifier: %v", err)
	}
	if cfg.Auth.JWTSecret != "" {
		logger.Infof("write routes verified by HS256 tokens")
		return tokens.NewHMACVerifier(cfg.Auth.JWTSecret)
	}
	logger.Warnf("no token verifier configured; write routes are open")
	return nil
}

// cors sets permissive headers for browser clients and answers preflight requests.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		h.Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// Pinger is satisfied by the MinIO storage.
type Pinger interface {
	Ping(ctx context.Context) error
}

type readiness struct {
	mongo *mongo.Client
	redis *redis.Client
	blobs Pinger
}

// readyHandler reports 200 only when every configured dependency answers.
// Unconfigured optional dependencies count as ready.
func readyHandler(deps readiness) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := map[string]bool{}
		ready := true
		check := func(name string, err error) {
			status[name] = err == nil
			if err != nil {
				ready = false
				logger.Warnf("readiness: %s: %v", name, err)
			}
		}

		if deps.mongo == nil {
			check("mongo", errors.New("not connected"))
		} else {
			check("mongo", deps.mongo.Ping(ctx, nil))
		}
		if deps.redis != nil {
			check("redis", deps.redis.Ping(ctx).Err())
		}
		if deps.blobs != nil {
			check("minio", deps.blobs.Ping(ctx))
		}

		body := gin.H{"deps": status, "uptime": time.Since(startTime).String()}
		if !ready {
			body["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		body["status"] = "ready"
		c.JSON(http.StatusOK, body)
	}
}
