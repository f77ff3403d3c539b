package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"xrplutter/gateway/internal/config"
	"xrplutter/gateway/internal/handler/middleware"
	"xrplutter/gateway/internal/metrics"
	"xrplutter/gateway/internal/repository"
	jwtpkg "xrplutter/gateway/pkg/jwt"
	"xrplutter/gateway/pkg/response"
)

// SetupRouter wires the gating pipeline: CORS always runs first, then rate
// limiting and bearer auth only on the route groups that declare them. A
// stage that stops a request writes its own response; nothing later runs.
func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	store repository.TTLStore,
	jwtManager *jwtpkg.Manager,
	m *metrics.Metrics,
	sessionHandler *SessionHandler,
	payloadHandler *PayloadHandler,
	rpcHandler *RPCHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		response.Error(c, 405, "method not allowed")
	})

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	rateLimit := middleware.RateLimit(store, cfg.RateLimit, logger, m)
	auth := middleware.BearerAuth(jwtManager, m)

	// Health check and metrics (ungated)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// JSON-RPC proxy: rate limited, unauthenticated
	rpc := r.Group("/api/xrpl/v1")
	rpc.Use(rateLimit)
	{
		rpc.POST("/jsonrpc", rpcHandler.Proxy)
	}

	// Pairing sessions: authenticated
	wc := r.Group("/api/walletconnect/v1")
	wc.Use(auth)
	{
		wc.POST("/session/create", sessionHandler.Create)
		wc.GET("/session/status/:id", sessionHandler.Status)
	}

	// XUMM payloads: rate limited and authenticated
	payload := r.Group("/api/xumm/v1")
	payload.Use(rateLimit)
	payload.Use(auth)
	{
		payload.POST("/payload/create", payloadHandler.Create)
		payload.GET("/payload/status/:payloadId", payloadHandler.Status)
	}

	return r
}
