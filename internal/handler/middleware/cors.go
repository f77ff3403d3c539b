package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"xrplutter/gateway/internal/config"
)

// CORS enforces the exact-match origin allow list. A matching origin is
// echoed back; anything else never receives an allow header (no wildcard).
// Credentials stay disabled and preflight OPTIONS requests short-circuit
// before any later pipeline stage.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	origins := cfg.AllowedOrigins()
	if len(origins) > 0 {
		corsCfg.AllowOrigins = origins
	} else {
		// Empty allow list: cross-origin callers are all denied.
		corsCfg.AllowOriginFunc = func(string) bool { return false }
	}
	return cors.New(corsCfg)
}
