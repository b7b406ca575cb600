package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"ir-hub-backend/config"
	"ir-hub-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(handler *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)

	api := r.Group("/api/v1")
	api.Use(rateLimiter)
	{
		api.POST("/decode", handler.Decode)

		// The protocol table is static for the life of the process.
		api.GET("/protocols", caching, handler.ListProtocols)

		api.GET("/devices", handler.ListDevices)
		api.POST("/devices/:device/learn", handler.Learn)

		api.GET("/devices/:device/codes", handler.ListCodes)
		api.GET("/devices/:device/codes/:button", handler.GetCode)
		api.DELETE("/devices/:device/codes/:button", handler.DeleteCode)
		api.POST("/devices/:device/codes/:button/transmit", handler.Transmit)

		api.GET("/devices/:device/ac", handler.GetAC)
		api.PATCH("/devices/:device/ac", handler.PatchAC)
	}

	return r
}
