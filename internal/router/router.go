package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/geo-region-service/internal/interface/middleware"
	"github.com/oksasatya/geo-region-service/pkg/response"
	"github.com/oksasatya/geo-region-service/pkg/validation"
)

// Options configure the engine-wide middleware.
type Options struct {
	CORSOrigins       []string
	AccessLog         bool
	TrustProxyHeaders bool
}

// New builds the gin engine with global middleware and every module.
func New(d Deps, opts Options) *gin.Engine {
	validation.Init()
	response.SetLogger(d.Logger)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CaptureBody())
	if opts.TrustProxyHeaders {
		r.Use(middleware.RealIP())
	}
	r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	if opts.AccessLog && d.Logger != nil {
		r.Use(middleware.AccessLog(d.Logger))
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the geo region API")
	})
	r.HEAD("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, response.CodeRouteNotFound, "Route not found", nil)
	})

	reg := NewRegistry(r)
	InitModules(reg, d)
	reg.RegisterAll()
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID, "X-Cache"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
