package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/geo-region-service/internal/interface/http"
)

// RegionModule registers /regions. Every route requires a Bearer token.
type RegionModule struct {
	Handler *handlers.RegionHandler
	Auth    gin.HandlerFunc
	Cache   gin.HandlerFunc
	Write   gin.HandlerFunc
}

func NewRegionModule(h *handlers.RegionHandler, auth, cache, write gin.HandlerFunc) *RegionModule {
	return &RegionModule{Handler: h, Auth: auth, Cache: cache, Write: write}
}

func (m *RegionModule) Register(rg *gin.RouterGroup) {
	regions := rg.Group("/regions", m.Auth)
	{
		regions.POST("", m.Write, m.Handler.CreateRegion)
		regions.GET("", m.Cache, m.Handler.ListRegions)
		regions.POST("/containing-point", m.Handler.ContainingPoint)
		regions.POST("/near", m.Handler.Near)
		regions.GET("/:id", m.Cache, m.Handler.GetRegion)
		regions.PUT("/:id", m.Write, m.Handler.UpdateRegion)
		regions.DELETE("/:id", m.Write, m.Handler.DeleteRegion)
	}
}
