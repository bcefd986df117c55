package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/geo-region-service/internal/interface/http"
)

// UserModule registers /users. Registration is public; everything else
// requires a Bearer token, and reads go through the response cache.
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    gin.HandlerFunc
	Cache   gin.HandlerFunc
	Public  gin.HandlerFunc // limiter for registration
	Write   gin.HandlerFunc // per-user limiter, runs after Auth
}

func NewUserModule(h *handlers.UserHandler, auth, cache, public, write gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth, Cache: cache, Public: public, Write: write}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Public, m.Handler.CreateUser)

	users := rg.Group("/users", m.Auth)
	{
		users.GET("", m.Cache, m.Handler.ListUsers)
		users.GET("/email/:email", m.Cache, m.Handler.GetUserByEmail)
		users.GET("/:id", m.Cache, m.Handler.GetUser)
		users.PUT("/:id", m.Write, m.Handler.UpdateUser)
		users.DELETE("/:id", m.Write, m.Handler.DeleteUser)
	}
}
